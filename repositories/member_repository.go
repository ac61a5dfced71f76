package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"vcard.link/configs/configsdatabase"
	"vcard.link/configs/configslog"
	"vcard.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MemberKey üye kaydının aranabileceği kimlik alanı.
type MemberKey string

const (
	MemberKeyID              MemberKey = "id"
	MemberKeyCompanyDetailID MemberKey = "company_detail_id"
	MemberKeyUserDetailID    MemberKey = "user_detail_id"
	MemberKeyUserID          MemberKey = "user_id"
)

// IMemberRepository üye rehberi (directory) okuma işlemleri.
type IMemberRepository interface {
	FindByKey(ctx context.Context, key MemberKey, value string) (*models.Member, error)
	Create(ctx context.Context, member *models.Member) error
}

// ISocialProfileRepository sosyal profil okuma işlemleri.
type ISocialProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.SocialProfile, error)
	Create(ctx context.Context, profile *models.SocialProfile) error
}

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository() IMemberRepository {
	return &MemberRepository{db: configsdatabase.GetDB()}
}

func NewMemberRepositoryTx(tx *gorm.DB) IMemberRepository {
	return &MemberRepository{db: tx}
}

func (r *MemberRepository) getDB(ctx context.Context) *gorm.DB {
	return getTxDB(ctx, r.db)
}

func (r *MemberRepository) FindByKey(ctx context.Context, key MemberKey, value string) (*models.Member, error) {
	if value == "" {
		return nil, ErrNotFound
	}
	query := r.getDB(ctx)
	switch key {
	case MemberKeyID:
		id, err := strconv.ParseUint(value, 10, 64)
		if err != nil || id == 0 {
			return nil, ErrNotFound
		}
		query = query.Where("id = ?", id)
	case MemberKeyCompanyDetailID, MemberKeyUserDetailID, MemberKeyUserID:
		query = query.Where(string(key)+" = ?", value)
	default:
		return nil, fmt.Errorf("bilinmeyen üye anahtarı: %s", key)
	}

	var m models.Member
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("MemberRepository.FindByKey: DB hatası", zap.String("key", string(key)), zap.String("value", value), zap.Error(err))
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) Create(ctx context.Context, member *models.Member) error {
	if member == nil {
		return errors.New("oluşturulacak üye nil olamaz")
	}
	return r.getDB(ctx).Create(member).Error
}

type SocialProfileRepository struct {
	db *gorm.DB
}

func NewSocialProfileRepository() ISocialProfileRepository {
	return &SocialProfileRepository{db: configsdatabase.GetDB()}
}

func NewSocialProfileRepositoryTx(tx *gorm.DB) ISocialProfileRepository {
	return &SocialProfileRepository{db: tx}
}

func (r *SocialProfileRepository) FindByUserID(ctx context.Context, userID string) (*models.SocialProfile, error) {
	if userID == "" {
		return nil, ErrNotFound
	}
	var p models.SocialProfile
	if err := getTxDB(ctx, r.db).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("SocialProfileRepository.FindByUserID: DB hatası", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *SocialProfileRepository) Create(ctx context.Context, profile *models.SocialProfile) error {
	if profile == nil {
		return errors.New("oluşturulacak sosyal profil nil olamaz")
	}
	return getTxDB(ctx, r.db).Create(profile).Error
}

var (
	_ IMemberRepository        = (*MemberRepository)(nil)
	_ ISocialProfileRepository = (*SocialProfileRepository)(nil)
)
