package repositories

import (
	"context"
	"errors"
	"strconv"
	"time"

	"vcard.link/configs/configslog"
	"vcard.link/models"
	"vcard.link/pkg/keyvalue"

	"go.uber.org/zap"
)

// AssignmentsKey tüm atamaların tutulduğu tek anahtar (userId -> Assignment).
const AssignmentsKey = "visiting_card_assignments"

// KVAssignmentStore atamaları tek bir anahtar altında JSON eşleme olarak tutar.
// Anahtar yoksa ilk erişimde DefaultAssignments ile doldurulur.
type KVAssignmentStore struct {
	store keyvalue.Store
	now   func() time.Time
}

func NewKVAssignmentStore(store keyvalue.Store) IAssignmentStore {
	return &KVAssignmentStore{store: store, now: time.Now}
}

func (s *KVAssignmentStore) load(ctx context.Context) (map[string]models.Assignment, error) {
	all := map[string]models.Assignment{}
	err := keyvalue.GetJSON(ctx, s.store, AssignmentsKey, &all)
	if errors.Is(err, keyvalue.ErrNotFound) {
		all = s.seed()
		if err := keyvalue.SetJSON(ctx, s.store, AssignmentsKey, all); err != nil {
			return nil, err
		}
		configslog.SLog.Infof("Varsayılan şablon atamaları yazıldı (%d kayıt)", len(all))
		return all, nil
	}
	if err != nil {
		configslog.Log.Error("KVAssignmentStore: atamalar okunamadı", zap.Error(err))
		return nil, err
	}
	return all, nil
}

func (s *KVAssignmentStore) seed() map[string]models.Assignment {
	now := s.now()
	all := map[string]models.Assignment{}
	for i, a := range DefaultAssignments() {
		a.ID = uint(i + 1)
		a.CreatedAt, a.UpdatedAt = now, now
		all[strconv.FormatUint(uint64(a.UserID), 10)] = a
	}
	return all
}

func (s *KVAssignmentStore) FindByUserID(ctx context.Context, userID uint) (*models.Assignment, error) {
	if userID == 0 {
		return nil, errors.New("geçersiz kullanıcı ID")
	}
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	a, ok := all[strconv.FormatUint(uint64(userID), 10)]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (s *KVAssignmentStore) Save(ctx context.Context, a *models.Assignment) error {
	if a == nil || a.UserID == 0 {
		return errors.New("kaydedilecek atama geçerli değil")
	}
	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	key := strconv.FormatUint(uint64(a.UserID), 10)
	now := s.now()
	if existing, ok := all[key]; ok {
		a.ID, a.CreatedAt = existing.ID, existing.CreatedAt
	} else {
		a.ID = nextAssignmentID(all)
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	all[key] = *a
	return keyvalue.SetJSON(ctx, s.store, AssignmentsKey, all)
}

func (s *KVAssignmentStore) Reset(ctx context.Context) error {
	return keyvalue.SetJSON(ctx, s.store, AssignmentsKey, s.seed())
}

func nextAssignmentID(all map[string]models.Assignment) uint {
	var max uint
	for _, a := range all {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1
}

var _ IAssignmentStore = (*KVAssignmentStore)(nil)
