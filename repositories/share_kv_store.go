package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"vcard.link/models"
	"vcard.link/pkg/keyvalue"
	"vcard.link/pkg/queryparams"

	"gorm.io/datatypes"
)

// SharesKey yerel paylaşım kayıtlarının tutulduğu anahtar (shareId -> ShareRecord).
const SharesKey = "visiting_card_shares"

// KVShareStore paylaşımları tek anahtar altında tutar. Her işlem oku-değiştir-yaz
// olduğundan aynı kayda eşzamanlı güncellemelerden biri kaybolabilir.
type KVShareStore struct {
	store keyvalue.Store
	now   func() time.Time
}

func NewKVShareStore(store keyvalue.Store) IShareStore {
	return &KVShareStore{store: store, now: time.Now}
}

func (s *KVShareStore) load(ctx context.Context) (map[string]models.ShareRecord, error) {
	all := map[string]models.ShareRecord{}
	err := keyvalue.GetJSON(ctx, s.store, SharesKey, &all)
	if err != nil && !errors.Is(err, keyvalue.ErrNotFound) {
		return nil, err
	}
	return all, nil
}

func (s *KVShareStore) save(ctx context.Context, all map[string]models.ShareRecord) error {
	return keyvalue.SetJSON(ctx, s.store, SharesKey, all)
}

func (s *KVShareStore) Create(ctx context.Context, record *models.ShareRecord) error {
	if record == nil {
		return errors.New("oluşturulacak paylaşım nil olamaz")
	}
	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, dup := all[record.ShareID]; dup {
		return fmt.Errorf("paylaşım kimliği zaten var: %s", record.ShareID)
	}
	var maxID uint
	for _, r := range all {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	now := s.now()
	record.ID = maxID + 1
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
	all[record.ShareID] = *record
	return s.save(ctx, all)
}

func (s *KVShareStore) FindByShareID(ctx context.Context, shareID string) (*models.ShareRecord, error) {
	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	rec, ok := all[shareID]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *KVShareStore) ShareIDExists(ctx context.Context, shareID string) (bool, error) {
	all, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	_, ok := all[shareID]
	return ok, nil
}

func (s *KVShareStore) Update(ctx context.Context, shareID string, data map[string]interface{}) error {
	if len(data) == 0 {
		return errors.New("güncellenecek veri boş olamaz")
	}
	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	rec, ok := all[shareID]
	if !ok {
		return ErrNotFound
	}
	if err := applyShareUpdates(&rec, data); err != nil {
		return err
	}
	rec.UpdatedAt = s.now()
	all[shareID] = rec
	return s.save(ctx, all)
}

func (s *KVShareStore) IncrementViewCount(ctx context.Context, shareID string, viewedAt time.Time) error {
	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	rec, ok := all[shareID]
	if !ok {
		return ErrNotFound
	}
	rec.ViewCount++
	rec.LastViewedAt = &viewedAt
	all[shareID] = rec
	return s.save(ctx, all)
}

func (s *KVShareStore) ListActiveByCreator(ctx context.Context, creatorID uint, params queryparams.ListParams) ([]models.ShareRecord, int64, error) {
	params.Validate("created_at", ShareSortColumns...)
	all, err := s.load(ctx)
	if err != nil {
		return nil, 0, err
	}

	var matched []models.ShareRecord
	for _, r := range all {
		if r.CreatedBy == creatorID && r.IsActive {
			matched = append(matched, r)
		}
	}
	sortShareRecords(matched, params.SortBy, params.SortOrder == "asc")

	total := int64(len(matched))
	start := params.CalculateOffset()
	if start >= len(matched) {
		return []models.ShareRecord{}, total, nil
	}
	end := start + params.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// applyShareUpdates gorm sütun adlarıyla gelen güncellemeleri kayda uygular.
func applyShareUpdates(rec *models.ShareRecord, data map[string]interface{}) error {
	for col, v := range data {
		switch col {
		case "template_id":
			id, ok := v.(int)
			if !ok {
				return fmt.Errorf("template_id tipi geçersiz: %T", v)
			}
			rec.TemplateID = id
		case "card_data":
			m, ok := v.(datatypes.JSONMap)
			if !ok {
				return fmt.Errorf("card_data tipi geçersiz: %T", v)
			}
			rec.CardData = m
		case "expires_at":
			switch t := v.(type) {
			case nil:
				rec.ExpiresAt = nil
			case *time.Time:
				rec.ExpiresAt = t
			case time.Time:
				rec.ExpiresAt = &t
			default:
				return fmt.Errorf("expires_at tipi geçersiz: %T", v)
			}
		case "is_public", "allow_download", "is_active":
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("%s tipi geçersiz: %T", col, v)
			}
			switch col {
			case "is_public":
				rec.IsPublic = b
			case "allow_download":
				rec.AllowDownload = b
			default:
				rec.IsActive = b
			}
		default:
			return fmt.Errorf("desteklenmeyen sütun: %s", col)
		}
	}
	return nil
}

func sortShareRecords(records []models.ShareRecord, column string, asc bool) {
	timeOrZero := func(t *time.Time) time.Time {
		if t == nil {
			return time.Time{}
		}
		return *t
	}
	compare := func(a, b models.ShareRecord) int {
		switch column {
		case "updated_at":
			return a.UpdatedAt.Compare(b.UpdatedAt)
		case "view_count":
			return cmpInt64(a.ViewCount, b.ViewCount)
		case "expires_at":
			return timeOrZero(a.ExpiresAt).Compare(timeOrZero(b.ExpiresAt))
		case "last_viewed_at":
			return timeOrZero(a.LastViewedAt).Compare(timeOrZero(b.LastViewedAt))
		case "template_id":
			return cmpInt64(int64(a.TemplateID), int64(b.TemplateID))
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		c := compare(records[i], records[j])
		if c == 0 {
			c = cmpInt64(int64(records[i].ID), int64(records[j].ID))
		}
		if asc {
			return c < 0
		}
		return c > 0
	})
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

var _ IShareStore = (*KVShareStore)(nil)
