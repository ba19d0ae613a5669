package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCorruptPayload reports a stored cart payload that no longer parses.
// Callers treat it as an empty cart rather than a fault.
var ErrCorruptPayload = errors.New("corrupt cart payload")

// Repository persists one cart per storage key as a flat JSON array,
// mirroring the original browser-local key/value record.
type Repository interface {
	Load(ctx context.Context, storageKey string) ([]Line, error)
	Save(ctx context.Context, storageKey string, lines []Line) error
}

// cartRecord is the single durable entity.
type cartRecord struct {
	StorageKey string    `gorm:"column:storage_key;primaryKey"`
	Payload    string    `gorm:"column:payload;not null;default:'[]'"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (cartRecord) TableName() string {
	return "cart_records"
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository binds the repository to the provided DB handle.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Load reads the persisted lines. A missing record yields an empty cart; a
// payload that fails to parse yields ErrCorruptPayload.
func (r *gormRepository) Load(ctx context.Context, storageKey string) ([]Line, error) {
	var record cartRecord
	err := r.db.WithContext(ctx).First(&record, "storage_key = ?", storageKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []Line
	if err := json.Unmarshal([]byte(record.Payload), &lines); err != nil {
		return nil, ErrCorruptPayload
	}
	return lines, nil
}

// Save upserts the whole cart under its storage key.
func (r *gormRepository) Save(ctx context.Context, storageKey string, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return err
	}

	record := cartRecord{StorageKey: storageKey, Payload: string(payload)}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "storage_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&record).Error
}
