package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/luewire/DailyFlow-HabitTracker/internal/core/ports"
	"github.com/luewire/DailyFlow-HabitTracker/internal/infrastructure/persistence/postgres/connection"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document is one stored JSON record. The payload column holds the document
// exactly as the stores wrote it; (collection, key) is the composite address.
type Document struct {
	Collection string         `gorm:"primaryKey;size:64;not null"`
	Key        string         `gorm:"primaryKey;size:255;not null"`
	Payload    datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time      `gorm:"not null;default:current_timestamp"`
	UpdatedAt  time.Time      `gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

// TableName specifies the table name for the Document model
func (Document) TableName() string {
	return "documents"
}

// Postgres implements ports.DocumentStore on a single jsonb-backed table.
type Postgres struct {
	db *connection.Database
}

func NewPostgres(db *connection.Database) *Postgres {
	return &Postgres{db: db}
}

// AutoMigrate creates the documents table.
func (s *Postgres) AutoMigrate() error {
	return s.db.AutoMigrate(&Document{})
}

func (s *Postgres) Get(ctx context.Context, collection, key string, out interface{}) error {
	var doc Document
	result := s.db.WithContext(ctx).
		Where("collection = ? AND key = ?", collection, key).
		First(&doc)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ports.ErrNotFound
		}
		return result.Error
	}
	return json.Unmarshal(doc.Payload, out)
}

func (s *Postgres) SetIfAbsent(ctx context.Context, collection, key string, doc interface{}) (bool, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return false, fmt.Errorf("failed to marshal document: %w", err)
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&Document{
			Collection: collection,
			Key:        key,
			Payload:    payload,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (s *Postgres) Set(ctx context.Context, collection, key string, doc interface{}) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "key"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"payload": datatypes.JSON(payload), "updated_at": time.Now().UTC()}),
		}).
		Create(&Document{
			Collection: collection,
			Key:        key,
			Payload:    payload,
		}).Error
}

func (s *Postgres) UpdateField(ctx context.Context, collection, key, field string, value interface{}) error {
	return s.updateField(s.db.DB, ctx, collection, key, field, value)
}

func (s *Postgres) updateField(tx *gorm.DB, ctx context.Context, collection, key, field string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal field %q: %w", field, err)
	}

	result := tx.WithContext(ctx).
		Model(&Document{}).
		Where("collection = ? AND key = ?", collection, key).
		Updates(map[string]interface{}{
			"payload":    gorm.Expr("jsonb_set(payload, ?::text[], ?::jsonb)", fmt.Sprintf("{%s}", field), string(raw)),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (s *Postgres) BatchUpdateField(ctx context.Context, collection string, updates []ports.FieldUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if err := s.updateField(tx, ctx, collection, u.Key, u.Field, u.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Postgres) List(ctx context.Context, collection, keyPrefix string, each func(raw []byte) error) error {
	var docs []Document
	err := s.db.WithContext(ctx).
		Where("collection = ? AND key LIKE ?", collection, keyPrefix+"%").
		Order("key").
		Find(&docs).Error
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if err := each(doc.Payload); err != nil {
			return err
		}
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, collection, key string) error {
	result := s.db.WithContext(ctx).
		Where("collection = ? AND key = ?", collection, key).
		Delete(&Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}
