package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"focusboard/internal/model"
)

const (
	SessionKey  = "focusboard_data"
	ContactsKey = "focusboard_relationships"
)

// StateRepository stores JSON documents in the blobs table.
type StateRepository struct {
	db *gorm.DB
}

func NewStateRepository(db *gorm.DB) *StateRepository {
	return &StateRepository{db: db}
}

// LoadSession returns nil without error when nothing was saved yet.
func (r *StateRepository) LoadSession(ctx context.Context) (*model.SessionState, error) {
	var state model.SessionState
	found, err := r.get(ctx, SessionKey, &state)
	if err != nil || !found {
		return nil, err
	}
	state.ApplyDefaults()
	return &state, nil
}

func (r *StateRepository) SaveSession(ctx context.Context, state model.SessionState) error {
	state.LastUpdated = time.Now().UTC().Format(time.RFC3339Nano)
	return r.put(ctx, SessionKey, state)
}

// LoadContacts returns nil without error when nothing was saved yet.
func (r *StateRepository) LoadContacts(ctx context.Context) ([]model.Contact, error) {
	var contacts []model.Contact
	found, err := r.get(ctx, ContactsKey, &contacts)
	if err != nil || !found {
		return nil, err
	}
	return contacts, nil
}

func (r *StateRepository) SaveContacts(ctx context.Context, contacts []model.Contact) error {
	if contacts == nil {
		contacts = []model.Contact{}
	}
	return r.put(ctx, ContactsKey, contacts)
}

func (r *StateRepository) get(ctx context.Context, key string, dst any) (bool, error) {
	var blob model.Blob
	err := r.db.WithContext(ctx).Where("name = ?", key).First(&blob).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(blob.Value, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (r *StateRepository) put(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	blob := model.Blob{Name: key, Value: data, UpdatedAt: time.Now()}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error; err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
