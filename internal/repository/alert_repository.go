package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"focusboard/internal/model"
)

// AlertRepository remembers which upcoming-event warnings were already shown.
type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// KeysForDay returns the alert keys recorded for the given day-key.
func (r *AlertRepository) KeysForDay(ctx context.Context, dayKey string) (map[string]struct{}, error) {
	var alerts []model.EventAlert
	if err := r.db.WithContext(ctx).Where("day_key = ?", dayKey).Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("list event alerts: %w", err)
	}
	keys := make(map[string]struct{}, len(alerts))
	for _, a := range alerts {
		keys[a.AlertKey] = struct{}{}
	}
	return keys, nil
}

// Record stores keys; keys already present are ignored.
func (r *AlertRepository) Record(ctx context.Context, keys []model.AlertKey) error {
	if len(keys) == 0 {
		return nil
	}
	now := time.Now()
	rows := make([]model.EventAlert, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, model.EventAlert{AlertKey: k.String(), DayKey: k.DayKey, EventID: k.EventID, CreatedAt: now})
	}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("record event alerts: %w", err)
	}
	return nil
}

// PruneBefore deletes keys of days earlier than dayKey.
func (r *AlertRepository) PruneBefore(ctx context.Context, dayKey string) (int64, error) {
	res := r.db.WithContext(ctx).Where("day_key < ?", dayKey).Delete(&model.EventAlert{})
	if res.Error != nil {
		return 0, fmt.Errorf("prune event alerts: %w", res.Error)
	}
	return res.RowsAffected, nil
}
