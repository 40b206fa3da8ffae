package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
)

// assignmentRecord is the JSON shape of one saved assignment in the
// assignments column.
type assignmentRecord struct {
	ZoneID       string  `json:"zoneId"`
	RecipeID     string  `json:"recipeId"`
	MachineCount int     `json:"machineCount"`
	Utilization  float64 `json:"utilization"`
	RequiredRate float64 `json:"requiredRate"`
	ActualRate   float64 `json:"actualRate"`
	ExcessRate   float64 `json:"excessRate"`
	Locked       bool    `json:"locked"`
}

// GormLayoutRepository implements LayoutRepository using GORM
type GormLayoutRepository struct {
	db *gorm.DB
}

// NewGormLayoutRepository creates a new GORM layout repository
func NewGormLayoutRepository(db *gorm.DB) *GormLayoutRepository {
	return &GormLayoutRepository{db: db}
}

// SaveLayout stores a layout, replacing any existing layout with the same name.
func (r *GormLayoutRepository) SaveLayout(ctx context.Context, layout *planning.Layout) error {
	model, err := layoutToModel(layout)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Where("name = ?", layout.Name).Delete(&LayoutModel{}); result.Error != nil {
			return fmt.Errorf("failed to replace layout %s: %w", layout.Name, result.Error)
		}
		if result := tx.Create(model); result.Error != nil {
			return fmt.Errorf("failed to save layout %s: %w", layout.Name, result.Error)
		}
		return nil
	})
}

// GetLayout retrieves a layout by name.
func (r *GormLayoutRepository) GetLayout(ctx context.Context, name string) (*planning.Layout, error) {
	var model LayoutModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("layout not found: %s", name)
		}
		return nil, fmt.Errorf("failed to find layout: %w", result.Error)
	}
	return modelToLayout(&model)
}

// ListLayouts retrieves all layouts, newest first.
func (r *GormLayoutRepository) ListLayouts(ctx context.Context) ([]*planning.Layout, error) {
	var models []LayoutModel
	if result := r.db.WithContext(ctx).Order("created_at DESC").Find(&models); result.Error != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", result.Error)
	}
	layouts := make([]*planning.Layout, 0, len(models))
	for _, m := range models {
		layout, err := modelToLayout(&m)
		if err != nil {
			return nil, fmt.Errorf("failed to convert layout %s: %w", m.Name, err)
		}
		layouts = append(layouts, layout)
	}
	return layouts, nil
}

// DeleteLayout removes a layout by name.
func (r *GormLayoutRepository) DeleteLayout(ctx context.Context, name string) error {
	result := r.db.WithContext(ctx).Where("name = ?", name).Delete(&LayoutModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete layout %s: %w", name, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("layout not found: %s", name)
	}
	return nil
}

func layoutToModel(layout *planning.Layout) (*LayoutModel, error) {
	records := make([]assignmentRecord, 0, len(layout.Assignments))
	for _, a := range layout.Assignments {
		records = append(records, assignmentRecord{
			ZoneID:       a.ZoneID,
			RecipeID:     a.RecipeID,
			MachineCount: a.MachineCount,
			Utilization:  a.Utilization,
			RequiredRate: a.RequiredRate,
			ActualRate:   a.ActualRate,
			ExcessRate:   a.ExcessRate,
			Locked:       a.Locked,
		})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize assignments: %w", err)
	}
	return &LayoutModel{
		ID:          layout.ID,
		Name:        layout.Name,
		CreatedAt:   layout.CreatedAt,
		Assignments: string(data),
	}, nil
}

func modelToLayout(model *LayoutModel) (*planning.Layout, error) {
	var records []assignmentRecord
	if model.Assignments != "" {
		if err := json.Unmarshal([]byte(model.Assignments), &records); err != nil {
			return nil, fmt.Errorf("failed to parse assignments: %w", err)
		}
	}
	assignments := make([]planning.ZoneAssignment, 0, len(records))
	for _, rec := range records {
		assignments = append(assignments, planning.ZoneAssignment{
			ZoneID:       rec.ZoneID,
			RecipeID:     rec.RecipeID,
			MachineCount: rec.MachineCount,
			Utilization:  rec.Utilization,
			RequiredRate: rec.RequiredRate,
			ActualRate:   rec.ActualRate,
			ExcessRate:   rec.ExcessRate,
			Locked:       rec.Locked,
		})
	}
	return &planning.Layout{
		ID:          model.ID,
		Name:        model.Name,
		CreatedAt:   model.CreatedAt,
		Assignments: assignments,
	}, nil
}
