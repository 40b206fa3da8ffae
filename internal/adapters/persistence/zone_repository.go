package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
)

// GormZoneRepository implements ZoneRepository using GORM
type GormZoneRepository struct {
	db *gorm.DB
}

// NewGormZoneRepository creates a new GORM zone repository
func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

// ListZones retrieves all zones ordered by id.
func (r *GormZoneRepository) ListZones(ctx context.Context) ([]*planning.Zone, error) {
	var models []ZoneModel
	if result := r.db.WithContext(ctx).Order("id").Find(&models); result.Error != nil {
		return nil, fmt.Errorf("failed to list zones: %w", result.Error)
	}
	zones := make([]*planning.Zone, 0, len(models))
	for _, m := range models {
		zones = append(zones, modelToZone(&m))
	}
	return zones, nil
}

// GetZone retrieves a zone by id.
func (r *GormZoneRepository) GetZone(ctx context.Context, id string) (*planning.Zone, error) {
	var model ZoneModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("zone not found: %s", id)
		}
		return nil, fmt.Errorf("failed to find zone: %w", result.Error)
	}
	return modelToZone(&model), nil
}

// SaveZone inserts or updates a zone.
func (r *GormZoneRepository) SaveZone(ctx context.Context, zone *planning.Zone) error {
	model := ZoneModel{
		ID:             zone.ID,
		Name:           zone.Name,
		OutputPorts:    zone.OutputPorts,
		InputPorts:     zone.InputPorts,
		PortThroughput: zone.PortThroughput,
		MachineSlots:   zone.MachineSlots,
		AreaLimit:      zone.AreaLimit,
	}
	if result := r.db.WithContext(ctx).Save(&model); result.Error != nil {
		return fmt.Errorf("failed to save zone %s: %w", zone.ID, result.Error)
	}
	return nil
}

// DeleteZone removes a zone by id.
func (r *GormZoneRepository) DeleteZone(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ZoneModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete zone %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("zone not found: %s", id)
	}
	return nil
}

func modelToZone(m *ZoneModel) *planning.Zone {
	return &planning.Zone{
		ID:             m.ID,
		Name:           m.Name,
		OutputPorts:    m.OutputPorts,
		InputPorts:     m.InputPorts,
		PortThroughput: m.PortThroughput,
		MachineSlots:   m.MachineSlots,
		AreaLimit:      m.AreaLimit,
	}
}
