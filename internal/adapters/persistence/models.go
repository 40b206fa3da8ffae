package persistence

import (
	"time"
)

// ItemModel represents the items table
type ItemModel struct {
	ID                 string  `gorm:"column:id;primaryKey"`
	Name               string  `gorm:"column:name;not null"`
	Price              float64 `gorm:"column:price;not null;default:0"`
	IsRawResource      bool    `gorm:"column:is_raw_resource;not null;default:false"`
	BaseProductionRate float64 `gorm:"column:base_production_rate;not null;default:0"`
}

func (ItemModel) TableName() string {
	return "items"
}

// MachineModel represents the machines table
type MachineModel struct {
	ID          string  `gorm:"column:id;primaryKey"`
	Name        string  `gorm:"column:name;not null"`
	Description string  `gorm:"column:description;type:text"`
	Area        float64 `gorm:"column:area;not null;default:0"`
}

func (MachineModel) TableName() string {
	return "machines"
}

// RecipeModel represents the recipes table
type RecipeModel struct {
	ID           string  `gorm:"column:id;primaryKey"`
	MachineID    string  `gorm:"column:machine_id;not null"`
	Name         string  `gorm:"column:name;not null"`
	OutputItemID string  `gorm:"column:output_item_id;not null"`
	OutputAmount float64 `gorm:"column:output_amount;not null"`
	CraftingTime float64 `gorm:"column:crafting_time;not null"`
	Inputs       string  `gorm:"column:inputs;type:text"` // JSON array as text
}

func (RecipeModel) TableName() string {
	return "recipes"
}

// ZoneModel represents the zones table
type ZoneModel struct {
	ID             string  `gorm:"column:id;primaryKey"`
	Name           string  `gorm:"column:name;not null"`
	OutputPorts    int     `gorm:"column:output_ports;not null;default:0"`
	InputPorts     int     `gorm:"column:input_ports;not null;default:0"`
	PortThroughput float64 `gorm:"column:port_throughput;not null"`
	MachineSlots   int     `gorm:"column:machine_slots;not null;default:0"`
	AreaLimit      float64 `gorm:"column:area_limit;not null;default:0"`
}

func (ZoneModel) TableName() string {
	return "zones"
}

// LayoutModel represents the layouts table
type LayoutModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;unique;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null"`
	Assignments string    `gorm:"column:assignments;type:text"` // JSON array as text
}

func (LayoutModel) TableName() string {
	return "layouts"
}
