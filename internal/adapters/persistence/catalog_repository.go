package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/zoneplanner-go/internal/domain/catalog"
)

// recipeInputRecord is the JSON shape of one recipe ingredient in the inputs
// column.
type recipeInputRecord struct {
	ItemID string  `json:"itemId"`
	Amount float64 `json:"amount"`
}

// GormCatalogRepository implements CatalogRepository using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// LoadCatalog reads the full reference-data snapshot.
func (r *GormCatalogRepository) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	var itemModels []ItemModel
	if result := r.db.WithContext(ctx).Order("id").Find(&itemModels); result.Error != nil {
		return nil, fmt.Errorf("failed to load items: %w", result.Error)
	}
	var machineModels []MachineModel
	if result := r.db.WithContext(ctx).Order("id").Find(&machineModels); result.Error != nil {
		return nil, fmt.Errorf("failed to load machines: %w", result.Error)
	}
	var recipeModels []RecipeModel
	if result := r.db.WithContext(ctx).Order("id").Find(&recipeModels); result.Error != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", result.Error)
	}

	items := make([]*catalog.Item, 0, len(itemModels))
	for _, m := range itemModels {
		items = append(items, &catalog.Item{
			ID:                 m.ID,
			Name:               m.Name,
			Price:              m.Price,
			IsRawResource:      m.IsRawResource,
			BaseProductionRate: m.BaseProductionRate,
		})
	}

	machines := make([]*catalog.Machine, 0, len(machineModels))
	for _, m := range machineModels {
		machines = append(machines, &catalog.Machine{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			Area:        m.Area,
		})
	}

	recipes := make([]*catalog.Recipe, 0, len(recipeModels))
	for _, m := range recipeModels {
		recipe, err := r.modelToRecipe(&m)
		if err != nil {
			return nil, fmt.Errorf("failed to convert recipe %s: %w", m.ID, err)
		}
		recipes = append(recipes, recipe)
	}

	return catalog.NewCatalog(items, recipes, machines), nil
}

// SaveCatalog replaces the stored snapshot atomically.
func (r *GormCatalogRepository) SaveCatalog(ctx context.Context, cat *catalog.Catalog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []interface{}{&ItemModel{}, &MachineModel{}, &RecipeModel{}} {
			if result := tx.Where("1 = 1").Delete(table); result.Error != nil {
				return fmt.Errorf("failed to clear table: %w", result.Error)
			}
		}

		for _, it := range cat.Items() {
			model := ItemModel{
				ID:                 it.ID,
				Name:               it.Name,
				Price:              it.Price,
				IsRawResource:      it.IsRawResource,
				BaseProductionRate: it.BaseProductionRate,
			}
			if result := tx.Create(&model); result.Error != nil {
				return fmt.Errorf("failed to save item %s: %w", it.ID, result.Error)
			}
		}
		for _, m := range cat.Machines() {
			model := MachineModel{ID: m.ID, Name: m.Name, Description: m.Description, Area: m.Area}
			if result := tx.Create(&model); result.Error != nil {
				return fmt.Errorf("failed to save machine %s: %w", m.ID, result.Error)
			}
		}
		for _, recipe := range cat.Recipes() {
			model, err := r.recipeToModel(recipe)
			if err != nil {
				return fmt.Errorf("failed to convert recipe %s: %w", recipe.ID, err)
			}
			if result := tx.Create(model); result.Error != nil {
				return fmt.Errorf("failed to save recipe %s: %w", recipe.ID, result.Error)
			}
		}
		return nil
	})
}

func (r *GormCatalogRepository) modelToRecipe(model *RecipeModel) (*catalog.Recipe, error) {
	var records []recipeInputRecord
	if model.Inputs != "" {
		if err := json.Unmarshal([]byte(model.Inputs), &records); err != nil {
			return nil, fmt.Errorf("failed to parse inputs: %w", err)
		}
	}
	inputs := make([]catalog.RecipeInput, 0, len(records))
	for _, rec := range records {
		inputs = append(inputs, catalog.RecipeInput{ItemID: rec.ItemID, Amount: rec.Amount})
	}
	return &catalog.Recipe{
		ID:           model.ID,
		MachineID:    model.MachineID,
		Name:         model.Name,
		OutputItemID: model.OutputItemID,
		OutputAmount: model.OutputAmount,
		CraftingTime: model.CraftingTime,
		Inputs:       inputs,
	}, nil
}

func (r *GormCatalogRepository) recipeToModel(recipe *catalog.Recipe) (*RecipeModel, error) {
	records := make([]recipeInputRecord, 0, len(recipe.Inputs))
	for _, in := range recipe.Inputs {
		records = append(records, recipeInputRecord{ItemID: in.ItemID, Amount: in.Amount})
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize inputs: %w", err)
	}
	return &RecipeModel{
		ID:           recipe.ID,
		MachineID:    recipe.MachineID,
		Name:         recipe.Name,
		OutputItemID: recipe.OutputItemID,
		OutputAmount: recipe.OutputAmount,
		CraftingTime: recipe.CraftingTime,
		Inputs:       string(data),
	}, nil
}
