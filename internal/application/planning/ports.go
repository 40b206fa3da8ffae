package planning

import (
	"context"

	"github.com/andrescamacho/zoneplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/zoneplanner-go/internal/domain/planning"
)

// CatalogRepository loads and stores the reference data a solve runs against.
type CatalogRepository interface {
	LoadCatalog(ctx context.Context) (*catalog.Catalog, error)
	SaveCatalog(ctx context.Context, cat *catalog.Catalog) error
}

// ZoneRepository stores the user's zone definitions.
type ZoneRepository interface {
	ListZones(ctx context.Context) ([]*planning.Zone, error)
	GetZone(ctx context.Context, id string) (*planning.Zone, error)
	SaveZone(ctx context.Context, zone *planning.Zone) error
	DeleteZone(ctx context.Context, id string) error
}

// LayoutRepository stores saved production plans by name.
type LayoutRepository interface {
	SaveLayout(ctx context.Context, layout *planning.Layout) error
	GetLayout(ctx context.Context, name string) (*planning.Layout, error)
	ListLayouts(ctx context.Context) ([]*planning.Layout, error)
	DeleteLayout(ctx context.Context, name string) error
}
