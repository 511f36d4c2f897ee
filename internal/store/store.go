package store

import (
	"context"

	"github.com/nirmaan-tech/procure-api/internal/store/model"
)

// ListParams is the shared pagination/filter shape accepted by list queries.
// The zero value means first page with the default limit and no filters.
type ListParams struct {
	Page    int
	Limit   int
	Search  string
	Status  string
	Project string
}

// Repository is the main contract for the authoritative data layer. The
// cache layer sits in front of it; repositories themselves know nothing
// about caching.
type Repository interface {
	Vendors() VendorRepository
	DMREntries() DMRRepository
	ImprestDMRs() ImprestRepository
	Orders() OrderRepository
	Geo() GeoRepository

	// transaction support
	WithTx(ctx context.Context, fn func(repo Repository) error) error

	Close() error
}

type VendorRepository interface {
	List(ctx context.Context, p ListParams) ([]model.Vendor, error)
	GetByID(ctx context.Context, id string) (*model.Vendor, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, v *model.Vendor) error
	Update(ctx context.Context, v *model.Vendor) error
	Delete(ctx context.Context, id string) error
}

type DMRRepository interface {
	List(ctx context.Context, p ListParams) ([]model.DMREntry, error)
	GetByID(ctx context.Context, id string) (*model.DMREntry, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, e *model.DMREntry) error
	Update(ctx context.Context, e *model.DMREntry) error
}

type ImprestRepository interface {
	List(ctx context.Context, p ListParams) ([]model.ImprestDMR, error)
	GetByID(ctx context.Context, id string) (*model.ImprestDMR, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, e *model.ImprestDMR) error
}

type OrderRepository interface {
	List(ctx context.Context, p ListParams) ([]model.PurchaseOrder, error)
	GetByID(ctx context.Context, id string) (*model.PurchaseOrder, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, o *model.PurchaseOrder) error
	// UpdateStatus moves an order through its lifecycle; stamping
	// issued_at is the repository's job when status becomes 'issued'.
	UpdateStatus(ctx context.Context, id, status string) error
}

type GeoRepository interface {
	States(ctx context.Context) ([]model.State, error)
	Cities(ctx context.Context, stateCode string) ([]model.City, error)

	// seeding helpers, idempotent
	SeedStates(ctx context.Context, states []model.State) error
	SeedCities(ctx context.Context, stateCode string, names []string) error
}
