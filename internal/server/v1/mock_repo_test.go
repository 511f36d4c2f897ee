package v1

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/nirmaan-tech/procure-api/internal/store"
	"github.com/nirmaan-tech/procure-api/internal/store/model"
)

// mockRepo satisfies store.Repository with per-entity testify mocks so the
// handler tests can count how often the authoritative store is consulted.
type mockRepo struct {
	vendors  *mockVendorRepo
	dmrs     *mockDMRRepo
	imprests *mockImprestRepo
	orders   *mockOrderRepo
	geo      *mockGeoRepo
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		vendors:  &mockVendorRepo{},
		dmrs:     &mockDMRRepo{},
		imprests: &mockImprestRepo{},
		orders:   &mockOrderRepo{},
		geo:      &mockGeoRepo{},
	}
}

func (m *mockRepo) Vendors() store.VendorRepository { return m.vendors }
func (m *mockRepo) DMREntries() store.DMRRepository { return m.dmrs }
func (m *mockRepo) ImprestDMRs() store.ImprestRepository { return m.imprests }
func (m *mockRepo) Orders() store.OrderRepository { return m.orders }
func (m *mockRepo) Geo() store.GeoRepository { return m.geo }

func (m *mockRepo) WithTx(ctx context.Context, fn func(repo store.Repository) error) error {
	return fn(m)
}

func (m *mockRepo) Close() error { return nil }

type mockVendorRepo struct{ mock.Mock }

func (m *mockVendorRepo) List(ctx context.Context, p store.ListParams) ([]model.Vendor, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Vendor), args.Error(1)
}

func (m *mockVendorRepo) GetByID(ctx context.Context, id string) (*model.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vendor), args.Error(1)
}

func (m *mockVendorRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockVendorRepo) Create(ctx context.Context, v *model.Vendor) error {
	return m.Called(ctx, v).Error(0)
}

func (m *mockVendorRepo) Update(ctx context.Context, v *model.Vendor) error {
	return m.Called(ctx, v).Error(0)
}

func (m *mockVendorRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockDMRRepo struct{ mock.Mock }

func (m *mockDMRRepo) List(ctx context.Context, p store.ListParams) ([]model.DMREntry, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DMREntry), args.Error(1)
}

func (m *mockDMRRepo) GetByID(ctx context.Context, id string) (*model.DMREntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DMREntry), args.Error(1)
}

func (m *mockDMRRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockDMRRepo) Create(ctx context.Context, e *model.DMREntry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockDMRRepo) Update(ctx context.Context, e *model.DMREntry) error {
	return m.Called(ctx, e).Error(0)
}

type mockImprestRepo struct{ mock.Mock }

func (m *mockImprestRepo) List(ctx context.Context, p store.ListParams) ([]model.ImprestDMR, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ImprestDMR), args.Error(1)
}

func (m *mockImprestRepo) GetByID(ctx context.Context, id string) (*model.ImprestDMR, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImprestDMR), args.Error(1)
}

func (m *mockImprestRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockImprestRepo) Create(ctx context.Context, e *model.ImprestDMR) error {
	return m.Called(ctx, e).Error(0)
}

type mockOrderRepo struct{ mock.Mock }

func (m *mockOrderRepo) List(ctx context.Context, p store.ListParams) ([]model.PurchaseOrder, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PurchaseOrder), args.Error(1)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id string) (*model.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PurchaseOrder), args.Error(1)
}

func (m *mockOrderRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockOrderRepo) Create(ctx context.Context, o *model.PurchaseOrder) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type mockGeoRepo struct{ mock.Mock }

func (m *mockGeoRepo) States(ctx context.Context) ([]model.State, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.State), args.Error(1)
}

func (m *mockGeoRepo) Cities(ctx context.Context, stateCode string) ([]model.City, error) {
	args := m.Called(ctx, stateCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.City), args.Error(1)
}

func (m *mockGeoRepo) SeedStates(ctx context.Context, states []model.State) error {
	return m.Called(ctx, states).Error(0)
}

func (m *mockGeoRepo) SeedCities(ctx context.Context, stateCode string, names []string) error {
	return m.Called(ctx, stateCode, names).Error(0)
}
