package queries_test

import (
	"context"
	"testing"
	"time"

	"tracker/internal/core/domain/model/actor"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPackageRepository struct{ mock.Mock }

func (m *MockPackageRepository) Add(ctx context.Context, p *parcel.Package) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPackageRepository) Update(ctx context.Context, p *parcel.Package) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPackageRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Package), args.Error(1)
}

func (m *MockPackageRepository) GetIncludingDeleted(ctx context.Context, id kernel.UUID) (*parcel.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Package), args.Error(1)
}

func (m *MockPackageRepository) GetByTrackingCode(
	ctx context.Context,
	code kernel.TrackingCode,
) (*parcel.Package, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Package), args.Error(1)
}

func (m *MockPackageRepository) Filter(
	ctx context.Context,
	scope services.Scope,
	opts ports.ListOptions,
) ([]*parcel.Package, error) {
	args := m.Called(ctx, scope, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Package), args.Error(1)
}

func (m *MockPackageRepository) CountByStatus(ctx context.Context) (map[parcel.Status]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[parcel.Status]int), args.Error(1)
}

type MockStatusRecordRepository struct{ mock.Mock }

func (m *MockStatusRecordRepository) Add(ctx context.Context, r *parcel.StatusRecord) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockStatusRecordRepository) ListByPackage(
	ctx context.Context,
	packageID kernel.UUID,
) ([]*parcel.StatusRecord, error) {
	args := m.Called(ctx, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.StatusRecord), args.Error(1)
}

type MockTrackingCache struct{ mock.Mock }

func (m *MockTrackingCache) Get(ctx context.Context, code kernel.TrackingCode) (ports.TrackingSnapshot, bool) {
	args := m.Called(ctx, code)
	return args.Get(0).(ports.TrackingSnapshot), args.Bool(1)
}

func (m *MockTrackingCache) Set(ctx context.Context, snapshot ports.TrackingSnapshot) {
	m.Called(ctx, snapshot)
}

func (m *MockTrackingCache) Invalidate(ctx context.Context, code kernel.TrackingCode) {
	m.Called(ctx, code)
}

func newActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.New(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func newStoredPackage(t *testing.T, owner actor.Actor, courier *actor.Actor) *parcel.Package {
	t.Helper()
	details, err := parcel.NewDetails("Books", 2.5, "30x20x10", "1 Pickup St", "9 Delivery Ave")
	require.NoError(t, err)

	var courierID *kernel.UUID
	if courier != nil {
		id := courier.ID()
		courierID = &id
	}

	created := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	p, err := parcel.RestorePackage(
		kernel.NewUUID(), kernel.NewTrackingCode(), owner.ID(), courierID, details,
		parcel.InTransit, false, nil, created, created.Add(2*time.Hour),
	)
	require.NoError(t, err)
	return p
}

func newHistory(t *testing.T, pkg *parcel.Package) []*parcel.StatusRecord {
	t.Helper()
	at := pkg.UpdatedAt()
	newer, err := parcel.NewStatusRecord(pkg.ID(), parcel.InTransit, "left warehouse", nil, at)
	require.NoError(t, err)
	older, err := parcel.NewStatusRecord(pkg.ID(), parcel.Pending, "assigned to courier", nil, at.Add(-time.Hour))
	require.NoError(t, err)
	return []*parcel.StatusRecord{newer, older}
}
