package memory_test

import (
	"context"
	"testing"
	"time"

	"tracker/internal/adapters/out/memory"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPackage(t *testing.T, owner kernel.UUID, description string, createdAt time.Time) *parcel.Package {
	t.Helper()
	details, err := parcel.NewDetails(description, 1.25, "10x10x10", "1 Pickup St", "9 Delivery Ave")
	require.NoError(t, err)
	pkg, err := parcel.NewPackage(owner, details, createdAt)
	require.NoError(t, err)
	return pkg
}

func TestPackageRepository_AddAndGet(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := store.Packages()
	pkg := newPackage(t, kernel.NewUUID(), "Books", time.Now().UTC())

	require.NoError(t, repo.Add(ctx, pkg))

	stored, err := repo.Get(ctx, pkg.ID())
	require.NoError(t, err)
	assert.True(t, stored.IsEqual(pkg))
	assert.NotSame(t, pkg, stored)

	byCode, err := repo.GetByTrackingCode(ctx, pkg.TrackingCode())
	require.NoError(t, err)
	assert.True(t, byCode.IsEqual(pkg))
}

func TestPackageRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Packages()
	pkg := newPackage(t, kernel.NewUUID(), "Books", time.Now().UTC())
	require.NoError(t, repo.Add(ctx, pkg))

	_, err := pkg.UpdateStatus(kernel.NewUUID(), parcel.Delivered, "", time.Now().UTC())
	require.NoError(t, err)

	stored, err := repo.Get(ctx, pkg.ID())
	require.NoError(t, err)
	assert.Equal(t, parcel.Pending, stored.Status())
}

func TestPackageRepository_DuplicateTrackingCode(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Packages()
	pkg := newPackage(t, kernel.NewUUID(), "Books", time.Now().UTC())
	require.NoError(t, repo.Add(ctx, pkg))

	err := repo.Add(ctx, pkg)

	require.ErrorIs(t, err, errs.ErrPersistenceFailure)
}

func TestPackageRepository_DeletedVisibility(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Packages()
	pkg := newPackage(t, kernel.NewUUID(), "Books", time.Now().UTC())
	require.NoError(t, repo.Add(ctx, pkg))

	_, err := pkg.SoftDelete(kernel.NewUUID(), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, pkg))

	_, err = repo.Get(ctx, pkg.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, err = repo.GetByTrackingCode(ctx, pkg.TrackingCode())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	stored, err := repo.GetIncludingDeleted(ctx, pkg.ID())
	require.NoError(t, err)
	assert.True(t, stored.IsDeleted())
}

func TestPackageRepository_UpdateUnknown(t *testing.T) {
	repo := memory.NewStore().Packages()
	pkg := newPackage(t, kernel.NewUUID(), "Books", time.Now().UTC())

	err := repo.Update(context.Background(), pkg)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestPackageRepository_Filter(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Packages()
	owner := kernel.NewUUID()
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	first := newPackage(t, owner, "Garden tools", base)
	second := newPackage(t, owner, "Books", base.Add(time.Hour))
	foreign := newPackage(t, kernel.NewUUID(), "Books", base.Add(2*time.Hour))
	for _, p := range []*parcel.Package{first, second, foreign} {
		require.NoError(t, repo.Add(ctx, p))
	}

	t.Run("owner scope newest first", func(t *testing.T) {
		got, err := repo.Filter(ctx, services.Scope{Visibility: services.VisibilityOwner, ActorID: owner},
			ports.ListOptions{Ordering: ports.DefaultOrdering})

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.True(t, got[0].IsEqual(second))
		assert.True(t, got[1].IsEqual(first))
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		opts, err := ports.NewListOptions("BOOK", "created_at")
		require.NoError(t, err)

		got, err := repo.Filter(ctx, services.Scope{Visibility: services.VisibilityAll}, opts)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.True(t, got[0].IsEqual(second))
		assert.True(t, got[1].IsEqual(foreign))
	})

	t.Run("empty scope", func(t *testing.T) {
		got, err := repo.Filter(ctx, services.Scope{Visibility: services.VisibilityNone}, ports.ListOptions{})

		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestPackageRepository_CountByStatus(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Packages()
	pkg := newPackage(t, kernel.NewUUID(), "Books", time.Now().UTC())
	require.NoError(t, repo.Add(ctx, pkg))

	counts, err := repo.CountByStatus(ctx)

	require.NoError(t, err)
	assert.Equal(t, map[parcel.Status]int{parcel.Pending: 1, parcel.InTransit: 0, parcel.Delivered: 0}, counts)
}

func TestStatusRecordRepository_ListByPackage(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	pkg := newPackage(t, kernel.NewUUID(), "Books", time.Now().UTC())
	require.NoError(t, store.Packages().Add(ctx, pkg))

	at := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	older, err := parcel.NewStatusRecord(pkg.ID(), parcel.Pending, "older", nil, at)
	require.NoError(t, err)
	sameTime, err := parcel.NewStatusRecord(pkg.ID(), parcel.InTransit, "first at noon", nil, at.Add(time.Hour))
	require.NoError(t, err)
	sameTimeLater, err := parcel.NewStatusRecord(pkg.ID(), parcel.Delivered, "second at noon", nil, at.Add(time.Hour))
	require.NoError(t, err)

	records := store.StatusRecords()
	for _, r := range []*parcel.StatusRecord{older, sameTime, sameTimeLater} {
		require.NoError(t, records.Add(ctx, r))
	}

	got, err := records.ListByPackage(ctx, pkg.ID())

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "second at noon", got[0].Note())
	assert.Equal(t, "first at noon", got[1].Note())
	assert.Equal(t, "older", got[2].Note())
}

func TestStatusRecordRepository_UnknownPackage(t *testing.T) {
	record, err := parcel.NewStatusRecord(kernel.NewUUID(), parcel.Pending, "", nil, time.Now().UTC())
	require.NoError(t, err)

	err = memory.NewStore().StatusRecords().Add(context.Background(), record)

	require.Error(t, err)
	assert.False(t, errs.HasKind(err))
}

func TestUnitOfWork_CommitAppliesStagedWrites(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uow := memory.NewUnitOfWorkFactory(store).Create()
	pkg := newPackage(t, kernel.NewUUID(), "Books", time.Now().UTC())

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.PackageRepository().Add(ctx, pkg))
	record, err := parcel.NewStatusRecord(pkg.ID(), parcel.Pending, "created", nil, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, uow.StatusRecordRepository().Add(ctx, record))

	staged, err := uow.PackageRepository().Get(ctx, pkg.ID())
	require.NoError(t, err, "staged writes are visible inside the transaction")
	assert.True(t, staged.IsEqual(pkg))

	_, err = store.Packages().Get(ctx, pkg.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound, "staged writes are invisible outside the transaction")

	require.NoError(t, uow.Commit(ctx))

	_, err = store.Packages().Get(ctx, pkg.ID())
	require.NoError(t, err)
	history, err := store.StatusRecords().ListByPackage(ctx, pkg.ID())
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestUnitOfWork_RollbackDiscardsStagedWrites(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uow := memory.NewUnitOfWorkFactory(store).Create()
	pkg := newPackage(t, kernel.NewUUID(), "Books", time.Now().UTC())

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.PackageRepository().Add(ctx, pkg))
	require.NoError(t, uow.Rollback(ctx))

	_, err := store.Packages().GetIncludingDeleted(ctx, pkg.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	require.ErrorIs(t, uow.Rollback(ctx), memory.ErrNoTransaction)
	require.ErrorIs(t, uow.Commit(ctx), memory.ErrNoTransaction)
}

func TestUnitOfWork_CommitRejectsConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)
	pkg := newPackage(t, kernel.NewUUID(), "Books", time.Now().UTC())

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.PackageRepository().Add(ctx, pkg))

	require.NoError(t, store.Packages().Add(ctx, pkg))

	err := uow.Commit(ctx)

	require.ErrorIs(t, err, errs.ErrPersistenceFailure)
}
