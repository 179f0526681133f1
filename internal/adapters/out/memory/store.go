// Package memory is an in-memory implementation of the persistence ports.
// It is intended for tests and local development wiring.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
)

// Store keeps packages and status records behind one lock. Rows are copied
// in and out, so callers never share state with the store.
type Store struct {
	mu sync.RWMutex

	packages map[kernel.UUID]packageRow
	codes    map[string]kernel.UUID
	records  []recordRow
}

type packageRow struct {
	ID           kernel.UUID
	TrackingCode kernel.TrackingCode
	OwnerID      kernel.UUID
	CourierID    *kernel.UUID
	Details      parcel.Details
	Status       parcel.Status
	IsDeleted    bool
	DeletedAt    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type recordRow struct {
	ID        kernel.UUID
	PackageID kernel.UUID
	Status    parcel.Status
	Note      string
	ActorID   *kernel.UUID
	CreatedAt time.Time
}

func NewStore() *Store {
	return &Store{
		packages: make(map[kernel.UUID]packageRow),
		codes:    make(map[string]kernel.UUID),
		records:  make([]recordRow, 0),
	}
}

// Packages returns a repository writing straight to the store.
func (s *Store) Packages() ports.PackageRepository {
	return &packageRepository{view: s}
}

// StatusRecords returns a repository writing straight to the store.
func (s *Store) StatusRecords() ports.StatusRecordRepository {
	return &statusRecordRepository{view: s}
}

// view is the read/write surface shared by the store and a pending transaction.
type view interface {
	lookup(id kernel.UUID) (packageRow, bool)
	lookupCode(code string) (kernel.UUID, bool)
	allPackages() []packageRow
	recordsOf(packageID kernel.UUID) []recordRow
	putPackage(row packageRow, isNew bool) error
	putRecord(row recordRow) error
}

func (s *Store) lookup(id kernel.UUID) (packageRow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.packages[id]
	return row, ok
}

func (s *Store) lookupCode(code string) (kernel.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.codes[code]
	return id, ok
}

func (s *Store) allPackages() []packageRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]packageRow, 0, len(s.packages))
	for _, row := range s.packages {
		rows = append(rows, row)
	}
	return rows
}

func (s *Store) recordsOf(packageID kernel.UUID) []recordRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]recordRow, 0)
	for _, row := range s.records {
		if row.PackageID.IsEqual(packageID) {
			rows = append(rows, row)
		}
	}
	return rows
}

func (s *Store) putPackage(row packageRow, isNew bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putPackageLocked(row, isNew)
}

func (s *Store) putRecord(row recordRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putRecordLocked(row)
}

func (s *Store) putPackageLocked(row packageRow, isNew bool) error {
	if isNew {
		if _, exists := s.codes[row.TrackingCode.String()]; exists {
			return duplicateCodeError(row.TrackingCode)
		}
		s.codes[row.TrackingCode.String()] = row.ID
	} else if _, exists := s.packages[row.ID]; !exists {
		return errs.NewObjectNotFoundError("package", row.ID.String())
	}

	s.packages[row.ID] = row
	return nil
}

func (s *Store) putRecordLocked(row recordRow) error {
	if _, exists := s.packages[row.PackageID]; !exists {
		return unknownPackageError(row)
	}
	s.records = append(s.records, row)
	return nil
}

func duplicateCodeError(code kernel.TrackingCode) error {
	return errs.NewPersistenceFailureError(
		"add package",
		fmt.Errorf("tracking number %s already exists", code),
	)
}

// unknownPackageError mirrors a foreign key violation: it carries no error kind.
func unknownPackageError(row recordRow) error {
	return fmt.Errorf("status record %s references unknown package %s", row.ID, row.PackageID)
}

type packageRepository struct {
	view view
}

func (r *packageRepository) Add(_ context.Context, pkg *parcel.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}
	return r.view.putPackage(fromPackage(pkg), true)
}

func (r *packageRepository) Update(_ context.Context, pkg *parcel.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}
	return r.view.putPackage(fromPackage(pkg), false)
}

func (r *packageRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Package, error) {
	pkg, err := r.GetIncludingDeleted(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg.IsDeleted() {
		return nil, errs.NewObjectNotFoundError("package", id.String())
	}
	return pkg, nil
}

func (r *packageRepository) GetIncludingDeleted(_ context.Context, id kernel.UUID) (*parcel.Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	row, ok := r.view.lookup(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("package", id.String())
	}
	return row.toPackage()
}

func (r *packageRepository) GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*parcel.Package, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}
	id, ok := r.view.lookupCode(code.String())
	if !ok {
		return nil, errs.NewObjectNotFoundError("package", code.String())
	}
	pkg, err := r.Get(ctx, id)
	if err != nil {
		return nil, errs.NewObjectNotFoundError("package", code.String())
	}
	return pkg, nil
}

func (r *packageRepository) Filter(
	_ context.Context,
	scope services.Scope,
	opts ports.ListOptions,
) ([]*parcel.Package, error) {
	packages := make([]*parcel.Package, 0)
	if scope.IsEmpty() {
		return packages, nil
	}

	search := strings.ToLower(opts.Search)
	for _, row := range r.view.allPackages() {
		pkg, err := row.toPackage()
		if err != nil {
			return nil, err
		}
		if !scope.Matches(pkg) || !matchesSearch(pkg, search) {
			continue
		}
		packages = append(packages, pkg)
	}

	ordering := opts.Ordering
	if ordering.Validate() != nil {
		ordering = ports.DefaultOrdering
	}
	sort.SliceStable(packages, func(i, j int) bool {
		return less(packages[i], packages[j], ordering)
	})

	return packages, nil
}

func (r *packageRepository) CountByStatus(_ context.Context) (map[parcel.Status]int, error) {
	counts := make(map[parcel.Status]int, len(parcel.Statuses()))
	for _, status := range parcel.Statuses() {
		counts[status] = 0
	}
	for _, row := range r.view.allPackages() {
		if !row.IsDeleted {
			counts[row.Status]++
		}
	}
	return counts, nil
}

type statusRecordRepository struct {
	view view
}

func (r *statusRecordRepository) Add(_ context.Context, record *parcel.StatusRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}
	return r.view.putRecord(recordRow{
		ID:        record.ID(),
		PackageID: record.PackageID(),
		Status:    record.Status(),
		Note:      record.Note(),
		ActorID:   record.ActorID(),
		CreatedAt: record.CreatedAt(),
	})
}

// ListByPackage returns records newest first; records sharing a timestamp
// keep the reverse of their insertion order.
func (r *statusRecordRepository) ListByPackage(
	_ context.Context,
	packageID kernel.UUID,
) ([]*parcel.StatusRecord, error) {
	rows := r.view.recordsOf(packageID)

	records := make([]*parcel.StatusRecord, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		record, err := parcel.RestoreStatusRecord(row.ID, row.PackageID, row.Status, row.Note, row.ActorID, row.CreatedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt().After(records[j].CreatedAt())
	})
	return records, nil
}

func fromPackage(pkg *parcel.Package) packageRow {
	return packageRow{
		ID:           pkg.ID(),
		TrackingCode: pkg.TrackingCode(),
		OwnerID:      pkg.Owner(),
		CourierID:    pkg.Courier(),
		Details:      pkg.Details(),
		Status:       pkg.Status(),
		IsDeleted:    pkg.IsDeleted(),
		DeletedAt:    pkg.DeletedAt(),
		CreatedAt:    pkg.CreatedAt(),
		UpdatedAt:    pkg.UpdatedAt(),
	}
}

func (row packageRow) toPackage() (*parcel.Package, error) {
	return parcel.RestorePackage(
		row.ID,
		row.TrackingCode,
		row.OwnerID,
		row.CourierID,
		row.Details,
		row.Status,
		row.IsDeleted,
		row.DeletedAt,
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func matchesSearch(pkg *parcel.Package, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(pkg.TrackingCode().String()), search) ||
		strings.Contains(pkg.Status().String(), search) ||
		strings.Contains(strings.ToLower(pkg.Details().Description()), search)
}

func less(a, b *parcel.Package, ordering ports.Ordering) bool {
	var cmp int
	switch ordering.Field {
	case ports.OrderByUpdatedAt:
		cmp = a.UpdatedAt().Compare(b.UpdatedAt())
	case ports.OrderByStatus:
		cmp = strings.Compare(a.Status().String(), b.Status().String())
	default:
		cmp = a.CreatedAt().Compare(b.CreatedAt())
	}

	if cmp == 0 {
		return a.ID().String() < b.ID().String()
	}
	if ordering.Descending {
		return cmp > 0
	}
	return cmp < 0
}
