package memory

import (
	"context"
	"errors"
	"sync"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"
)

// ErrNoTransaction is returned by Commit and Rollback without a prior Begin.
var ErrNoTransaction = errors.New("no active transaction")

type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages writes and applies them to the store on Commit, under a
// single lock. Without Begin, repositories write straight to the store.
type UnitOfWork struct {
	store *Store
	tx    *transaction
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.tx == nil {
		uow.tx = newTransaction(uow.store)
	}
	return nil
}

// Commit applies the staged writes. Tracking codes are checked again against
// rows committed concurrently; on conflict nothing is applied.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}
	tx := uow.tx
	uow.tx = nil
	return tx.apply()
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}
	uow.tx = nil
	return nil
}

func (uow *UnitOfWork) PackageRepository() ports.PackageRepository {
	return &packageRepository{view: uow.view()}
}

func (uow *UnitOfWork) StatusRecordRepository() ports.StatusRecordRepository {
	return &statusRecordRepository{view: uow.view()}
}

func (uow *UnitOfWork) view() view {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.store
}

type stagedPackage struct {
	row   packageRow
	isNew bool
}

// transaction overlays staged rows on top of the store.
type transaction struct {
	mu       sync.Mutex
	store    *Store
	packages map[kernel.UUID]stagedPackage
	order    []kernel.UUID
	records  []recordRow
}

func newTransaction(store *Store) *transaction {
	return &transaction{
		store:    store,
		packages: make(map[kernel.UUID]stagedPackage),
	}
}

func (tx *transaction) lookup(id kernel.UUID) (packageRow, bool) {
	tx.mu.Lock()
	staged, ok := tx.packages[id]
	tx.mu.Unlock()
	if ok {
		return staged.row, true
	}
	return tx.store.lookup(id)
}

func (tx *transaction) lookupCode(code string) (kernel.UUID, bool) {
	tx.mu.Lock()
	for _, staged := range tx.packages {
		if staged.row.TrackingCode.String() == code {
			tx.mu.Unlock()
			return staged.row.ID, true
		}
	}
	tx.mu.Unlock()
	return tx.store.lookupCode(code)
}

func (tx *transaction) allPackages() []packageRow {
	committed := tx.store.allPackages()

	tx.mu.Lock()
	defer tx.mu.Unlock()
	rows := make([]packageRow, 0, len(committed)+len(tx.packages))
	for _, row := range committed {
		if _, staged := tx.packages[row.ID]; !staged {
			rows = append(rows, row)
		}
	}
	for _, id := range tx.order {
		rows = append(rows, tx.packages[id].row)
	}
	return rows
}

func (tx *transaction) recordsOf(packageID kernel.UUID) []recordRow {
	rows := tx.store.recordsOf(packageID)

	tx.mu.Lock()
	defer tx.mu.Unlock()
	for _, row := range tx.records {
		if row.PackageID.IsEqual(packageID) {
			rows = append(rows, row)
		}
	}
	return rows
}

func (tx *transaction) putPackage(row packageRow, isNew bool) error {
	if isNew {
		if _, taken := tx.lookupCode(row.TrackingCode.String()); taken {
			return duplicateCodeError(row.TrackingCode)
		}
	} else if _, exists := tx.lookup(row.ID); !exists {
		return errs.NewObjectNotFoundError("package", row.ID.String())
	}

	tx.mu.Lock()
	defer tx.mu.Unlock()
	staged, seen := tx.packages[row.ID]
	if !seen {
		tx.order = append(tx.order, row.ID)
	}
	tx.packages[row.ID] = stagedPackage{row: row, isNew: isNew || staged.isNew}
	return nil
}

func (tx *transaction) putRecord(row recordRow) error {
	if _, exists := tx.lookup(row.PackageID); !exists {
		return unknownPackageError(row)
	}

	tx.mu.Lock()
	defer tx.mu.Unlock()
	tx.records = append(tx.records, row)
	return nil
}

func (tx *transaction) apply() error {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range tx.order {
		staged := tx.packages[id]
		if !staged.isNew {
			continue
		}
		if _, exists := s.codes[staged.row.TrackingCode.String()]; exists {
			return duplicateCodeError(staged.row.TrackingCode)
		}
	}

	for _, id := range tx.order {
		staged := tx.packages[id]
		if staged.isNew {
			s.codes[staged.row.TrackingCode.String()] = staged.row.ID
		}
		s.packages[id] = staged.row
	}
	s.records = append(s.records, tx.records...)
	return nil
}
