// Package packagerepo stores package aggregates in PostgreSQL through GORM.
package packagerepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/parcel"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type GormPackageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormPackageRepository(db *gorm.DB, tracker aggregateTracker) *GormPackageRepository {
	return &GormPackageRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormPackageRepository) Add(ctx context.Context, pkg *parcel.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}

	dto := fromDomain(pkg)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewPersistenceFailureError(
				"add package",
				fmt.Errorf("tracking number %s already exists: %w", dto.TrackingNumber, err),
			)
		}
		return err
	}

	r.tracker.TrackAggregate(pkg.ID(), pkg)
	return nil
}

// Update writes every column, zero values included, so clearing the courier
// or the deletion timestamp is persisted.
func (r *GormPackageRepository) Update(ctx context.Context, pkg *parcel.Package) error {
	if err := pkg.Validate(); err != nil {
		return err
	}

	dto := fromDomain(pkg)
	result := r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "tracking_number", "owner_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("package", pkg.ID().String())
	}

	r.tracker.TrackAggregate(pkg.ID(), pkg)
	return nil
}

func (r *GormPackageRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, id.String(), "id = ? AND is_deleted = ?", id.Bytes(), false)
}

func (r *GormPackageRepository) GetIncludingDeleted(ctx context.Context, id kernel.UUID) (*parcel.Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, id.String(), "id = ?", id.Bytes())
}

func (r *GormPackageRepository) GetByTrackingCode(
	ctx context.Context,
	code kernel.TrackingCode,
) (*parcel.Package, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, code.String(), "tracking_number = ? AND is_deleted = ?", code.String(), false)
}

func (r *GormPackageRepository) Filter(
	ctx context.Context,
	scope services.Scope,
	opts ports.ListOptions,
) ([]*parcel.Package, error) {
	if scope.IsEmpty() {
		return []*parcel.Package{}, nil
	}

	query := r.db.WithContext(ctx).Model(&PackageDTO{}).Where("is_deleted = ?", scope.Deleted)

	switch scope.Visibility {
	case services.VisibilityOwner:
		query = query.Where("owner_id = ?", scope.ActorID.Bytes())
	case services.VisibilityCourier:
		query = query.Where("courier_id = ?", scope.ActorID.Bytes())
	case services.VisibilityAll, services.VisibilityNone:
	}

	if opts.Search != "" {
		pattern := "%" + likeEscaper.Replace(opts.Search) + "%"
		query = query.Where(
			"(tracking_number ILIKE ? OR status ILIKE ? OR description ILIKE ?)",
			pattern, pattern, pattern,
		)
	}

	ordering := opts.Ordering
	if ordering.Validate() != nil {
		ordering = ports.DefaultOrdering
	}
	query = query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: string(ordering.Field)}, Desc: ordering.Descending}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})

	var dtos []PackageDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	packages := make([]*parcel.Package, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}

	return packages, nil
}

func (r *GormPackageRepository) CountByStatus(ctx context.Context) (map[parcel.Status]int, error) {
	var rows []struct {
		Status string
		Total  int
	}

	err := r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Select("status, count(*) AS total").
		Where("is_deleted = ?", false).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[parcel.Status]int, len(parcel.Statuses()))
	for _, status := range parcel.Statuses() {
		counts[status] = 0
	}
	for _, row := range rows {
		status, parseErr := parcel.ParseStatus(row.Status)
		if parseErr != nil {
			return nil, parseErr
		}
		counts[status] = row.Total
	}

	return counts, nil
}

func (r *GormPackageRepository) first(
	ctx context.Context,
	key string,
	query string,
	args ...any,
) (*parcel.Package, error) {
	var dto PackageDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", key)
		}
		return nil, err
	}

	return toDomain(dto)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &pgErr) && pgErr.Code == uniqueViolation)
}
