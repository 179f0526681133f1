package ports

import (
	"errors"
	"fmt"
	"strings"

	"tracker/internal/pkg/errs"
)

// OrderField is a package attribute a listing can be ordered by.
type OrderField string

const (
	OrderByCreatedAt OrderField = "created_at"
	OrderByUpdatedAt OrderField = "updated_at"
	OrderByStatus    OrderField = "status"
)

// Ordering is an OrderField with a direction.
type Ordering struct {
	Field      OrderField
	Descending bool
}

// DefaultOrdering lists the newest packages first.
var DefaultOrdering = Ordering{Field: OrderByCreatedAt, Descending: true}

// ParseOrdering reads the "field" or "-field" form; the minus sign selects
// descending order. An empty string yields DefaultOrdering.
func ParseOrdering(s string) (Ordering, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultOrdering, nil
	}

	o := Ordering{Field: OrderField(strings.TrimPrefix(s, "-")), Descending: strings.HasPrefix(s, "-")}
	if err := o.Validate(); err != nil {
		return Ordering{}, err
	}
	return o, nil
}

// Validate rejects fields that are not listed above.
func (o Ordering) Validate() error {
	switch o.Field {
	case OrderByCreatedAt, OrderByUpdatedAt, OrderByStatus:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"ordering",
			fmt.Errorf("unsupported field %q", o.Field),
		)
	}
}

func (o Ordering) String() string {
	if o.Descending {
		return "-" + string(o.Field)
	}
	return string(o.Field)
}

// ListOptions narrows a scoped listing. Search is a case-insensitive substring
// matched against the tracking code, the status and the description.
type ListOptions struct {
	Search   string
	Ordering Ordering
}

// ErrSearchTooLong is returned for search terms longer than MaxSearchLength.
var ErrSearchTooLong = errors.New("search term is too long")

// MaxSearchLength bounds the search term.
const MaxSearchLength = 100

// NewListOptions validates the search term and the ordering expression.
func NewListOptions(search, ordering string) (ListOptions, error) {
	search = strings.TrimSpace(search)
	if len(search) > MaxSearchLength {
		return ListOptions{}, errs.NewValueIsInvalidErrorWithCause("search", ErrSearchTooLong)
	}

	o, err := ParseOrdering(ordering)
	if err != nil {
		return ListOptions{}, err
	}

	return ListOptions{Search: search, Ordering: o}, nil
}
