package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"tracker/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	// TrackingCodePrefix starts every tracking code.
	TrackingCodePrefix = "PKG-"

	// TrackingCodeSuffixLength is the number of random characters after the prefix.
	TrackingCodeSuffixLength = 10

	trackingCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var trackingCodePattern = regexp.MustCompile(`^PKG-[A-Z0-9]{10}$`)

// ErrTrackingCodeIsNotConstructed is returned when validating a zero-value TrackingCode.
var ErrTrackingCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"TrackingCode must be created via NewTrackingCode or ParseTrackingCode",
)

// TrackingCode is the public identifier of a package, distinct from its
// internal UUID. It has the form "PKG-" followed by ten uppercase
// alphanumeric characters, e.g. "PKG-7K2Q9XAB0M".
//
// A tracking code is generated once when the package is created and never
// changes afterwards.
type TrackingCode struct {
	value string
}

// NewTrackingCode generates a fresh tracking code. The suffix is drawn from
// the 122 random bits of a version 4 UUID, which gives 36^10 possible codes;
// collisions are left to the unique constraint of the store.
func NewTrackingCode() TrackingCode {
	random := uuid.New()

	var b strings.Builder
	b.Grow(len(TrackingCodePrefix) + TrackingCodeSuffixLength)
	b.WriteString(TrackingCodePrefix)
	for i := range TrackingCodeSuffixLength {
		b.WriteByte(trackingCodeAlphabet[int(random[i])%len(trackingCodeAlphabet)])
	}

	return TrackingCode{value: b.String()}
}

// ParseTrackingCode validates s against the tracking code format.
// Surrounding whitespace is ignored; the comparison is case sensitive.
func ParseTrackingCode(s string) (TrackingCode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TrackingCode{}, errs.NewValueIsRequiredError("tracking_number")
	}
	if !trackingCodePattern.MatchString(s) {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause(
			"tracking_number",
			fmt.Errorf("%q does not match %s", s, trackingCodePattern.String()),
		)
	}
	return TrackingCode{value: s}, nil
}

// String returns the tracking code as printed on labels.
func (c TrackingCode) String() string {
	return c.value
}

// IsEqual compares two tracking codes.
func (c TrackingCode) IsEqual(other TrackingCode) bool {
	return c.value == other.value
}

// Validate returns ErrTrackingCodeIsNotConstructed for the zero value.
func (c TrackingCode) Validate() error {
	if c.value == "" {
		return ErrTrackingCodeIsNotConstructed
	}
	return nil
}
