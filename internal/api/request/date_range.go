package request

import (
	"fmt"
	"time"

	"github.com/scelleo/Sealed-Market-Tracker-Backend/internal/apperrors"
)

// ParseDateRange parses the from/to query parameters of the index variation
// endpoint. Both are required, must be YYYY-MM-DD, and from must not be
// after to.
func ParseDateRange(fromParam, toParam string) (time.Time, time.Time, error) {
	if fromParam == "" || toParam == "" {
		return time.Time{}, time.Time{}, apperrors.ErrInvalidDateRange
	}

	from, err := time.Parse("2006-01-02", fromParam)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date %q: %w", fromParam, err)
	}
	to, err := time.Parse("2006-01-02", toParam)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to date %q: %w", toParam, err)
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, apperrors.ErrInvalidDateRange
	}
	return from.UTC(), to.UTC(), nil
}

// ParseAsOf parses an optional as-of date parameter, defaulting to now when
// absent. Tests and reproducibility tooling pin computations to a fixed day
// with it.
func ParseAsOf(param string, now time.Time) (time.Time, error) {
	if param == "" {
		return now, nil
	}
	t, err := time.Parse("2006-01-02", param)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid asOf date %q: %w", param, err)
	}
	return t.UTC(), nil
}
