package walltime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"venuebook/shared/constant"
	"venuebook/shared/failure"
)

// DateSet is a list of calendar days stored as a jsonb array of "YYYY-MM-DD" strings.
type DateSet []string

// ParseDateSet validates every entry and returns them sorted without duplicates.
func ParseDateSet(values ...string) (DateSet, error) {
	set := make(DateSet, 0, len(values))

	for _, value := range values {
		if _, err := time.Parse(constant.DayFormat, value); err != nil {
			return nil, failure.InvalidDate
		}

		set = append(set, value)
	}

	slices.Sort(set)

	return slices.Compact(set), nil
}

// Contains compares on the calendar day of t in its own location.
func (d DateSet) Contains(t time.Time) bool {
	return slices.Contains(d, t.Format(constant.DayFormat))
}

func (d DateSet) Empty() bool {
	return len(d) == 0
}

// Value implements driver.Valuer.
func (d DateSet) Value() (driver.Value, error) {
	if d == nil {
		return []byte("[]"), nil
	}

	value, err := json.Marshal([]string(d))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal date set: %w", err)
	}

	return value, nil
}

// Scan implements sql.Scanner.
func (d *DateSet) Scan(src any) error {
	var raw []byte

	switch v := src.(type) {
	case nil:
		*d = nil

		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into DateSet", src)
	}

	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return fmt.Errorf("failed to unmarshal date set: %w", err)
	}

	*d = values

	return nil
}
