// Package walltime models times of day stored as HH:mm:ss columns, independent of any date or zone.
package walltime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"venuebook/shared/constant"
	"venuebook/shared/failure"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * 60 * 60
)

// WallTime is the number of seconds since midnight.
type WallTime int

func New(hour, minute, second int) WallTime {
	return WallTime(hour*secondsPerHour + minute*secondsPerMinute + second)
}

// Parse reads an HH:mm:ss value. field names the input in the returned error.
func Parse(field, value string) (WallTime, error) {
	t, err := time.Parse(constant.WallTimeFormat, value)
	if err != nil {
		return 0, failure.InvalidTimeFormat(field)
	}

	return New(t.Hour(), t.Minute(), t.Second()), nil
}

// MustParse is Parse for constants and fixtures.
func MustParse(value string) WallTime {
	w, err := Parse("time", value)
	if err != nil {
		panic(err)
	}

	return w
}

// Of extracts the wall-clock part of t in its own location.
func Of(t time.Time) WallTime {
	return New(t.Hour(), t.Minute(), t.Second())
}

func (w WallTime) Hour() int {
	return int(w) / secondsPerHour
}

func (w WallTime) Minute() int {
	return int(w) % secondsPerHour / secondsPerMinute
}

func (w WallTime) Second() int {
	return int(w) % secondsPerMinute
}

// Minutes since midnight, truncated.
func (w WallTime) Minutes() int {
	return int(w) / secondsPerMinute
}

func (w WallTime) AddMinutes(minutes int) WallTime {
	return w + WallTime(minutes*secondsPerMinute)
}

// FloorTo rounds down to a multiple of grid minutes, dropping seconds.
func (w WallTime) FloorTo(grid int) WallTime {
	if grid <= 0 {
		return w
	}

	step := grid * secondsPerMinute

	return WallTime(int(w) / step * step)
}

// CeilMinute rounds a value ending on :59 seconds up to the next minute; "15:59:59" means "until 16:00".
func (w WallTime) CeilMinute() WallTime {
	if w.Second() == secondsPerMinute-1 {
		return w + 1
	}

	return w
}

// On anchors the wall time on the calendar date of day.
func (w WallTime) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), w.Hour(), w.Minute(), w.Second(), 0, day.Location())
}

func (w WallTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", w.Hour(), w.Minute(), w.Second())
}

// Valid reports whether w lies within a single day.
func (w WallTime) Valid() bool {
	return w >= 0 && w <= secondsPerDay
}

func (w WallTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

func (w *WallTime) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return failure.InvalidTimeFormat("time")
	}

	parsed, err := Parse("time", raw)
	if err != nil {
		return err
	}

	*w = parsed

	return nil
}

// Value implements driver.Valuer.
func (w WallTime) Value() (driver.Value, error) {
	return w.String(), nil
}

// Scan implements sql.Scanner for TIME columns, which lib/pq returns as text or time.Time.
func (w *WallTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*w = Of(v)
	case []byte:
		return w.scanString(string(v))
	case string:
		return w.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into WallTime", src)
	}

	return nil
}

func (w *WallTime) scanString(value string) error {
	// TIME columns with fractional seconds come back as "HH:mm:ss.ffffff".
	if len(value) > len(constant.WallTimeFormat) {
		value = value[:len(constant.WallTimeFormat)]
	}

	parsed, err := Parse("time", value)
	if err != nil {
		return err
	}

	*w = parsed

	return nil
}

// ValidateRange fails with InvalidRange unless start is before end.
func ValidateRange(start, end WallTime) error {
	if start >= end {
		return failure.InvalidRange
	}

	return nil
}
