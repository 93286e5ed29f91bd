package model

import "venuebook/shared/walltime"

const (
	PriceTableName  = "prices"
	PriceEntityName = "price"
)

const (
	TierOffPeak   = "off-peak"
	TierPeak      = "peak"
	TierSuperPeak = "super-peak"
)

// Price is the per-60-minute rate of a sub-window of an open time. The end is inclusive.
type Price struct {
	ID         string            `db:"id"`
	OpenTimeID string            `db:"open_time_id"`
	StartTime  walltime.WallTime `db:"start_time"`
	EndTime    walltime.WallTime `db:"end_time"`
	Type       string            `db:"type"`
	Price      int64             `db:"price"`
	SortOrder  int               `db:"sort_order"`
}

func (p Price) Validate() error {
	return walltime.ValidateRange(p.StartTime, p.EndTime)
}

func ValidTier(tier string) bool {
	switch tier {
	case TierOffPeak, TierPeak, TierSuperPeak:
		return true
	default:
		return false
	}
}
