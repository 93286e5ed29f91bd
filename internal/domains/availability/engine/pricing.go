package engine

import (
	"errors"
	"fmt"
	"time"

	scheduleModel "venuebook/internal/domains/schedule/model"
	"venuebook/shared/constant"
	"venuebook/shared/walltime"
)

var ErrNoPrice = errors.New("no price window covers slot")

// Quote is a priced candidate.
type Quote struct {
	Candidate
	Tier   string
	Price  int64
	Over18 bool
}

// Pricer prices candidates against the price rows of their open times.
type Pricer struct {
	rules  Rules
	prices map[string][]scheduleModel.Price
}

func NewPricer(rules Rules, prices []scheduleModel.Price) Pricer {
	byOpenTime := make(map[string][]scheduleModel.Price, len(prices))
	for _, price := range prices {
		byOpenTime[price.OpenTimeID] = append(byOpenTime[price.OpenTimeID], price)
	}

	return Pricer{rules: rules, prices: byOpenTime}
}

// PriceFor prices every part and sums them. Combined candidates take the tier of the earlier part.
func (p Pricer) PriceFor(candidate Candidate, day time.Time) (Quote, error) {
	quote := Quote{
		Candidate: candidate,
		Over18:    p.rules.Over18(day, candidate.Start),
	}

	for i, part := range candidate.Parts {
		row, err := p.match(part)
		if err != nil {
			return Quote{}, err
		}

		if i == 0 {
			quote.Tier = row.Type
		}

		quote.Price += Prorate(row.Price, part.Slot.Duration)
	}

	return quote, nil
}

// Prorate converts a per-hour rate to duration minutes, rounding down.
func Prorate(hourly int64, duration int) int64 {
	return hourly * int64(duration) / constant.MinutesPerHour
}

func (p Pricer) match(part Part) (scheduleModel.Price, error) {
	rows := p.prices[part.OpenTime.ID]
	start := part.Slot.StartTime

	for _, instant := range []walltime.WallTime{start.FloorTo(p.rules.PriceGridMinutes), start} {
		if row, ok := pick(rows, part.OpenTime, instant); ok {
			return row, nil
		}
	}

	return scheduleModel.Price{}, fmt.Errorf("%w: box slot %s at %s", ErrNoPrice, part.Slot.ID, start)
}

// pick returns the row whose window, clipped to the open time, holds instant. The window end is inclusive.
// Overlaps go to the highest sort order, then the latest window start, then the lowest id.
func pick(rows []scheduleModel.Price, openTime scheduleModel.OpenTime, instant walltime.WallTime) (scheduleModel.Price, bool) {
	var (
		best  scheduleModel.Price
		found bool
	)

	for _, row := range rows {
		from := max(row.StartTime, openTime.StartTime)
		until := min(row.EndTime, openTime.EndTime)

		if instant < from || instant > until {
			continue
		}

		if !found || rowBeats(row, best) {
			best, found = row, true
		}
	}

	return best, found
}

func rowBeats(candidate, current scheduleModel.Price) bool {
	if candidate.SortOrder != current.SortOrder {
		return candidate.SortOrder > current.SortOrder
	}

	if candidate.StartTime != current.StartTime {
		return candidate.StartTime > current.StartTime
	}

	return candidate.ID < current.ID
}
