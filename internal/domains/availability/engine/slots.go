package engine

import (
	"cmp"
	"slices"
	"strings"
	"time"

	boxModel "venuebook/internal/domains/box/model"
	scheduleModel "venuebook/internal/domains/schedule/model"
	"venuebook/shared/walltime"
)

// Part is one box slot of a candidate together with the open time it fits in.
type Part struct {
	Slot     boxModel.Slot
	Box      boxModel.Box
	OpenTime scheduleModel.OpenTime
}

// Candidate is a bookable slot before pricing. Combined candidates hold two linked parts.
type Candidate struct {
	Start    walltime.WallTime
	Duration int
	Parts    []Part
}

func (c Candidate) End() walltime.WallTime {
	return c.Start.AddMinutes(c.Duration)
}

func (c Candidate) Combined() bool {
	return len(c.Parts) > 1
}

// BoxID is the box the candidate is keyed by: the first part's box.
func (c Candidate) BoxID() string {
	return c.Parts[0].Box.ID
}

func (c Candidate) SlotID() string {
	return c.Parts[0].Slot.ID
}

func (c Candidate) BoxIDs() []string {
	ids := make([]string, len(c.Parts))
	for i, part := range c.Parts {
		ids[i] = part.Box.ID
	}

	return ids
}

// SlotInput is everything the generator reads for one schedule and day.
type SlotInput struct {
	ScheduleID string
	Day        time.Time
	Duration   int
	Boxes      []boxModel.Box
	Slots      []boxModel.Slot
	Links      []boxModel.Link
	OpenTimes  []scheduleModel.OpenTime
}

// GenerateSlots enumerates the candidates of the schedule lasting exactly Duration minutes on Day,
// ordered by start then box id.
func GenerateSlots(in SlotInput) []Candidate {
	openTimes := ApplicableOpenTimes(in.OpenTimes, in.Day)
	if len(openTimes) == 0 || in.Duration <= 0 {
		return []Candidate{}
	}

	boxes := make(map[string]boxModel.Box, len(in.Boxes))
	for _, box := range in.Boxes {
		boxes[box.ID] = box
	}

	parts := make(map[string]Part, len(in.Slots))

	for _, slot := range in.Slots {
		if slot.ScheduleID != in.ScheduleID {
			continue
		}

		box, ok := boxes[slot.BoxID]
		if !ok {
			continue
		}

		openTime, ok := containing(openTimes, slot.StartTime, slot.End())
		if !ok {
			continue
		}

		parts[slot.ID] = Part{Slot: slot, Box: box, OpenTime: openTime}
	}

	candidates := []Candidate{}

	for _, part := range parts {
		if part.Slot.Duration != in.Duration {
			continue
		}

		candidates = append(candidates, Candidate{
			Start:    part.Slot.StartTime,
			Duration: part.Slot.Duration,
			Parts:    []Part{part},
		})
	}

	seen := map[string]bool{}

	for _, link := range in.Links {
		first, okFirst := parts[link.SlotID]
		second, okSecond := parts[link.LinkedSlotID]

		if !okFirst || !okSecond || first.Slot.ID == second.Slot.ID {
			continue
		}

		pair := []Part{first, second}
		slices.SortFunc(pair, comparePart)

		key := pair[0].Slot.ID + "|" + pair[1].Slot.ID
		if seen[key] {
			continue
		}

		seen[key] = true

		start := min(pair[0].Slot.StartTime, pair[1].Slot.StartTime)
		end := max(pair[0].Slot.End(), pair[1].Slot.End())

		if (end - start) != walltime.WallTime(0).AddMinutes(in.Duration) {
			continue
		}

		candidates = append(candidates, Candidate{
			Start:    start,
			Duration: in.Duration,
			Parts:    pair,
		})
	}

	slices.SortFunc(candidates, compareCandidate)

	return candidates
}

func comparePart(a, b Part) int {
	return cmp.Or(
		cmp.Compare(a.Slot.StartTime, b.Slot.StartTime),
		strings.Compare(a.Box.ID, b.Box.ID),
		strings.Compare(a.Slot.ID, b.Slot.ID),
	)
}

func compareCandidate(a, b Candidate) int {
	return cmp.Or(
		cmp.Compare(a.Start, b.Start),
		strings.Compare(a.BoxID(), b.BoxID()),
		cmp.Compare(len(a.Parts), len(b.Parts)),
		slices.CompareFunc(a.Parts, b.Parts, func(x, y Part) int {
			return strings.Compare(x.Slot.ID, y.Slot.ID)
		}),
	)
}
