package service

import (
	"time"

	"hireflow-api/modules/scheduling/entity"
)

// SlotGenerator expands recruiter-supplied time ranges into discrete,
// fixed-duration candidate slots.
type SlotGenerator struct{}

func NewSlotGenerator() *SlotGenerator {
	return &SlotGenerator{}
}

// Generate walks each range from its start, emitting back-to-back slots of
// exactly durationMinutes and discarding any trailing remainder shorter
// than the duration. Ranges where end <= start yield no slots. Ranges are
// processed in input order and their slots concatenated; overlapping
// ranges are not merged, so they can produce duplicate slots.
func (g *SlotGenerator) Generate(ranges []entity.TimeRange, durationMinutes int) []entity.TimeRange {
	if durationMinutes <= 0 {
		return nil
	}

	duration := time.Duration(durationMinutes) * time.Minute

	var slots []entity.TimeRange
	for _, r := range ranges {
		for cursor := r.Start; !cursor.Add(duration).After(r.End); cursor = cursor.Add(duration) {
			slots = append(slots, entity.TimeRange{
				Start: cursor,
				End:   cursor.Add(duration),
			})
		}
	}

	return slots
}
