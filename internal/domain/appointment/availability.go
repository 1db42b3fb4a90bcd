package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type AvailabilityInput struct {
	BarberID  uint
	ServiceID uint
	Date      time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FreeSlots walks [open, close) in steps of durationMin and keeps every
// slot that overlaps none of the busy windows.
func FreeSlots(openAt, closeAt time.Time, durationMin int, busy []Window) []TimeSlot {
	slots := []TimeSlot{}
	if durationMin <= 0 {
		return slots
	}

	for cur := openAt; ; {
		slot := ComputeWindow(cur, durationMin)
		if slot.End.After(closeAt) {
			break
		}

		free := true
		for _, b := range busy {
			if slot.Overlaps(b) {
				free = false
				break
			}
		}

		if free {
			slots = append(slots, TimeSlot{
				Start: slot.Start.Format(timezone.ClockLayout),
				End:   slot.End.Format(timezone.ClockLayout),
			})
		}
		cur = slot.End
	}

	return slots
}
