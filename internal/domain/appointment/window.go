package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// Window is a half-open [Start, End) interval on a barber's calendar.
type Window struct {
	Start time.Time
	End   time.Time
}

// ComputeWindow derives the window from the service duration using
// calendar arithmetic in start's zone, so 23:30 + 90 lands on 01:00 of the
// next local day.
func ComputeWindow(start time.Time, durationMin int) Window {
	return Window{
		Start: start,
		End:   timezone.AddMinutes(start, durationMin),
	}
}

// Overlaps uses strict inequalities: windows that only touch do not
// overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && w.End.After(o.Start)
}
