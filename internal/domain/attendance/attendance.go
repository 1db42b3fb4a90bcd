package attendance

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

const StandardShift = 8 * time.Hour

var (
	HourlyRate = decimal.RequireFromString("12.50")
	TipRate    = decimal.RequireFromString("0.10")
)

// ClockOut closes an open record and stores the overtime beyond a
// standard shift, rounded to the minute.
func ClockOut(rec *models.AttendanceRecord, now time.Time) error {
	if rec == nil || rec.ClockOut != nil {
		return httperr.ErrConflict("not_clocked_in")
	}

	rec.ClockOut = &now
	rec.OvertimeMinutes = OvertimeMinutes(now.Sub(rec.ClockIn))
	return nil
}

// ClockInError maps a rejected insert of a second open record to
// already_clocked_in.
func ClockInError(err error) error {
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrConflict("already_clocked_in")
	}
	return err
}

func OvertimeMinutes(worked time.Duration) int {
	extra := worked - StandardShift
	if extra <= 0 {
		return 0
	}
	return int(math.Round(extra.Minutes()))
}

// Performance is a barber's month-to-date summary.
type Performance struct {
	DaysWorked      int             `json:"dias_trabajados"`
	TotalHours      decimal.Decimal `json:"horas_totales"`
	OvertimeHours   decimal.Decimal `json:"horas_extra"`
	ClientsServed   int             `json:"clientes_atendidos"`
	EstimatedTips   decimal.Decimal `json:"propinas_estimadas"`
	EstimatedSalary decimal.Decimal `json:"salario_estimado"`
	ClockedIn       bool            `json:"fichado"`
}

// Summarize folds closed attendance records and completed-appointment
// revenue into a Performance. Open records count toward ClockedIn only;
// days worked are counted on loc's calendar.
func Summarize(records []models.AttendanceRecord, loc *time.Location, clientsServed int, revenue decimal.Decimal) Performance {
	var (
		worked   time.Duration
		overtime int
		open     bool
		days     = map[string]struct{}{}
	)

	for _, r := range records {
		if r.ClockOut == nil {
			open = true
			continue
		}
		worked += r.ClockOut.Sub(r.ClockIn)
		overtime += r.OvertimeMinutes
		days[r.ClockIn.In(loc).Format(timezone.DateLayout)] = struct{}{}
	}

	hours := decimal.NewFromFloat(worked.Hours()).Round(2)

	return Performance{
		DaysWorked:      len(days),
		TotalHours:      hours,
		OvertimeHours:   decimal.NewFromInt(int64(overtime)).Div(decimal.NewFromInt(60)).Round(2),
		ClientsServed:   clientsServed,
		EstimatedTips:   revenue.Mul(TipRate).Round(2),
		EstimatedSalary: hours.Mul(HourlyRate).Round(2),
		ClockedIn:       open,
	}
}
