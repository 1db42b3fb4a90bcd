package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, note string, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	if note != "" {
		ap.Note = note
	}
	return nil
}

// Rate records the client's score. An appointment is rated at most once.
func Rate(ap *models.Appointment, rating int, comment string) error {
	if err := CanAttach(Status(ap.Status)); err != nil {
		return err
	}
	if rating < 1 || rating > 5 {
		return httperr.ErrBusiness("invalid_rating")
	}
	if ap.Rating != nil {
		return httperr.ErrConflict("already_rated")
	}

	ap.Rating = &rating
	ap.RatingComment = comment
	return nil
}
