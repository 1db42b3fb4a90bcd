package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/dto"
)

type ListHistory struct {
	repo domain.Repository
}

func NewListHistory(repo domain.Repository) *ListHistory {
	return &ListHistory{repo: repo}
}

// Execute returns the client's completed appointments, newest first.
func (uc *ListHistory) Execute(
	ctx context.Context,
	clientID uint,
) ([]dto.HistoryItemDTO, error) {

	appointments, err := uc.repo.ListHistory(ctx, clientID)
	if err != nil {
		return nil, unavailable(err)
	}

	out := make([]dto.HistoryItemDTO, 0, len(appointments))
	for _, ap := range appointments {
		photos := make([]string, 0, len(ap.Photos))
		for _, p := range ap.Photos {
			photos = append(photos, p.URL)
		}

		out = append(out, dto.HistoryItemDTO{
			ID:          ap.ID,
			Date:        ap.StartTime,
			ServiceName: ap.Service.Name,
			BarberName:  ap.Barber.Name,
			Price:       ap.Price,
			Rating:      ap.Rating,
			Comment:     ap.RatingComment,
			Note:        ap.Note,
			Photos:      photos,
		})
	}

	return out, nil
}
