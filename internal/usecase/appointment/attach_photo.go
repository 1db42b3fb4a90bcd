package appointment

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// PhotoStore uploads an object and returns its public URL.
type PhotoStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// ImageEncoder turns an uploaded image into the stored representation.
type ImageEncoder interface {
	Encode(r io.Reader) ([]byte, error)
	ContentType() string
	Extension() string
}

type AttachPhoto struct {
	repo    domain.Repository
	store   PhotoStore
	encoder ImageEncoder
}

func NewAttachPhoto(
	repo domain.Repository,
	store PhotoStore,
	encoder ImageEncoder,
) *AttachPhoto {
	return &AttachPhoto{
		repo:    repo,
		store:   store,
		encoder: encoder,
	}
}

func (uc *AttachPhoto) Execute(
	ctx context.Context,
	actor Actor,
	appointmentID uuid.UUID,
	image io.Reader,
) (*models.AppointmentPhoto, error) {

	if uc.store == nil {
		return nil, httperr.ErrBusiness("photos_disabled")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, unavailable(err)
	}

	if err := actor.canManage(ap); err != nil {
		return nil, err
	}

	if err := domain.CanAttach(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	body, err := uc.encoder.Encode(image)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	key := fmt.Sprintf("appointments/%s/%s%s", ap.ID, uuid.NewString(), uc.encoder.Extension())
	url, err := uc.store.Put(ctx, key, body, uc.encoder.ContentType())
	if err != nil {
		return nil, httperr.ErrUnavailable("store_unavailable", err)
	}

	photo := &models.AppointmentPhoto{
		AppointmentID: ap.ID,
		URL:           url,
		ObjectKey:     key,
	}
	if err := uc.repo.AddPhoto(ctx, photo); err != nil {
		return nil, unavailable(err)
	}

	return photo, nil
}
