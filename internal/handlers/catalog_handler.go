package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const (
	defaultAvatarURL = "https://ui-avatars.com/api/?background=random&name="
	latestReviews    = 5
)

// CatalogReader is what the client-facing catalog endpoints read from.
type CatalogReader interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	ListTrends(ctx context.Context) ([]models.Trend, error)
}

type CatalogHandler struct {
	db      *gorm.DB
	catalog CatalogReader
}

func NewCatalogHandler(db *gorm.DB, catalog CatalogReader) *CatalogHandler {
	return &CatalogHandler{db: db, catalog: catalog}
}

type BarberDTO struct {
	ID        uint    `json:"id"`
	Name      string  `json:"nombre_completo"`
	PhotoURL  string  `json:"foto_perfil_url"`
	Specialty string  `json:"especialidad"`
	Rating    float64 `json:"rating_promedio"`
}

type ReviewDTO struct {
	ID        uint      `json:"id"`
	Text      string    `json:"texto"`
	Name      string    `json:"nombre"`
	PhotoURL  string    `json:"foto"`
	CreatedAt time.Time `json:"fecha"`
}

type CreateReviewRequest struct {
	Text string `json:"texto" binding:"required,max=1000"`
}

func (h *CatalogHandler) Trends(c *gin.Context) {
	trends, err := h.catalog.ListTrends(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, trends)
}

func (h *CatalogHandler) Services(c *gin.Context) {
	services, err := h.catalog.ListServices(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *CatalogHandler) Barbers(c *gin.Context) {
	var barbers []models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("BarberDetails").
		Where("role = ?", string(models.RoleBarber)).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	ratings, err := barberRatings(h.db.WithContext(c.Request.Context()))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := make([]BarberDTO, 0, len(barbers))
	for _, b := range barbers {
		dto := BarberDTO{ID: b.ID, Name: b.Name, PhotoURL: b.PhotoURL, Rating: ratings[b.ID]}
		if b.BarberDetails != nil {
			dto.Specialty = b.BarberDetails.Specialty
		}
		out = append(out, dto)
	}
	c.JSON(http.StatusOK, out)
}

// Comments returns the latest reviews with the author's name and photo.
func (h *CatalogHandler) Comments(c *gin.Context) {
	var reviews []models.Review
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Client").
		Order("created_at DESC").
		Limit(latestReviews).
		Find(&reviews).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	out := make([]ReviewDTO, 0, len(reviews))
	for _, r := range reviews {
		photo := r.Client.PhotoURL
		if photo == "" {
			photo = defaultAvatarURL + strings.ReplaceAll(r.Client.Name, " ", "+")
		}
		out = append(out, ReviewDTO{
			ID:        r.ID,
			Text:      r.Text,
			Name:      r.Client.Name,
			PhotoURL:  photo,
			CreatedAt: r.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) CreateComment(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	review := models.Review{
		ClientID: middleware.UserID(c),
		Text:     strings.TrimSpace(req.Text),
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&review).Error; err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": review.ID})
}
