package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/pet-sitting-booking/internal/domain/booking"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/dto"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/httperr"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/pet-sitting-booking/internal/usecase/booking"
	ucGallery "github.com/BruksfildServices01/pet-sitting-booking/internal/usecase/gallery"
	ucMedia "github.com/BruksfildServices01/pet-sitting-booking/internal/usecase/media"
)

// PublicHandler serves the read-only endpoints used by the public site.
type PublicHandler struct {
	flow       *ucBooking.Flow
	feed       *ucMedia.Feed
	gallery    *ucGallery.ListImages
	mediaLimit int
}

func NewPublicHandler(
	flow *ucBooking.Flow,
	feed *ucMedia.Feed,
	gallery *ucGallery.ListImages,
	mediaLimit int,
) *PublicHandler {
	return &PublicHandler{
		flow:       flow,
		feed:       feed,
		gallery:    gallery,
		mediaLimit: mediaLimit,
	}
}

func (h *PublicHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *PublicHandler) Services(c *gin.Context) {
	httpresp.List(c, domain.Catalog())
}

// GET /api/availability?date=YYYY-MM-DD
func (h *PublicHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.Invalid(c, "date", "date_required", "Please choose a date.")
		return
	}

	av, err := h.flow.Availability(c.Request.Context(), date)
	if err != nil {
		httperr.FromBooking(c, err)
		return
	}

	httpresp.OK(c, dto.AvailabilityResponse{
		Date:     av.Date,
		Slots:    av.Slots,
		Fallback: av.Fallback,
	})
}

// GET /api/media?limit=N
func (h *PublicHandler) Media(c *gin.Context) {
	limit := h.mediaLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httperr.Invalid(c, "limit", "invalid_limit", "limit must be a positive number.")
			return
		}
		limit = n
	}

	res := h.feed.Recent(c.Request.Context(), limit)
	httpresp.ListWithFallback(c, res.Items, res.Fallback)
}

func (h *PublicHandler) Gallery(c *gin.Context) {
	images, err := h.gallery.Execute(c.Request.Context())
	if err != nil {
		httperr.BadGateway(c, "gallery_unavailable", "The gallery is unavailable right now.")
		return
	}
	httpresp.List(c, images)
}
