package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/pet-sitting-booking/internal/domain/booking"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/dto"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/httperr"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/httpresp"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/pet-sitting-booking/internal/usecase/booking"
	"github.com/BruksfildServices01/pet-sitting-booking/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	flow   *ucBooking.Flow
	tokens *middleware.SessionTokens

	// nil disables the DNS check on contact emails
	emailDomainOK func(email string) bool
}

func NewBookingHandler(flow *ucBooking.Flow, tokens *middleware.SessionTokens, verifyEmailDomain bool) *BookingHandler {
	h := &BookingHandler{flow: flow, tokens: tokens}
	if verifyEmailDomain {
		h.emailDomainOK = validators.IsEmailDomainValid
	}
	return h
}

func (h *BookingHandler) respond(c *gin.Context, s *domain.Session, err error) {
	if err != nil {
		httperr.FromBooking(c, err)
		return
	}
	h.refreshToken(c, s.ID)
	httpresp.OK(c, dto.Session(s))
}

// refreshToken sends a token with a renewed expiry, matching the sliding
// TTL of the stored session. Clients replace their token with it.
func (h *BookingHandler) refreshToken(c *gin.Context, sessionID string) {
	token, err := h.tokens.Issue(sessionID, time.Now())
	if err != nil {
		return
	}
	c.Header(middleware.HeaderSessionToken, token)
}

// ======================================================
// SESSION LIFECYCLE
// ======================================================

func (h *BookingHandler) Start(c *gin.Context) {
	s, err := h.flow.Start(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "session_start_failed", "Could not start a booking. Please try again.")
		return
	}

	token, err := h.tokens.Issue(s.ID, time.Now())
	if err != nil {
		httperr.Internal(c, "session_start_failed", "Could not start a booking. Please try again.")
		return
	}

	httpresp.Created(c, dto.StartSessionResponse{
		Token:   token,
		Session: dto.Session(s),
	})
}

func (h *BookingHandler) Get(c *gin.Context) {
	s, err := h.flow.Get(c.Request.Context(), middleware.SessionID(c))
	h.respond(c, s, err)
}

func (h *BookingHandler) Restart(c *gin.Context) {
	s, err := h.flow.Restart(c.Request.Context(), middleware.SessionID(c))
	h.respond(c, s, err)
}

// ======================================================
// STEPS
// ======================================================

func (h *BookingHandler) SelectService(c *gin.Context) {
	var req dto.SelectServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, "service", "service_required", "Please choose a service.")
		return
	}

	s, err := h.flow.SelectService(c.Request.Context(), middleware.SessionID(c), domain.ServiceKind(req.Service))
	h.respond(c, s, err)
}

func (h *BookingHandler) SelectDate(c *gin.Context) {
	var req dto.SelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, "date", "date_required", "Please choose a date.")
		return
	}

	s, err := h.flow.SelectDate(c.Request.Context(), middleware.SessionID(c), req.Date)
	h.respond(c, s, err)
}

func (h *BookingHandler) SelectTime(c *gin.Context) {
	var req dto.SelectTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Invalid(c, "time", "time_required", "Please choose a time.")
		return
	}

	s, err := h.flow.SelectTime(c.Request.Context(), middleware.SessionID(c), req.Time)
	h.respond(c, s, err)
}

func (h *BookingHandler) UpdateDetails(c *gin.Context) {
	var req dto.DetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking details.")
		return
	}

	if h.emailDomainOK != nil && validators.IsEmail(req.Contact.Email) && !h.emailDomainOK(req.Contact.Email) {
		httperr.Invalid(c, "contact.email", "email_domain_invalid", "That email domain does not appear to exist.")
		return
	}

	s, err := h.flow.UpdateDetails(c.Request.Context(), middleware.SessionID(c),
		domain.Contact{
			Name:  req.Contact.Name,
			Email: req.Contact.Email,
			Phone: req.Contact.Phone,
		},
		domain.Pet{
			Name:  req.Pet.Name,
			Type:  domain.PetType(req.Pet.Type),
			Breed: req.Pet.Breed,
			Age:   req.Pet.Age,
		},
		req.Notes,
	)
	h.respond(c, s, err)
}

func (h *BookingHandler) Next(c *gin.Context) {
	s, err := h.flow.Next(c.Request.Context(), middleware.SessionID(c))
	h.respond(c, s, err)
}

func (h *BookingHandler) Back(c *gin.Context) {
	s, err := h.flow.Back(c.Request.Context(), middleware.SessionID(c))
	h.respond(c, s, err)
}

// ======================================================
// SUBMIT
// ======================================================

func (h *BookingHandler) Submit(c *gin.Context) {
	s, conf, err := h.flow.Submit(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		httperr.FromBooking(c, err)
		return
	}

	h.refreshToken(c, s.ID)
	httpresp.OK(c, dto.SubmitResponse{
		Confirmation: conf,
		Session:      dto.Session(s),
	})
}
