package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"campsite-booking/internal/domain/booking"
	reqdto "campsite-booking/internal/handler/dto/request"
	resdto "campsite-booking/internal/handler/dto/response"
	"campsite-booking/internal/infra"
	"campsite-booking/internal/usecase/commands"
	"campsite-booking/internal/usecase/queries"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Create a booking on the first available site from today
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.bookingCommands.CreateBooking(c.Request.Context(), req.CustomerID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCustomerNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Customer not found",
			})
		case errors.Is(err, commands.ErrNoAvailability):
			c.JSON(http.StatusConflict, gin.H{
				"error": "No site available",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromMutationResult(result))
}

// @Summary List bookings
// @Description List bookings sorted by lifecycle rank, optionally filtered
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param customer_id query string false "Filter by customer"
// @Param search query string false "Case-insensitive substring filter"
// @Success 200 {array} queries.BookingView
// @Failure 400 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	var (
		views []*queries.BookingView
		err   error
	)
	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		customerID, parseErr := uuid.Parse(customerIDStr)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid customer ID format",
			})
			return
		}
		views, err = h.bookingQueries.ListByCustomer(c.Request.Context(), customerID)
	} else {
		views, err = h.bookingQueries.List(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	if search := c.Query("search"); search != "" {
		views = queries.FilterListables(views, search)
	}
	if views == nil {
		views = []*queries.BookingView{}
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Get booking
// @Description Get booking by ID with derived prices and status
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondNotFoundOrInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Update booking
// @Description Apply field changes through the lifecycle gates; incompatible equipment or service selections are auto-corrected and reported as warnings
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingRequest true "Fields to change"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id} [patch]
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
		return
	}

	result, err := h.bookingCommands.UpdateBooking(c.Request.Context(), id, patch)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromMutationResult(result))
}

// @Summary Cancel booking
// @Description Cancel a booking; settled bookings are refused
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	result, err := h.bookingCommands.CancelBooking(c.Request.Context(), id)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromMutationResult(result))
}

// @Summary Generate bill
// @Description Render the booking bill PDF and store it on the record
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/bill [post]
func (h *BookingHandler) GenerateBill(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	result, err := h.bookingCommands.GenerateBill(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBillNotReady):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Booking has no dates or site to bill",
			})
		default:
			h.respondBookingError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromMutationResult(result))
}

// @Summary Download bill
// @Description Download the stored bill PDF
// @Tags bookings
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/bill [get]
func (h *BookingHandler) DownloadBill(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	bill, err := h.bookingQueries.GetBill(c.Request.Context(), id)
	if err != nil {
		h.respondNotFoundOrInternal(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bill-`+id.String()+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", bill)
}

// @Summary Get booking audit trail
// @Description List the booking's change events in insertion order
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {array} queries.AuditEventView
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/audit [get]
func (h *BookingHandler) GetAuditTrail(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	events, err := h.bookingQueries.ListAuditTrail(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	if events == nil {
		events = []*queries.AuditEventView{}
	}

	c.JSON(http.StatusOK, events)
}

func (h *BookingHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	if violation, ok := booking.AsConstraintViolation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": violation.Message,
		})
		return
	}
	switch {
	case errors.Is(err, commands.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, commands.ErrSiteNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Site not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func (h *BookingHandler) respondNotFoundOrInternal(c *gin.Context, err error) {
	if infra.IsKind(err, infra.KindNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
	})
}
