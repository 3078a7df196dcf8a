package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"campsite-booking/internal/domain/booking"
	reqdto "campsite-booking/internal/handler/dto/request"
	"campsite-booking/internal/usecase/commands"
	"campsite-booking/internal/usecase/queries"
)

type ProblemHandler struct {
	problemCommands commands.ProblemCommands
	problemQueries  queries.ProblemQueries
}

func NewProblemHandler(problemCommands commands.ProblemCommands, problemQueries queries.ProblemQueries) *ProblemHandler {
	return &ProblemHandler{
		problemCommands: problemCommands,
		problemQueries:  problemQueries,
	}
}

// @Summary Report problem
// @Description Open a problem against a booking
// @Tags problems
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ReportProblemRequest true "Problem description"
// @Success 201 {object} queries.ProblemView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/problems [post]
func (h *ProblemHandler) ReportProblem(c *gin.Context) {
	bookingID, ok := h.parseID(c, "Invalid booking ID format")
	if !ok {
		return
	}

	var req reqdto.ReportProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.problemCommands.ReportProblem(c.Request.Context(), bookingID, req.Description)
	if err != nil {
		h.respondProblemError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// @Summary List booking problems
// @Description List the problems reported against a booking, oldest first
// @Tags problems
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {array} queries.ProblemView
// @Failure 400 {object} map[string]string
// @Router /bookings/{id}/problems [get]
func (h *ProblemHandler) ListProblems(c *gin.Context) {
	bookingID, ok := h.parseID(c, "Invalid booking ID format")
	if !ok {
		return
	}

	views, err := h.problemQueries.ListByBooking(c.Request.Context(), bookingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	if views == nil {
		views = []*queries.ProblemView{}
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Update problem
// @Description Change a problem's description or triage status
// @Tags problems
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Problem ID"
// @Param request body reqdto.UpdateProblemRequest true "Fields to change"
// @Success 200 {object} queries.ProblemView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /problems/{id} [patch]
func (h *ProblemHandler) UpdateProblem(c *gin.Context) {
	id, ok := h.parseID(c, "Invalid problem ID format")
	if !ok {
		return
	}

	var req reqdto.UpdateProblemRequest
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

	view, err := h.problemCommands.UpdateProblem(c.Request.Context(), id, patch)
	if err != nil {
		h.respondProblemError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *ProblemHandler) parseID(c *gin.Context, msg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": msg,
		})
		return uuid.Nil, false
	}
	return id, true
}

func (h *ProblemHandler) respondProblemError(c *gin.Context, err error) {
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
	case errors.Is(err, commands.ErrProblemNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Problem not found",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
