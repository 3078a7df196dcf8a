package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"campsite-booking/internal/infra"
	"campsite-booking/internal/usecase/queries"
)

type CustomerHandler struct {
	customerQueries queries.CustomerQueries
}

func NewCustomerHandler(customerQueries queries.CustomerQueries) *CustomerHandler {
	return &CustomerHandler{customerQueries: customerQueries}
}

// @Summary List customers
// @Description List customers, optionally filtered by name, email or phone
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive substring filter"
// @Success 200 {array} queries.CustomerView
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	views, err := h.customerQueries.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	if views == nil {
		views = []*queries.CustomerView{}
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Get customer
// @Description Get customer by ID
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Customer ID"
// @Success 200 {object} queries.CustomerView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid customer ID format",
		})
		return
	}

	view, err := h.customerQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Customer not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}
