package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"campsite-booking/internal/handler/httperr"
	"campsite-booking/internal/infra"
	"campsite-booking/internal/pkg/errs"
	"campsite-booking/internal/usecase/queries"
)

type SiteHandler struct {
	siteQueries queries.SiteQueries
}

func NewSiteHandler(siteQueries queries.SiteQueries) *SiteHandler {
	return &SiteHandler{siteQueries: siteQueries}
}

// @Summary List sites
// @Description List the site catalog, optionally filtered by name
// @Tags sites
// @Produce json
// @Security BearerAuth
// @Param search query string false "Case-insensitive substring filter"
// @Success 200 {array} queries.SiteView
// @Router /sites [get]
func (h *SiteHandler) ListSites(c *gin.Context) {
	views, err := h.siteQueries.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list sites", nil)
		return
	}
	if views == nil {
		views = []*queries.SiteView{}
	}

	c.JSON(http.StatusOK, views)
}

// @Summary List available sites
// @Description List sites with no live booking overlapping the given range
// @Tags sites
// @Produce json
// @Security BearerAuth
// @Param start_date query string true "Range start (YYYY-MM-DD)"
// @Param end_date query string true "Range end (YYYY-MM-DD)"
// @Success 200 {array} queries.SiteView
// @Failure 400 {object} map[string]string
// @Router /sites/available [get]
func (h *SiteHandler) ListAvailableSites(c *gin.Context) {
	start, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid start date format", nil)
		return
	}
	end, err := time.Parse("2006-01-02", c.Query("end_date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid end date format", nil)
		return
	}
	if end.Before(start) {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("end date precedes start date"), "End date must not precede start date", nil)
		return
	}

	views, err := h.siteQueries.ListAvailable(c.Request.Context(), start, end)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to resolve availability", nil)
		return
	}
	if views == nil {
		views = []*queries.SiteView{}
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Get site
// @Description Get site by ID
// @Tags sites
// @Produce json
// @Security BearerAuth
// @Param id path string true "Site ID"
// @Success 200 {object} queries.SiteView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sites/{id} [get]
func (h *SiteHandler) GetSite(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid site ID format", nil)
		return
	}

	view, err := h.siteQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Site not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load site", nil)
		return
	}

	c.JSON(http.StatusOK, view)
}
