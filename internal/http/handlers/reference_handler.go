// Reference data HTTP handlers: companies and locations.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListCompanies godoc
// @ID          listCompanies
// @Summary     List companies
// @Description All registered companies, alphabetically.
// @Tags        Reference
// @Produce     json
//
// @Success     200  {array}   domain.Company
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /companies [get]
func (h *Handlers) ListCompanies(c *gin.Context) {
	items, err := h.refSvc.Companies(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeQueryFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// ListLocations godoc
// @ID          listLocations
// @Summary     List locations
// @Description All known cities joined with their countries, ordered by country then city.
// @Tags        Reference
// @Produce     json
//
// @Success     200  {array}   repo.LocationRow
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /locations [get]
func (h *Handlers) ListLocations(c *gin.Context) {
	items, err := h.refSvc.Locations(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeQueryFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}
