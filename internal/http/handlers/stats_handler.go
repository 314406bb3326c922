// Statistics HTTP handlers.
//
// This file exposes the read-only aggregate statistics endpoints:
//   - GET /jobs/statistics/location/{cityId}              (per-city averages + top decile)
//   - GET /jobs/statistics/company/{companyId}            (company vs industry)
//   - GET /jobs/statistics/shortlist-ratio                (top ratios across jobs)
//   - GET /jobs/statistics/shortlist-ratio/job/{jobId}    (single job's ratio)
//   - GET /jobs/statistics/shortlist-ratio/employer/{id}  (per-employer ratios)
//   - GET /jobs/statistics/salary/min                     (average min salary per location)
//   - GET /jobs/statistics/salary/max                     (average max salary per location)
//
// All endpoints read from the reporting views; a NULL metric (e.g. a ratio
// for a job with no applications) is serialized as JSON null, never as zero.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-jobboard-backend/internal/services"
	"github.com/tbourn/go-jobboard-backend/internal/utils"
)

// LocationStats godoc
// @ID          locationStats
// @Summary     Per-city job statistics
// @Description Average apply/dislike/shortlist counts over the city's active jobs, plus the per-metric top-decile averages. Metrics are null when the city has no active jobs.
// @Tags        Statistics
// @Produce     json
//
// @Param       cityId  path  int  true  "City ID"  example(3)
//
// @Success     200  {object}  repo.LocationStatsResult
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/statistics/location/{cityId} [get]
func (h *Handlers) LocationStats(c *gin.Context) {
	cityID, okParam := utils.ParseInt64(c.Param("cityId"))
	if !okParam {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "cityId must be a positive integer")
		return
	}

	res, err := h.statsSvc.LocationStats(c.Request.Context(), cityID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeQueryFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, res)
}

// CompanyStats godoc
// @ID          companyStats
// @Summary     Company vs industry job statistics
// @Description The company's average apply/dislike/shortlist counts next to the top-decile averages across companies sharing an industry with it.
// @Tags        Statistics
// @Produce     json
//
// @Param       companyId  path  int  true  "Company ID"  example(5)
//
// @Success     200  {object}  repo.CompanyStatsResult
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/statistics/company/{companyId} [get]
func (h *Handlers) CompanyStats(c *gin.Context) {
	companyID, okParam := utils.ParseInt64(c.Param("companyId"))
	if !okParam {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "companyId must be a positive integer")
		return
	}

	res, err := h.statsSvc.CompanyStats(c.Request.Context(), companyID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeQueryFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, res)
}

// ShortlistRatios godoc
// @ID          shortlistRatios
// @Summary     Top shortlist-to-application ratios
// @Description The ten jobs with the highest shortlist/application ratio. Jobs with no applications carry a null ratio and sort last.
// @Tags        Statistics
// @Produce     json
//
// @Success     200  {array}   repo.ShortlistRatioRow
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/statistics/shortlist-ratio [get]
func (h *Handlers) ShortlistRatios(c *gin.Context) {
	items, err := h.statsSvc.ShortlistRatioStats(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeQueryFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// ShortlistRatioForJob godoc
// @ID          shortlistRatioForJob
// @Summary     Shortlist-to-application ratio for one job
// @Description Returns the job's ratio row; the ratio is null when the job has no applications.
// @Tags        Statistics
// @Produce     json
//
// @Param       jobId  path  int  true  "Job ID"  example(17)
//
// @Success     200  {object}  repo.ShortlistRatioRow
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Job not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/statistics/shortlist-ratio/job/{jobId} [get]
func (h *Handlers) ShortlistRatioForJob(c *gin.Context) {
	jobID, okParam := utils.ParseInt64(c.Param("jobId"))
	if !okParam {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "jobId must be a positive integer")
		return
	}

	row, err := h.statsSvc.ShortlistRatioForJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeQueryFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, row)
}

// ShortlistRatiosForEmployer godoc
// @ID          shortlistRatiosForEmployer
// @Summary     Shortlist-to-application ratios for an employer's jobs
// @Tags        Statistics
// @Produce     json
//
// @Param       employerId  path  int  true  "Employer user ID"  example(7)
//
// @Success     200  {array}   repo.ShortlistRatioRow
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/statistics/shortlist-ratio/employer/{employerId} [get]
func (h *Handlers) ShortlistRatiosForEmployer(c *gin.Context) {
	employerID, okParam := utils.ParseInt64(c.Param("employerId"))
	if !okParam {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "employerId must be a positive integer")
		return
	}

	items, err := h.statsSvc.ShortlistRatiosForEmployer(c.Request.Context(), employerID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeQueryFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// LocationMinSalary godoc
// @ID          locationMinSalary
// @Summary     Average minimum salary per location
// @Description Average advertised minimum salary grouped by city and country, highest first.
// @Tags        Statistics
// @Produce     json
//
// @Success     200  {array}   repo.LocationSalaryRow
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/statistics/salary/min [get]
func (h *Handlers) LocationMinSalary(c *gin.Context) {
	items, err := h.statsSvc.LocationMinSalary(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeQueryFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// LocationMaxSalary godoc
// @ID          locationMaxSalary
// @Summary     Average maximum salary per location
// @Description Average advertised maximum salary grouped by city and country, highest first.
// @Tags        Statistics
// @Produce     json
//
// @Success     200  {array}   repo.LocationSalaryRow
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/statistics/salary/max [get]
func (h *Handlers) LocationMaxSalary(c *gin.Context) {
	items, err := h.statsSvc.LocationMaxSalary(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeQueryFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}
