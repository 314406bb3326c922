// Job HTTP handlers.
//
// This file exposes REST endpoints for job postings and the employee/job
// relations built on top of them:
//   - GET    /jobs                                   (list active jobs, paginated)
//   - GET    /jobs/search                            (filtered search, paginated)
//   - GET    /jobs/count                             (count under the same filters)
//   - GET    /jobs/recommendations                   (related jobs for an employee)
//   - POST   /jobs/post                              (employer publishes a job)
//   - POST   /jobs/apply                             (employee applies)
//   - GET    /jobs/applications                      (employer inbox)
//   - GET    /jobs/applications/employee/:employeeId (employee's applications)
//   - PUT    /jobs/applications/status               (status transition)
//   - POST   /jobs/shortlist, DELETE /jobs/shortlist (mark / unmark)
//   - POST   /jobs/dislike,   DELETE /jobs/dislike   (mark / unmark)
//   - GET    /jobs/shortlist/:employeeId             (shortlisted jobs)
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-jobboard-backend/internal/domain"
	"github.com/tbourn/go-jobboard-backend/internal/http/middleware"
	"github.com/tbourn/go-jobboard-backend/internal/repo"
	"github.com/tbourn/go-jobboard-backend/internal/services"
	"github.com/tbourn/go-jobboard-backend/internal/utils"
)

//
// DTOs
//

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
}

// JobsResponse wraps a page of jobs and pagination information.
type JobsResponse struct {
	Jobs       []repo.JobRow `json:"jobs"`
	Pagination Pagination    `json:"pagination"`
}

// CountResponse reports a job count under the request's filters.
type CountResponse struct {
	Total int64 `json:"total" example:"128"`
}

// PostJobRequest is the JSON payload for publishing a job posting.
type PostJobRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=255" example:"Backend Engineer"`
	Description string   `json:"description" example:"Go services for the ads platform"`
	MinSalary   *float64 `json:"minSalary" example:"32000"`
	MaxSalary   *float64 `json:"maxSalary" example:"48000"`
	WorkType    string   `json:"workType" example:"Full-time"`
	CityID      int64    `json:"cityId" binding:"required" example:"3"`
}

// JobIDRequest carries a single job reference for apply/shortlist/dislike.
type JobIDRequest struct {
	JobID int64 `json:"jobId" binding:"required" example:"17"`
}

// UpdateApplicationStatusRequest is the JSON payload for a status transition.
type UpdateApplicationStatusRequest struct {
	EmployeeID int64  `json:"employeeId" binding:"required" example:"42"`
	JobID      int64  `json:"jobId" binding:"required" example:"17"`
	Status     string `json:"status" binding:"required" example:"Accepted"`
}

//
// Helpers
//

// clampPagination parses and bounds the page and pageSize query params,
// returning (page, pageSize). Page sizes are clamped again by the service.
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("pageSize"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// searchFilters builds the NULL-safe filter set from query params. A missing
// or malformed param means "no constraint". The disliked-jobs exclusion keys
// off the userId query param, falling back to the identity header.
func searchFilters(c *gin.Context) repo.SearchFilters {
	f := repo.SearchFilters{
		CityID:    utils.Int64Ptr(c.Query("cityId")),
		CompanyID: utils.Int64Ptr(c.Query("companyId")),
		MinSalary: utils.Float64Ptr(c.Query("minSalary")),
		MaxSalary: utils.Float64Ptr(c.Query("maxSalary")),
		WorkType:  utils.StringPtr(strings.TrimSpace(c.Query("workType"))),
	}
	if uid := utils.Int64Ptr(c.Query("userId")); uid != nil {
		f.ExcludeDislikedFor = uid
	} else if id, ok := middleware.UserIDFrom(c); ok {
		f.ExcludeDislikedFor = &id
	}
	return f
}

// jobsPage assembles the standard paginated jobs envelope.
func jobsPage(items []repo.JobRow, page, pageSize int, total int64) JobsResponse {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return JobsResponse{
		Jobs: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	}
}

//
// Handlers
//

// ListJobs godoc
// @ID          listJobs
// @Summary     List active jobs (paginated)
// @Description Returns a page of active job postings, newest first.
// @Tags        Jobs
// @Produce     json
//
// @Param       page      query  int  false  "Page number"     minimum(1) default(1)
// @Param       pageSize  query  int  false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.JobsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs [get]
func (h *Handlers) ListJobs(c *gin.Context) {
	page, pageSize := clampPagination(c)

	items, total, err := h.jobSvc.Search(c.Request.Context(), repo.SearchFilters{}, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeQueryFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, jobsPage(items, page, pageSize, total))
}

// SearchJobs godoc
// @ID          searchJobs
// @Summary     Search jobs with filters (paginated)
// @Description Filters are optional and combine with AND; absent params mean "no constraint". When userId is known, jobs that user disliked are excluded.
// @Tags        Jobs
// @Produce     json
//
// @Param       cityId     query  int     false  "City filter"
// @Param       companyId  query  int     false  "Company filter"
// @Param       minSalary  query  number  false  "Lower salary bound"
// @Param       maxSalary  query  number  false  "Upper salary bound"
// @Param       workType   query  string  false  "Work type (e.g. Full-time)"
// @Param       userId     query  int     false  "Employee whose dislikes are excluded"
// @Param       page       query  int     false  "Page number"     minimum(1) default(1)
// @Param       pageSize   query  int     false  "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.JobsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/search [get]
func (h *Handlers) SearchJobs(c *gin.Context) {
	page, pageSize := clampPagination(c)

	items, total, err := h.jobSvc.Search(c.Request.Context(), searchFilters(c), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeQueryFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, jobsPage(items, page, pageSize, total))
}

// CountJobs godoc
// @ID          countJobs
// @Summary     Count jobs under the search filters
// @Description Uses the identical predicate as /jobs/search so the count always matches the search result set.
// @Tags        Jobs
// @Produce     json
//
// @Param       cityId     query  int     false  "City filter"
// @Param       companyId  query  int     false  "Company filter"
// @Param       minSalary  query  number  false  "Lower salary bound"
// @Param       maxSalary  query  number  false  "Upper salary bound"
// @Param       workType   query  string  false  "Work type"
// @Param       userId     query  int     false  "Employee whose dislikes are excluded"
//
// @Success     200  {object}  handlers.CountResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/count [get]
func (h *Handlers) CountJobs(c *gin.Context) {
	total, err := h.jobSvc.TotalCount(c.Request.Context(), searchFilters(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeQueryFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, CountResponse{Total: total})
}

// RecommendJobs godoc
// @ID          recommendJobs
// @Summary     Recommend related jobs
// @Description Returns up to three active jobs in the same industry as jobId, most applied-to first, excluding jobs the employee already applied to.
// @Tags        Jobs
// @Produce     json
//
// @Param       jobId   query  int  true  "Job the recommendations relate to"
// @Param       userId  query  int  true  "Employee receiving the recommendations"
//
// @Success     200  {array}   repo.JobRow
// @Failure     400  {object}  handlers.ErrorResponse  "Missing jobId or userId"
// @Failure     404  {object}  handlers.ErrorResponse  "Job not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/recommendations [get]
func (h *Handlers) RecommendJobs(c *gin.Context) {
	jobID, okJob := utils.ParseInt64(c.Query("jobId"))
	if !okJob {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "jobId must be a positive integer")
		return
	}
	userID, okUser := utils.ParseInt64(c.Query("userId"))
	if !okUser {
		if id, present := middleware.UserIDFrom(c); present {
			userID = id
		} else {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "userId must be a positive integer")
			return
		}
	}

	items, err := h.jobSvc.Recommend(c.Request.Context(), jobID, userID)
	if err != nil {
		if errors.Is(err, services.ErrJobNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeQueryFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// PostJob godoc
// @ID          postJob
// @Summary     Publish a job posting
// @Description Creates an active job posting owned by the employer identified by X-User-ID.
// @Tags        Jobs
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  int  true  "Employer user ID"  example(7)
// @Param       body       body    handlers.PostJobRequest  true  "Job payload"
//
// @Success     201  {object}  domain.JobPosting
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing identity"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/post [post]
func (h *Handlers) PostJob(c *gin.Context) {
	uid, okID := requireUser(c)
	if !okID {
		return
	}

	var req PostJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	if req.MinSalary != nil && req.MaxSalary != nil && *req.MinSalary > *req.MaxSalary {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "minSalary must not exceed maxSalary")
		return
	}

	job, err := h.jobSvc.Post(c.Request.Context(), uid, &domain.JobPosting{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		MinSalary:   req.MinSalary,
		MaxSalary:   req.MaxSalary,
		WorkType:    strings.TrimSpace(req.WorkType),
		CityID:      req.CityID,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusCreated, job)
}

// ApplyForJob godoc
// @ID          applyForJob
// @Summary     Apply for a job
// @Description Files an application for the employee identified by X-User-ID. Duplicate applications are rejected.
// @Tags        Jobs
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  int  true  "Employee user ID"  example(42)
// @Param       body       body    handlers.JobIDRequest  true  "Job reference"
//
// @Success     201  {object}  domain.Application
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing identity"
// @Failure     409  {object}  handlers.ErrorResponse  "Already applied"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/apply [post]
func (h *Handlers) ApplyForJob(c *gin.Context) {
	uid, okID := requireUser(c)
	if !okID {
		return
	}

	var req JobIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "jobId required")
		return
	}

	app, err := h.jobSvc.Apply(c.Request.Context(), uid, req.JobID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyApplied) {
			fail(c, http.StatusConflict, ErrCodeAlreadyApplied, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusCreated, app)
}

// EmployerApplications godoc
// @ID          employerApplications
// @Summary     List applications to the caller's jobs
// @Description Returns every application filed against jobs posted by the employer identified by X-User-ID.
// @Tags        Applications
// @Produce     json
//
// @Param       X-User-ID  header  int  true  "Employer user ID"  example(7)
//
// @Success     200  {array}   repo.EmployerApplicationRow
// @Failure     401  {object}  handlers.ErrorResponse  "Missing identity"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/applications [get]
func (h *Handlers) EmployerApplications(c *gin.Context) {
	uid, okID := requireUser(c)
	if !okID {
		return
	}

	items, err := h.jobSvc.ApplicationsForEmployer(c.Request.Context(), uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeQueryFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// EmployeeApplications godoc
// @ID          employeeApplications
// @Summary     List an employee's applications
// @Description Returns the applications filed by the given employee, including job and company context.
// @Tags        Applications
// @Produce     json
//
// @Param       employeeId  path  int  true  "Employee user ID"  example(42)
//
// @Success     200  {array}   repo.EmployeeApplicationRow
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/applications/employee/{employeeId} [get]
func (h *Handlers) EmployeeApplications(c *gin.Context) {
	employeeID, okParam := utils.ParseInt64(c.Param("employeeId"))
	if !okParam {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "employeeId must be a positive integer")
		return
	}

	items, err := h.jobSvc.ApplicationsForEmployee(c.Request.Context(), employeeID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeQueryFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// UpdateApplicationStatus godoc
// @ID          updateApplicationStatus
// @Summary     Change an application's status
// @Description Applies a status transition (Accepted, Rejected, Withdrawn). Only applications still in Applied may transition; accepting one auto-withdraws the other pending applications for that job.
// @Tags        Applications
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.UpdateApplicationStatusRequest  true  "Transition payload"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown status"
// @Failure     404  {object}  handlers.ErrorResponse  "Application not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Illegal transition"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/applications/status [put]
func (h *Handlers) UpdateApplicationStatus(c *gin.Context) {
	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "employeeId, jobId and status required")
		return
	}

	err := h.jobSvc.ChangeApplicationStatus(c.Request.Context(), req.EmployeeID, req.JobID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrApplicationNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
		case errors.Is(err, services.ErrInvalidStatusTransition):
			fail(c, http.StatusConflict, ErrCodeInvalidTransition, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}

// ShortlistJob godoc
// @ID          shortlistJob
// @Summary     Shortlist a job
// @Description Marks a job as shortlisted for the employee identified by X-User-ID.
// @Tags        Jobs
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  int  true  "Employee user ID"  example(42)
// @Param       body       body    handlers.JobIDRequest  true  "Job reference"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing identity"
// @Failure     409  {object}  handlers.ErrorResponse  "Already shortlisted"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/shortlist [post]
func (h *Handlers) ShortlistJob(c *gin.Context) {
	h.markJob(c, h.jobSvc.Shortlist, services.ErrAlreadyShortlisted)
}

// UnshortlistJob godoc
// @ID          unshortlistJob
// @Summary     Remove a job from the shortlist
// @Description Removes the shortlist mark; removing an absent mark succeeds.
// @Tags        Jobs
// @Produce     json
//
// @Param       X-User-ID  header  int  true  "Employee user ID"  example(42)
// @Param       jobId      query   int  true  "Job ID"            example(17)
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing identity"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/shortlist [delete]
func (h *Handlers) UnshortlistJob(c *gin.Context) {
	h.unmarkJob(c, h.jobSvc.Unshortlist)
}

// DislikeJob godoc
// @ID          dislikeJob
// @Summary     Dislike a job
// @Description Marks a job as disliked for the employee identified by X-User-ID. Disliked jobs are excluded from that employee's searches.
// @Tags        Jobs
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  int  true  "Employee user ID"  example(42)
// @Param       body       body    handlers.JobIDRequest  true  "Job reference"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing identity"
// @Failure     409  {object}  handlers.ErrorResponse  "Already disliked"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/dislike [post]
func (h *Handlers) DislikeJob(c *gin.Context) {
	h.markJob(c, h.jobSvc.Dislike, services.ErrAlreadyDisliked)
}

// UndislikeJob godoc
// @ID          undislikeJob
// @Summary     Remove a dislike mark
// @Description Removes the dislike mark; removing an absent mark succeeds.
// @Tags        Jobs
// @Produce     json
//
// @Param       X-User-ID  header  int  true  "Employee user ID"  example(42)
// @Param       jobId      query   int  true  "Job ID"            example(17)
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing identity"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/dislike [delete]
func (h *Handlers) UndislikeJob(c *gin.Context) {
	h.unmarkJob(c, h.jobSvc.Undislike)
}

// ShortlistedJobs godoc
// @ID          shortlistedJobs
// @Summary     List an employee's shortlisted jobs
// @Tags        Jobs
// @Produce     json
//
// @Param       employeeId  path  int  true  "Employee user ID"  example(42)
//
// @Success     200  {array}   repo.JobRow
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs/shortlist/{employeeId} [get]
func (h *Handlers) ShortlistedJobs(c *gin.Context) {
	employeeID, okParam := utils.ParseInt64(c.Param("employeeId"))
	if !okParam {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "employeeId must be a positive integer")
		return
	}

	items, err := h.jobSvc.ShortlistedJobs(c.Request.Context(), employeeID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeQueryFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// markJob is the shared body of ShortlistJob and DislikeJob: identity check,
// jobId payload, conflict mapping for the given duplicate sentinel.
func (h *Handlers) markJob(c *gin.Context, mark func(ctx context.Context, employeeID, jobID int64) error, conflict error) {
	uid, okID := requireUser(c)
	if !okID {
		return
	}

	var req JobIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "jobId required")
		return
	}

	if err := mark(c.Request.Context(), uid, req.JobID); err != nil {
		if errors.Is(err, conflict) {
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}

// unmarkJob is the shared body of UnshortlistJob and UndislikeJob. The job is
// referenced via the jobId query param since DELETE bodies are unreliable.
func (h *Handlers) unmarkJob(c *gin.Context, unmark func(ctx context.Context, employeeID, jobID int64) error) {
	uid, okID := requireUser(c)
	if !okID {
		return
	}

	jobID, okParam := utils.ParseInt64(c.Query("jobId"))
	if !okParam {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "jobId must be a positive integer")
		return
	}

	if err := unmark(c.Request.Context(), uid, jobID); err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
