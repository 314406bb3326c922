// Account HTTP handlers.
//
// This file exposes REST endpoints for the account lifecycle:
//   - POST /users/signup       (register employee or employer)
//   - POST /users/login        (credential check, returns enriched profile)
//   - PUT  /employees/profile  (update the caller's resume URL)
//
// It also declares the service contracts consumed by every handler in this
// package and the Handlers wiring type. Handlers are transport-thin: they
// validate input, call application services, and translate results into HTTP
// responses.
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
)

//
// Service contracts (context-aware)
//

// AuthService defines the account operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AuthService interface {
	// SignUp registers a user plus their role extension atomically and
	// returns the new user ID.
	SignUp(ctx context.Context, p services.SignupProfile) (int64, error)
	// Login verifies credentials and returns the enriched, redacted profile.
	Login(ctx context.Context, identifier, password string) (*services.UserProfile, error)
	// UpdateEmployeeProfile replaces the employee's resume URL.
	UpdateEmployeeProfile(ctx context.Context, employeeID int64, resumeURL string) error
}

// JobService defines job search, posting, and employee/job relation
// operations consumed by HTTP handlers.
type JobService interface {
	// Search returns one page of active jobs matching f plus the total count.
	Search(ctx context.Context, f repo.SearchFilters, page, pageSize int) ([]repo.JobRow, int64, error)
	// TotalCount counts active jobs matching f.
	TotalCount(ctx context.Context, f repo.SearchFilters) (int64, error)
	// Post publishes a new job for the employer.
	Post(ctx context.Context, employerID int64, job *domain.JobPosting) (*domain.JobPosting, error)
	// Apply files an application; duplicates yield ErrAlreadyApplied.
	Apply(ctx context.Context, employeeID, jobID int64) (*domain.Application, error)
	// Recommend suggests up to three jobs related to jobID, excluding ones
	// the employee already applied to.
	Recommend(ctx context.Context, jobID, employeeID int64) ([]repo.JobRow, error)
	// Shortlist, Unshortlist, Dislike and Undislike maintain the per-employee
	// job marks. Removals are idempotent.
	Shortlist(ctx context.Context, employeeID, jobID int64) error
	Unshortlist(ctx context.Context, employeeID, jobID int64) error
	Dislike(ctx context.Context, employeeID, jobID int64) error
	Undislike(ctx context.Context, employeeID, jobID int64) error
	// ShortlistedJobs lists the employee's shortlisted jobs.
	ShortlistedJobs(ctx context.Context, employeeID int64) ([]repo.JobRow, error)
	// ChangeApplicationStatus applies a legal status transition.
	ChangeApplicationStatus(ctx context.Context, employeeID, jobID int64, status string) error
	// ApplicationsForEmployer lists applications to the employer's jobs.
	ApplicationsForEmployer(ctx context.Context, employerID int64) ([]repo.EmployerApplicationRow, error)
	// ApplicationsForEmployee lists the employee's own applications.
	ApplicationsForEmployee(ctx context.Context, employeeID int64) ([]repo.EmployeeApplicationRow, error)
}

// StatsService defines the aggregate statistics operations consumed by HTTP
// handlers. All results come from read-only SQL over the reporting views.
type StatsService interface {
	LocationStats(ctx context.Context, cityID int64) (*repo.LocationStatsResult, error)
	CompanyStats(ctx context.Context, companyID int64) (*repo.CompanyStatsResult, error)
	ShortlistRatioStats(ctx context.Context) ([]repo.ShortlistRatioRow, error)
	ShortlistRatioForJob(ctx context.Context, jobID int64) (*repo.ShortlistRatioRow, error)
	ShortlistRatiosForEmployer(ctx context.Context, employerID int64) ([]repo.ShortlistRatioRow, error)
	LocationMinSalary(ctx context.Context) ([]repo.LocationSalaryRow, error)
	LocationMaxSalary(ctx context.Context) ([]repo.LocationSalaryRow, error)
}

// ReferenceService defines read-only reference data listings.
type ReferenceService interface {
	Companies(ctx context.Context) ([]domain.Company, error)
	Locations(ctx context.Context) ([]repo.LocationRow, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for accounts, jobs, statistics, and
// reference data. It depends on abstract service interfaces to keep transport
// concerns separate from business logic.
type Handlers struct {
	authSvc  AuthService
	jobSvc   JobService
	statsSvc StatsService
	refSvc   ReferenceService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(authSvc AuthService, jobSvc JobService, statsSvc StatsService, refSvc ReferenceService) *Handlers {
	return &Handlers{authSvc: authSvc, jobSvc: jobSvc, statsSvc: statsSvc, refSvc: refSvc}
}

// requireUser extracts the caller's numeric ID set by the identity middleware.
// When no valid identity is present it writes a 401 response and returns
// ok=false; the handler must return immediately in that case.
func requireUser(c *gin.Context) (int64, bool) {
	id, ok := middleware.UserIDFrom(c)
	if !ok {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "missing or invalid X-User-ID header")
		return 0, false
	}
	return id, true
}

//
// DTOs
//

// SignupRequest is the JSON payload for registering a user.
type SignupRequest struct {
	// Phone is the primary identifier and must be unused.
	Phone string `json:"phone" binding:"required,min=3,max=32" example:"+306912345678"`
	// Email is optional but must be unused when present.
	Email string `json:"email" binding:"omitempty,email" example:"maria@example.com"`
	// Password is stored only as a bcrypt hash.
	Password string `json:"password" binding:"required,min=8,max=72" example:"s3cr3t-pass"`
	// UserName is the display name.
	UserName string `json:"userName" binding:"required,min=1,max=255" example:"Maria P."`
	// Role is "employee" or "employer" (case-insensitive).
	Role string `json:"role" binding:"required" example:"employee"`
	// CityName plus CountryName must resolve to a known city.
	CityName    string `json:"cityName" binding:"required" example:"Athens"`
	CountryName string `json:"countryName" binding:"required" example:"Greece"`
	// CompanyName is required for employers and must name a known company.
	CompanyName string `json:"companyName" example:"Acme Ltd"`
	// ResumeURL optionally seeds the employee profile.
	ResumeURL string `json:"resumeUrl" example:"https://cv.example.com/maria.pdf"`
}

// SignupResponse returns the identifier of a freshly registered user.
type SignupResponse struct {
	UserID int64 `json:"userId" example:"42"`
}

// LoginRequest is the JSON payload for credential verification. Identifier
// matches either the phone number or the email address.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required" example:"+306912345678"`
	Password   string `json:"password" binding:"required" example:"s3cr3t-pass"`
}

// UpdateProfileRequest is the JSON payload for updating an employee resume.
type UpdateProfileRequest struct {
	ResumeURL string `json:"resumeUrl" binding:"required,max=512" example:"https://cv.example.com/maria-v2.pdf"`
}

//
// Handlers
//

// Signup godoc
// @ID          signupUser
// @Summary     Register a new user
// @Description Creates a user and its employee or employer extension in one transaction.
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SignupRequest  true  "Signup payload"
//
// @Success     201  {object}  handlers.SignupResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request / unknown role"
// @Failure     404  {object}  handlers.ErrorResponse  "City or company not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Phone or email already registered"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/signup [post]
func (h *Handlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	id, err := h.authSvc.SignUp(c.Request.Context(), services.SignupProfile{
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		Password:    req.Password,
		UserName:    strings.TrimSpace(req.UserName),
		Role:        req.Role,
		CityName:    strings.TrimSpace(req.CityName),
		CountryName: strings.TrimSpace(req.CountryName),
		CompanyName: strings.TrimSpace(req.CompanyName),
		ResumeURL:   strings.TrimSpace(req.ResumeURL),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateUser):
			fail(c, http.StatusConflict, ErrCodeDuplicateUser, err.Error())
		case errors.Is(err, services.ErrCityNotFound):
			fail(c, http.StatusNotFound, ErrCodeCityNotFound, err.Error())
		case errors.Is(err, services.ErrCompanyNotFound):
			fail(c, http.StatusNotFound, ErrCodeCompanyNotFound, err.Error())
		case errors.Is(err, services.ErrInvalidRole):
			fail(c, http.StatusBadRequest, ErrCodeInvalidRole, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, SignupResponse{UserID: id})
}

// Login godoc
// @ID          loginUser
// @Summary     Verify credentials
// @Description Checks identifier (phone or email) plus password and returns the enriched profile.
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Login payload"
//
// @Success     200  {object}  services.UserProfile
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Invalid credentials"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	profile, err := h.authSvc.Login(c.Request.Context(), strings.TrimSpace(req.Identifier), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrUserNotFound):
			// Unknown identifier and bad password are indistinguishable on
			// the wire so login cannot be used to probe for accounts.
			fail(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, services.ErrInvalidCredentials.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, profile)
}

// UpdateEmployeeProfile godoc
// @ID          updateEmployeeProfile
// @Summary     Update the caller's resume URL
// @Description Replaces the resume URL on the employee profile identified by X-User-ID.
// @Tags        Users
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  int  true  "Employee user ID"  example(42)
// @Param       body       body    handlers.UpdateProfileRequest  true  "New resume URL"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing identity"
// @Failure     404  {object}  handlers.ErrorResponse  "Employee not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /employees/profile [put]
func (h *Handlers) UpdateEmployeeProfile(c *gin.Context) {
	uid, okID := requireUser(c)
	if !okID {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ResumeURL) == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "resumeUrl required")
		return
	}

	if err := h.authSvc.UpdateEmployeeProfile(c.Request.Context(), uid, strings.TrimSpace(req.ResumeURL)); err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			fail(c, http.StatusNotFound, ErrCodeUserNotFound, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
