package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-jobboard-backend/internal/domain"
	"github.com/tbourn/go-jobboard-backend/internal/http/middleware"
	"github.com/tbourn/go-jobboard-backend/internal/repo"
	"github.com/tbourn/go-jobboard-backend/internal/services"
)

// ---------- service stubs ----------
//
// Each stub implements one handler contract with overridable function fields;
// a nil field yields a benign zero result so tests only wire what they assert.

type stubAuthSvc struct {
	signUp        func(context.Context, services.SignupProfile) (int64, error)
	login         func(context.Context, string, string) (*services.UserProfile, error)
	updateProfile func(context.Context, int64, string) error
}

func (s stubAuthSvc) SignUp(ctx context.Context, p services.SignupProfile) (int64, error) {
	if s.signUp != nil {
		return s.signUp(ctx, p)
	}
	return 1, nil
}

func (s stubAuthSvc) Login(ctx context.Context, identifier, password string) (*services.UserProfile, error) {
	if s.login != nil {
		return s.login(ctx, identifier, password)
	}
	return &services.UserProfile{UserID: 1}, nil
}

func (s stubAuthSvc) UpdateEmployeeProfile(ctx context.Context, employeeID int64, resumeURL string) error {
	if s.updateProfile != nil {
		return s.updateProfile(ctx, employeeID, resumeURL)
	}
	return nil
}

type stubJobSvc struct {
	search       func(context.Context, repo.SearchFilters, int, int) ([]repo.JobRow, int64, error)
	totalCount   func(context.Context, repo.SearchFilters) (int64, error)
	post         func(context.Context, int64, *domain.JobPosting) (*domain.JobPosting, error)
	apply        func(context.Context, int64, int64) (*domain.Application, error)
	recommend    func(context.Context, int64, int64) ([]repo.JobRow, error)
	shortlist    func(context.Context, int64, int64) error
	unshortlist  func(context.Context, int64, int64) error
	dislike      func(context.Context, int64, int64) error
	undislike    func(context.Context, int64, int64) error
	shortlisted  func(context.Context, int64) ([]repo.JobRow, error)
	changeStatus func(context.Context, int64, int64, string) error
	forEmployer  func(context.Context, int64) ([]repo.EmployerApplicationRow, error)
	forEmployee  func(context.Context, int64) ([]repo.EmployeeApplicationRow, error)
}

func (s stubJobSvc) Search(ctx context.Context, f repo.SearchFilters, page, pageSize int) ([]repo.JobRow, int64, error) {
	if s.search != nil {
		return s.search(ctx, f, page, pageSize)
	}
	return []repo.JobRow{}, 0, nil
}

func (s stubJobSvc) TotalCount(ctx context.Context, f repo.SearchFilters) (int64, error) {
	if s.totalCount != nil {
		return s.totalCount(ctx, f)
	}
	return 0, nil
}

func (s stubJobSvc) Post(ctx context.Context, employerID int64, job *domain.JobPosting) (*domain.JobPosting, error) {
	if s.post != nil {
		return s.post(ctx, employerID, job)
	}
	job.JobID = 1
	job.EmployerID = employerID
	return job, nil
}

func (s stubJobSvc) Apply(ctx context.Context, employeeID, jobID int64) (*domain.Application, error) {
	if s.apply != nil {
		return s.apply(ctx, employeeID, jobID)
	}
	return &domain.Application{ApplicationID: 1, EmployeeID: employeeID, JobID: jobID, Status: domain.StatusApplied}, nil
}

func (s stubJobSvc) Recommend(ctx context.Context, jobID, employeeID int64) ([]repo.JobRow, error) {
	if s.recommend != nil {
		return s.recommend(ctx, jobID, employeeID)
	}
	return []repo.JobRow{}, nil
}

func (s stubJobSvc) Shortlist(ctx context.Context, employeeID, jobID int64) error {
	if s.shortlist != nil {
		return s.shortlist(ctx, employeeID, jobID)
	}
	return nil
}

func (s stubJobSvc) Unshortlist(ctx context.Context, employeeID, jobID int64) error {
	if s.unshortlist != nil {
		return s.unshortlist(ctx, employeeID, jobID)
	}
	return nil
}

func (s stubJobSvc) Dislike(ctx context.Context, employeeID, jobID int64) error {
	if s.dislike != nil {
		return s.dislike(ctx, employeeID, jobID)
	}
	return nil
}

func (s stubJobSvc) Undislike(ctx context.Context, employeeID, jobID int64) error {
	if s.undislike != nil {
		return s.undislike(ctx, employeeID, jobID)
	}
	return nil
}

func (s stubJobSvc) ShortlistedJobs(ctx context.Context, employeeID int64) ([]repo.JobRow, error) {
	if s.shortlisted != nil {
		return s.shortlisted(ctx, employeeID)
	}
	return []repo.JobRow{}, nil
}

func (s stubJobSvc) ChangeApplicationStatus(ctx context.Context, employeeID, jobID int64, status string) error {
	if s.changeStatus != nil {
		return s.changeStatus(ctx, employeeID, jobID, status)
	}
	return nil
}

func (s stubJobSvc) ApplicationsForEmployer(ctx context.Context, employerID int64) ([]repo.EmployerApplicationRow, error) {
	if s.forEmployer != nil {
		return s.forEmployer(ctx, employerID)
	}
	return []repo.EmployerApplicationRow{}, nil
}

func (s stubJobSvc) ApplicationsForEmployee(ctx context.Context, employeeID int64) ([]repo.EmployeeApplicationRow, error) {
	if s.forEmployee != nil {
		return s.forEmployee(ctx, employeeID)
	}
	return []repo.EmployeeApplicationRow{}, nil
}

type stubStatsSvc struct {
	locationStats func(context.Context, int64) (*repo.LocationStatsResult, error)
	companyStats  func(context.Context, int64) (*repo.CompanyStatsResult, error)
	ratios        func(context.Context) ([]repo.ShortlistRatioRow, error)
	ratioForJob   func(context.Context, int64) (*repo.ShortlistRatioRow, error)
	byEmployer    func(context.Context, int64) ([]repo.ShortlistRatioRow, error)
	minSalary     func(context.Context) ([]repo.LocationSalaryRow, error)
	maxSalary     func(context.Context) ([]repo.LocationSalaryRow, error)
}

func (s stubStatsSvc) LocationStats(ctx context.Context, cityID int64) (*repo.LocationStatsResult, error) {
	if s.locationStats != nil {
		return s.locationStats(ctx, cityID)
	}
	return &repo.LocationStatsResult{}, nil
}

func (s stubStatsSvc) CompanyStats(ctx context.Context, companyID int64) (*repo.CompanyStatsResult, error) {
	if s.companyStats != nil {
		return s.companyStats(ctx, companyID)
	}
	return &repo.CompanyStatsResult{}, nil
}

func (s stubStatsSvc) ShortlistRatioStats(ctx context.Context) ([]repo.ShortlistRatioRow, error) {
	if s.ratios != nil {
		return s.ratios(ctx)
	}
	return []repo.ShortlistRatioRow{}, nil
}

func (s stubStatsSvc) ShortlistRatioForJob(ctx context.Context, jobID int64) (*repo.ShortlistRatioRow, error) {
	if s.ratioForJob != nil {
		return s.ratioForJob(ctx, jobID)
	}
	return &repo.ShortlistRatioRow{JobID: jobID}, nil
}

func (s stubStatsSvc) ShortlistRatiosForEmployer(ctx context.Context, employerID int64) ([]repo.ShortlistRatioRow, error) {
	if s.byEmployer != nil {
		return s.byEmployer(ctx, employerID)
	}
	return []repo.ShortlistRatioRow{}, nil
}

func (s stubStatsSvc) LocationMinSalary(ctx context.Context) ([]repo.LocationSalaryRow, error) {
	if s.minSalary != nil {
		return s.minSalary(ctx)
	}
	return []repo.LocationSalaryRow{}, nil
}

func (s stubStatsSvc) LocationMaxSalary(ctx context.Context) ([]repo.LocationSalaryRow, error) {
	if s.maxSalary != nil {
		return s.maxSalary(ctx)
	}
	return []repo.LocationSalaryRow{}, nil
}

type stubRefSvc struct {
	companies func(context.Context) ([]domain.Company, error)
	locations func(context.Context) ([]repo.LocationRow, error)
}

func (s stubRefSvc) Companies(ctx context.Context) ([]domain.Company, error) {
	if s.companies != nil {
		return s.companies(ctx)
	}
	return []domain.Company{}, nil
}

func (s stubRefSvc) Locations(ctx context.Context) ([]repo.LocationRow, error) {
	if s.locations != nil {
		return s.locations(ctx)
	}
	return []repo.LocationRow{}, nil
}

// ---------- wiring helpers ----------

// newTestRouter registers the handlers behind the identity middleware, the
// same order production uses.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Identity())
	return r
}
