// Package services – JobService
//
// This file implements the JobService: searching and posting jobs, applying,
// shortlisting/disliking, recommendations, and application status changes.
// The service stays thin on purpose: every interesting operation is a
// parameterized query in the repo layer, and the service adds pagination
// clamping, duplicate handling, and the status transition rules.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobboard-backend/internal/domain"
	"github.com/tbourn/go-jobboard-backend/internal/repo"
)

// JobService provides job search, posting, and the employee/job relations.
type JobService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// DefaultPageSize is used when the caller sends no page size.
	DefaultPageSize int
	// MaxPageSize caps the page size a caller may request.
	MaxPageSize int
}

// NewJobService constructs a JobService with sane pagination defaults.
func NewJobService(db *gorm.DB) *JobService {
	return &JobService{DB: db, DefaultPageSize: 20, MaxPageSize: 100}
}

// clampPageSize applies the default and the cap to a requested page size.
func (s *JobService) clampPageSize(pageSize int) int {
	if pageSize <= 0 {
		if s.DefaultPageSize > 0 {
			return s.DefaultPageSize
		}
		return 20
	}
	if s.MaxPageSize > 0 && pageSize > s.MaxPageSize {
		return s.MaxPageSize
	}
	return pageSize
}

// Search returns one page of active jobs matching the filters plus the total
// count under the same predicate, so pagination metadata and page contents
// cannot diverge. page is 1-based; invalid page/pageSize fall back to
// defaults.
func (s *JobService) Search(ctx context.Context, f repo.SearchFilters, page, pageSize int) ([]repo.JobRow, int64, error) {
	if page < 1 {
		page = 1
	}
	pageSize = s.clampPageSize(pageSize)
	offset := (page - 1) * pageSize

	total, err := repo.CountJobs(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []repo.JobRow{}, 0, nil
	}

	items, err := repo.SearchJobs(ctx, s.DB, f, pageSize, offset)
	return items, total, err
}

// TotalCount returns the number of jobs matching the filters.
func (s *JobService) TotalCount(ctx context.Context, f repo.SearchFilters) (int64, error) {
	return repo.CountJobs(ctx, s.DB, f)
}

// Post inserts a new posting owned by employerID. No duplicate detection;
// employers may legitimately run identical openings.
func (s *JobService) Post(ctx context.Context, employerID int64, job *domain.JobPosting) (*domain.JobPosting, error) {
	job.EmployerID = employerID
	if job.WorkType == "" {
		job.WorkType = "Full-time"
	}
	if err := repo.CreateJob(ctx, s.DB, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Apply records an application for the (employee, job) pair. The existence
// pre-check yields a friendly error on the common path; the unique index is
// the authoritative guard when two requests race.
func (s *JobService) Apply(ctx context.Context, employeeID, jobID int64) (*domain.Application, error) {
	if _, err := repo.GetApplication(ctx, s.DB, employeeID, jobID); err == nil {
		return nil, ErrAlreadyApplied
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	a, err := repo.CreateApplication(ctx, s.DB, employeeID, jobID)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}
	return a, nil
}

// Recommend returns up to three same-industry jobs the employee has not
// applied to, ranked by total application count. Returns ErrJobNotFound when
// the reference job does not exist.
func (s *JobService) Recommend(ctx context.Context, jobID, employeeID int64) ([]repo.JobRow, error) {
	if _, err := repo.GetJob(ctx, s.DB, jobID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return repo.RecommendedJobs(ctx, s.DB, jobID, employeeID)
}

// Shortlist adds a job to the employee's shortlist.
// A repeat add returns ErrAlreadyShortlisted.
func (s *JobService) Shortlist(ctx context.Context, employeeID, jobID int64) error {
	if err := repo.AddShortlist(ctx, s.DB, employeeID, jobID); err != nil {
		if isDuplicate(err) {
			return ErrAlreadyShortlisted
		}
		return err
	}
	return nil
}

// Unshortlist removes a job from the employee's shortlist. Idempotent.
func (s *JobService) Unshortlist(ctx context.Context, employeeID, jobID int64) error {
	return repo.RemoveShortlist(ctx, s.DB, employeeID, jobID)
}

// Dislike marks a job as disliked. A repeat returns ErrAlreadyDisliked.
func (s *JobService) Dislike(ctx context.Context, employeeID, jobID int64) error {
	if err := repo.AddDislike(ctx, s.DB, employeeID, jobID); err != nil {
		if isDuplicate(err) {
			return ErrAlreadyDisliked
		}
		return err
	}
	return nil
}

// Undislike clears a dislike. Idempotent.
func (s *JobService) Undislike(ctx context.Context, employeeID, jobID int64) error {
	return repo.RemoveDislike(ctx, s.DB, employeeID, jobID)
}

// ShortlistedJobs lists the jobs on an employee's shortlist, newest first.
func (s *JobService) ShortlistedJobs(ctx context.Context, employeeID int64) ([]repo.JobRow, error) {
	return repo.ShortlistedJobs(ctx, s.DB, employeeID)
}

// ChangeApplicationStatus moves one application to a new status, enforcing
// the legal transition set: Applied→Accepted, Applied→Rejected,
// Applied→Withdrawn. The Accepted→Withdrawn cascade on sibling applications
// is carried out by the database trigger, never here.
//
// Errors:
//   - ErrInvalidStatus for a status outside the known set.
//   - ErrApplicationNotFound when the (employee, job) pair has no application.
//   - ErrInvalidStatusTransition for any move outside the legal set,
//     including no-op transitions.
func (s *JobService) ChangeApplicationStatus(ctx context.Context, employeeID, jobID int64, status string) error {
	switch status {
	case domain.StatusApplied, domain.StatusAccepted, domain.StatusRejected, domain.StatusWithdrawn:
	default:
		return ErrInvalidStatus
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := repo.GetApplication(ctx, tx, employeeID, jobID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}
		if !domain.CanTransition(a.Status, status) {
			return ErrInvalidStatusTransition
		}
		return repo.UpdateApplicationStatus(ctx, tx, employeeID, jobID, status)
	})
}

// ApplicationsForEmployer returns every application made to the employer's
// postings.
func (s *JobService) ApplicationsForEmployer(ctx context.Context, employerID int64) ([]repo.EmployerApplicationRow, error) {
	return repo.ListApplicationsByEmployer(ctx, s.DB, employerID)
}

// ApplicationsForEmployee returns the employee's application history.
func (s *JobService) ApplicationsForEmployee(ctx context.Context, employeeID int64) ([]repo.EmployeeApplicationRow, error) {
	return repo.ListApplicationsByEmployee(ctx, s.DB, employeeID)
}
