// Package services – StatsService
//
// Aggregate statistics over the derived views. The service is a thin pass-
// through to the repo queries; the semantics (independent per-metric top
// deciles, NULL ratios for jobs without applications) live in the SQL.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobboard-backend/internal/repo"
)

// StatsService provides the statistics read models.
type StatsService struct {
	// DB is the GORM handle used for all statistics queries.
	DB *gorm.DB
}

// LocationStats returns mean and top-decile apply/dislike/shortlist averages
// for jobs in a city.
func (s *StatsService) LocationStats(ctx context.Context, cityID int64) (*repo.LocationStatsResult, error) {
	return repo.LocationStats(ctx, s.DB, cityID)
}

// CompanyStats returns a company's averages plus the top-decile averages
// among companies sharing a focus industry.
func (s *StatsService) CompanyStats(ctx context.Context, companyID int64) (*repo.CompanyStatsResult, error) {
	return repo.CompanyStats(ctx, s.DB, companyID)
}

// ShortlistRatioStats returns the ten jobs with the best shortlist-to-
// application ratio.
func (s *StatsService) ShortlistRatioStats(ctx context.Context) ([]repo.ShortlistRatioRow, error) {
	return repo.ShortlistRatios(ctx, s.DB)
}

// ShortlistRatioForJob returns the ratio row for one job, or ErrJobNotFound.
func (s *StatsService) ShortlistRatioForJob(ctx context.Context, jobID int64) (*repo.ShortlistRatioRow, error) {
	row, err := repo.ShortlistRatioForJob(ctx, s.DB, jobID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return row, nil
}

// ShortlistRatiosForEmployer returns ratio rows for the employer's postings.
func (s *StatsService) ShortlistRatiosForEmployer(ctx context.Context, employerID int64) ([]repo.ShortlistRatioRow, error) {
	return repo.ShortlistRatiosForEmployer(ctx, s.DB, employerID)
}

// LocationMinSalary returns average per-job minimum salary by location.
func (s *StatsService) LocationMinSalary(ctx context.Context) ([]repo.LocationSalaryRow, error) {
	return repo.LocationMinSalary(ctx, s.DB)
}

// LocationMaxSalary returns average per-job maximum salary by location.
func (s *StatsService) LocationMaxSalary(ctx context.Context) ([]repo.LocationSalaryRow, error) {
	return repo.LocationMaxSalary(ctx, s.DB)
}
