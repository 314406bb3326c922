// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the job search, posting, recommendation,
// and shortlist queries.
//
// Search runs against the JobDetailsView projection, so every row already
// carries the denormalized company/city/country names. Filters are NULL-safe:
// a nil filter contributes no predicate at all, it never degenerates to a
// comparison against an empty value. The per-job apply/dislike/shortlist
// counts are live counts computed by CTEs, not stored columns.
package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobboard-backend/internal/domain"
)

// JobRow is the search/read projection of a job posting: the JobDetailsView
// columns plus the live relation counts.
type JobRow struct {
	JobID          int64     `json:"jobId"          gorm:"column:JobId"`
	EmployerID     int64     `json:"employerId"     gorm:"column:EmployerId"`
	Title          string    `json:"title"          gorm:"column:Title"`
	Description    string    `json:"description"    gorm:"column:Description"`
	MinSalary      *float64  `json:"minSalary"      gorm:"column:MinSalary"`
	MaxSalary      *float64  `json:"maxSalary"      gorm:"column:MaxSalary"`
	WorkType       string    `json:"workType"       gorm:"column:WorkType"`
	CityID         int64     `json:"cityId"         gorm:"column:CityId"`
	IsActive       bool      `json:"isActive"       gorm:"column:IsActive"`
	PostDate       time.Time `json:"postDate"       gorm:"column:PostDate"`
	CompanyID      int64     `json:"companyId"      gorm:"column:CompanyId"`
	CompanyName    string    `json:"companyName"    gorm:"column:CompanyName"`
	CityName       string    `json:"cityName"       gorm:"column:CityName"`
	CountryName    string    `json:"countryName"    gorm:"column:CountryName"`
	ApplyCount     int64     `json:"applyCount"     gorm:"column:apply_count"`
	DislikeCount   int64     `json:"dislikeCount"   gorm:"column:dislike_count"`
	ShortlistCount int64     `json:"shortlistCount" gorm:"column:shortlist_count"`
}

// SearchFilters carries the optional job search predicates. Nil means
// "no constraint". ExcludeDislikedFor, when set, removes jobs that employee
// has disliked from the result.
type SearchFilters struct {
	CityID             *int64
	CompanyID          *int64
	MinSalary          *float64
	MaxSalary          *float64
	WorkType           *string
	ExcludeDislikedFor *int64
}

// searchPredicate renders the shared WHERE clause for SearchJobs and
// CountJobs so page results and totals can never diverge.
func searchPredicate(f SearchFilters) (string, []any) {
	conds := []string{"j.IsActive = 1"}
	var args []any

	if f.CityID != nil {
		conds = append(conds, "j.CityId = ?")
		args = append(args, *f.CityID)
	}
	if f.CompanyID != nil {
		conds = append(conds, "j.CompanyId = ?")
		args = append(args, *f.CompanyID)
	}
	if f.MinSalary != nil {
		conds = append(conds, "j.MinSalary >= ?")
		args = append(args, *f.MinSalary)
	}
	if f.MaxSalary != nil {
		conds = append(conds, "j.MaxSalary <= ?")
		args = append(args, *f.MaxSalary)
	}
	if f.WorkType != nil {
		conds = append(conds, "j.WorkType = ?")
		args = append(args, *f.WorkType)
	}
	if f.ExcludeDislikedFor != nil {
		conds = append(conds, "NOT EXISTS (SELECT 1 FROM Dislike d WHERE d.EmployeeId = ? AND d.JobId = j.JobId)")
		args = append(args, *f.ExcludeDislikedFor)
	}
	return strings.Join(conds, " AND "), args
}

// SearchJobs returns a page of active jobs matching the filters, annotated
// with live apply/dislike/shortlist counts, newest first. Equal post dates
// are tie-broken by JobId descending so consecutive pages never overlap.
// limit <= 0 disables the LIMIT clause; offset <= 0 disables OFFSET.
func SearchJobs(ctx context.Context, db *gorm.DB, f SearchFilters, limit, offset int) ([]JobRow, error) {
	where, args := searchPredicate(f)

	sql := `WITH application_count AS (
	            SELECT JobId, COUNT(*) AS apply_count FROM Applications GROUP BY JobId
	        ),
	        dislike_count AS (
	            SELECT JobId, COUNT(*) AS dislike_count FROM Dislike GROUP BY JobId
	        ),
	        shortlist_count AS (
	            SELECT JobId, COUNT(*) AS shortlist_count FROM Shortlist GROUP BY JobId
	        )
	        SELECT j.*,
	               COALESCE(ac.apply_count, 0) AS apply_count,
	               COALESCE(dc.dislike_count, 0) AS dislike_count,
	               COALESCE(sc.shortlist_count, 0) AS shortlist_count
	        FROM JobDetailsView j
	        LEFT JOIN application_count ac ON j.JobId = ac.JobId
	        LEFT JOIN dislike_count dc ON j.JobId = dc.JobId
	        LEFT JOIN shortlist_count sc ON j.JobId = sc.JobId
	        WHERE ` + where + `
	        ORDER BY j.PostDate DESC, j.JobId DESC`

	if limit > 0 {
		sql += " LIMIT ?"
		args = append(args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		args = append(args, offset)
	}

	var out []JobRow
	err := db.WithContext(ctx).Raw(sql, args...).Scan(&out).Error
	return out, err
}

// CountJobs returns the total number of jobs matching the filters, using the
// exact predicate SearchJobs applies (pagination aside).
func CountJobs(ctx context.Context, db *gorm.DB, f SearchFilters) (int64, error) {
	where, args := searchPredicate(f)
	var total int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM JobDetailsView j WHERE "+where, args...).
		Scan(&total).Error
	return total, err
}

// CreateJob inserts a new JobPosting owned by the given employer. The posting
// starts active with PostDate set to UTC now.
func CreateJob(ctx context.Context, db *gorm.DB, job *domain.JobPosting) error {
	job.IsActive = true
	job.PostDate = time.Now().UTC()
	return db.WithContext(ctx).Create(job).Error
}

// GetJob fetches a single posting by id. Returns ErrNotFound if missing.
func GetJob(ctx context.Context, db *gorm.DB, jobID int64) (*domain.JobPosting, error) {
	var j domain.JobPosting
	if err := db.WithContext(ctx).Where("JobId = ?", jobID).First(&j).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

// RecommendedJobs returns up to three jobs in the same industry as jobID
// (via the employer→company→FocusOn chain) that employeeID has not applied
// to, ranked by total application count descending. Ties fall back to the
// engine's natural row order.
func RecommendedJobs(ctx context.Context, db *gorm.DB, jobID, employeeID int64) ([]JobRow, error) {
	sql := `WITH JobIndustry AS (
	            SELECT j.*, f.IndustryId, e.CompanyId
	            FROM JobPostings j
	            JOIN Employers e ON j.EmployerId = e.UserId
	            JOIN FocusOn f ON e.CompanyId = f.CompanyId
	        )
	        SELECT t.JobId, t.EmployerId, t.Title, t.Description, t.MinSalary, t.MaxSalary,
	               t.WorkType, t.CityId, t.IsActive, t.PostDate, t.CompanyId,
	               v.CompanyName, v.CityName, v.CountryName,
	               COUNT(DISTINCT a.EmployeeId) AS apply_count
	        FROM JobIndustry t
	        JOIN JobDetailsView v ON t.JobId = v.JobId
	        LEFT JOIN Applications a ON t.JobId = a.JobId
	        WHERE t.IndustryId = (
	            SELECT f.IndustryId
	            FROM JobPostings j
	            JOIN Employers e ON j.EmployerId = e.UserId
	            JOIN FocusOn f ON e.CompanyId = f.CompanyId
	            WHERE j.JobId = ?
	        )
	        AND t.JobId NOT IN (
	            SELECT a2.JobId FROM Applications a2 WHERE a2.EmployeeId = ?
	        )
	        GROUP BY t.JobId
	        ORDER BY apply_count DESC
	        LIMIT 3`

	var out []JobRow
	err := db.WithContext(ctx).Raw(sql, jobID, employeeID).Scan(&out).Error
	return out, err
}

// ShortlistedJobs returns the jobs an employee has shortlisted, newest first.
func ShortlistedJobs(ctx context.Context, db *gorm.DB, employeeID int64) ([]JobRow, error) {
	sql := `SELECT j.* FROM JobDetailsView j
	        JOIN Shortlist s ON j.JobId = s.JobId
	        WHERE s.EmployeeId = ?
	        ORDER BY j.PostDate DESC, j.JobId DESC`
	var out []JobRow
	err := db.WithContext(ctx).Raw(sql, employeeID).Scan(&out).Error
	return out, err
}
