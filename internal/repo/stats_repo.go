// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the aggregate statistics queries over
// the JobAverageStats and ShortlistApplicationRatio views.
//
// The top-decile figures are computed independently per metric with
// NTILE(10): each metric gets its own ranking, so a job can sit in the top
// decile for applications without being there for shortlists. This is a
// deliberate asymmetry, not a joint "top 10% of jobs by combined score".
// Averages come back as nullable floats: NULL means the scope had no jobs
// at all, which is different from an average of zero.
package repo

import (
	"context"

	"gorm.io/gorm"
)

// MetricAverages holds mean apply/dislike/shortlist counts for a scope.
type MetricAverages struct {
	AvgApply     *float64 `json:"avgApply"     gorm:"column:avg_apply"`
	AvgDislike   *float64 `json:"avgDislike"   gorm:"column:avg_dislike"`
	AvgShortlist *float64 `json:"avgShortlist" gorm:"column:avg_shortlist"`
}

// MetricTopDecile holds the per-metric top-decile averages for a scope.
type MetricTopDecile struct {
	TopApply     *float64 `json:"topApply"     gorm:"column:top_apply"`
	TopDislike   *float64 `json:"topDislike"   gorm:"column:top_dislike"`
	TopShortlist *float64 `json:"topShortlist" gorm:"column:top_shortlist"`
}

// LocationStatsResult pairs a city's metric averages with the independent
// top-decile averages across the same city.
type LocationStatsResult struct {
	Averages  MetricAverages  `json:"averages"`
	TopDecile MetricTopDecile `json:"top10Percent"`
}

// CompanyStatsResult pairs a company's metric averages with the top-decile
// averages across companies sharing a focus industry.
type CompanyStatsResult struct {
	CompanyAverages   MetricAverages  `json:"companyAverages"`
	IndustryTopDecile MetricTopDecile `json:"industryTop10Percent"`
}

// ShortlistRatioRow is one row of the ShortlistApplicationRatio view. Ratio
// is nil for jobs with zero applications.
type ShortlistRatioRow struct {
	JobID             int64    `json:"jobId"             gorm:"column:JobId"`
	JobTitle          string   `json:"jobTitle"          gorm:"column:JobTitle"`
	TotalShortlists   int64    `json:"totalShortlists"   gorm:"column:TotalSL"`
	TotalApplications int64    `json:"totalApplications" gorm:"column:TotalApp"`
	Ratio             *float64 `json:"ratio"             gorm:"column:ShortlistToApplicationRatio"`
}

// LocationSalaryRow is the average of per-job salary bounds for one
// (city, country) pair.
type LocationSalaryRow struct {
	CityName    string   `json:"cityName"    gorm:"column:CityName"`
	CountryName string   `json:"countryName" gorm:"column:CountryName"`
	AvgSalary   *float64 `json:"avgSalary"   gorm:"column:avg_salary"`
}

// LocationStats computes the mean and independent top-decile averages of the
// apply/dislike/shortlist counts for all jobs in a city.
func LocationStats(ctx context.Context, db *gorm.DB, cityID int64) (*LocationStatsResult, error) {
	var res LocationStatsResult

	avgSQL := `SELECT
	               AVG(ApplyCount) AS avg_apply,
	               AVG(DislikeCount) AS avg_dislike,
	               AVG(ShortlistCount) AS avg_shortlist
	           FROM JobAverageStats
	           WHERE CityId = ?`
	if err := db.WithContext(ctx).Raw(avgSQL, cityID).Scan(&res.Averages).Error; err != nil {
		return nil, err
	}

	topSQL := `SELECT
	               (SELECT AVG(ApplyCount) FROM (
	                   SELECT ApplyCount, NTILE(10) OVER (ORDER BY ApplyCount DESC) AS nt
	                   FROM JobAverageStats WHERE CityId = ?
	               ) WHERE nt = 1) AS top_apply,
	               (SELECT AVG(DislikeCount) FROM (
	                   SELECT DislikeCount, NTILE(10) OVER (ORDER BY DislikeCount) AS nt
	                   FROM JobAverageStats WHERE CityId = ?
	               ) WHERE nt = 1) AS top_dislike,
	               (SELECT AVG(ShortlistCount) FROM (
	                   SELECT ShortlistCount, NTILE(10) OVER (ORDER BY ShortlistCount DESC) AS nt
	                   FROM JobAverageStats WHERE CityId = ?
	               ) WHERE nt = 1) AS top_shortlist`
	if err := db.WithContext(ctx).Raw(topSQL, cityID, cityID, cityID).Scan(&res.TopDecile).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// CompanyStats computes a company's metric averages plus the top-decile
// averages among companies sharing at least one focus industry with it
// (the company itself excluded).
func CompanyStats(ctx context.Context, db *gorm.DB, companyID int64) (*CompanyStatsResult, error) {
	var res CompanyStatsResult

	avgSQL := `SELECT
	               AVG(ApplyCount) AS avg_apply,
	               AVG(DislikeCount) AS avg_dislike,
	               AVG(ShortlistCount) AS avg_shortlist
	           FROM JobAverageStats
	           WHERE CompanyId = ?`
	if err := db.WithContext(ctx).Raw(avgSQL, companyID).Scan(&res.CompanyAverages).Error; err != nil {
		return nil, err
	}

	topSQL := `WITH SameFocusCompanies AS (
	               SELECT DISTINCT c2.CompanyId
	               FROM Companies c1
	               JOIN FocusOn f1 ON c1.CompanyId = f1.CompanyId
	               JOIN FocusOn f2 ON f1.IndustryId = f2.IndustryId
	               JOIN Companies c2 ON f2.CompanyId = c2.CompanyId
	               WHERE c1.CompanyId = ?
	               AND c2.CompanyId != c1.CompanyId
	           )
	           SELECT
	               (SELECT AVG(ApplyCount) FROM (
	                   SELECT ApplyCount, NTILE(10) OVER (ORDER BY ApplyCount DESC) AS nt
	                   FROM JobAverageStats
	                   WHERE CompanyId IN (SELECT CompanyId FROM SameFocusCompanies)
	               ) WHERE nt = 1) AS top_apply,
	               (SELECT AVG(DislikeCount) FROM (
	                   SELECT DislikeCount, NTILE(10) OVER (ORDER BY DislikeCount) AS nt
	                   FROM JobAverageStats
	                   WHERE CompanyId IN (SELECT CompanyId FROM SameFocusCompanies)
	               ) WHERE nt = 1) AS top_dislike,
	               (SELECT AVG(ShortlistCount) FROM (
	                   SELECT ShortlistCount, NTILE(10) OVER (ORDER BY ShortlistCount DESC) AS nt
	                   FROM JobAverageStats
	                   WHERE CompanyId IN (SELECT CompanyId FROM SameFocusCompanies)
	               ) WHERE nt = 1) AS top_shortlist`
	if err := db.WithContext(ctx).Raw(topSQL, companyID).Scan(&res.IndustryTopDecile).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

// ShortlistRatios returns the ten jobs with the highest shortlist-to-
// application ratio. Jobs with no applications carry a NULL ratio and sort
// last under DESC in SQLite.
func ShortlistRatios(ctx context.Context, db *gorm.DB) ([]ShortlistRatioRow, error) {
	var out []ShortlistRatioRow
	err := db.WithContext(ctx).
		Raw("SELECT * FROM ShortlistApplicationRatio ORDER BY ShortlistToApplicationRatio DESC LIMIT 10").
		Scan(&out).Error
	return out, err
}

// ShortlistRatioForJob returns the ratio row for one job.
// Returns ErrNotFound for unknown jobs.
func ShortlistRatioForJob(ctx context.Context, db *gorm.DB, jobID int64) (*ShortlistRatioRow, error) {
	var row ShortlistRatioRow
	res := db.WithContext(ctx).
		Raw("SELECT * FROM ShortlistApplicationRatio WHERE JobId = ?", jobID).
		Scan(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// ShortlistRatiosForEmployer returns the ratio rows for every posting owned
// by the employer, best ratio first.
func ShortlistRatiosForEmployer(ctx context.Context, db *gorm.DB, employerID int64) ([]ShortlistRatioRow, error) {
	sql := `SELECT r.* FROM ShortlistApplicationRatio r
	        JOIN JobPostings j ON r.JobId = j.JobId
	        WHERE j.EmployerId = ?
	        ORDER BY r.ShortlistToApplicationRatio DESC`
	var out []ShortlistRatioRow
	err := db.WithContext(ctx).Raw(sql, employerID).Scan(&out).Error
	return out, err
}

// LocationMinSalary averages the per-job minimum salary by (city, country),
// highest first.
func LocationMinSalary(ctx context.Context, db *gorm.DB) ([]LocationSalaryRow, error) {
	sql := `SELECT CityName, CountryName, AVG(MinSalary) AS avg_salary
	        FROM JobDetailsView
	        GROUP BY CityName, CountryName
	        ORDER BY avg_salary DESC`
	var out []LocationSalaryRow
	err := db.WithContext(ctx).Raw(sql).Scan(&out).Error
	return out, err
}

// LocationMaxSalary averages the per-job maximum salary by (city, country),
// highest first.
func LocationMaxSalary(ctx context.Context, db *gorm.DB) ([]LocationSalaryRow, error) {
	sql := `SELECT CityName, CountryName, AVG(MaxSalary) AS avg_salary
	        FROM JobDetailsView
	        GROUP BY CityName, CountryName
	        ORDER BY avg_salary DESC`
	var out []LocationSalaryRow
	err := db.WithContext(ctx).Raw(sql).Scan(&out).Error
	return out, err
}
