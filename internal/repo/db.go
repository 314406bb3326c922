// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// SQLite (pure Go driver): schema migrations, the derived views, and the
// auto-withdraw trigger.
package repo

import (
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/go-jobboard-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// Fail early if parent directory does not exist (instead of sqlite "out of memory (14)" on Windows).
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Trace queries through the global tracer provider (no-op unless enabled).
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	// PRAGMAs
	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA synchronous=NORMAL;")
	db.Exec("PRAGMA foreign_keys=ON;")
	db.Exec("PRAGMA busy_timeout=5000;")

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate creates the base tables. Parents are listed before children so
// foreign keys resolve.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Country{},
		&domain.City{},
		&domain.Company{},
		&domain.Industry{},
		&domain.FocusOn{},
		&domain.User{},
		&domain.Employee{},
		&domain.Employer{},
		&domain.JobPosting{},
		&domain.Application{},
		&domain.Shortlist{},
		&domain.Dislike{},
	)
}

// CreateDatabaseObjects creates the derived views and the auto-withdraw
// trigger. The views are recomputed by the engine on every query; they are
// projections, not materialized caches. Call after AutoMigrate.
func CreateDatabaseObjects(db *gorm.DB) error {
	stmts := []string{
		// Job postings joined with denormalized company/city/country names.
		`CREATE VIEW IF NOT EXISTS JobDetailsView AS
		 SELECT j.*, c.CompanyName, ci.CityName, co.CountryName, c.CompanyId
		 FROM JobPostings j
		 JOIN Employers e ON j.EmployerId = e.UserId
		 JOIN Companies c ON e.CompanyId = c.CompanyId
		 JOIN Cities ci ON j.CityId = ci.CityId
		 JOIN Countries co ON ci.CountryId = co.CountryId`,

		// Per-job apply/dislike/shortlist counts used by the statistics queries.
		`CREATE VIEW IF NOT EXISTS JobAverageStats AS
		 SELECT
		     j.*,
		     e.CompanyId,
		     COUNT(DISTINCT a.EmployeeId) AS ApplyCount,
		     COUNT(DISTINCT d.EmployeeId) AS DislikeCount,
		     COUNT(DISTINCT s.EmployeeId) AS ShortlistCount
		 FROM JobDetailsView j
		 JOIN Employers e ON j.EmployerId = e.UserId
		 LEFT JOIN Applications a ON j.JobId = a.JobId
		 LEFT JOIN Dislike d ON j.JobId = d.JobId
		 LEFT JOIN Shortlist s ON j.JobId = s.JobId
		 GROUP BY j.JobId, j.Title, j.CompanyName, e.CompanyId`,

		// NULL ratio when a job has no applications, distinguishing "no data"
		// from a zero ratio.
		`CREATE VIEW IF NOT EXISTS ShortlistApplicationRatio AS
		 SELECT
		     jp.JobId,
		     jp.Title AS JobTitle,
		     COUNT(DISTINCT sl.EmployeeId) AS TotalSL,
		     COUNT(DISTINCT app.EmployeeId) AS TotalApp,
		     CASE
		         WHEN COUNT(DISTINCT app.EmployeeId) = 0 THEN NULL
		         ELSE CAST(COUNT(DISTINCT sl.EmployeeId) AS REAL) / COUNT(DISTINCT app.EmployeeId)
		     END AS ShortlistToApplicationRatio
		 FROM JobPostings jp
		 LEFT JOIN Shortlist sl ON jp.JobId = sl.JobId
		 LEFT JOIN Applications app ON jp.JobId = app.JobId
		 GROUP BY jp.JobId, jp.Title`,

		// When one application is accepted, every other pending application
		// for the same job is force-withdrawn.
		`CREATE TRIGGER IF NOT EXISTS auto_withdraw_applications
		 AFTER UPDATE ON Applications
		 WHEN NEW.Status = 'Accepted' AND OLD.Status != 'Accepted'
		 BEGIN
		     UPDATE Applications
		     SET Status = 'Withdrawn'
		     WHERE JobId = NEW.JobId
		     AND EmployeeId != NEW.EmployeeId
		     AND Status != 'Withdrawn'
		     AND Status != 'Accepted';
		 END`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return err
		}
	}
	return nil
}

// DropDatabaseObjects removes the derived views and the trigger. Used by
// maintenance flows that need to rebuild them after a schema change.
func DropDatabaseObjects(db *gorm.DB) error {
	stmts := []string{
		"DROP TRIGGER IF EXISTS auto_withdraw_applications",
		"DROP VIEW IF EXISTS ShortlistApplicationRatio",
		"DROP VIEW IF EXISTS JobAverageStats",
		"DROP VIEW IF EXISTS JobDetailsView",
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return err
		}
	}
	return nil
}
