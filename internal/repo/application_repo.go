// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for applications
// and the employer/employee application listings.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobboard-backend/internal/domain"
)

// EmployerApplicationRow is one row of an employer's inbox: who applied to
// which of their jobs, with contact details and resume.
type EmployerApplicationRow struct {
	JobID      int64     `json:"jobId"      gorm:"column:JobId"`
	JobTitle   string    `json:"jobTitle"   gorm:"column:JobTitle"`
	UserName   string    `json:"userName"   gorm:"column:UserName"`
	Email      *string   `json:"email"      gorm:"column:Email"`
	Resume     *string   `json:"resume"     gorm:"column:Resume"`
	EmployeeID int64     `json:"employeeId" gorm:"column:EmployeeId"`
	Status     string    `json:"status"     gorm:"column:Status"`
	ApplyDate  time.Time `json:"applyDate"  gorm:"column:ApplyDate"`
}

// EmployeeApplicationRow is one row of an employee's application history.
type EmployeeApplicationRow struct {
	ApplicationID int64     `json:"applicationId" gorm:"column:ApplicationId"`
	EmployeeID    int64     `json:"employeeId"    gorm:"column:EmployeeId"`
	JobID         int64     `json:"jobId"         gorm:"column:JobId"`
	Status        string    `json:"status"        gorm:"column:Status"`
	ApplyDate     time.Time `json:"applyDate"     gorm:"column:ApplyDate"`
	JobTitle      string    `json:"jobTitle"      gorm:"column:JobTitle"`
	CompanyName   string    `json:"companyName"   gorm:"column:CompanyName"`
}

// GetApplication fetches one application by its (employee, job) pair.
// Returns ErrNotFound if the employee never applied to the job.
func GetApplication(ctx context.Context, db *gorm.DB, employeeID, jobID int64) (*domain.Application, error) {
	var a domain.Application
	err := db.WithContext(ctx).
		Where("EmployeeId = ? AND JobId = ?", employeeID, jobID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApplication inserts a new application with the default Applied
// status. The schema-level unique index on (EmployeeId, JobId) makes a
// concurrent duplicate surface as a constraint violation.
func CreateApplication(ctx context.Context, db *gorm.DB, employeeID, jobID int64) (*domain.Application, error) {
	a := &domain.Application{
		EmployeeID: employeeID,
		JobID:      jobID,
		Status:     domain.StatusApplied,
		ApplyDate:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateApplicationStatus sets the status of one application row. The
// accepted-cascade onto sibling applications is the trigger's job, not ours.
// Returns ErrNotFound when no row matches.
func UpdateApplicationStatus(ctx context.Context, db *gorm.DB, employeeID, jobID int64, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("EmployeeId = ? AND JobId = ?", employeeID, jobID).
		Update("Status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListApplicationsByEmployer returns every application made to the
// employer's postings, grouped by job.
func ListApplicationsByEmployer(ctx context.Context, db *gorm.DB, employerID int64) ([]EmployerApplicationRow, error) {
	sql := `SELECT j.JobId AS JobId, j.Title AS JobTitle, u.UserName AS UserName,
	               u.Email AS Email, e.ResumeUrl AS Resume, a.EmployeeId AS EmployeeId,
	               a.Status AS Status, a.ApplyDate AS ApplyDate
	        FROM Applications a
	        JOIN Users u ON a.EmployeeId = u.UserId
	        JOIN Employees e ON e.UserId = u.UserId
	        JOIN JobPostings j ON a.JobId = j.JobId
	        WHERE j.EmployerId = ?
	        ORDER BY j.JobId`
	var out []EmployerApplicationRow
	err := db.WithContext(ctx).Raw(sql, employerID).Scan(&out).Error
	return out, err
}

// ListApplicationsByEmployee returns the employee's applications with the
// job title and hiring company attached.
func ListApplicationsByEmployee(ctx context.Context, db *gorm.DB, employeeID int64) ([]EmployeeApplicationRow, error) {
	sql := `SELECT a.ApplicationId, a.EmployeeId, a.JobId, a.Status, a.ApplyDate,
	               j.Title AS JobTitle, c.CompanyName
	        FROM Applications a
	        JOIN JobPostings j ON a.JobId = j.JobId
	        JOIN Employers e ON j.EmployerId = e.UserId
	        JOIN Companies c ON e.CompanyId = c.CompanyId
	        WHERE a.EmployeeId = ?`
	var out []EmployeeApplicationRow
	err := db.WithContext(ctx).Raw(sql, employeeID).Scan(&out).Error
	return out, err
}
