// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the Shortlist and Dislike membership
// sets: insert = join, delete = leave, no additional attributes. Both tables
// use composite primary keys, so a double-insert is a constraint violation
// the service layer maps to a duplicate error.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobboard-backend/internal/domain"
)

// AddShortlist adds a job to an employee's shortlist.
func AddShortlist(ctx context.Context, db *gorm.DB, employeeID, jobID int64) error {
	return db.WithContext(ctx).Create(&domain.Shortlist{EmployeeID: employeeID, JobID: jobID}).Error
}

// RemoveShortlist removes a job from an employee's shortlist. Removing an
// absent entry is a no-op, keeping the unshortlist action idempotent.
func RemoveShortlist(ctx context.Context, db *gorm.DB, employeeID, jobID int64) error {
	return db.WithContext(ctx).
		Where("EmployeeId = ? AND JobId = ?", employeeID, jobID).
		Delete(&domain.Shortlist{}).Error
}

// AddDislike marks a job as disliked by an employee.
func AddDislike(ctx context.Context, db *gorm.DB, employeeID, jobID int64) error {
	return db.WithContext(ctx).Create(&domain.Dislike{EmployeeID: employeeID, JobID: jobID}).Error
}

// RemoveDislike clears an employee's dislike on a job. A no-op when the
// entry does not exist.
func RemoveDislike(ctx context.Context, db *gorm.DB, employeeID, jobID int64) error {
	return db.WithContext(ctx).
		Where("EmployeeId = ? AND JobId = ?", employeeID, jobID).
		Delete(&domain.Dislike{}).Error
}
