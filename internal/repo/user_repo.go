// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for users and
// their role extensions.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. Signup
// in particular runs CreateUser plus CreateEmployee/CreateEmployer on a
// transaction handle so a User row is never observable without its role row.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobboard-backend/internal/domain"
)

// CountUsersByPhoneOrEmail returns how many users share the given phone or
// email. Used as the duplicate-signup check.
func CountUsersByPhoneOrEmail(ctx context.Context, db *gorm.DB, phone, email string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("Phone = ? OR Email = ?", phone, email).
		Count(&total).Error
	return total, err
}

// CreateUser inserts a new User row and returns it with the generated
// identifier populated. CreatedAt is set to UTC.
func CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	u.CreatedAt = time.Now().UTC()
	return db.WithContext(ctx).Create(u).Error
}

// CreateEmployee inserts the employee role-extension row for userID.
func CreateEmployee(ctx context.Context, db *gorm.DB, userID int64, resumeURL *string) error {
	return db.WithContext(ctx).Create(&domain.Employee{UserID: userID, ResumeURL: resumeURL}).Error
}

// CreateEmployer inserts the employer role-extension row for userID.
func CreateEmployer(ctx context.Context, db *gorm.DB, userID, companyID int64) error {
	return db.WithContext(ctx).Create(&domain.Employer{UserID: userID, CompanyID: companyID}).Error
}

// GetUserByIdentifier fetches a user by phone or email. Returns ErrNotFound
// when no row matches.
func GetUserByIdentifier(ctx context.Context, db *gorm.DB, identifier string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).
		Where("Phone = ? OR Email = ?", identifier, identifier).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetCityID resolves a (cityName, countryName) pair to a city identifier.
// Returns ErrNotFound when the pair is unknown.
func GetCityID(ctx context.Context, db *gorm.DB, cityName, countryName string) (int64, error) {
	var row struct {
		CityID int64 `gorm:"column:CityId"`
	}
	res := db.WithContext(ctx).
		Raw(`SELECT c.CityId FROM Cities c
		     JOIN Countries co ON c.CountryId = co.CountryId
		     WHERE c.CityName = ? AND co.CountryName = ?`, cityName, countryName).
		Scan(&row)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return row.CityID, nil
}

// GetCityWithCountry returns the city and country names for a city id.
func GetCityWithCountry(ctx context.Context, db *gorm.DB, cityID int64) (cityName, countryName string, err error) {
	var row struct {
		CityName    string `gorm:"column:CityName"`
		CountryName string `gorm:"column:CountryName"`
	}
	res := db.WithContext(ctx).
		Raw(`SELECT c.CityName, co.CountryName FROM Cities c
		     JOIN Countries co ON c.CountryId = co.CountryId
		     WHERE c.CityId = ?`, cityID).
		Scan(&row)
	if res.Error != nil {
		return "", "", res.Error
	}
	if res.RowsAffected == 0 {
		return "", "", gorm.ErrRecordNotFound
	}
	return row.CityName, row.CountryName, nil
}

// GetCompanyIDByName resolves a company name to its identifier.
// Returns ErrNotFound for unknown companies.
func GetCompanyIDByName(ctx context.Context, db *gorm.DB, name string) (int64, error) {
	var c domain.Company
	err := db.WithContext(ctx).
		Where("CompanyName = ?", name).
		First(&c).Error
	if err != nil {
		return 0, err
	}
	return c.CompanyID, nil
}

// GetCompanyName returns the name for a company id.
func GetCompanyName(ctx context.Context, db *gorm.DB, companyID int64) (string, error) {
	var c domain.Company
	if err := db.WithContext(ctx).Where("CompanyId = ?", companyID).First(&c).Error; err != nil {
		return "", err
	}
	return c.CompanyName, nil
}

// GetEmployee fetches the employee extension row for userID.
func GetEmployee(ctx context.Context, db *gorm.DB, userID int64) (*domain.Employee, error) {
	var e domain.Employee
	if err := db.WithContext(ctx).Where("UserId = ?", userID).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// GetEmployer fetches the employer extension row for userID.
func GetEmployer(ctx context.Context, db *gorm.DB, userID int64) (*domain.Employer, error) {
	var e domain.Employer
	if err := db.WithContext(ctx).Where("UserId = ?", userID).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEmployeeResume sets the resume URL on an employee profile.
// Returns ErrNotFound if the employee row does not exist.
func UpdateEmployeeResume(ctx context.Context, db *gorm.DB, userID int64, resumeURL string) error {
	res := db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("UserId = ?", userID).
		Update("ResumeUrl", resumeURL)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
