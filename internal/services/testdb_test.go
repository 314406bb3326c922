package services

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-jobboard-backend/internal/domain"
	"github.com/tbourn/go-jobboard-backend/internal/repo"
)

// newTestDB opens a throwaway SQLite database with the full schema and the
// derived objects the services depend on.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("svc_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if err := repo.CreateDatabaseObjects(db); err != nil {
		t.Fatalf("create database objects: %v", err)
	}
	return db
}

// refWorld is the reference graph signup and job tests resolve against.
type refWorld struct {
	CountryID  int64
	CityID     int64
	CompanyID  int64
	IndustryID int64
}

func seedReferenceWorld(t *testing.T, db *gorm.DB) refWorld {
	t.Helper()

	country := domain.Country{CountryName: "Greece"}
	if err := db.Create(&country).Error; err != nil {
		t.Fatalf("create country: %v", err)
	}
	city := domain.City{CityName: "Athens", CountryID: country.CountryID}
	if err := db.Create(&city).Error; err != nil {
		t.Fatalf("create city: %v", err)
	}
	company := domain.Company{CompanyName: "Acme Ltd"}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("create company: %v", err)
	}
	industry := domain.Industry{IndustryName: "Technology"}
	if err := db.Create(&industry).Error; err != nil {
		t.Fatalf("create industry: %v", err)
	}
	if err := db.Create(&domain.FocusOn{CompanyID: company.CompanyID, IndustryID: industry.IndustryID}).Error; err != nil {
		t.Fatalf("create focus: %v", err)
	}
	return refWorld{
		CountryID:  country.CountryID,
		CityID:     city.CityID,
		CompanyID:  company.CompanyID,
		IndustryID: industry.IndustryID,
	}
}

// signUpEmployee registers an employee through the real AuthService so the
// user and its role extension exist exactly the way production writes them.
func signUpEmployee(t *testing.T, db *gorm.DB, phone string) int64 {
	t.Helper()
	svc := &AuthService{DB: db, BcryptCost: 4}
	id, err := svc.SignUp(context.Background(), SignupProfile{
		Phone:       phone,
		Password:    "secret-pw",
		UserName:    "employee " + phone,
		Role:        domain.RoleEmployee,
		CityName:    "Athens",
		CountryName: "Greece",
	})
	if err != nil {
		t.Fatalf("sign up employee %q: %v", phone, err)
	}
	return id
}

func signUpEmployer(t *testing.T, db *gorm.DB, phone string) int64 {
	t.Helper()
	svc := &AuthService{DB: db, BcryptCost: 4}
	id, err := svc.SignUp(context.Background(), SignupProfile{
		Phone:       phone,
		Password:    "secret-pw",
		UserName:    "employer " + phone,
		Role:        domain.RoleEmployer,
		CityName:    "Athens",
		CountryName: "Greece",
		CompanyName: "Acme Ltd",
	})
	if err != nil {
		t.Fatalf("sign up employer %q: %v", phone, err)
	}
	return id
}

func mkPosting(t *testing.T, db *gorm.DB, employerID, cityID int64, title string) int64 {
	t.Helper()
	j := domain.JobPosting{
		EmployerID: employerID,
		Title:      title,
		WorkType:   "Full-time",
		CityID:     cityID,
		IsActive:   true,
		PostDate:   time.Now().UTC(),
	}
	if err := db.Create(&j).Error; err != nil {
		t.Fatalf("create job %q: %v", title, err)
	}
	return j.JobID
}
