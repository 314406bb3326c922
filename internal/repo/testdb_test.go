package repo

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-jobboard-backend/internal/domain"
)

// newTestDB opens a throwaway SQLite database with the full schema, the
// derived views, and the auto-withdraw trigger.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if err := CreateDatabaseObjects(db); err != nil {
		t.Fatalf("create database objects: %v", err)
	}
	return db
}

//
// Fixture builders. Each creates one row and returns its ID.
//

func mkCountry(t *testing.T, db *gorm.DB, name string) int64 {
	t.Helper()
	c := domain.Country{CountryName: name}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create country %q: %v", name, err)
	}
	return c.CountryID
}

func mkCity(t *testing.T, db *gorm.DB, name string, countryID int64) int64 {
	t.Helper()
	c := domain.City{CityName: name, CountryID: countryID}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create city %q: %v", name, err)
	}
	return c.CityID
}

func mkCompany(t *testing.T, db *gorm.DB, name string) int64 {
	t.Helper()
	c := domain.Company{CompanyName: name}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create company %q: %v", name, err)
	}
	return c.CompanyID
}

func mkIndustry(t *testing.T, db *gorm.DB, name string) int64 {
	t.Helper()
	i := domain.Industry{IndustryName: name}
	if err := db.Create(&i).Error; err != nil {
		t.Fatalf("create industry %q: %v", name, err)
	}
	return i.IndustryID
}

func mkFocus(t *testing.T, db *gorm.DB, companyID, industryID int64) {
	t.Helper()
	if err := db.Create(&domain.FocusOn{CompanyID: companyID, IndustryID: industryID}).Error; err != nil {
		t.Fatalf("create focus: %v", err)
	}
}

func mkUser(t *testing.T, db *gorm.DB, phone, role string, cityID int64) int64 {
	t.Helper()
	u := domain.User{
		Phone:        phone,
		PasswordHash: "x",
		UserName:     "user " + phone,
		CityID:       cityID,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user %q: %v", phone, err)
	}
	return u.UserID
}

func mkEmployee(t *testing.T, db *gorm.DB, phone string, cityID int64) int64 {
	t.Helper()
	uid := mkUser(t, db, phone, domain.RoleEmployee, cityID)
	if err := db.Create(&domain.Employee{UserID: uid}).Error; err != nil {
		t.Fatalf("create employee: %v", err)
	}
	return uid
}

func mkEmployer(t *testing.T, db *gorm.DB, phone string, cityID, companyID int64) int64 {
	t.Helper()
	uid := mkUser(t, db, phone, domain.RoleEmployer, cityID)
	if err := db.Create(&domain.Employer{UserID: uid, CompanyID: companyID}).Error; err != nil {
		t.Fatalf("create employer: %v", err)
	}
	return uid
}

// mkJob creates an active posting; postDate controls the search sort order.
func mkJob(t *testing.T, db *gorm.DB, employerID, cityID int64, title string, postDate time.Time) int64 {
	t.Helper()
	j := domain.JobPosting{
		EmployerID: employerID,
		Title:      title,
		WorkType:   "Full-time",
		CityID:     cityID,
		IsActive:   true,
		PostDate:   postDate,
	}
	if err := db.Create(&j).Error; err != nil {
		t.Fatalf("create job %q: %v", title, err)
	}
	return j.JobID
}

func mkApplication(t *testing.T, db *gorm.DB, employeeID, jobID int64) {
	t.Helper()
	a := domain.Application{
		EmployeeID: employeeID,
		JobID:      jobID,
		Status:     domain.StatusApplied,
		ApplyDate:  time.Now().UTC(),
	}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("create application: %v", err)
	}
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }
func str(v string) *string   { return &v }

// world is the minimal connected graph most tests need: one country, one
// city, one company in one industry, one employer, one employee.
type world struct {
	CountryID  int64
	CityID     int64
	CompanyID  int64
	IndustryID int64
	EmployerID int64
	EmployeeID int64
}

func seedWorld(t *testing.T, db *gorm.DB) world {
	t.Helper()
	w := world{}
	w.CountryID = mkCountry(t, db, "Greece")
	w.CityID = mkCity(t, db, "Athens", w.CountryID)
	w.CompanyID = mkCompany(t, db, "Acme Ltd")
	w.IndustryID = mkIndustry(t, db, "Technology")
	mkFocus(t, db, w.CompanyID, w.IndustryID)
	w.EmployerID = mkEmployer(t, db, "+300000000001", w.CityID, w.CompanyID)
	w.EmployeeID = mkEmployee(t, db, "+300000000002", w.CityID)
	return w
}
