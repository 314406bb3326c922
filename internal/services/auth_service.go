// Package services – AuthService
//
// This file implements the AuthService, which owns user signup and login.
// Signup validates the profile, resolves reference data (city, company),
// hashes the password with bcrypt, and inserts the User row together with
// its role extension inside a single transaction, so a User without its
// Employee/Employer row is never observable. Login looks the user up by
// phone or email, verifies the password, enriches the profile with city,
// country, and role-specific fields, and redacts the stored hash before
// returning. Service-level errors (ErrDuplicateUser, ErrCityNotFound, ...)
// are returned for predictable cases so handlers can map them to HTTP
// results consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tbourn/go-jobboard-backend/internal/domain"
	"github.com/tbourn/go-jobboard-backend/internal/repo"
)

// SignupProfile is the input to SignUp: the prospective user's identity plus
// the names of reference rows to resolve. Password is plaintext here and
// only ever stored hashed.
type SignupProfile struct {
	Phone       string
	Email       string
	Password    string
	UserName    string
	Role        string
	CityName    string
	CountryName string
	CompanyName string // employers only
	ResumeURL   string // employees only, optional
}

// UserProfile is the enriched, redacted view of a user returned by Login.
// It never carries the password hash.
type UserProfile struct {
	UserID      int64   `json:"userId"`
	Phone       string  `json:"phone"`
	UserName    string  `json:"userName"`
	Role        string  `json:"role"`
	Email       *string `json:"email"`
	CityID      int64   `json:"cityId"`
	CityName    string  `json:"cityName"`
	CountryName string  `json:"countryName"`
	ResumeURL   *string `json:"resumeUrl,omitempty"`   // employees
	CompanyName *string `json:"companyName,omitempty"` // employers
}

// AuthService provides signup and login.
type AuthService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// BcryptCost is the work factor for password hashing.
	BcryptCost int
}

// NewAuthService constructs an AuthService with the default bcrypt cost.
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db, BcryptCost: bcrypt.DefaultCost}
}

// SignUp registers a new user.
//
// Semantics and validation:
//   - The phone/email pair must be unused; otherwise ErrDuplicateUser.
//   - (CityName, CountryName) must resolve to a known city; otherwise
//     ErrCityNotFound.
//   - Role must be "employee" or "employer" (case-insensitive); otherwise
//     ErrInvalidRole. Employers must name a known company; otherwise
//     ErrCompanyNotFound.
//   - The password is hashed with bcrypt before any row is written.
//
// Concurrency & atomicity:
//   - User plus role-extension insert run in one transaction with rollback
//     on any failure; partial signups are never observable. A concurrent
//     duplicate that slips past the pre-check is caught by the unique
//     indexes on Phone/Email and reported as ErrDuplicateUser.
func (s *AuthService) SignUp(ctx context.Context, p SignupProfile) (int64, error) {
	role := strings.ToLower(strings.TrimSpace(p.Role))
	switch role {
	case domain.RoleEmployee, domain.RoleEmployer:
	default:
		return 0, ErrInvalidRole
	}

	dup, err := repo.CountUsersByPhoneOrEmail(ctx, s.DB, p.Phone, p.Email)
	if err != nil {
		return 0, err
	}
	if dup > 0 {
		return 0, ErrDuplicateUser
	}

	cityID, err := repo.GetCityID(ctx, s.DB, p.CityName, p.CountryName)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, ErrCityNotFound
		}
		return 0, err
	}

	var companyID int64
	if role == domain.RoleEmployer {
		companyID, err = repo.GetCompanyIDByName(ctx, s.DB, p.CompanyName)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return 0, ErrCompanyNotFound
			}
			return 0, err
		}
	}

	cost := s.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), cost)
	if err != nil {
		return 0, err
	}

	u := &domain.User{
		Phone:        p.Phone,
		PasswordHash: string(hash),
		UserName:     p.UserName,
		CityID:       cityID,
		Role:         role,
	}
	if p.Email != "" {
		email := p.Email
		u.Email = &email
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.CreateUser(ctx, tx, u); err != nil {
			if isDuplicate(err) {
				return ErrDuplicateUser
			}
			return err
		}
		if role == domain.RoleEmployee {
			var resume *string
			if p.ResumeURL != "" {
				r := p.ResumeURL
				resume = &r
			}
			return repo.CreateEmployee(ctx, tx, u.UserID, resume)
		}
		return repo.CreateEmployer(ctx, tx, u.UserID, companyID)
	})
	if err != nil {
		return 0, err
	}
	return u.UserID, nil
}

// Login authenticates by phone or email and returns the enriched profile.
//
// Semantics:
//   - Unknown identifier: ErrUserNotFound.
//   - Password mismatch: ErrInvalidCredentials.
//   - On success the profile carries city/country names plus the resume URL
//     (employees) or company name (employers). The stored hash is redacted;
//     that is a hard contract, not a convenience.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*UserProfile, error) {
	u, err := repo.GetUserByIdentifier(ctx, s.DB, identifier)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	cityName, countryName, err := repo.GetCityWithCountry(ctx, s.DB, u.CityID)
	if err != nil {
		return nil, err
	}

	profile := &UserProfile{
		UserID:      u.UserID,
		Phone:       u.Phone,
		UserName:    u.UserName,
		Role:        u.Role,
		Email:       u.Email,
		CityID:      u.CityID,
		CityName:    cityName,
		CountryName: countryName,
	}

	switch u.Role {
	case domain.RoleEmployee:
		emp, err := repo.GetEmployee(ctx, s.DB, u.UserID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		if emp != nil {
			profile.ResumeURL = emp.ResumeURL
		}
	case domain.RoleEmployer:
		er, err := repo.GetEmployer(ctx, s.DB, u.UserID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		if er != nil {
			name, err := repo.GetCompanyName(ctx, s.DB, er.CompanyID)
			if err != nil && !errors.Is(err, repo.ErrNotFound) {
				return nil, err
			}
			if name != "" {
				profile.CompanyName = &name
			}
		}
	}
	return profile, nil
}

// UpdateEmployeeProfile sets the resume URL on an employee profile.
// Returns ErrEmployeeNotFound when no employee row exists for the id.
func (s *AuthService) UpdateEmployeeProfile(ctx context.Context, employeeID int64, resumeURL string) error {
	if err := repo.UpdateEmployeeResume(ctx, s.DB, employeeID, resumeURL); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	return nil
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
