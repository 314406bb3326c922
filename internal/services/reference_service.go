// Package services – ReferenceService
//
// Read-only listings of the pre-seeded reference data. Included for
// interface completeness; ordering is fixed and there is no filtering or
// pagination.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobboard-backend/internal/domain"
	"github.com/tbourn/go-jobboard-backend/internal/repo"
)

// ReferenceService lists companies and locations.
type ReferenceService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Companies returns all companies, alphabetical by name.
func (s *ReferenceService) Companies(ctx context.Context) ([]domain.Company, error) {
	return repo.ListCompanies(ctx, s.DB)
}

// Locations returns all cities with country names, alphabetical by country
// then city.
func (s *ReferenceService) Locations(ctx context.Context) ([]repo.LocationRow, error) {
	return repo.ListLocations(ctx, s.DB)
}
