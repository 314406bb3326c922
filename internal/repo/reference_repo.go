// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the read-only reference-data listings:
// companies and locations, alphabetical, unfiltered and unpaginated.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobboard-backend/internal/domain"
)

// LocationRow is a city with its country name attached.
type LocationRow struct {
	CityID      int64  `json:"cityId"      gorm:"column:CityId"`
	CityName    string `json:"cityName"    gorm:"column:CityName"`
	CountryName string `json:"countryName" gorm:"column:CountryName"`
}

// ListCompanies returns all companies ordered by name.
func ListCompanies(ctx context.Context, db *gorm.DB) ([]domain.Company, error) {
	var out []domain.Company
	err := db.WithContext(ctx).
		Order("CompanyName ASC").
		Find(&out).Error
	return out, err
}

// ListLocations returns all cities with their countries, ordered by country
// then city name.
func ListLocations(ctx context.Context, db *gorm.DB) ([]LocationRow, error) {
	sql := `SELECT c.CityId, c.CityName, co.CountryName
	        FROM Cities c
	        JOIN Countries co ON c.CountryId = co.CountryId
	        ORDER BY co.CountryName ASC, c.CityName ASC`
	var out []LocationRow
	err := db.WithContext(ctx).Raw(sql).Scan(&out).Error
	return out, err
}
