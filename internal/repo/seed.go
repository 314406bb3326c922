// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file loads the pre-seeded reference data (countries,
// cities, companies, industries and their focus links) from a JSON file.
// The application treats these tables as read-only; seeding only happens
// when they are empty so restarts never duplicate rows.
package repo

import (
	"context"
	"encoding/json"
	"os"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobboard-backend/internal/domain"
)

// ReferenceData is the JSON shape of a seed file.
type ReferenceData struct {
	Countries  []domain.Country  `json:"countries"`
	Cities     []domain.City     `json:"cities"`
	Companies  []domain.Company  `json:"companies"`
	Industries []domain.Industry `json:"industries"`
	FocusOn    []domain.FocusOn  `json:"focusOn"`
}

// SeedReference loads reference rows from the JSON file at path into any
// reference table that is currently empty. An empty path is a no-op so
// deployments without a seed file start clean.
func SeedReference(ctx context.Context, db *gorm.DB, path string) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var data ReferenceData
	if err := json.Unmarshal(raw, &data); err != nil {
		return err
	}
	return SeedReferenceData(ctx, db, data)
}

// SeedReferenceData inserts the given reference rows, skipping any table
// that already has rows.
func SeedReferenceData(ctx context.Context, db *gorm.DB, data ReferenceData) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(data.Countries) > 0 {
			if empty, err := tableEmpty(tx, &domain.Country{}); err != nil {
				return err
			} else if empty {
				if err := tx.Create(&data.Countries).Error; err != nil {
					return err
				}
			}
		}
		if len(data.Cities) > 0 {
			if empty, err := tableEmpty(tx, &domain.City{}); err != nil {
				return err
			} else if empty {
				if err := tx.Create(&data.Cities).Error; err != nil {
					return err
				}
			}
		}
		if len(data.Companies) > 0 {
			if empty, err := tableEmpty(tx, &domain.Company{}); err != nil {
				return err
			} else if empty {
				if err := tx.Create(&data.Companies).Error; err != nil {
					return err
				}
			}
		}
		if len(data.Industries) > 0 {
			if empty, err := tableEmpty(tx, &domain.Industry{}); err != nil {
				return err
			} else if empty {
				if err := tx.Create(&data.Industries).Error; err != nil {
					return err
				}
			}
		}
		if len(data.FocusOn) > 0 {
			if empty, err := tableEmpty(tx, &domain.FocusOn{}); err != nil {
				return err
			} else if empty {
				if err := tx.Create(&data.FocusOn).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func tableEmpty(db *gorm.DB, model any) (bool, error) {
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		return false, err
	}
	return n == 0, nil
}
