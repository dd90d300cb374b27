// Package content serves the portfolio's read-only data: the profile
// document, projects and publications.
package content

import (
	"errors"

	"github.com/folio-space/core/internal/models"
	"gorm.io/gorm"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Profile() (*models.ProfileModel, error) {
	var p models.ProfileModel
	if err := s.db.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) ListProjects() ([]models.ProjectModel, error) {
	var items []models.ProjectModel
	err := s.db.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) ListPublications() ([]models.PublicationModel, error) {
	var items []models.PublicationModel
	err := s.db.Order("year DESC, created_at DESC").Find(&items).Error
	return items, err
}

func (s *Service) GetPublication(id string) (*models.PublicationModel, error) {
	var p models.PublicationModel
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// SeedIfEmpty plants a starter profile so a freshly migrated instance
// renders something. Real content is maintained directly in the tables.
func SeedIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.ProfileModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	profile := models.ProfileModel{
		Name:     "Your Name",
		Headline: "Researcher & builder",
		Bio:      "Edit the `profiles` table to introduce yourself. Markdown is supported.",
	}
	return db.Create(&profile).Error
}
