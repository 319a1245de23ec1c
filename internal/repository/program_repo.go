package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/masifunde/apsmatch-api/internal/models"
)

// ProgramFilter narrows catalog queries.
type ProgramFilter struct {
	Type      string
	MaxAPS    *int
	Qualifier string
}

// ProgramRepository provides access to the program catalog.
type ProgramRepository interface {
	List(ctx context.Context, filter ProgramFilter) ([]models.Program, error)
	GetByID(ctx context.Context, id uint) (models.Program, error)
	Create(ctx context.Context, program *models.Program) error
	Delete(ctx context.Context, id uint) error
}

type programRepository struct {
	db *gorm.DB
}

// NewProgramRepository constructs a program repository.
func NewProgramRepository(db *gorm.DB) ProgramRepository {
	return &programRepository{db: db}
}

func (r *programRepository) List(ctx context.Context, filter ProgramFilter) ([]models.Program, error) {
	query := r.db.WithContext(ctx).Order("id")
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.MaxAPS != nil {
		query = query.Where("required_aps <= ?", *filter.MaxAPS)
	}
	if filter.Qualifier != "" {
		query = query.Where("qualification LIKE ?", "%"+filter.Qualifier+"%")
	}

	var programs []models.Program
	if err := query.Find(&programs).Error; err != nil {
		return nil, err
	}

	return programs, nil
}

func (r *programRepository) GetByID(ctx context.Context, id uint) (models.Program, error) {
	var program models.Program
	if err := r.db.WithContext(ctx).First(&program, id).Error; err != nil {
		return models.Program{}, err
	}

	return program, nil
}

func (r *programRepository) Create(ctx context.Context, program *models.Program) error {
	return r.db.WithContext(ctx).Create(program).Error
}

func (r *programRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Program{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
