package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/masifunde/apsmatch-api/internal/models"
)

// StudentMarkRepository provides access to stored validated records.
type StudentMarkRepository interface {
	Upsert(ctx context.Context, mark *models.StudentMark) error
	GetByUserID(ctx context.Context, userID string) (models.StudentMark, error)
	List(ctx context.Context, limit, offset int) ([]models.StudentMark, error)
}

type studentMarkRepository struct {
	db *gorm.DB
}

// NewStudentMarkRepository constructs a student mark repository.
func NewStudentMarkRepository(db *gorm.DB) StudentMarkRepository {
	return &studentMarkRepository{db: db}
}

func (r *studentMarkRepository) Upsert(ctx context.Context, mark *models.StudentMark) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(mark).Error
}

func (r *studentMarkRepository) GetByUserID(ctx context.Context, userID string) (models.StudentMark, error) {
	var mark models.StudentMark
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&mark).Error; err != nil {
		return models.StudentMark{}, err
	}

	return mark, nil
}

func (r *studentMarkRepository) List(ctx context.Context, limit, offset int) ([]models.StudentMark, error) {
	var marks []models.StudentMark
	query := r.db.WithContext(ctx).Order("user_id")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&marks).Error; err != nil {
		return nil, err
	}

	return marks, nil
}
