package repository

import (
	"context"

	"gorm.io/gorm"

	"attendtrack/internal/model"
)

// LecturerRepository is the lecturer-profile data-access interface.
type LecturerRepository interface {
	Create(ctx context.Context, lecturer *model.Lecturer) error
	GetByID(ctx context.Context, id string) (*model.Lecturer, error)
	GetByUserID(ctx context.Context, userID string) (*model.Lecturer, error)
}

type lecturerRepo struct {
	db *gorm.DB
}

// NewLecturerRepo creates the GORM-backed LecturerRepository.
func NewLecturerRepo(db *gorm.DB) LecturerRepository {
	return &lecturerRepo{db: db}
}

func (r *lecturerRepo) Create(ctx context.Context, lecturer *model.Lecturer) error {
	return r.db.WithContext(ctx).Create(lecturer).Error
}

func (r *lecturerRepo) GetByID(ctx context.Context, id string) (*model.Lecturer, error) {
	var lecturer model.Lecturer
	err := r.db.WithContext(ctx).
		Where("lecturer_id = ?", id).
		First(&lecturer).Error
	if err != nil {
		return nil, err
	}
	return &lecturer, nil
}

func (r *lecturerRepo) GetByUserID(ctx context.Context, userID string) (*model.Lecturer, error) {
	var lecturer model.Lecturer
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&lecturer).Error
	if err != nil {
		return nil, err
	}
	return &lecturer, nil
}
