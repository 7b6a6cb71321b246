package repository

import (
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

// Upsert 批量指派。(quiz_id, student_id) 冲突时更新指派人和时间，
// 不产生重复行
func (r *AssignmentRepository) Upsert(assignments []model.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "quiz_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"assigned_by", "assigned_at", "updated_at"}),
	}).Create(&assignments).Error
}

func (r *AssignmentRepository) ListByQuiz(quizID string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("quiz_id = ?", quizID).Order("created_at asc, id asc").Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) ListByStudent(studentID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("student_id = ?", studentID).Order("created_at asc, id asc").Find(&assignments).Error
	return assignments, err
}
