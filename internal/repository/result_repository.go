package repository

import (
	"errors"

	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/model"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/util"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// Create 写入成绩和作答明细。(quiz_id, student_id) 唯一索引兜底
// 并发交卷，撞索引时报告为"已作答"
func (r *ResultRepository) Create(result *model.Result) error {
	err := r.DB.Create(result).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrQuizAlreadyAttempted
	}
	return err
}

func (r *ResultRepository) ListByQuiz(quizID string) ([]model.Result, error) {
	var results []model.Result
	err := r.DB.Where("quiz_id = ?", quizID).Order("created_at asc").Find(&results).Error
	return results, err
}

func (r *ResultRepository) ListByStudent(studentID uint) ([]model.Result, error) {
	var results []model.Result
	err := r.DB.Preload("Answers").Where("student_id = ?", studentID).Order("created_at desc").Find(&results).Error
	return results, err
}

// CompletedQuizIDs 学生已完成的测验ID集合，成绩行的存在即完成信号
func (r *ResultRepository) CompletedQuizIDs(studentID uint) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.Result{}).Where("student_id = ?", studentID).Distinct().Pluck("quiz_id", &ids).Error
	return ids, err
}

func (r *ResultRepository) ExistsByQuizAndStudent(quizID string, studentID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Result{}).Where("quiz_id = ? AND student_id = ?", quizID, studentID).Count(&count).Error
	return count > 0, err
}
