package repository

import (
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` asc, created_at asc")
	}).First(&quiz, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) ListByCreator(teacherID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` asc, created_at asc")
	}).Where("created_by = ?", teacherID).Order("created_at desc").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) ListByIDs(ids []string) ([]model.Quiz, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var quizzes []model.Quiz
	err := r.DB.Where("id IN ?", ids).Find(&quizzes).Error
	return quizzes, err
}

// Update 保存测验字段；questions 非 nil 时在同一事务里整体重建题目集合。
// 任一步失败整体回滚，不会留下标题改了题目没改的中间状态
func (r *QuizRepository) Update(quiz *model.Quiz, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Questions").Save(quiz).Error; err != nil {
			return err
		}
		if questions == nil {
			return nil
		}
		if err := tx.Unscoped().Where("quiz_id = ?", quiz.ID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].QuizID = quiz.ID
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete 删除测验并级联清理指派和成绩，单个事务内完成
func (r *QuizRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var resultIDs []uint
		if err := tx.Model(&model.Result{}).Where("quiz_id = ?", id).Pluck("id", &resultIDs).Error; err != nil {
			return err
		}
		if len(resultIDs) > 0 {
			if err := tx.Where("result_id IN ?", resultIDs).Delete(&model.ResultAnswer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", id).Delete(&model.Result{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Assignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, "id = ?", id).Error
	})
}
