package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/model"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/util"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 内存 sqlite，迁移测验域的表。连接池压到单连接，
// 不然每个连接会拿到各自独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.Quiz{},
		&model.Question{},
		&model.Assignment{},
		&model.Result{},
		&model.ResultAnswer{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedQuiz(t *testing.T, repo *QuizRepository, teacherID uint) *model.Quiz {
	t.Helper()

	quiz := &model.Quiz{
		Title:     "Geography",
		CreatedBy: teacherID,
		Questions: []model.Question{
			{
				QuestionText:  "capital?",
				AnswerOptions: model.StringArray{"Paris", "Rome"},
				CorrectAnswer: "Paris",
				Order:         0,
			},
			{
				QuestionText:  "river?",
				AnswerOptions: model.StringArray{"Seine", "Tiber"},
				CorrectAnswer: "Seine",
				Order:         1,
			},
		},
	}
	if err := repo.Create(quiz); err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	return quiz
}

func TestAssignmentUpsertIdempotent(t *testing.T) {
	db := newTestDB(t)
	quizRepo := NewQuizRepository(db)
	repo := NewAssignmentRepository(db)
	quiz := seedQuiz(t, quizRepo, 1)

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	err := repo.Upsert([]model.Assignment{
		{QuizID: quiz.ID, StudentID: 7, AssignedBy: 1, AssignedAt: first},
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// 同一 (quiz, student) 再指派一次：更新指派人和时间，不加行
	second := first.Add(24 * time.Hour)
	err = repo.Upsert([]model.Assignment{
		{QuizID: quiz.ID, StudentID: 7, AssignedBy: 2, AssignedAt: second},
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	assignments, err := repo.ListByQuiz(quiz.ID)
	if err != nil {
		t.Fatalf("ListByQuiz: %v", err)
	}
	if len(assignments) != 1 {
		t.Fatalf("assignments = %d, want 1", len(assignments))
	}
	if assignments[0].AssignedBy != 2 {
		t.Errorf("assignedBy = %d, want 2 (refreshed on conflict)", assignments[0].AssignedBy)
	}
	if !assignments[0].AssignedAt.Equal(second) {
		t.Errorf("assignedAt = %v, want %v", assignments[0].AssignedAt, second)
	}
}

func TestResultCreateSecondAttemptRejected(t *testing.T) {
	db := newTestDB(t)
	quizRepo := NewQuizRepository(db)
	repo := NewResultRepository(db)
	quiz := seedQuiz(t, quizRepo, 1)

	result := &model.Result{
		StudentID:     7,
		QuizID:        quiz.ID,
		Score:         1,
		Percentage:    50,
		DateAttempted: time.Now(),
		Answers: []model.ResultAnswer{
			{QuestionID: quiz.Questions[0].ID, ChosenAnswer: "Paris"},
		},
	}
	if err := repo.Create(result); err != nil {
		t.Fatalf("first create: %v", err)
	}

	dup := &model.Result{
		StudentID:     7,
		QuizID:        quiz.ID,
		Score:         2,
		Percentage:    100,
		DateAttempted: time.Now(),
	}
	err := repo.Create(dup)
	if !errors.Is(err, util.ErrQuizAlreadyAttempted) {
		t.Fatalf("second create error = %v, want %v", err, util.ErrQuizAlreadyAttempted)
	}

	results, err := repo.ListByQuiz(quiz.ID)
	if err != nil {
		t.Fatalf("ListByQuiz: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want exactly 1 per (quiz, student)", len(results))
	}
	if results[0].Score != 1 {
		t.Errorf("surviving score = %d, want the first attempt's 1", results[0].Score)
	}

	// 不同学生不受影响
	other := &model.Result{StudentID: 8, QuizID: quiz.ID, DateAttempted: time.Now()}
	if err := repo.Create(other); err != nil {
		t.Fatalf("create for other student: %v", err)
	}
}

func TestQuizDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	quizRepo := NewQuizRepository(db)
	assignmentRepo := NewAssignmentRepository(db)
	resultRepo := NewResultRepository(db)
	quiz := seedQuiz(t, quizRepo, 1)

	err := assignmentRepo.Upsert([]model.Assignment{
		{QuizID: quiz.ID, StudentID: 7, AssignedBy: 1, AssignedAt: time.Now()},
		{QuizID: quiz.ID, StudentID: 8, AssignedBy: 1, AssignedAt: time.Now()},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	err = resultRepo.Create(&model.Result{
		StudentID:     7,
		QuizID:        quiz.ID,
		Score:         2,
		Percentage:    100,
		DateAttempted: time.Now(),
		Answers: []model.ResultAnswer{
			{QuestionID: quiz.Questions[0].ID, ChosenAnswer: "Paris"},
			{QuestionID: quiz.Questions[1].ID, ChosenAnswer: "Seine"},
		},
	})
	if err != nil {
		t.Fatalf("create result: %v", err)
	}

	if err := quizRepo.Delete(quiz.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := quizRepo.FindByID(quiz.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("FindByID after delete = %v, want record not found", err)
	}

	assignments, err := assignmentRepo.ListByQuiz(quiz.ID)
	if err != nil {
		t.Fatalf("ListByQuiz assignments: %v", err)
	}
	if len(assignments) != 0 {
		t.Errorf("assignments left after delete: %d", len(assignments))
	}

	results, err := resultRepo.ListByQuiz(quiz.ID)
	if err != nil {
		t.Fatalf("ListByQuiz results: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results left after delete: %d", len(results))
	}

	var questionCount, answerCount int64
	if err := db.Model(&model.Question{}).Where("quiz_id = ?", quiz.ID).Count(&questionCount).Error; err != nil {
		t.Fatalf("count questions: %v", err)
	}
	if questionCount != 0 {
		t.Errorf("questions left after delete: %d", questionCount)
	}
	if err := db.Model(&model.ResultAnswer{}).Count(&answerCount).Error; err != nil {
		t.Fatalf("count answers: %v", err)
	}
	if answerCount != 0 {
		t.Errorf("result answers left after delete: %d", answerCount)
	}
}

func TestQuizUpdateReplacesFieldsAndQuestionsTogether(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepository(db)
	quiz := seedQuiz(t, repo, 1)

	quiz.Title = "Geography II"
	replacement := []model.Question{
		{
			QuestionText:  "ocean?",
			AnswerOptions: model.StringArray{"Atlantic", "Pacific"},
			CorrectAnswer: "Pacific",
			Order:         0,
		},
	}
	if err := repo.Update(quiz, replacement); err != nil {
		t.Fatalf("Update: %v", err)
	}

	stored, err := repo.FindByID(quiz.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if stored.Title != "Geography II" {
		t.Errorf("title = %q, want %q", stored.Title, "Geography II")
	}
	if len(stored.Questions) != 1 {
		t.Fatalf("questions = %d, want 1 (old set fully replaced)", len(stored.Questions))
	}
	if stored.Questions[0].QuestionText != "ocean?" {
		t.Errorf("question text = %q", stored.Questions[0].QuestionText)
	}

	// questions 传 nil 只改字段，题目保持原样
	stored.Description = "updated"
	if err := repo.Update(stored, nil); err != nil {
		t.Fatalf("Update (fields only): %v", err)
	}
	again, err := repo.FindByID(quiz.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if again.Description != "updated" || len(again.Questions) != 1 {
		t.Errorf("fields-only update touched questions: desc=%q questions=%d", again.Description, len(again.Questions))
	}
}
