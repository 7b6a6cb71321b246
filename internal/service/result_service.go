package service

import (
	"errors"

	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/model"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/repository"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/util"

	"gorm.io/gorm"
)

const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// StatusRow 教师视角下某次测验的单个学生状态行
type StatusRow struct {
	StudentID  uint     `json:"studentId"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Score      *int     `json:"score"`
	Percentage *float64 `json:"percentage"`
	Status     string   `json:"status"`
}

// PendingQuiz 学生视角下尚未完成的指派
type PendingQuiz struct {
	QuizID      string `json:"quizId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedBy  uint   `json:"assignedBy"`
	AssignedAt  string `json:"assignedAt"`
}

// ReconcileForQuiz 把指派记录和成绩记录按学生对齐。每条指派产出一行，
// 顺序与指派顺序一致；有成绩的行是 completed，没有的是 pending。
// 只有成绩没有指派的学生不出现在视图里（指派是驱动集合）
func ReconcileForQuiz(assignments []model.Assignment, results []model.Result) []StatusRow {
	resultByStudent := make(map[uint]*model.Result, len(results))
	for i := range results {
		resultByStudent[results[i].StudentID] = &results[i]
	}

	rows := make([]StatusRow, 0, len(assignments))
	for _, a := range assignments {
		row := StatusRow{StudentID: a.StudentID, Status: StatusPending}
		if r, ok := resultByStudent[a.StudentID]; ok {
			score := r.Score
			percentage := r.Percentage
			row.Score = &score
			row.Percentage = &percentage
			row.Status = StatusCompleted
		}
		rows = append(rows, row)
	}
	return rows
}

// ReconcileForStudent 返回学生还没完成的指派。已有成绩的测验排除，
// 测验已被删除的指派静默跳过
func ReconcileForStudent(assignments []model.Assignment, quizzes map[string]*model.Quiz, completedQuizIDs []string) []PendingQuiz {
	completed := make(map[string]bool, len(completedQuizIDs))
	for _, id := range completedQuizIDs {
		completed[id] = true
	}

	pending := make([]PendingQuiz, 0, len(assignments))
	for _, a := range assignments {
		if completed[a.QuizID] {
			continue
		}
		quiz, ok := quizzes[a.QuizID]
		if !ok {
			continue
		}
		pending = append(pending, PendingQuiz{
			QuizID:      a.QuizID,
			Title:       quiz.Title,
			Description: quiz.Description,
			AssignedBy:  a.AssignedBy,
			AssignedAt:  a.AssignedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return pending
}

type ResultService struct {
	ResultRepo     *repository.ResultRepository
	AssignmentRepo *repository.AssignmentRepository
	QuizRepo       *repository.QuizRepository
	UserRepo       *repository.UserRepository
}

func NewResultService(resultRepo *repository.ResultRepository, assignmentRepo *repository.AssignmentRepository, quizRepo *repository.QuizRepository, userRepo *repository.UserRepository) *ResultService {
	return &ResultService{
		ResultRepo:     resultRepo,
		AssignmentRepo: assignmentRepo,
		QuizRepo:       quizRepo,
		UserRepo:       userRepo,
	}
}

// QuizStatusForTeacher 某次测验的合并视图（pending + completed），
// 仅测验创建者可以查看
func (s *ResultService) QuizStatusForTeacher(teacherID uint, quizID string) ([]StatusRow, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if quiz.CreatedBy != teacherID {
		return nil, util.ErrPermissionDenied
	}

	assignments, err := s.AssignmentRepo.ListByQuiz(quizID)
	if err != nil {
		return nil, err
	}
	results, err := s.ResultRepo.ListByQuiz(quizID)
	if err != nil {
		return nil, err
	}

	rows := ReconcileForQuiz(assignments, results)

	studentIDs := make([]uint, 0, len(rows))
	for _, row := range rows {
		studentIDs = append(studentIDs, row.StudentID)
	}
	users, err := s.UserRepo.ListByIDs(studentIDs)
	if err != nil {
		return nil, err
	}
	userByID := make(map[uint]*model.User, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}
	for i := range rows {
		if u, ok := userByID[rows[i].StudentID]; ok {
			rows[i].Name = u.Name
			rows[i].Email = u.Email
		}
	}
	return rows, nil
}

type StudentResultAnswer struct {
	QuestionID   string `json:"questionId"`
	ChosenAnswer string `json:"chosenAnswer"`
}

type StudentResultRow struct {
	ID            uint                  `json:"id"`
	QuizID        string                `json:"quizId"`
	QuizTitle     string                `json:"quizTitle"`
	QuizDesc      string                `json:"quizDescription"`
	Score         int                   `json:"score"`
	Percentage    float64               `json:"percentage"`
	DateAttempted string                `json:"dateAttempted"`
	Answers       []StudentResultAnswer `json:"studentAnswers"`
}

// MyResults 学生自己的成绩列表，最新在前，附带测验标题
func (s *ResultService) MyResults(studentID uint) ([]StudentResultRow, error) {
	results, err := s.ResultRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}

	quizIDs := make([]string, 0, len(results))
	for _, r := range results {
		quizIDs = append(quizIDs, r.QuizID)
	}
	quizzes, err := s.QuizRepo.ListByIDs(quizIDs)
	if err != nil {
		return nil, err
	}
	quizByID := make(map[string]*model.Quiz, len(quizzes))
	for i := range quizzes {
		quizByID[quizzes[i].ID] = &quizzes[i]
	}

	rows := make([]StudentResultRow, 0, len(results))
	for _, r := range results {
		row := StudentResultRow{
			ID:            r.ID,
			QuizID:        r.QuizID,
			Score:         r.Score,
			Percentage:    r.Percentage,
			DateAttempted: r.DateAttempted.Format("2006-01-02T15:04:05Z07:00"),
			Answers:       make([]StudentResultAnswer, 0, len(r.Answers)),
		}
		if quiz, ok := quizByID[r.QuizID]; ok {
			row.QuizTitle = quiz.Title
			row.QuizDesc = quiz.Description
		}
		for _, a := range r.Answers {
			row.Answers = append(row.Answers, StudentResultAnswer{
				QuestionID:   a.QuestionID,
				ChosenAnswer: a.ChosenAnswer,
			})
		}
		rows = append(rows, row)
	}
	return rows, nil
}
