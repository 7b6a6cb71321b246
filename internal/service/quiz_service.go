package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/model"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/repository"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// submitLockTTL 交卷锁的过期时间，防止判分中途崩溃后锁残留
const submitLockTTL = 30 * time.Second

type QuizService struct {
	QuizRepo       *repository.QuizRepository
	AssignmentRepo *repository.AssignmentRepository
	ResultRepo     *repository.ResultRepository
	Codec          *QuestionCodec
	Redis          *redis.Client
}

func NewQuizService(quizRepo *repository.QuizRepository, assignmentRepo *repository.AssignmentRepository, resultRepo *repository.ResultRepository, codec *QuestionCodec, rdb *redis.Client) *QuizService {
	return &QuizService{
		QuizRepo:       quizRepo,
		AssignmentRepo: assignmentRepo,
		ResultRepo:     resultRepo,
		Codec:          codec,
		Redis:          rdb,
	}
}

type QuestionReq struct {
	QuestionText  string   `json:"questionText" binding:"required"`
	AnswerOptions []string `json:"answerOptions" binding:"required"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
}

type QuizReq struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Questions   *[]QuestionReq `json:"questions"`
}

type QuestionView struct {
	ID            string   `json:"id"`
	QuestionText  string   `json:"questionText"`
	AnswerOptions []string `json:"answerOptions"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
}

type QuizView struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	CreatedBy   uint           `json:"createdBy"`
	CreatedAt   time.Time      `json:"createdAt"`
	Questions   []QuestionView `json:"questions"`
}

func questionsFromReq(reqs []QuestionReq) []model.Question {
	questions := make([]model.Question, len(reqs))
	for i, q := range reqs {
		questions[i] = model.Question{
			QuestionText:  q.QuestionText,
			AnswerOptions: q.AnswerOptions,
			CorrectAnswer: q.CorrectAnswer,
			Order:         i,
		}
	}
	return questions
}

func (s *QuizService) quizView(quiz *model.Quiz) *QuizView {
	decoded := s.Codec.DecodeQuestions(quiz.Questions)
	view := &QuizView{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		CreatedBy:   quiz.CreatedBy,
		CreatedAt:   quiz.CreatedAt,
		Questions:   make([]QuestionView, len(decoded)),
	}
	for i, q := range decoded {
		view.Questions[i] = QuestionView{
			ID:            q.ID,
			QuestionText:  q.QuestionText,
			AnswerOptions: q.AnswerOptions,
			CorrectAnswer: q.CorrectAnswer,
		}
	}
	return view
}

// CreateQuiz 创建测验。标题和题目做前置校验，校验不过不会碰存储；
// 题目落库前整体加密
func (s *QuizService) CreateQuiz(teacherID uint, req QuizReq) (*QuizView, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, util.ErrTitleRequired
	}
	if req.Questions == nil || len(*req.Questions) == 0 {
		return nil, util.ErrQuestionsRequired
	}

	encoded, err := s.Codec.EncodeQuestions(questionsFromReq(*req.Questions))
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		Title:     *req.Title,
		CreatedBy: teacherID,
		Questions: encoded,
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return s.quizView(quiz), nil
}

func (s *QuizService) findOwnedQuiz(teacherID uint, quizID string) (*model.Quiz, error) {
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
	return quiz, nil
}

// UpdateQuiz 仅创建者可更新。提交了哪个字段就整体替换哪个字段，
// 没提交的保持原值。校验和加密都在写库之前完成，字段和题目集合
// 在同一事务里落库
func (s *QuizService) UpdateQuiz(teacherID uint, quizID string, req QuizReq) (*QuizView, error) {
	quiz, err := s.findOwnedQuiz(teacherID, quizID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, util.ErrTitleRequired
		}
		quiz.Title = *req.Title
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}

	var encoded []model.Question
	if req.Questions != nil {
		if len(*req.Questions) == 0 {
			return nil, util.ErrQuestionsRequired
		}
		encoded, err = s.Codec.EncodeQuestions(questionsFromReq(*req.Questions))
		if err != nil {
			return nil, err
		}
	}

	if err := s.QuizRepo.Update(quiz, encoded); err != nil {
		return nil, err
	}
	if encoded != nil {
		quiz.Questions = encoded
	}
	return s.quizView(quiz), nil
}

// DeleteQuiz 仅创建者可删除，连带清理该测验的全部指派和成绩
func (s *QuizService) DeleteQuiz(teacherID uint, quizID string) error {
	quiz, err := s.findOwnedQuiz(teacherID, quizID)
	if err != nil {
		return err
	}
	return s.QuizRepo.Delete(quiz.ID)
}

// GetQuiz 读取单个测验。includeAnswers 为 false 时（学生在作答前查看）
// 正确答案从视图里剥掉，交卷后的反馈里才会给出正确答案
func (s *QuizService) GetQuiz(quizID string, includeAnswers bool) (*QuizView, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	view := s.quizView(quiz)
	if !includeAnswers {
		for i := range view.Questions {
			view.Questions[i].CorrectAnswer = ""
		}
	}
	return view, nil
}

func (s *QuizService) ListQuizzes(teacherID uint) ([]*QuizView, error) {
	quizzes, err := s.QuizRepo.ListByCreator(teacherID)
	if err != nil {
		return nil, err
	}
	views := make([]*QuizView, len(quizzes))
	for i := range quizzes {
		views[i] = s.quizView(&quizzes[i])
	}
	return views, nil
}

// AssignQuiz 批量指派给学生，重复指派等价于更新指派人和时间
func (s *QuizService) AssignQuiz(teacherID uint, quizID string, studentIDs []uint) error {
	if len(studentIDs) == 0 {
		return util.ErrNoStudents
	}
	quiz, err := s.findOwnedQuiz(teacherID, quizID)
	if err != nil {
		return err
	}

	now := time.Now()
	assignments := make([]model.Assignment, len(studentIDs))
	for i, studentID := range studentIDs {
		assignments[i] = model.Assignment{
			QuizID:     quiz.ID,
			StudentID:  studentID,
			AssignedBy: teacherID,
			AssignedAt: now,
		}
	}
	return s.AssignmentRepo.Upsert(assignments)
}

// AssignedQuizzes 学生的待完成列表：指派里去掉已交卷的，
// 测验已删除的指派不展示
func (s *QuizService) AssignedQuizzes(studentID uint) ([]PendingQuiz, error) {
	assignments, err := s.AssignmentRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}
	completed, err := s.ResultRepo.CompletedQuizIDs(studentID)
	if err != nil {
		return nil, err
	}

	quizIDs := make([]string, 0, len(assignments))
	for _, a := range assignments {
		quizIDs = append(quizIDs, a.QuizID)
	}
	quizzes, err := s.QuizRepo.ListByIDs(quizIDs)
	if err != nil {
		return nil, err
	}
	quizByID := make(map[string]*model.Quiz, len(quizzes))
	for i := range quizzes {
		quizByID[quizzes[i].ID] = &quizzes[i]
	}

	return ReconcileForStudent(assignments, quizByID, completed), nil
}

type SubmissionView struct {
	QuizID         string           `json:"quizId"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"totalQuestions"`
	Percentage     float64          `json:"percentage"`
	Breakdown      []GradedQuestion `json:"breakdown"`
}

// SubmitAttempt 学生交卷。同一 (quiz, student) 只允许一份成绩：
// Redis 锁串行化并发交卷，存储层唯一索引兜底
func (s *QuizService) SubmitAttempt(studentID uint, quizID string, answers []*int) (*SubmissionView, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if len(quiz.Questions) == 0 {
		return nil, util.ErrQuestionsRequired
	}

	ctx := context.Background()
	lockKey := fmt.Sprintf("quiz:submit:%s:%d", quizID, studentID)
	locked, err := s.Redis.SetNX(ctx, lockKey, 1, submitLockTTL).Result()
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, util.ErrSubmissionInFlight
	}
	defer s.Redis.Del(ctx, lockKey)

	attempted, err := s.ResultRepo.ExistsByQuizAndStudent(quizID, studentID)
	if err != nil {
		return nil, err
	}
	if attempted {
		return nil, util.ErrQuizAlreadyAttempted
	}

	decoded := s.Codec.DecodeQuestions(quiz.Questions)
	graded := Grade(decoded, answers)

	result := &model.Result{
		StudentID:     studentID,
		QuizID:        quizID,
		Score:         graded.Score,
		Percentage:    graded.Percentage,
		DateAttempted: time.Now(),
		Answers:       graded.Answers,
	}
	if err := s.ResultRepo.Create(result); err != nil {
		return nil, err
	}

	return &SubmissionView{
		QuizID:         quizID,
		Score:          graded.Score,
		TotalQuestions: len(quiz.Questions),
		Percentage:     graded.Percentage,
		Breakdown:      graded.Breakdown,
	}, nil
}
