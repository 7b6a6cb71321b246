package service

import (
	"errors"
	"testing"

	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/util"
)

func strPtr(s string) *string { return &s }

// 校验必须在碰到任何存储依赖之前完成，所以零值 service 也能跑这些用例
func TestCreateQuizValidation(t *testing.T) {
	questions := []QuestionReq{
		{QuestionText: "1+1=?", AnswerOptions: []string{"1", "2"}, CorrectAnswer: "2"},
	}

	tests := []struct {
		name    string
		req     QuizReq
		wantErr error
	}{
		{
			name:    "missing title",
			req:     QuizReq{Questions: &questions},
			wantErr: util.ErrTitleRequired,
		},
		{
			name:    "empty title",
			req:     QuizReq{Title: strPtr(""), Questions: &questions},
			wantErr: util.ErrTitleRequired,
		},
		{
			name:    "missing questions",
			req:     QuizReq{Title: strPtr("Math")},
			wantErr: util.ErrQuestionsRequired,
		},
		{
			name:    "empty questions",
			req:     QuizReq{Title: strPtr("Math"), Questions: &[]QuestionReq{}},
			wantErr: util.ErrQuestionsRequired,
		},
	}

	svc := &QuizService{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateQuiz(1, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateQuiz() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAssignQuizRequiresStudents(t *testing.T) {
	svc := &QuizService{}
	if err := svc.AssignQuiz(1, "quiz-1", nil); !errors.Is(err, util.ErrNoStudents) {
		t.Fatalf("AssignQuiz() error = %v, want %v", err, util.ErrNoStudents)
	}
	if err := svc.AssignQuiz(1, "quiz-1", []uint{}); !errors.Is(err, util.ErrNoStudents) {
		t.Fatalf("AssignQuiz() error = %v, want %v", err, util.ErrNoStudents)
	}
}

func TestQuestionsFromReqAssignsOrder(t *testing.T) {
	reqs := []QuestionReq{
		{QuestionText: "first", AnswerOptions: []string{"a"}, CorrectAnswer: "a"},
		{QuestionText: "second", AnswerOptions: []string{"b"}, CorrectAnswer: "b"},
		{QuestionText: "third", AnswerOptions: []string{"c"}, CorrectAnswer: "c"},
	}

	questions := questionsFromReq(reqs)

	if len(questions) != 3 {
		t.Fatalf("len = %d, want 3", len(questions))
	}
	for i, q := range questions {
		if q.Order != i {
			t.Errorf("question %d order = %d, want %d", i, q.Order, i)
		}
		if q.QuestionText != reqs[i].QuestionText {
			t.Errorf("question %d text = %q, want %q", i, q.QuestionText, reqs[i].QuestionText)
		}
	}
}
