package util

import "errors"

var (
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrTitleRequired        = errors.New("quiz title is required")
	ErrQuestionsRequired    = errors.New("quiz must contain at least one question")
	ErrNoStudents           = errors.New("at least one student id is required")
	ErrQuizAlreadyAttempted = errors.New("quiz already attempted")
	ErrSubmissionInFlight   = errors.New("submission already in progress")
)
