package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringArray JSON列存储的字符串数组，用于题目的选项列表
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringArray", value)
	}
	return json.Unmarshal(raw, a)
}

// Quiz 教师创建的测验，仅创建者可以修改/删除/指派
// swagger:model Quiz
type Quiz struct {
	UUIDBase
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	CreatedBy   uint       `gorm:"index;not null" json:"createdBy"`
	Questions   []Question `gorm:"foreignKey:QuizID" json:"questions"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Question 测验题目。QuestionText/AnswerOptions/CorrectAnswer 三个字段
// 落库前都会经过字段加密，ID 和 Order 保持原样
type Question struct {
	UUIDBase
	QuizID        string      `gorm:"index;type:varchar(36);not null" json:"-"`
	QuestionText  string      `gorm:"type:text;not null" json:"questionText"`
	AnswerOptions StringArray `gorm:"type:json" json:"answerOptions"`
	CorrectAnswer string      `gorm:"type:text;not null" json:"correctAnswer"`
	Order         int         `gorm:"default:0" json:"order"`
}

func (Question) TableName() string {
	return "quiz_questions"
}
