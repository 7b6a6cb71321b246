package model

import (
	"time"
)

// Result 学生一次完成的测验成绩。(quiz, student) 组合唯一：
// 记录存在本身就代表"已完成"，不另设状态字段
type Result struct {
	BaseModel
	StudentID     uint           `gorm:"not null;uniqueIndex:uq_result_quiz_student,priority:2" json:"studentId"`
	QuizID        string         `gorm:"type:varchar(36);not null;uniqueIndex:uq_result_quiz_student,priority:1" json:"quizId"`
	Score         int            `gorm:"not null" json:"score"`
	Percentage    float64        `gorm:"not null" json:"percentage"`
	DateAttempted time.Time      `gorm:"not null" json:"dateAttempted"`
	Answers       []ResultAnswer `gorm:"foreignKey:ResultID" json:"studentAnswers"`
}

func (Result) TableName() string {
	return "results"
}

// ResultAnswer 学生实际作答的题目，未作答的题不落库
type ResultAnswer struct {
	BaseModel
	ResultID     uint   `gorm:"index;not null" json:"-"`
	QuestionID   string `gorm:"type:varchar(36);not null" json:"questionId"`
	ChosenAnswer string `gorm:"type:text;not null" json:"chosenAnswer"`
}

func (ResultAnswer) TableName() string {
	return "result_answers"
}
