package model

import (
	"time"
)

// Assignment 测验指派记录，(quiz, student) 组合唯一，
// 重复指派走 upsert 更新 assigned_by/assigned_at
type Assignment struct {
	BaseModel
	QuizID     string    `gorm:"type:varchar(36);not null;uniqueIndex:uq_assignment_quiz_student,priority:1" json:"quizId"`
	StudentID  uint      `gorm:"not null;uniqueIndex:uq_assignment_quiz_student,priority:2" json:"studentId"`
	AssignedBy uint      `gorm:"not null" json:"assignedBy"`
	AssignedAt time.Time `gorm:"not null" json:"assignedAt"`
}

func (Assignment) TableName() string {
	return "assignments"
}
