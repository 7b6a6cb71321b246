package service

import (
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/model"
)

// GradedQuestion 单题判分反馈，内容全部为明文，调用方可以直接渲染
type GradedQuestion struct {
	QuestionID    string  `json:"questionId"`
	QuestionText  string  `json:"question"`
	StudentAnswer *string `json:"studentAnswer"`
	CorrectAnswer string  `json:"correctAnswer"`
	IsCorrect     bool    `json:"isCorrect"`
}

type GradeResult struct {
	Breakdown  []GradedQuestion
	Answers    []model.ResultAnswer
	Score      int
	Percentage float64
}

// Grade 按提交的选项下标对已解密的题目判分。纯函数，不碰存储。
//
// answers[i] 对应 questions[i]；缺失（数组偏短或元素为null）和越界的
// 下标都按未作答处理：反馈里记一条答错，但不进入落库的作答明细。
// 选项文本与正确答案做区分大小写的精确比较
func Grade(questions []model.Question, answers []*int) GradeResult {
	result := GradeResult{
		Breakdown: make([]GradedQuestion, 0, len(questions)),
		Answers:   make([]model.ResultAnswer, 0, len(questions)),
	}

	for i, q := range questions {
		var choice *int
		if i < len(answers) {
			choice = answers[i]
		}

		row := GradedQuestion{
			QuestionID:    q.ID,
			QuestionText:  q.QuestionText,
			CorrectAnswer: q.CorrectAnswer,
		}

		if choice == nil || *choice < 0 || *choice >= len(q.AnswerOptions) {
			result.Breakdown = append(result.Breakdown, row)
			continue
		}

		chosen := q.AnswerOptions[*choice]
		row.StudentAnswer = &chosen
		row.IsCorrect = chosen == q.CorrectAnswer

		if row.IsCorrect {
			result.Score++
		}

		result.Breakdown = append(result.Breakdown, row)
		result.Answers = append(result.Answers, model.ResultAnswer{
			QuestionID:   q.ID,
			ChosenAnswer: chosen,
		})
	}

	if len(questions) > 0 {
		result.Percentage = float64(result.Score) / float64(len(questions)) * 100
	}
	return result
}
