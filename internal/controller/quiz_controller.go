package controller

import (
	"errors"

	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/model"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/service"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/util"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

func quizServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrTitleRequired),
		errors.Is(err, util.ErrQuestionsRequired),
		errors.Is(err, util.ErrNoStudents):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrQuizAlreadyAttempted),
		errors.Is(err, util.ErrSubmissionInFlight):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary 创建测验
// @Tags 测验模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizReq true "测验信息"
// @Success 201 {object} util.Response
// @Router /api/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.CreateQuiz(user.UserID, req)
	if err != nil {
		quizServiceError(ctx, err)
		return
	}

	util.Created(ctx, quiz)
}

// @Summary 获取当前教师创建的测验列表
// @Tags 测验模块
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quizzes, err := c.Service.ListQuizzes(user.UserID)
	if err != nil {
		quizServiceError(ctx, err)
		return
	}

	util.Success(ctx, quizzes)
}

// @Summary 获取测验详情（学生视图不含正确答案）
// @Tags 测验模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	quiz, err := c.Service.GetQuiz(ctx.Param("id"), user.Role != model.Student)
	if err != nil {
		quizServiceError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// @Summary 更新测验
// @Tags 测验模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Param body body service.QuizReq true "测验信息"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Service.UpdateQuiz(user.UserID, ctx.Param("id"), req)
	if err != nil {
		quizServiceError(ctx, err)
		return
	}

	util.Success(ctx, quiz)
}

// @Summary 删除测验（连带指派和成绩）
// @Tags 测验模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.DeleteQuiz(user.UserID, ctx.Param("id")); err != nil {
		quizServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

type AssignQuizReq struct {
	StudentIDs []uint `json:"studentIds" binding:"required"`
}

// @Summary 指派测验给学生
// @Tags 测验模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Param body body AssignQuizReq true "学生ID列表"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/assign [post]
func (c *QuizController) AssignQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AssignQuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.AssignQuiz(user.UserID, ctx.Param("id"), req.StudentIDs); err != nil {
		quizServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"assigned": len(req.StudentIDs)})
}

// @Summary 获取当前学生的待完成测验
// @Tags 测验模块
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/quizzes/assigned [get]
func (c *QuizController) AssignedQuizzes(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	pending, err := c.Service.AssignedQuizzes(user.UserID)
	if err != nil {
		quizServiceError(ctx, err)
		return
	}

	util.Success(ctx, pending)
}

// @Summary 提交测验作答
// @Tags 测验模块
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Param body body []int true "按题目顺序排列的选项下标，可为null"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	// 提交体必须是数组，元素可以是 null（未作答）
	var answers []*int
	if err := ctx.ShouldBindJSON(&answers); err != nil {
		util.BadRequest(ctx, "studentAnswers must be an array of answer indexes")
		return
	}

	view, err := c.Service.SubmitAttempt(user.UserID, ctx.Param("id"), answers)
	if err != nil {
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		quizServiceError(ctx, err)
		return
	}

	monitoring.SubmissionCounter.WithLabelValues("completed").Inc()
	util.Success(ctx, view)
}
