package controller

import (
	"errors"

	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/service"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	Service *service.ResultService
}

func NewResultController(svc *service.ResultService) *ResultController {
	return &ResultController{Service: svc}
}

// @Summary 查看某测验的学生完成状态（教师）
// @Tags 成绩模块
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/results [get]
func (c *ResultController) QuizResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.Service.QuizStatusForTeacher(user.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, rows)
}

// @Summary 查看自己的成绩（学生）
// @Tags 成绩模块
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/results/my [get]
func (c *ResultController) MyResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	rows, err := c.Service.MyResults(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, rows)
}
