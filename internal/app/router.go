package app

import (
	"github.com/MuhammadUmair1152/Quiz-App-Backend/docs"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/config"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/middleware"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/model"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		// 学生接口
		student := authGroup.Group("")
		student.Use(middleware.RoleMiddleware(model.Student))
		{
			student.GET("/quizzes/assigned", c.quiz.AssignedQuizzes)
			student.POST("/quizzes/:id/submit", c.quiz.SubmitAttempt)
			student.GET("/results/my", c.result.MyResults)
		}

		// 教师接口（管理员同权）
		teacher := authGroup.Group("")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.POST("/quizzes", c.quiz.CreateQuiz)
			teacher.GET("/quizzes", c.quiz.ListQuizzes)
			teacher.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
			teacher.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
			teacher.POST("/quizzes/:id/assign", c.quiz.AssignQuiz)
			teacher.GET("/quizzes/:id/results", c.result.QuizResults)
		}

		// 教师和学生都可以查看单个测验
		authGroup.GET("/quizzes/:id", middleware.RoleMiddleware(model.Teacher, model.Student), c.quiz.GetQuiz)
	}
}
