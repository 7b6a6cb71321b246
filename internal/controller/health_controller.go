package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "database": "unreachable"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
