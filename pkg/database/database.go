package database

import (
	"fmt"
	"log"

	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/config"
	"github.com/MuhammadUmair1152/Quiz-App-Backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// assignments 和 results 上的 (quiz_id, student_id) 唯一索引
	// 同时承担并发指派和并发交卷的幂等保证，不能省
	err = db.AutoMigrate(
		&model.User{},
		&model.Quiz{},
		&model.Question{},
		&model.Assignment{},
		&model.Result{},
		&model.ResultAnswer{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}
