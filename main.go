package main

import (
	"os"
	"path/filepath"

	"exam-store/config"
	_ "exam-store/docs"
	"exam-store/middleware"
	"exam-store/models"
	"exam-store/routes"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @title Exam Store API
// @version 1.0
// @description Backend for selling exam PDFs and video courses.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	config.SetupLogger()
	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	db := config.ConnectDB()
	defer config.CloseDB()

	models.InitRedis()
	defer models.CloseRedis()

	assets, err := models.NewCloudinaryService()
	if err != nil {
		logrus.Fatalf("Failed to init Cloudinary: %v", err)
	}

	email, err := models.NewEmailService()
	if err != nil {
		logrus.Warnf("Email service disabled: %v", err)
		email = nil
	}

	if err := os.MkdirAll(filepath.Join(config.AppConfig.UploadDir, "pdfs"), os.ModePerm); err != nil {
		logrus.Fatalf("Failed to create upload directory: %v", err)
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router, db, assets, email)

	port := ":" + config.AppConfig.Port
	logrus.Infof("Server starting on port %s", port)
	logrus.Infof("Environment: %s", config.AppConfig.AppEnv)
	logrus.Infof("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
