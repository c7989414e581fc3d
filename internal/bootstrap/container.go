package bootstrap

import (
	"context"
	"log"

	"lecturelama-be/internal/config"
	"lecturelama-be/internal/controller"
	"lecturelama-be/internal/pkg/logger"
	"lecturelama-be/internal/repository/memory"
	"lecturelama-be/internal/service"
	"lecturelama-be/pkg/tutor"
)

type Container struct {
	// Controllers
	AuthController  controller.IAuthController
	TutorController controller.ITutorController
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. External Model Client
	// A missing API key is a configuration error, not a runtime one.
	if cfg.Keys.GoogleGemini == "" {
		log.Fatalf("[FATAL] GOOGLE_GEMINI_API_KEY is not set")
	}
	generator, err := tutor.NewGeminiTutor(context.Background(), cfg.Keys.GoogleGemini, cfg.Ai.TutorModel)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Gemini tutor: %v", err)
	}
	log.Printf("[INFO] Using tutor model: %s", cfg.Ai.TutorModel)

	// 3. In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	// 4. Services
	authService := service.NewAuthService(sessionRepo, cfg.App.JWTSecret, sysLogger)
	tutorService := service.NewTutorService(sessionRepo, generator, sysLogger)

	// 5. Controllers
	return &Container{
		AuthController:  controller.NewAuthController(authService),
		TutorController: controller.NewTutorController(tutorService),
	}
}
