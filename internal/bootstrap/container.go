package bootstrap

import (
	"labnotebook-be/internal/config"
	"labnotebook-be/internal/controller"
	"labnotebook-be/internal/pkg/logger"
	"labnotebook-be/internal/repository/unitofwork"
	"labnotebook-be/internal/service"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	NoteController       controller.INoteController
	ExperimentController controller.IExperimentController
	ActivityController   controller.IActivityController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	publisherService := service.NewPublisherService(cfg.App.ActivityTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.ActivityTopic, uowFactory)

	// 3. Services
	authService := service.NewAuthService(uowFactory)
	noteService := service.NewNoteService(uowFactory, publisherService)
	experimentService := service.NewExperimentService(uowFactory, publisherService)
	activityService := service.NewActivityService(uowFactory)

	// 4. Controllers
	authController := controller.NewAuthController(authService)
	noteController := controller.NewNoteController(noteService)
	experimentController := controller.NewExperimentController(experimentService)
	activityController := controller.NewActivityController(activityService)

	return &Container{
		AuthController:       authController,
		NoteController:       noteController,
		ExperimentController: experimentController,
		ActivityController:   activityController,
		ConsumerService:      consumerService,
		Logger:               sysLogger,
	}
}
