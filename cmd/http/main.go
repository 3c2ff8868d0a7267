package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"pulsecheck-service/internal/app/config"
	"pulsecheck-service/internal/app/delivery/http/middlewares"
	"pulsecheck-service/internal/app/delivery/http/routers"
	"pulsecheck-service/internal/app/drivers/database"
	"pulsecheck-service/internal/app/drivers/logger"
	drivermailer "pulsecheck-service/internal/app/drivers/mailer"
	"pulsecheck-service/internal/app/drivers/messaging"
	driverstorage "pulsecheck-service/internal/app/drivers/storage"
	"pulsecheck-service/internal/app/services/core/auth"
	"pulsecheck-service/internal/app/services/core/calls"
	"pulsecheck-service/internal/app/services/core/patients"
	"pulsecheck-service/internal/app/services/core/scoring"
	"pulsecheck-service/internal/app/services/core/surveys"
	"pulsecheck-service/internal/app/services/shared/callqueue"
	"pulsecheck-service/internal/app/services/shared/locker"
	sharedmailer "pulsecheck-service/internal/app/services/shared/mailer"
	"pulsecheck-service/internal/app/services/shared/redis"
	sharedstorage "pulsecheck-service/internal/app/services/shared/storage"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	if err := scoring.ValidateTables(); err != nil {
		log.Fatalf("Question tables are inconsistent: %v", err)
	}

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoClient := database.NewMongoDB(driverConfig)
	mongoDatabase := mongoClient.Database(driverConfig.MongoDB.DbName)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitConnection := messaging.NewRabbitMQ(driverConfig)
	minioClient := driverstorage.NewMinio(driverConfig)
	smtpClient := drivermailer.NewSMTPClient(driverConfig)

	// Shared services
	redisRepository := redis.NewRedisRepository(redisClient)
	lockerService := locker.NewLockerService(redisClient, zapLogger)
	minioStorage := sharedstorage.NewMinioStorage(minioClient)
	mailerService, err := sharedmailer.NewMailerService(rabbitConnection, smtpClient, internalConfig, zapLogger)
	if err != nil {
		log.Fatalf("Failed to set up mailer service: %v", err)
	}
	callQueueService, err := callqueue.NewCallQueueService(rabbitConnection, zapLogger)
	if err != nil {
		log.Fatalf("Failed to set up call queue: %v", err)
	}

	// Repositories
	patientRepository := patients.NewPatientMongoRepository(mongoDatabase)
	sessionRepository := surveys.NewSurveySessionMongoRepository(mongoDatabase)
	clinicianRepository := auth.NewClinicianMongoRepository(mongoDatabase)

	// Usecases
	authUsecase := auth.NewAuthUsecase(clinicianRepository, internalConfig, zapLogger)
	patientUsecase := patients.NewPatientUsecase(patientRepository, sessionRepository, lockerService, zapLogger)
	surveyUsecase := surveys.NewSurveyUsecase(
		sessionRepository,
		patientRepository,
		redisRepository,
		lockerService,
		mailerService,
		minioStorage,
		scoring.Catalog{},
		internalConfig,
		driverConfig.Minio.BucketName,
		zapLogger,
	)
	callUsecase := calls.NewCallUsecase(patientRepository, callQueueService, internalConfig, zapLogger)

	// Controllers
	authController := auth.NewAuthController(authUsecase, zapLogger)
	patientController := patients.NewPatientController(patientUsecase, zapLogger)
	surveyController := surveys.NewSurveyController(surveyUsecase, zapLogger)
	ivrController := surveys.NewIVRController(surveyUsecase, zapLogger)
	callController := calls.NewCallController(callUsecase, zapLogger)

	scheduler := calls.NewScheduler(callUsecase, lockerService, internalConfig, zapLogger)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start call scheduler: %v", err)
	}

	chiRouter := chi.NewRouter()
	httpMiddlewares := middlewares.NewMiddlewares(internalConfig, zapLogger)
	routers.SetupRoutes(
		chiRouter,
		internalConfig,
		httpMiddlewares,
		authController,
		patientController,
		surveyController,
		ivrController,
		callController,
	)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()
	log.Printf("Server listening on %s", internalConfig.App.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests to finish..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	scheduler.Stop()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Printf("Error while disconnecting mongo: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Printf("Error while closing redis: %v", err)
	}
	if err := rabbitConnection.Close(); err != nil {
		log.Printf("Error while closing rabbitmq: %v", err)
	}

	log.Println("Server exiting")
}
