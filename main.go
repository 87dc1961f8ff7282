package main

import (
	"log"

	"course-manager/config"
	"course-manager/internal/handler"
	"course-manager/internal/middleware"
	"course-manager/internal/repository"
	"course-manager/internal/service"
	"course-manager/pkg/database"
	"course-manager/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		// Domain events are best-effort; the API stays up without a broker.
		log.Printf("rabbitmq unavailable, continuing without publishing: %v", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	// Repositories
	eventRepo := repository.NewEventRepository(db)
	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	tagRepo := repository.NewTagRepository(db)

	// Services
	eventSvc := service.NewEventService(eventRepo, userRepo, roomRepo, tagRepo, publisher)
	userSvc := service.NewUserService(userRepo, eventRepo, publisher)
	roomSvc := service.NewRoomService(roomRepo)
	tagSvc := service.NewTagService(tagRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = handler.NewRequestValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "course-manager"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	handler.NewEventHandler(eventSvc).RegisterRoutes(api.Group("/events"))
	handler.NewUserHandler(userSvc, eventSvc).RegisterRoutes(api.Group("/users"))
	handler.NewRoomHandler(roomSvc).RegisterRoutes(api.Group("/rooms"))
	handler.NewTagHandler(tagSvc).RegisterRoutes(api.Group("/tags"))

	log.Printf("Course Manager starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
