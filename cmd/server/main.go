package main

import (
	"github.com/eventshuffle/backend/internal/client"
	"github.com/eventshuffle/backend/internal/controller"
	"github.com/eventshuffle/backend/internal/dto"
	"github.com/eventshuffle/backend/internal/repository"
	"github.com/eventshuffle/backend/internal/service"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// A .env file is optional; real deployments configure the environment
	// directly.
	_ = godotenv.Load()

	cfg, err := dto.LoadConfig()
	if err != nil {
		logrus.Panic(err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	clients := client.NewClients(cfg)
	repositories := repository.NewRepositories(clients.Postgres())
	services := service.NewServices(repositories, cfg)
	controllers := controller.NewControllers(services, cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logrus.WithFields(logrus.Fields{
				"method": v.Method,
				"uri":    v.URI,
				"status": v.Status,
			}).Info("request")
			return nil
		},
	}))

	controllers.Route(e)

	logrus.Infof("Starting eventshuffle on port %s", cfg.Port)
	logrus.Fatal(e.Start(":" + cfg.Port))
}
