package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/patiponrmutl/SchoolPortal/config"
	"github.com/patiponrmutl/SchoolPortal/database"
	"github.com/patiponrmutl/SchoolPortal/ledger"
	"github.com/patiponrmutl/SchoolPortal/logging"
	"github.com/patiponrmutl/SchoolPortal/realtime"
	"github.com/patiponrmutl/SchoolPortal/routes"
)

func main() {
	cfg := config.Load()

	logger, err := logging.Init(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// fail fast when the database is not up yet
	database.Connect(cfg)

	hub := realtime.NewHub(logger.Named("realtime"))
	notes := ledger.GormNotificationStore{DB: database.DB}
	attendance := ledger.NewAttendanceLedger(
		ledger.GormAttendanceStore{DB: database.DB}, notes, hub, logger.Named("attendance"))
	results := ledger.NewResultLedger(
		ledger.GormResultStore{DB: database.DB}, notes, hub, logger.Named("results"))

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, routes.Deps{
		JWTSecret:  cfg.JWTSecret,
		Hub:        hub,
		Attendance: attendance,
		Results:    results,
	})

	addr := ":" + cfg.AppPort
	logger.Info("server listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
