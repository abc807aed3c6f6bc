package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"cakeOrderManagement/internal/config"
	"cakeOrderManagement/internal/db"
	"cakeOrderManagement/internal/filestore"
	"cakeOrderManagement/internal/httpapi"
	"cakeOrderManagement/internal/intake"
	"cakeOrderManagement/internal/notify"
	"cakeOrderManagement/internal/schedule"
	"cakeOrderManagement/internal/sheet"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger.Info("configuration loaded", zap.String("config", cfg.String()))

	// Open DB
	d, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.Error("close db", zap.Error(err))
		}
	}()

	sheets := sheet.New(d)

	var files filestore.Store
	filesDir := ""
	if cfg.S3Bucket != "" {
		s3store, err := filestore.NewS3(context.Background(), cfg.S3Bucket, cfg.AWSRegion)
		if err != nil {
			log.Fatalf("init s3 store: %v", err)
		}
		files = s3store
		logger.Info("archiving attachments to s3", zap.String("bucket", cfg.S3Bucket))
	} else {
		files = filestore.NewLocal(cfg.AttachmentDir)
		filesDir = cfg.AttachmentDir
	}

	var mailer notify.Mailer
	if cfg.SMTPHost != "" {
		mailer = notify.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPUser, cfg.OwnerEmail)
	} else {
		mailer = notify.NewLog(logger)
	}

	pipeline := intake.New(sheets, files, mailer, schedule.NewWriter(cfg.CalendarDir), logger, cfg.OrderSheet, cfg.InquirySheet)

	srv := httpapi.New(pipeline, sheets, logger, httpapi.Options{
		OrderSheet:   cfg.OrderSheet,
		InquirySheet: cfg.InquirySheet,
		JWTSecret:    cfg.JWTSecret,
		FilesDir:     filesDir,
	})

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Router(),
	}
	go func() {
		logger.Info("http server listening", zap.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// Wait for signal
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
