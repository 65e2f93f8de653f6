package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/listkeep/internal/backup"
	"github.com/dukerupert/listkeep/internal/database"
	"github.com/dukerupert/listkeep/internal/foodfacts"
	"github.com/dukerupert/listkeep/internal/logging"
	"github.com/dukerupert/listkeep/internal/server"
	"github.com/dukerupert/listkeep/internal/store"
)

func main() {
	restoreFile := flag.String("restore", "", "restore the named backup file from the backup dir, then exit")
	flag.Parse()

	logger := logging.Setup(os.Getenv("LISTKEEP_LOG_LEVEL"))

	port := os.Getenv("LISTKEEP_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("LISTKEEP_DB_PATH")
	if dbPath == "" {
		dbPath = "listkeep.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	cfg := server.Config{
		Food: foodfacts.Config{
			ClientID:     os.Getenv("FATSECRET_CLIENT_ID"),
			ClientSecret: os.Getenv("FATSECRET_CLIENT_SECRET"),
		},
		Backup: backup.Config{
			Dir:        os.Getenv("LISTKEEP_BACKUP_DIR"),
			Passphrase: os.Getenv("LISTKEEP_BACKUP_PASSPHRASE"),
			S3: backup.S3Config{
				Endpoint:  os.Getenv("LISTKEEP_S3_ENDPOINT"),
				Bucket:    os.Getenv("LISTKEEP_S3_BUCKET"),
				Region:    os.Getenv("LISTKEEP_S3_REGION"),
				AccessKey: os.Getenv("LISTKEEP_S3_ACCESS_KEY"),
				SecretKey: os.Getenv("LISTKEEP_S3_SECRET_KEY"),
			},
		},
		Push: server.PushConfig{
			VAPIDPublicKey:  os.Getenv("LISTKEEP_VAPID_PUBLIC_KEY"),
			VAPIDPrivateKey: os.Getenv("LISTKEEP_VAPID_PRIVATE_KEY"),
		},
	}

	if *restoreFile != "" {
		ds := store.NewDataStore(db, logger.With("component", "store"))
		mgr := backup.NewManager(cfg.Backup, ds, logger.With("component", "backup"))
		if err := mgr.Restore(*restoreFile); err != nil {
			log.Fatalf("restore failed: %v", err)
		}
		fmt.Printf("Restored %s\n", *restoreFile)
		return
	}

	srv := server.New(db, cfg, logger)

	if srv.BackupManager().Enabled() {
		logger.Info("backups enabled", "s3", srv.BackupManager().Status().S3Enabled)
	}

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Listkeep running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
