package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/listkeep/internal/backup"
	"github.com/dukerupert/listkeep/internal/foodfacts"
	"github.com/dukerupert/listkeep/internal/handler"
	"github.com/dukerupert/listkeep/internal/list"
	"github.com/dukerupert/listkeep/internal/middleware"
	"github.com/dukerupert/listkeep/internal/push"
	"github.com/dukerupert/listkeep/internal/store"
	ws "github.com/dukerupert/listkeep/internal/websocket"
)

// Config collects the optional integrations wired at startup.
type Config struct {
	Food   foodfacts.Config
	Backup backup.Config
	Push   PushConfig
}

// PushConfig holds the VAPID key pair; push stays disabled when empty.
type PushConfig struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
}

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	listH         *handler.ListHandler
	categoryH     *handler.CategoryHandler
	foodH         *handler.FoodHandler
	pushH         *handler.PushHandler
	backupH       *handler.BackupHandler
	backupManager *backup.Manager
	logger        *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	dataStore := store.NewDataStore(db, logger.With("component", "store"))
	pushStore := store.NewPushStore(db)

	listSvc := list.NewService(dataStore, logger.With("component", "list"))
	foodClient := foodfacts.NewClient(cfg.Food, logger.With("component", "foodfacts"))

	var pushSvc *push.Service
	var notifier *push.Notifier
	var pushH *handler.PushHandler
	if cfg.Push.VAPIDPublicKey != "" && cfg.Push.VAPIDPrivateKey != "" {
		pushSvc = push.NewService(cfg.Push.VAPIDPublicKey, cfg.Push.VAPIDPrivateKey)
		notifier = push.NewNotifier(pushSvc, pushStore, logger.With("component", "push"))
		pushH = handler.NewPushHandler(pushStore, pushSvc, logger.With("component", "push_handler"))
	}

	backupMgr := backup.NewManager(cfg.Backup, dataStore, logger.With("component", "backup"))

	return &Server{
		db:            db,
		hub:           hub,
		listH:         handler.NewListHandler(listSvc, dataStore, hub, notifier, logger.With("component", "list_handler")),
		categoryH:     handler.NewCategoryHandler(dataStore, logger.With("component", "category_handler")),
		foodH:         handler.NewFoodHandler(foodClient),
		pushH:         pushH,
		backupH:       handler.NewBackupHandler(backupMgr, logger.With("component", "backup_handler")),
		backupManager: backupMgr,
		logger:        logger,
	}
}

// BackupManager exposes the manager for startup status logging.
func (s *Server) BackupManager() *backup.Manager {
	return s.backupManager
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.Handle("GET /ws", ws.HandleWebSocket(s.hub))

	// Shopping lists
	mux.HandleFunc("GET /api/lists", s.listH.ListLists)
	mux.HandleFunc("POST /api/lists", s.listH.CreateList)
	mux.HandleFunc("GET /api/lists/{id}", s.listH.GetList)
	mux.HandleFunc("PUT /api/lists/{id}", s.listH.UpdateList)
	mux.HandleFunc("DELETE /api/lists/{id}", s.listH.DeleteList)
	mux.HandleFunc("GET /api/lists/{id}/partitioned", s.listH.PartitionedList)

	// Items
	mux.HandleFunc("POST /api/lists/{list_id}/items", s.listH.CreateItem)
	mux.HandleFunc("PUT /api/lists/{list_id}/items/{id}", s.listH.UpdateItem)
	mux.HandleFunc("DELETE /api/lists/{list_id}/items/{id}", s.listH.DeleteItem)
	mux.HandleFunc("POST /api/lists/{list_id}/items/{id}/toggle", s.listH.ToggleItem)

	// Categories
	mux.HandleFunc("GET /api/categories", s.categoryH.ListCategories)
	mux.HandleFunc("PUT /api/categories", s.categoryH.ReplaceCategories)

	// Food facts
	mux.HandleFunc("GET /api/food/search", s.foodH.Search)
	mux.HandleFunc("GET /api/food/status", s.foodH.Status)
	mux.HandleFunc("GET /api/food/health", s.foodH.Health)
	mux.HandleFunc("GET /api/food/{id}", s.foodH.Details)

	// Push notifications (only when VAPID keys are configured)
	if s.pushH != nil {
		mux.HandleFunc("GET /api/push/vapid-key", s.pushH.GetVAPIDKey)
		mux.HandleFunc("POST /api/push/subscriptions", s.pushH.Subscribe)
		mux.HandleFunc("DELETE /api/push/subscriptions", s.pushH.Unsubscribe)
	}

	// Backups
	mux.HandleFunc("POST /api/backups", s.backupH.RunBackup)
	mux.HandleFunc("GET /api/backups", s.backupH.ListBackups)
	mux.HandleFunc("GET /api/backups/status", s.backupH.Status)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "degraded", "error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
