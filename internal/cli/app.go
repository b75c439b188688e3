package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/humiapp/humi/internal/assistant"
	"github.com/humiapp/humi/internal/blob"
	"github.com/humiapp/humi/internal/catalog"
	"github.com/humiapp/humi/internal/config"
	"github.com/humiapp/humi/internal/identify"
	"github.com/humiapp/humi/internal/logging"
	"github.com/humiapp/humi/internal/models"
	"github.com/humiapp/humi/internal/remote"
	"github.com/humiapp/humi/internal/repositories/metadata"
	"github.com/humiapp/humi/internal/services"
	"github.com/humiapp/humi/internal/stats"
	"github.com/humiapp/humi/internal/storage"
	"github.com/humiapp/humi/internal/vision"
)

// App holds the wired-up services behind the REPL. The remote store and the
// services depending on it are rebuilt on login, since the access token is
// baked into the HTTP client.
type App struct {
	config *config.Config
	logger logging.Logger

	db    *sql.DB
	repos *storage.Repositories

	// mu guards the token-bound fields below: login/logout on the REPL
	// goroutine rebuild them while the sync watcher reads them.
	mu         sync.RWMutex
	store      remote.Store
	logs       *services.LogService
	identifier *identify.Orchestrator
	userID     string

	reader *bufio.Reader

	// lastEntries caches the most recent listing so rate/notes/feedback
	// commands can address entries by list position.
	lastEntries []models.LogEntry

	// newStore is a test seam for the remote store constructor.
	newStore func(baseURL, accessToken string) remote.Store
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := os.MkdirAll(c.DataDir, 0o700); err != nil {
		return nil, err
	}

	db, repos, err := storage.InitDatabase(ctx, filepath.Join(c.DataDir, "humi.db"))
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	a := &App{
		config: c,
		logger: logger,
		db:     db,
		repos:  repos,
		reader: bufio.NewReader(os.Stdin),
		newStore: func(baseURL, accessToken string) remote.Store {
			return remote.NewHTTPStore(baseURL, accessToken)
		},
	}

	a.restoreSession(ctx)
	return a, nil
}

// restoreSession logs the user back in from the persisted access token.
// A missing key comes back as an empty value, not an error.
func (a *App) restoreSession(ctx context.Context) {
	token, err := a.repos.Metadata.Get(ctx, metadata.KeyAccessToken)
	if err != nil {
		a.logger.Warn(ctx, "session restore failed", "error", err)
		return
	}
	if len(token) == 0 {
		return
	}
	if err := a.connect(ctx, string(token)); err != nil {
		a.logger.Warn(ctx, "persisted token rejected", "error", err)
		_ = a.repos.Metadata.Delete(ctx, metadata.KeyAccessToken)
	}
}

// connect derives the user id from the token and builds the token-bound
// service graph.
func (a *App) connect(ctx context.Context, token string) error {
	userID, err := remote.UserIDFromToken(token)
	if err != nil {
		return err
	}

	store := a.newStore(a.config.ServerBaseURL, token)

	var uploader blob.Uploader
	if a.config.S3Bucket != "" {
		up, err := blob.NewS3Uploader(ctx, blob.Options{
			AccessKey:    a.config.S3AccessKey,
			SecretKey:    a.config.S3SecretKey,
			Bucket:       a.config.S3Bucket,
			Region:       a.config.S3Region,
			BaseEndpoint: a.config.S3BaseEndpoint,
		})
		if err != nil {
			a.logger.Warn(ctx, "blob store unavailable, images stay local", "error", err)
		} else {
			uploader = up
		}
	}

	extractor := vision.NewExtractor(a.config.AIBaseURL, a.config.AIAPIKey, a.config.VisionModel)
	resolver := assistant.NewResolver(a.config.AIBaseURL, a.config.AIAPIKey, a.config.AssistantID, a.logger).
		WithPolling(a.config.PollInterval, a.config.PollTimeout)

	a.setSession(userID, store,
		services.NewLogService(store, a.repos.Queue, uploader, stats.NewNotifier(store), a.logger),
		identify.NewOrchestrator(extractor, resolver, catalog.Default(), store, a.logger))
	return nil
}

func (a *App) setSession(userID string, store remote.Store, logs *services.LogService, identifier *identify.Orchestrator) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.store = store
	a.logs = logs
	a.identifier = identifier
	a.userID = userID
}

func (a *App) disconnect() {
	a.setSession("", nil, nil, nil)
	a.lastEntries = nil
}

func (a *App) isLoggedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.userID != ""
}

// syncTarget snapshots the fields the watcher needs for one tick, so a
// logout between ticks cannot pull them out from under it.
func (a *App) syncTarget() (*services.LogService, string) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.logs, a.userID
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

// StartSyncWatcher periodically drains the pending queue while a user is
// logged in.
func (a *App) StartSyncWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logs, userID := a.syncTarget()
			if logs == nil {
				continue
			}
			sctx, cancel := context.WithTimeout(context.Background(), interval)
			n, err := logs.SyncPending(sctx, userID)
			cancel()
			if err != nil {
				a.logger.Warn(ctx, "background sync failed", "error", err)
			} else if n > 0 {
				a.logger.Info(ctx, "synced queued entries", "count", n)
			}
		case <-ctx.Done():
			return
		}
	}
}
