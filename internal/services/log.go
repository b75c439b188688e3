// Package services wires identification, persistence and sync into the
// operations the CLI drives: the offline-first log service and the
// add-entry session state machine.
package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/humiapp/humi/internal/blob"
	"github.com/humiapp/humi/internal/common"
	"github.com/humiapp/humi/internal/logging"
	"github.com/humiapp/humi/internal/models"
	"github.com/humiapp/humi/internal/remote"
	"github.com/humiapp/humi/internal/repositories/queue"
)

// StatsNotifier receives finalized entries after a successful remote write.
type StatsNotifier interface {
	LogAdded(ctx context.Context, userID string, entry models.LogEntry) error
}

// LogService is the offline-first persistence manager. Saves go to the
// remote store when it is reachable and to the local pending-sync queue when
// it is not; a save that lands in neither is an error. Reads merge both
// sources so the journal is complete regardless of connectivity.
type LogService struct {
	store    remote.Store
	queue    queue.Repository
	uploader blob.Uploader
	notifier StatsNotifier
	logger   logging.Logger

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex

	// test seams
	now      func() time.Time
	readFile func(string) ([]byte, error)
}

func NewLogService(store remote.Store, q queue.Repository, uploader blob.Uploader,
	notifier StatsNotifier, logger logging.Logger) *LogService {
	return &LogService{
		store:     store,
		queue:     q,
		uploader:  uploader,
		notifier:  notifier,
		logger:    logger,
		userLocks: make(map[string]*sync.Mutex),
		now:       time.Now,
		readFile:  os.ReadFile,
	}
}

// userLock serializes queue mutations per user so a save racing a sync pass
// cannot duplicate or lose an entry.
func (s *LogService) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.userLocks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.userLocks[userID] = l
	}
	return l
}

// Save finalizes a draft into a log entry. The blob upload is best-effort;
// the remote write falls back to the local queue. Entry is returned with
// PendingSync reporting where it landed.
func (s *LogService) Save(ctx context.Context, draft models.LogDraft) (*models.LogEntry, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	entry := &models.LogEntry{
		ID:                 uuid.NewString(),
		UserID:             draft.UserID,
		FullName:           draft.FullName,
		Notes:              draft.Notes,
		OverallRating:      draft.OverallRating,
		SubmittedAt:        s.now().UTC(),
		ImageLocalPath:     draft.ImageLocalPath,
		Identification:     draft.Identification,
		AIAccuracyFeedback: draft.AIAccuracyFeedback,
		FromCatalog:        draft.FromCatalog,
	}

	entry.ImageRemoteURL = s.uploadImage(ctx, entry)

	lock := s.userLock(entry.UserID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.CreateLog(ctx, entry); err != nil {
		s.logger.Warn(ctx, "remote save failed, queueing locally", "entry_id", entry.ID, "error", err)
		entry.PendingSync = true
		if qerr := s.queue.Append(ctx, entry); qerr != nil {
			return nil, fmt.Errorf("save failed remotely (%v) and locally: %w", err, qerr)
		}
		return entry, nil
	}

	s.notifyAsync(ctx, *entry)
	return entry, nil
}

func (s *LogService) uploadImage(ctx context.Context, entry *models.LogEntry) string {
	if s.uploader == nil {
		return ""
	}
	data, err := s.readFile(entry.ImageLocalPath)
	if err != nil {
		s.logger.Warn(ctx, "image read failed, saving without remote url", "path", entry.ImageLocalPath, "error", err)
		return ""
	}
	key := blob.ImageKey(entry.UserID, entry.FullName, entry.SubmittedAt)
	url, err := s.uploader.Upload(ctx, key, data, "image/jpeg")
	if err != nil {
		s.logger.Warn(ctx, "image upload failed, saving without remote url", "key", key, "error", err)
		return ""
	}
	return url
}

func (s *LogService) notifyAsync(ctx context.Context, entry models.LogEntry) {
	if s.notifier == nil {
		return
	}
	go func() {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := s.notifier.LogAdded(nctx, entry.UserID, entry); err != nil {
			s.logger.Warn(nctx, "stats update failed", "entry_id", entry.ID, "error", err)
		}
	}()
}

// Load returns the user's complete journal: remote entries merged with the
// local queue, de-duplicated by id with the remote copy winning, newest
// first. Remote unavailability degrades to queue-only; a corrupt queue is
// surfaced as an error.
func (s *LogService) Load(ctx context.Context, userID string) ([]models.LogEntry, error) {
	var merged []models.LogEntry
	seen := make(map[string]bool)

	remoteEntries, err := s.store.ListLogs(ctx, userID)
	if err != nil {
		s.logger.Warn(ctx, "remote list failed, serving local queue only", "user_id", userID, "error", err)
	}
	for _, e := range remoteEntries {
		e.PendingSync = false
		merged = append(merged, e)
		seen[e.ID] = true
	}

	queued, err := s.queue.GetAllForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read pending queue: %w", err)
	}
	for _, e := range queued {
		if seen[e.ID] {
			continue
		}
		e.PendingSync = true
		merged = append(merged, e)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].SubmittedAt.After(merged[j].SubmittedAt)
	})
	return merged, nil
}

// SyncPending drains the user's queue, oldest first. Each entry that reaches
// the remote store is removed from the queue; failures leave the entry
// queued for the next pass. Returns the number of entries synced.
func (s *LogService) SyncPending(ctx context.Context, userID string) (int, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	queued, err := s.queue.GetAllForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("read pending queue: %w", err)
	}

	synced := 0
	for i := range queued {
		entry := queued[i]
		entry.PendingSync = false
		if err := s.store.CreateLog(ctx, &entry); err != nil {
			s.logger.Warn(ctx, "sync of queued entry failed", "entry_id", entry.ID, "error", err)
			continue
		}
		if err := s.queue.DeleteByID(ctx, entry.ID); err != nil {
			s.logger.Error(ctx, "queued entry synced but not removed", "entry_id", entry.ID, "error", err)
			continue
		}
		s.notifyAsync(ctx, entry)
		synced++
	}
	return synced, nil
}

// PendingCount reports how many entries await sync for the user.
func (s *LogService) PendingCount(ctx context.Context, userID string) (int, error) {
	queued, err := s.queue.GetAllForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(queued), nil
}

// EntryPatch holds the editable fields of a persisted entry; nil means
// leave unchanged.
type EntryPatch struct {
	Notes              *string
	OverallRating      *int
	AIAccuracyFeedback *models.Feedback
}

// UpdateEntry applies a patch to an entry wherever it currently lives:
// a queued copy is edited in place, otherwise the remote document is
// replaced.
func (s *LogService) UpdateEntry(ctx context.Context, userID, entryID string, patch EntryPatch) (*models.LogEntry, error) {
	if patch.OverallRating != nil && (*patch.OverallRating < 1 || *patch.OverallRating > 5) {
		return nil, common.ErrBadRating
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	queued, err := s.queue.GetByID(ctx, entryID)
	switch {
	case err == nil:
		applyPatch(queued, patch)
		if err := s.queue.Update(ctx, queued); err != nil {
			return nil, fmt.Errorf("update queued entry: %w", err)
		}
		return queued, nil
	case !errors.Is(err, common.ErrNotFound):
		return nil, fmt.Errorf("read queued entry: %w", err)
	}

	entries, err := s.store.ListLogs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load entry for update: %w", err)
	}
	for i := range entries {
		if entries[i].ID != entryID {
			continue
		}
		entry := entries[i]
		applyPatch(&entry, patch)
		if err := s.store.UpdateLog(ctx, &entry); err != nil {
			return nil, fmt.Errorf("update remote entry: %w", err)
		}
		return &entry, nil
	}
	return nil, common.ErrNotFound
}

func applyPatch(e *models.LogEntry, patch EntryPatch) {
	if patch.Notes != nil {
		e.Notes = models.TruncateNotes(*patch.Notes)
	}
	if patch.OverallRating != nil {
		e.OverallRating = patch.OverallRating
	}
	if patch.AIAccuracyFeedback != nil {
		e.AIAccuracyFeedback = *patch.AIAccuracyFeedback
	}
}
