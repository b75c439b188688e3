package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/humiapp/humi/internal/common"
	"github.com/humiapp/humi/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore implements remote.Store; only the stats methods matter here.
type fakeStore struct {
	stats   map[string]*models.StatsAggregate
	getErr  error
	putErr  error
	putUser string
}

func newFakeStore() *fakeStore {
	return &fakeStore{stats: make(map[string]*models.StatsAggregate)}
}

func (f *fakeStore) CreateLog(ctx context.Context, e *models.LogEntry) error { return nil }
func (f *fakeStore) ListLogs(ctx context.Context, userID string) ([]models.LogEntry, error) {
	return nil, nil
}
func (f *fakeStore) UpdateLog(ctx context.Context, e *models.LogEntry) error { return nil }
func (f *fakeStore) QueryCatalog(ctx context.Context, brand, line string) (*models.CatalogRecord, error) {
	return nil, common.ErrNotFound
}
func (f *fakeStore) CreatePendingContribution(ctx context.Context, pc models.PendingContribution) error {
	return nil
}

func (f *fakeStore) GetStats(ctx context.Context, userID string) (*models.StatsAggregate, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.stats[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return s, nil
}

func (f *fakeStore) PutStats(ctx context.Context, userID string, s *models.StatsAggregate) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.putUser = userID
	f.stats[userID] = s
	return nil
}

func intPtr(v int) *int { return &v }

func TestLogAdded_CreatesAggregate(t *testing.T) {
	store := newFakeStore()
	n := NewNotifier(store)

	entry := models.LogEntry{
		OverallRating:  intPtr(4),
		Identification: models.IdentificationRecord{Strength: "Full", OriginCountry: "Cuba"},
	}
	require.NoError(t, n.LogAdded(context.Background(), "u1", entry))

	agg := store.stats["u1"]
	require.NotNil(t, agg)
	assert.Equal(t, 1, agg.LogCount)
	assert.Equal(t, 4, agg.TotalRating)
	assert.Equal(t, 1, agg.StrengthCounts["Full"])
	assert.Equal(t, []string{"Cuba"}, agg.Countries)
}

func TestLogAdded_UpdatesExisting(t *testing.T) {
	store := newFakeStore()
	store.stats["u1"] = &models.StatsAggregate{LogCount: 3, TotalRating: 10}
	n := NewNotifier(store)

	require.NoError(t, n.LogAdded(context.Background(), "u1", models.LogEntry{OverallRating: intPtr(5)}))

	agg := store.stats["u1"]
	assert.Equal(t, 4, agg.LogCount)
	assert.Equal(t, 15, agg.TotalRating)
}

func TestLogAdded_ReadError(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("boom")
	n := NewNotifier(store)

	require.Error(t, n.LogAdded(context.Background(), "u1", models.LogEntry{}))
}

func TestLogAdded_WriteError(t *testing.T) {
	store := newFakeStore()
	store.putErr = errors.New("boom")
	n := NewNotifier(store)

	require.Error(t, n.LogAdded(context.Background(), "u1", models.LogEntry{}))
}
