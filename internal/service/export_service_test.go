package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/sma-exam-planner/internal/models"
	appErrors "github.com/noah-isme/sma-exam-planner/pkg/errors"
	"github.com/noah-isme/sma-exam-planner/pkg/jobs"
	"github.com/noah-isme/sma-exam-planner/pkg/storage"
)

type memoryCache struct {
	entries     map[string][]byte
	gets        int
	invalidated []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.gets++
	payload, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	*(dest.(*[]byte)) = payload
	return true, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.entries[key] = value.([]byte)
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context, pattern string) error {
	c.invalidated = append(c.invalidated, pattern)
	for key := range c.entries {
		if strings.HasPrefix(key, strings.TrimSuffix(pattern, "*")) {
			delete(c.entries, key)
		}
	}
	return nil
}

func newExportFixture(t *testing.T) (*ExportService, *AssignmentService, *memoryCache) {
	t.Helper()
	store := newTestStore(t)
	_, _, err := store.Update(func(b *models.Board) (bool, error) {
		b.Periods[0].EndDate = "2025-03-11"
		b.Slots[1] = append(b.Slots[1], models.TimeSlot{Start: "10:00", End: "12:00"})
		return true, nil
	})
	require.NoError(t, err)

	cache := newMemoryCache()
	svc := NewExportService(store, cache, nil, nil, ExportConfig{CacheNamespace: "test"}, nil)
	return svc, NewAssignmentService(store, nil, nil), cache
}

func TestExportServiceRowsOrder(t *testing.T) {
	svc, engine, _ := newExportFixture(t)
	ctx := context.Background()

	assign := []struct {
		ref models.CellRef
		id  string
	}{
		{cell(1, "2025-03-10", 0), "bio103"},
		{cell(1, "2025-03-04", 1), "fis102"},
		{cell(1, "2025-03-05", 0), "mat101"},
		{cell(1, "2025-03-05", 0), "orphan"},
	}
	for _, a := range assign {
		_, err := engine.Assign(ctx, a.ref, a.id)
		require.NoError(t, err)
	}

	rows, _ := svc.Rows(ctx)
	require.Len(t, rows, 3)
	assert.Equal(t, "05/03/2025", rows[0].Date)
	assert.Equal(t, 1, rows[0].Slot)
	assert.Equal(t, "MAT101", rows[0].Code)
	assert.Equal(t, "04/03/2025", rows[1].Date)
	assert.Equal(t, 2, rows[1].Slot)
	assert.Equal(t, "10:00", rows[1].Start)
	assert.Equal(t, "10/03/2025", rows[2].Date)
	assert.Equal(t, "midterm 2024-2025 Q2", rows[2].Period)
}

func TestExportServiceRenderCSVAndText(t *testing.T) {
	svc, engine, _ := newExportFixture(t)
	ctx := context.Background()
	_, err := engine.Assign(ctx, cell(1, "2025-03-03", 0), "mat101")
	require.NoError(t, err)

	csvFile, err := svc.Render(ctx, ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv; charset=utf-8", csvFile.ContentType)
	lines := strings.Split(strings.TrimSuffix(string(csvFile.Payload), "\r\n"), "\r\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"Period","Date","Slot","Start","End","Code","Label","Level"`, lines[0])
	assert.Equal(t, `"midterm 2024-2025 Q2","03/03/2025","1","08:00","10:00","MAT101","Math","10"`, lines[1])

	txt, err := svc.Render(ctx, ExportFormatText)
	require.NoError(t, err)
	textLines := strings.Split(strings.TrimSuffix(string(txt.Payload), "\n"), "\n")
	require.Len(t, textLines, 2)
	assert.Equal(t, len(textLines[0]), len(textLines[1]))
	assert.True(t, strings.HasPrefix(textLines[1], "midterm 2024-2025 Q203/03/2025"))
}

func TestExportServiceRenderUsesCachePerRevision(t *testing.T) {
	svc, engine, cache := newExportFixture(t)
	ctx := context.Background()

	first, err := svc.Render(ctx, ExportFormatCSV)
	require.NoError(t, err)
	require.Len(t, cache.entries, 1)
	_, cached := cache.entries["exam-planner:exports:test:csv:1"]
	assert.True(t, cached)

	again, err := svc.Render(ctx, ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, first.Payload, again.Payload)
	assert.Len(t, cache.entries, 1)

	_, err = engine.Assign(ctx, cell(1, "2025-03-03", 0), "mat101")
	require.NoError(t, err)
	changed, err := svc.Render(ctx, ExportFormatCSV)
	require.NoError(t, err)
	assert.NotEqual(t, first.Payload, changed.Payload)
	assert.Len(t, cache.entries, 2)

	require.NoError(t, svc.PurgeCache(ctx))
	assert.Empty(t, cache.entries)
	assert.Equal(t, []string{"exam-planner:exports:test:*"}, cache.invalidated)
}

func TestExportServiceRenderRejectsUnknownFormat(t *testing.T) {
	svc, _, _ := newExportFixture(t)
	_, err := svc.Render(context.Background(), ExportFormat("xlsx"))
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportServiceRenderPDF(t *testing.T) {
	svc, _, _ := newExportFixture(t)
	file, err := svc.Render(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(file.Payload), "%PDF"))
	assert.Equal(t, "exam-plan-r1.pdf", file.Filename)
}

func TestExportServiceSaveAndDownload(t *testing.T) {
	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("secret", time.Hour)
	svc := NewExportService(newTestStore(t), nil, local, signer, ExportConfig{}, nil)
	ctx := context.Background()

	saved, err := svc.Save(ctx, ExportFormatText)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(saved.Path, "/exam-plan-r0.txt"))
	require.NotEmpty(t, saved.Token)
	require.NotNil(t, saved.ExpiresAt)

	file, name, err := svc.OpenSaved(ctx, saved.Token)
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, "exam-plan-r0.txt", name)
	body, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, saved.Size, len(body))

	_, _, err = svc.OpenSaved(ctx, "bogus")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.SweepSaved(ctx, jobs.Job{ID: "sweep-1"}))
}

func TestExportServiceSaveWithoutStorage(t *testing.T) {
	svc := NewExportService(newTestStore(t), nil, nil, nil, ExportConfig{}, nil)
	_, err := svc.Save(context.Background(), ExportFormatCSV)
	assert.Equal(t, appErrors.ErrFeatureDisabled.Code, appErrors.FromError(err).Code)
}

type brokenCache struct{}

func (brokenCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (brokenCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return errors.New("connection refused")
}

func (brokenCache) Invalidate(ctx context.Context, pattern string) error {
	return nil
}

func TestExportServiceRenderLogsCacheWriteFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	svc := NewExportService(newTestStore(t), brokenCache{}, nil, nil, ExportConfig{CacheNamespace: "test"}, zap.New(core))

	file, err := svc.Render(context.Background(), ExportFormatCSV)
	require.NoError(t, err)
	assert.NotEmpty(t, file.Payload)

	entries := logs.FilterMessage("export cache write failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "exam-planner:exports:test:csv:0", entries[0].ContextMap()["key"])
}
