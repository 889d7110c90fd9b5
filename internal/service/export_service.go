package service

import (
	"context"
	"fmt"
	"os"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-exam-planner/internal/dto"
	"github.com/noah-isme/sma-exam-planner/internal/models"
	"github.com/noah-isme/sma-exam-planner/pkg/calendar"
	appErrors "github.com/noah-isme/sma-exam-planner/pkg/errors"
	"github.com/noah-isme/sma-exam-planner/pkg/export"
	"github.com/noah-isme/sma-exam-planner/pkg/jobs"
)

// ExportFormat names a derived, write-only export.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatText ExportFormat = "txt"
	ExportFormatPDF  ExportFormat = "pdf"
)

var exportColumns = []struct {
	header string
	width  int
}{
	{"Period", 20},
	{"Date", 10},
	{"Slot", 2},
	{"Start", 5},
	{"End", 5},
	{"Code", 12},
	{"Label", 12},
	{"Level", 10},
}

type exportCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type downloadSigner interface {
	Sign(relPath string) (string, time.Time, error)
	Verify(token string) (string, error)
}

type tableRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	CacheTTL time.Duration
	// CacheNamespace separates cache keys of different process lifetimes,
	// since board revisions restart at zero.
	CacheNamespace string
	// Retention is how long saved export files are kept.
	Retention time.Duration
}

// ExportFile is a rendered export.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
	Revision    int64
}

// ExportService flattens the board into rows and renders them.
type ExportService struct {
	store   boardStore
	cache   exportCache
	storage fileStorage
	signer  downloadSigner
	csv     tableRenderer
	text    tableRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService. cache, storage and signer
// may be nil.
func NewExportService(store boardStore, cache exportCache, storage fileStorage, signer downloadSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 7 * 24 * time.Hour
	}
	if cfg.CacheNamespace == "" {
		cfg.CacheNamespace = uuid.NewString()
	}
	widths := make(map[string]int, len(exportColumns))
	for _, col := range exportColumns {
		widths[col.header] = col.width
	}
	return &ExportService{
		store:   store,
		cache:   cache,
		storage: storage,
		signer:  signer,
		csv:     export.NewCSVExporter(),
		text:    export.NewFixedWidthExporter(widths),
		pdf:     export.NewLandscapePDFExporter(),
		logger:  logger,
		cfg:     cfg,
	}
}

// Rows lists every rendered assignment: periods in store order, then weeks,
// slot index, weekday and insertion order within the cell.
func (s *ExportService) Rows(ctx context.Context) ([]dto.ExportRow, int64) {
	var rows []dto.ExportRow
	rev := s.store.View(func(b *models.Board) {
		rows = flattenBoard(b)
	})
	return rows, rev
}

// Render produces the export in the requested format, reusing a cached
// rendering of the same board revision when available.
func (s *ExportService) Render(ctx context.Context, format ExportFormat) (*ExportFile, error) {
	contentType, ok := exportContentTypes[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	rev := s.store.View(func(*models.Board) {})
	if payload, hit := s.cached(ctx, format, rev); hit {
		return &ExportFile{Filename: exportFilename(format, rev), ContentType: contentType, Payload: payload, Revision: rev}, nil
	}

	rows, rev := s.Rows(ctx)
	dataset := toDataset(rows)
	var (
		payload []byte
		err     error
	)
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case ExportFormatText:
		payload, err = s.text.Render(dataset)
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, "Exam plan")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	if s.cache != nil {
		key := s.cacheKey(format, rev)
		if err := s.cache.Set(ctx, key, payload, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("export cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return &ExportFile{Filename: exportFilename(format, rev), ContentType: contentType, Payload: payload, Revision: rev}, nil
}

// Save renders the export and writes it to file storage. When a signer is
// configured the result carries a download token for the stored file.
func (s *ExportService) Save(ctx context.Context, format ExportFormat) (*dto.SavedExport, error) {
	if s.storage == nil {
		return nil, appErrors.Clone(appErrors.ErrFeatureDisabled, "export storage is not configured")
	}
	file, err := s.Render(ctx, format)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s/%s", time.Now().UTC().Format("20060102"), file.Filename)
	relPath, err := s.storage.Save(name, file.Payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}
	saved := &dto.SavedExport{Path: relPath, Format: string(format), Revision: file.Revision, Size: len(file.Payload)}
	if s.signer != nil {
		token, expiresAt, err := s.signer.Sign(relPath)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export")
		}
		saved.Token = token
		saved.ExpiresAt = &expiresAt
	}
	s.logger.Info("export stored", zap.String("format", string(format)), zap.String("path", relPath), zap.Int64("revision", file.Revision))
	return saved, nil
}

// OpenSaved resolves a download token to a stored export.
func (s *ExportService) OpenSaved(ctx context.Context, token string) (*os.File, string, error) {
	if s.storage == nil || s.signer == nil {
		return nil, "", appErrors.Clone(appErrors.ErrFeatureDisabled, "export downloads are not configured")
	}
	relPath, err := s.signer.Verify(token)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "download link is invalid or expired")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export file not found")
	}
	return file, path.Base(relPath), nil
}

// SweepSaved deletes stored exports older than the retention window. It is
// the handler of the retention job queue.
func (s *ExportService) SweepSaved(ctx context.Context, job jobs.Job) error {
	if s.storage == nil {
		return nil
	}
	deleted, err := s.storage.CleanupOlderThan(s.cfg.Retention)
	if err != nil {
		return err
	}
	if len(deleted) > 0 {
		s.logger.Info("expired exports removed", zap.String("job_id", job.ID), zap.Int("files", len(deleted)))
	}
	return nil
}

// PurgeCache drops every cached rendering owned by this process.
func (s *ExportService) PurgeCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("exam-planner:exports:%s:*", s.cfg.CacheNamespace)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to purge export cache")
	}
	return nil
}

func (s *ExportService) cached(ctx context.Context, format ExportFormat, rev int64) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	var payload []byte
	hit, err := s.cache.Get(ctx, s.cacheKey(format, rev), &payload)
	if err != nil || !hit {
		return nil, false
	}
	return payload, true
}

func (s *ExportService) cacheKey(format ExportFormat, rev int64) string {
	return fmt.Sprintf("exam-planner:exports:%s:%s:%d", s.cfg.CacheNamespace, format, rev)
}

var exportContentTypes = map[ExportFormat]string{
	ExportFormatCSV:  "text/csv; charset=utf-8",
	ExportFormatText: "text/plain; charset=utf-8",
	ExportFormatPDF:  "application/pdf",
}

func exportFilename(format ExportFormat, rev int64) string {
	return fmt.Sprintf("exam-plan-r%d.%s", rev, format)
}

// flattenBoard walks each period's calendar grid, so cells outside the
// period's range or slot list are never emitted. Orphaned subject ids are
// skipped.
func flattenBoard(b *models.Board) []dto.ExportRow {
	rows := make([]dto.ExportRow, 0)
	for _, period := range b.Periods {
		start, errStart := calendar.ParseDay(period.StartDate)
		end, errEnd := calendar.ParseDay(period.EndDate)
		if errStart != nil || errEnd != nil {
			continue
		}
		slots := b.Slots[period.ID]
		weeks := calendar.WeeksCovering(start, end)
		for week, ok := weeks.Next(); ok; week, ok = weeks.Next() {
			days := week.Days()
			for slotIdx, slot := range slots {
				for _, day := range days {
					date := calendar.FormatDay(day)
					if !period.OpenOn(date) {
						continue
					}
					for _, id := range b.CellSubjects(period.ID, models.CellKey{Date: date, Slot: slotIdx}) {
						subject, found := b.Subject(id)
						if !found {
							continue
						}
						rows = append(rows, dto.ExportRow{
							Period: period.Label(),
							Date:   day.Format(calendar.DisplayLayout),
							Slot:   slotIdx + 1,
							Start:  slot.Start,
							End:    slot.End,
							Code:   subject.Code,
							Label:  subject.Label,
							Level:  subject.Level,
						})
					}
				}
			}
		}
	}
	return rows
}

func toDataset(rows []dto.ExportRow) export.Dataset {
	headers := make([]string, 0, len(exportColumns))
	for _, col := range exportColumns {
		headers = append(headers, col.header)
	}
	data := export.Dataset{Headers: headers, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		data.Rows = append(data.Rows, map[string]string{
			"Period": row.Period,
			"Date":   row.Date,
			"Slot":   strconv.Itoa(row.Slot),
			"Start":  row.Start,
			"End":    row.End,
			"Code":   row.Code,
			"Label":  row.Label,
			"Level":  row.Level,
		})
	}
	return data
}
