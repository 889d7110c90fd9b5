package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-exam-planner/internal/dto"
	"github.com/noah-isme/sma-exam-planner/internal/models"
	appErrors "github.com/noah-isme/sma-exam-planner/pkg/errors"
)

// Snapshot field names as they appear on the wire.
const (
	fieldPeriods    = "periods"
	fieldSlots      = "slotsPerPeriod"
	fieldAssigned   = "assignedPerPeriod"
	fieldSubjects   = "subjects"
	defaultMaxBytes = 5 << 20
)

type snapshotArchiveRepository interface {
	Create(ctx context.Context, archive *models.SnapshotArchive) error
	List(ctx context.Context, limit int) ([]models.SnapshotArchive, error)
	FindByID(ctx context.Context, id string) (*models.SnapshotArchive, error)
}

type presetFetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// SnapshotConfig tunes snapshot import limits.
type SnapshotConfig struct {
	MaxBytes     int64
	FetchTimeout time.Duration
}

// SnapshotService exports and imports the whole board.
type SnapshotService struct {
	store     boardStore
	archives  snapshotArchiveRepository
	client    presetFetcher
	validator *validator.Validate
	logger    *zap.Logger
	cfg       SnapshotConfig
}

// NewSnapshotService wires the snapshot layer. archives may be nil when the
// archive table is disabled.
func NewSnapshotService(store boardStore, archives snapshotArchiveRepository, client presetFetcher, validate *validator.Validate, logger *zap.Logger, cfg SnapshotConfig) *SnapshotService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = defaultMaxBytes
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.FetchTimeout}
	}
	return &SnapshotService{store: store, archives: archives, client: client, validator: validate, logger: logger, cfg: cfg}
}

// Export captures periods, slots, assignments and subjects.
func (s *SnapshotService) Export(ctx context.Context) models.Snapshot {
	var snap models.Snapshot
	s.store.View(func(b *models.Board) {
		snap = boardToSnapshot(b)
	})
	return snap
}

// ExportJSON renders the snapshot as indented JSON.
func (s *SnapshotService) ExportJSON(ctx context.Context) ([]byte, error) {
	payload, err := json.MarshalIndent(s.Export(ctx), "", "  ")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode snapshot")
	}
	return payload, nil
}

// Import replaces the fields present in raw. Fields with an unexpected shape
// are ignored; everything else is swapped in together. Unparseable input
// leaves the board untouched. Imported cells are not pruned.
func (s *SnapshotService) Import(ctx context.Context, raw []byte) (*dto.SnapshotImportResult, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrMalformedSnapshot.Code, appErrors.ErrMalformedSnapshot.Status, appErrors.ErrMalformedSnapshot.Message)
	}

	result := &dto.SnapshotImportResult{Applied: []string{}}
	var (
		periods  []models.Period
		slots    map[int][]models.TimeSlot
		assigned map[int]map[models.CellKey][]string
		subjects []models.Subject
	)
	if data, ok := top[fieldPeriods]; ok {
		if decoded, err := decodePeriods(data); err == nil {
			periods = decoded
			result.Applied = append(result.Applied, fieldPeriods)
		} else {
			s.logger.Warn("snapshot field ignored", zap.String("field", fieldPeriods), zap.Error(err))
			result.Ignored = append(result.Ignored, fieldPeriods)
		}
	}
	if data, ok := top[fieldSlots]; ok {
		if err := json.Unmarshal(data, &slots); err == nil && slots != nil {
			result.Applied = append(result.Applied, fieldSlots)
		} else {
			slots = nil
			result.Ignored = append(result.Ignored, fieldSlots)
		}
	}
	if data, ok := top[fieldAssigned]; ok {
		if decoded, err := decodeAssignments(data); err == nil {
			assigned = decoded
			result.Applied = append(result.Applied, fieldAssigned)
		} else {
			s.logger.Warn("snapshot field ignored", zap.String("field", fieldAssigned), zap.Error(err))
			result.Ignored = append(result.Ignored, fieldAssigned)
		}
	}
	if data, ok := top[fieldSubjects]; ok {
		if err := json.Unmarshal(data, &subjects); err == nil && subjects != nil {
			result.Applied = append(result.Applied, fieldSubjects)
		} else {
			subjects = nil
			result.Ignored = append(result.Ignored, fieldSubjects)
		}
	}

	rev, _, err := s.store.Update(func(b *models.Board) (bool, error) {
		if periods != nil {
			b.Periods = periods
		}
		if slots != nil {
			b.Slots = slots
		}
		if assigned != nil {
			b.Assignments = assigned
		}
		if subjects != nil {
			b.Subjects = subjects
		}
		dropDetachedMaps(b)
		if _, ok := b.Period(b.ActivePeriodID); !ok {
			b.ActivePeriodID = b.LowestPeriodID()
		}
		return len(result.Applied) > 0, nil
	})
	if err != nil {
		return nil, err
	}
	result.Revision = rev
	s.logger.Info("snapshot imported", zap.Strings("applied", result.Applied), zap.Strings("ignored", result.Ignored))
	return result, nil
}

// ImportReader reads at most MaxBytes from r and imports them.
func (s *SnapshotService) ImportReader(ctx context.Context, r io.Reader) (*dto.SnapshotImportResult, error) {
	raw, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxBytes+1))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrMalformedSnapshot.Code, appErrors.ErrMalformedSnapshot.Status, "snapshot could not be read")
	}
	if int64(len(raw)) > s.cfg.MaxBytes {
		return nil, appErrors.Clone(appErrors.ErrMalformedSnapshot, fmt.Sprintf("snapshot exceeds %d bytes", s.cfg.MaxBytes))
	}
	return s.Import(ctx, raw)
}

// LoadPreset applies a snapshot given either as an http(s) URL to fetch or
// as base64 encoded inline JSON. Any failure leaves the board untouched.
func (s *SnapshotService) LoadPreset(ctx context.Context, source string) (*dto.SnapshotImportResult, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "preset source is empty")
	}
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return s.fetchPreset(ctx, source)
	}
	raw, err := decodeInline(source)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrMalformedSnapshot.Code, appErrors.ErrMalformedSnapshot.Status, "preset is not valid base64")
	}
	return s.Import(ctx, raw)
}

// Archive stores the current snapshot under label.
func (s *SnapshotService) Archive(ctx context.Context, req dto.ArchiveRequest) (*models.SnapshotArchive, error) {
	if s.archives == nil {
		return nil, appErrors.Clone(appErrors.ErrFeatureDisabled, "snapshot archive disabled")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid archive payload")
	}
	payload, err := json.Marshal(s.Export(ctx))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode snapshot")
	}
	archive := &models.SnapshotArchive{Label: strings.TrimSpace(req.Label), Payload: payload}
	if err := s.archives.Create(ctx, archive); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive snapshot")
	}
	return archive, nil
}

// ListArchives returns the most recent archives first.
func (s *SnapshotService) ListArchives(ctx context.Context, limit int) ([]models.SnapshotArchive, error) {
	if s.archives == nil {
		return nil, appErrors.Clone(appErrors.ErrFeatureDisabled, "snapshot archive disabled")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	archives, err := s.archives.List(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list archives")
	}
	return archives, nil
}

// Restore imports an archived snapshot.
func (s *SnapshotService) Restore(ctx context.Context, id string) (*dto.SnapshotImportResult, error) {
	if s.archives == nil {
		return nil, appErrors.Clone(appErrors.ErrFeatureDisabled, "snapshot archive disabled")
	}
	archive, err := s.archives.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "archive not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load archive")
	}
	return s.Import(ctx, archive.Payload)
}

func (s *SnapshotService) fetchPreset(ctx context.Context, url string) (*dto.SnapshotImportResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preset url")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrMalformedSnapshot.Code, appErrors.ErrMalformedSnapshot.Status, "preset could not be fetched")
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return nil, appErrors.Clone(appErrors.ErrMalformedSnapshot, fmt.Sprintf("preset fetch returned status %d", resp.StatusCode))
	}
	return s.ImportReader(ctx, resp.Body)
}

func decodeInline(source string) ([]byte, error) {
	var lastErr error
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding, base64.RawStdEncoding, base64.RawURLEncoding} {
		raw, err := enc.DecodeString(source)
		if err == nil {
			return raw, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func decodePeriods(data json.RawMessage) ([]models.Period, error) {
	var periods []models.Period
	if err := json.Unmarshal(data, &periods); err != nil {
		return nil, err
	}
	if len(periods) == 0 || len(periods) > models.MaxPeriods {
		return nil, fmt.Errorf("expected 1 to %d periods, got %d", models.MaxPeriods, len(periods))
	}
	seen := make(map[int]struct{}, len(periods))
	for _, p := range periods {
		if p.ID <= 0 {
			return nil, fmt.Errorf("period id %d is not positive", p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("duplicate period id %d", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return periods, nil
}

// decodeAssignments converts wire cell keys. Keys that do not parse are
// dropped, duplicate ids within a cell collapse and empty cells vanish.
func decodeAssignments(data json.RawMessage) (map[int]map[models.CellKey][]string, error) {
	var wire map[int]map[string][]string
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&wire); err != nil {
		return nil, err
	}
	if wire == nil {
		return nil, fmt.Errorf("assignments must be an object")
	}
	out := make(map[int]map[models.CellKey][]string, len(wire))
	for periodID, cells := range wire {
		converted := make(map[models.CellKey][]string, len(cells))
		for rawKey, ids := range cells {
			key, err := models.ParseCellKey(rawKey)
			if err != nil {
				continue
			}
			unique := dedupe(ids)
			if len(unique) == 0 {
				continue
			}
			converted[key] = unique
		}
		out[periodID] = converted
	}
	return out, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func boardToSnapshot(b *models.Board) models.Snapshot {
	snap := models.Snapshot{
		Periods:           append([]models.Period{}, b.Periods...),
		SlotsPerPeriod:    make(map[int][]models.TimeSlot, len(b.Periods)),
		AssignedPerPeriod: make(map[int]map[string][]string, len(b.Periods)),
		Subjects:          append([]models.Subject{}, b.Subjects...),
	}
	ids := make([]int, 0, len(b.Periods))
	for _, p := range b.Periods {
		ids = append(ids, p.ID)
	}
	for id := range b.Slots {
		ids = append(ids, id)
	}
	for id := range b.Assignments {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		snap.SlotsPerPeriod[id] = append([]models.TimeSlot{}, b.Slots[id]...)
		cells := make(map[string][]string, len(b.Assignments[id]))
		for key, subjectIDs := range b.Assignments[id] {
			cells[key.String()] = append([]string{}, subjectIDs...)
		}
		snap.AssignedPerPeriod[id] = cells
	}
	return snap
}

// dropDetachedMaps removes slot lists and assignment maps whose period id is
// not on the board. Cells of live periods are kept even when out of range.
func dropDetachedMaps(b *models.Board) {
	live := make(map[int]struct{}, len(b.Periods))
	for _, p := range b.Periods {
		live[p.ID] = struct{}{}
	}
	for id := range b.Slots {
		if _, ok := live[id]; !ok {
			delete(b.Slots, id)
		}
	}
	for id := range b.Assignments {
		if _, ok := live[id]; !ok {
			delete(b.Assignments, id)
		}
	}
}
