package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-exam-planner/internal/dto"
	"github.com/noah-isme/sma-exam-planner/internal/models"
	appErrors "github.com/noah-isme/sma-exam-planner/pkg/errors"
)

// SubjectService owns the subject catalog. Assignments refer to subjects by
// id only, so replacing the catalog may leave orphaned ids on the board.
type SubjectService struct {
	store     boardStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService creates a new subject service.
func NewSubjectService(store boardStore, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{store: store, validator: validate, logger: logger}
}

// List returns the catalog in its stored order.
func (s *SubjectService) List(ctx context.Context) []models.Subject {
	var subjects []models.Subject
	s.store.View(func(b *models.Board) {
		subjects = append([]models.Subject{}, b.Subjects...)
	})
	return subjects
}

// SetCatalog replaces the whole catalog. Records without id, code and label
// are skipped; colliding ids get a counter suffix.
func (s *SubjectService) SetCatalog(ctx context.Context, subjects []models.Subject) (*dto.CatalogImportResult, error) {
	catalog := normalizeCatalog(subjects)
	rev, _, err := s.store.Update(func(b *models.Board) (bool, error) {
		b.Subjects = catalog
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("subject catalog replaced", zap.Int("accepted", len(catalog)), zap.Int("skipped", len(subjects)-len(catalog)))
	return &dto.CatalogImportResult{Accepted: len(catalog), Skipped: len(subjects) - len(catalog), Revision: rev}, nil
}

// AddOne appends a manually entered subject.
func (s *SubjectService) AddOne(ctx context.Context, req dto.SubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	subject := models.Subject{
		ID:    strings.TrimSpace(req.ID),
		Code:  strings.TrimSpace(req.Code),
		Label: strings.TrimSpace(req.Label),
		Level: strings.TrimSpace(req.Level),
	}
	_, _, err := s.store.Update(func(b *models.Board) (bool, error) {
		taken := make(map[string]struct{}, len(b.Subjects))
		for _, existing := range b.Subjects {
			taken[existing.ID] = struct{}{}
		}
		subject.ID = uniqueID(baseID(subject), taken)
		b.Subjects = append(b.Subjects, subject)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

// EditOne updates code, label or level of an existing subject. The id never
// changes so assignments keep pointing at it.
func (s *SubjectService) EditOne(ctx context.Context, id string, patch models.SubjectPatch) (*models.Subject, error) {
	var updated models.Subject
	_, _, err := s.store.Update(func(b *models.Board) (bool, error) {
		for i := range b.Subjects {
			if b.Subjects[i].ID != id {
				continue
			}
			if patch.Code != nil {
				b.Subjects[i].Code = strings.TrimSpace(*patch.Code)
			}
			if patch.Label != nil {
				b.Subjects[i].Label = strings.TrimSpace(*patch.Label)
			}
			if patch.Level != nil {
				b.Subjects[i].Level = strings.TrimSpace(*patch.Level)
			}
			updated = b.Subjects[i]
			return true, nil
		}
		return false, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("subject %s not found", id))
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ImportCatalog reads a delimited catalog file and replaces the catalog with
// its rows. A file with no usable rows leaves the catalog untouched.
func (s *SubjectService) ImportCatalog(ctx context.Context, r io.Reader) (*dto.CatalogImportResult, error) {
	rows, skipped, err := parseCatalog(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrEmptyCatalog, "no row has a code or a short label")
	}
	result, err := s.SetCatalog(ctx, rows)
	if err != nil {
		return nil, err
	}
	result.Skipped += skipped
	return result, nil
}

func normalizeCatalog(subjects []models.Subject) []models.Subject {
	taken := make(map[string]struct{}, len(subjects))
	out := make([]models.Subject, 0, len(subjects))
	for _, subject := range subjects {
		subject.ID = strings.TrimSpace(subject.ID)
		subject.Code = strings.TrimSpace(subject.Code)
		subject.Label = strings.TrimSpace(subject.Label)
		subject.Level = strings.TrimSpace(subject.Level)
		base := baseID(subject)
		if base == "" {
			continue
		}
		subject.ID = uniqueID(base, taken)
		out = append(out, subject)
	}
	return out
}

func baseID(subject models.Subject) string {
	for _, candidate := range []string{subject.ID, subject.Code, subject.Label} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// uniqueID appends -2, -3, ... to base until it is not taken, then reserves it.
func uniqueID(base string, taken map[string]struct{}) string {
	id := base
	for n := 2; ; n++ {
		if _, exists := taken[id]; !exists {
			break
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
	taken[id] = struct{}{}
	return id
}
