package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-exam-planner/internal/dto"
	"github.com/noah-isme/sma-exam-planner/internal/models"
	appErrors "github.com/noah-isme/sma-exam-planner/pkg/errors"
)

func subjectIDs(subjects []models.Subject) []string {
	ids := make([]string, 0, len(subjects))
	for _, s := range subjects {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestSubjectServiceSetCatalogSuffixesCollisions(t *testing.T) {
	svc := NewSubjectService(newTestStore(t), nil, nil)
	ctx := context.Background()

	result, err := svc.SetCatalog(ctx, []models.Subject{
		{Code: "MAT"},
		{Code: "MAT", Label: "Algebra"},
		{Label: "MAT"},
		{},
		{ID: "x", Code: "ignored"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Accepted)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, []string{"MAT", "MAT-2", "MAT-3", "x"}, subjectIDs(svc.List(ctx)))
}

func TestSubjectServiceReplacingCatalogKeepsOrphans(t *testing.T) {
	store := newTestStore(t)
	svc := NewSubjectService(store, nil, nil)
	engine := NewAssignmentService(store, nil, nil)
	ctx := context.Background()

	_, err := engine.Assign(ctx, cell(1, "2025-03-03", 0), "mat101")
	require.NoError(t, err)
	_, err = svc.SetCatalog(ctx, []models.Subject{{Code: "QUI104"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"mat101"}, engine.UsedSubjectIDs(ctx))
	view := engine.Cell(ctx, cell(1, "2025-03-03", 0))
	assert.Equal(t, []string{"mat101"}, view.SubjectIDs)
	assert.Empty(t, view.Subjects)
}

func TestSubjectServiceAddOne(t *testing.T) {
	svc := NewSubjectService(newTestStore(t), nil, nil)
	ctx := context.Background()

	subject, err := svc.AddOne(ctx, dto.SubjectRequest{Code: " MAT101 ", Label: "Calc"})
	require.NoError(t, err)
	assert.Equal(t, "MAT101", subject.ID)

	subject, err = svc.AddOne(ctx, dto.SubjectRequest{ID: "mat101", Label: "Dup"})
	require.NoError(t, err)
	assert.Equal(t, "mat101-2", subject.ID)

	_, err = svc.AddOne(ctx, dto.SubjectRequest{Level: "10"})
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSubjectServiceEditOne(t *testing.T) {
	svc := NewSubjectService(newTestStore(t), nil, nil)
	ctx := context.Background()

	label := "Mathematics"
	subject, err := svc.EditOne(ctx, "mat101", models.SubjectPatch{Label: &label})
	require.NoError(t, err)
	assert.Equal(t, "mat101", subject.ID)
	assert.Equal(t, "MAT101", subject.Code)
	assert.Equal(t, "Mathematics", subject.Label)

	_, err = svc.EditOne(ctx, "nope", models.SubjectPatch{Label: &label})
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSubjectServiceImportCatalogHeaderAliases(t *testing.T) {
	svc := NewSubjectService(newTestStore(t), nil, nil)
	ctx := context.Background()

	file := "\ufeffNombre;Código;Curso\r\nMat;MAT101;1 ESO\r\n;;2 ESO\r\n\"Fis; Qui\";FQ2;2 ESO\r\n"
	result, err := svc.ImportCatalog(ctx, strings.NewReader(file))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Accepted)
	assert.Equal(t, 1, result.Skipped)

	subjects := svc.List(ctx)
	require.Len(t, subjects, 2)
	assert.Equal(t, models.Subject{ID: "MAT101", Code: "MAT101", Label: "Mat", Level: "1 ESO"}, subjects[0])
	assert.Equal(t, "Fis; Qui", subjects[1].Label)
}

func TestSubjectServiceImportCatalogLabelOnlyRows(t *testing.T) {
	svc := NewSubjectService(newTestStore(t), nil, nil)

	result, err := svc.ImportCatalog(context.Background(), strings.NewReader("label,level\nHist,3\nHist,4\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Accepted)
	assert.Equal(t, []string{"Hist", "Hist-2"}, subjectIDs(svc.List(context.Background())))
}

func TestSubjectServiceImportCatalogEmptyKeepsCatalog(t *testing.T) {
	svc := NewSubjectService(newTestStore(t), nil, nil)
	ctx := context.Background()

	for _, file := range []string{"", "code,label\n", "level\n3\n"} {
		_, err := svc.ImportCatalog(ctx, strings.NewReader(file))
		require.Error(t, err, file)
		assert.Equal(t, appErrors.ErrEmptyCatalog.Code, appErrors.FromError(err).Code)
	}
	assert.Equal(t, []string{"mat101", "fis102", "bio103"}, subjectIDs(svc.List(ctx)))
}
