package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-exam-planner/internal/models"
	"github.com/noah-isme/sma-exam-planner/internal/repository"
	"github.com/noah-isme/sma-exam-planner/internal/service"
	"github.com/noah-isme/sma-exam-planner/pkg/storage"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func buildPlannerRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	seed := models.NewBoard()
	seed.Periods = []models.Period{{ID: 1, Kind: models.PeriodKindFinal, AcademicYear: "2024-2025", HalfYear: 2, StartDate: "2025-03-03", EndDate: "2025-03-07"}}
	seed.Slots[1] = []models.TimeSlot{{Start: "08:00", End: "10:00"}}
	seed.Subjects = []models.Subject{{ID: "mat101", Code: "MAT101", Label: "Math", Level: "10"}, {ID: "fis102", Code: "FIS102", Label: "Physics", Level: "11"}}
	seed.ActivePeriodID = 1
	store := repository.NewBoardRepository(seed)

	local, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)

	metrics := service.NewMetricsService()
	engine := service.NewAssignmentService(store, metrics, nil)
	handlers := Handlers{
		Board:    NewBoardHandler(engine, service.NewCommandService(engine, nil)),
		Period:   NewPeriodHandler(service.NewPeriodService(store, nil, nil), engine),
		Subject:  NewSubjectHandler(service.NewSubjectService(store, nil, nil), 0),
		Snapshot: NewSnapshotHandler(service.NewSnapshotService(store, nil, nil, nil, nil, service.SnapshotConfig{})),
		Export:   NewExportHandler(service.NewExportService(store, nil, local, signer, service.ExportConfig{}, nil)),
		Metrics:  NewMetricsHandler(metrics),
	}
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), handlers)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestBoardRoutesDropScenario(t *testing.T) {
	r := buildPlannerRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/board/drop", `{"target":"cell:1:2025-03-03:0","subjectId":"mat101"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"applied"`)

	w = doJSON(r, http.MethodPost, "/api/v1/board/drop", `{"target":"cell:1:2025-03-04:0","subjectId":"mat101"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "SUBJECT_ALREADY_SCHEDULED", decode(t, w).Error.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/board/drop", `{"target":"cell:1:2025-03-08:0","subjectId":"fis102"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"noop"`)

	w = doJSON(r, http.MethodPost, "/api/v1/board/drop", `{"target":"subject-list","subjectId":"fis102"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "drop target is not a cell")

	w = doJSON(r, http.MethodGet, "/api/v1/board/cells/1/2025-03-03/0", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subjectIds":["mat101"]`)

	w = doJSON(r, http.MethodGet, "/api/v1/board/used", "")
	assert.JSONEq(t, `["mat101"]`, string(decode(t, w).Data))

	w = doJSON(r, http.MethodGet, "/api/v1/board/available", "")
	var available []models.Subject
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &available))
	require.Len(t, available, 1)
	assert.Equal(t, "fis102", available[0].ID)
}

func TestBoardRoutesValidation(t *testing.T) {
	r := buildPlannerRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/board/assign", `{"periodId":1,"date":"2025-03-03","slot":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/board/drop", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/board/cells/x/2025-03-03/0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBoardRoutesMoveAndCommands(t *testing.T) {
	r := buildPlannerRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/board/assign", `{"periodId":1,"date":"2025-03-03","slot":0,"subjectId":"mat101"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/board/move", `{"from":{"periodId":1,"date":"2025-03-03","slot":0},"to":{"periodId":1,"date":"2025-03-05","slot":0},"subjectId":"mat101"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"applied"`)

	w = doJSON(r, http.MethodPost, "/api/v1/board/commands", `{"commands":[
		{"type":"unassign","periodId":1,"date":"2025-03-05","slot":0,"subjectId":"mat101"},
		{"type":"assign","periodId":1,"date":"2025-03-06","slot":0,"subjectId":"fis102"},
		{"type":"assign","periodId":1,"date":"2025-03-07","slot":0,"subjectId":"fis102"}
	]}`)
	require.Equal(t, http.StatusConflict, w.Code)
	env := decode(t, w)
	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Len(t, results, 2)

	w = doJSON(r, http.MethodPost, "/api/v1/board/unassign", `{"periodId":1,"date":"2025-03-06","slot":0,"subjectId":"fis102"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodGet, "/api/v1/board/used", "")
	assert.JSONEq(t, `[]`, string(decode(t, w).Data))
}

func TestPeriodRoutes(t *testing.T) {
	r := buildPlannerRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/periods", `{"kind":"midterm","academicYear":"2024-2025","halfYear":2,"startDate":"2025-04-07","endDate":"2025-04-11"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":2`)

	w = doJSON(r, http.MethodDelete, "/api/v1/periods/2", "")
	require.Equal(t, http.StatusPreconditionRequired, w.Code)
	assert.Equal(t, "CONFIRMATION_REQUIRED", decode(t, w).Error.Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/periods/2", nil)
	req.Header.Set(ConfirmHeader, "true")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	w = doJSON(r, http.MethodDelete, "/api/v1/periods/1?confirm=true", "")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "LAST_PERIOD", decode(t, w).Error.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/periods/1/slots", "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `{"start":"10:00","end":"12:00"}`)

	w = doJSON(r, http.MethodPut, "/api/v1/periods/1/slots/1", `{"start":"11:00","end":"13:00"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/v1/periods/1/slots/0", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"start":"11:00","end":"13:00"}]`, string(decode(t, w).Data))

	w = doJSON(r, http.MethodPut, "/api/v1/periods/1/range", `{"startDate":"2025-03-10","endDate":"2025-03-03"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPut, "/api/v1/periods/1/meta", `{"kind":"reassessment","academicYear":"2024-2025","halfYear":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"label":"reassessment 2024-2025 Q1"`)

	w = doJSON(r, http.MethodGet, "/api/v1/periods/1/calendar", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"monday":"2025-03-03"`)

	w = doJSON(r, http.MethodPost, "/api/v1/periods/1/prune", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"noop"`)

	w = doJSON(r, http.MethodPost, "/api/v1/periods/1/activate", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/periods/9", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubjectRoutesImport(t *testing.T) {
	r := buildPlannerRouter(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "catalog.csv")
	require.NoError(t, err)
	_, _ = part.Write([]byte("codigo,siglas,nivel\nLEN1,Lengua,1\nHIS2,Historia,2\n"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/subjects/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"accepted":2`)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/subjects/import", strings.NewReader("nivel\n1\n"))
	req.Header.Set("Content-Type", "text/csv")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_CATALOG", decode(t, w).Error.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/subjects", `{"code":"LEN1","label":"Lengua II"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"LEN1-2"`)

	w = doJSON(r, http.MethodPut, "/api/v1/subjects/HIS2", `{"level":"3"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"level":"3"`)

	w = doJSON(r, http.MethodPut, "/api/v1/subjects", `[{"code":"A"},{"code":"A"}]`)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodGet, "/api/v1/subjects", "")
	assert.Contains(t, w.Body.String(), `"id":"A-2"`)
}

func TestSnapshotRoutesRoundTrip(t *testing.T) {
	r := buildPlannerRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/board/assign", `{"periodId":1,"date":"2025-03-04","slot":0,"subjectId":"fis102"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/snapshot", "")
	require.Equal(t, http.StatusOK, w.Code)
	snapshot := w.Body.String()
	assert.Contains(t, snapshot, `"2025-03-04|0"`)

	w = doJSON(r, http.MethodPut, "/api/v1/snapshot", `{"assignedPerPeriod":{}}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodGet, "/api/v1/board/used", "")
	assert.JSONEq(t, `[]`, string(decode(t, w).Data))

	w = doJSON(r, http.MethodPut, "/api/v1/snapshot", snapshot)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodGet, "/api/v1/board/used", "")
	assert.JSONEq(t, `["fis102"]`, string(decode(t, w).Data))

	w = doJSON(r, http.MethodPut, "/api/v1/snapshot", `{broken`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MALFORMED_SNAPSHOT", decode(t, w).Error.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/snapshot/preset?config=eyJzdWJqZWN0cyI6W119", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"applied":["subjects"]`)

	w = doJSON(r, http.MethodGet, "/api/v1/snapshot/archives", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "FEATURE_DISABLED", decode(t, w).Error.Code)
}

func TestExportRoutes(t *testing.T) {
	r := buildPlannerRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/board/assign", `{"periodId":1,"date":"2025-03-03","slot":0,"subjectId":"mat101"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/exports/csv", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="exam-plan-r1.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "1", w.Header().Get("X-Board-Revision"))
	assert.Contains(t, w.Body.String(), `"03/03/2025","1","08:00","10:00","MAT101"`)

	w = doJSON(r, http.MethodGet, "/api/v1/exports/docx", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/exports/txt?save=true", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var saved struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &saved))
	require.NotEmpty(t, saved.Token)

	w = doJSON(r, http.MethodGet, "/api/v1/exports/files/"+saved.Token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "Period"))

	w = doJSON(r, http.MethodGet, "/api/v1/exports/files/forged", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/v1/exports/cache", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"commandsTotal":1`)
}
