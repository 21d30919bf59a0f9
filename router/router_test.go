package router_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"airrvie/database"
	"airrvie/pkg/ai"
	"airrvie/pkg/otp"
	"airrvie/pkg/ownership"
	"airrvie/pkg/storage"
	"airrvie/router"

	assistantCtrlImp "airrvie/pkg/assistant/controllerImp"
	assistantRepoImp "airrvie/pkg/assistant/repositoryImp"
	authCtrlImp "airrvie/pkg/auth/controllerImp"
	authRepoImp "airrvie/pkg/auth/repositoryImp"
	farmCtrlImp "airrvie/pkg/farm/controllerImp"
	farmRepoImp "airrvie/pkg/farm/repositoryImp"
	healthCtrlImp "airrvie/pkg/health/controllerImp"
	journalCtrlImp "airrvie/pkg/journal/controllerImp"
	journalRepoImp "airrvie/pkg/journal/repositoryImp"
	knowledgeCtrlImp "airrvie/pkg/knowledge/controllerImp"
	knowledgeRepoImp "airrvie/pkg/knowledge/repositoryImp"
	plotCtrlImp "airrvie/pkg/plot/controllerImp"
	plotRepoImp "airrvie/pkg/plot/repositoryImp"
	taskCtrlImp "airrvie/pkg/task/controllerImp"
	taskRepoImp "airrvie/pkg/task/repositoryImp"
	uploadCtrlImp "airrvie/pkg/upload/controllerImp"
	uploadRepoImp "airrvie/pkg/upload/repositoryImp"
	userCtrlImp "airrvie/pkg/user/controllerImp"
	userRepoImp "airrvie/pkg/user/repositoryImp"
	weatherCtrlImp "airrvie/pkg/weather/controllerImp"
	weatherRepoImp "airrvie/pkg/weather/repositoryImp"
)

const testSecret = "test-secret"

func newApp(t *testing.T) *echo.Echo {
	t.Helper()
	dir := t.TempDir()
	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	store, err := storage.NewLocal(filepath.Join(dir, "uploads"), "/uploads")
	require.NoError(t, err)

	guard := ownership.New(db)
	farmRepo := farmRepoImp.New(db)

	e := echo.New()
	return router.New(
		e,
		testSecret,
		filepath.Join(dir, "uploads"),
		authCtrlImp.New(authRepoImp.New(db), otp.NewStore(), testSecret, time.Hour, true),
		userCtrlImp.New(userRepoImp.New(db), farmRepo),
		farmCtrlImp.New(farmRepo),
		plotCtrlImp.New(plotRepoImp.New(db), guard),
		taskCtrlImp.New(taskRepoImp.New(db), guard),
		journalCtrlImp.New(journalRepoImp.New(db), guard),
		uploadCtrlImp.New(uploadRepoImp.New(db), store),
		assistantCtrlImp.New(assistantRepoImp.New(db), ai.NewRules()),
		knowledgeCtrlImp.New(knowledgeRepoImp.New(db), nil),
		weatherCtrlImp.New(weatherRepoImp.NewOpenWeather(""), weatherRepoImp.NewLocations(db)),
		healthCtrlImp.New(db),
	)
}

func do(t *testing.T, app *echo.Echo, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Body.String(), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

func doList(t *testing.T, app *echo.Echo, path, token string) []map[string]any {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func register(t *testing.T, app *echo.Echo, phone string) string {
	t.Helper()
	code, out := do(t, app, http.MethodPost, "/api/auth/register", "",
		`{"phone":"`+phone+`","password":"pw","name":"Test"}`)
	require.Equal(t, http.StatusCreated, code)
	return out["token"].(string)
}

func TestHealth(t *testing.T) {
	app := newApp(t)
	code, out := do(t, app, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", out["status"])
	require.Equal(t, "airrvie-api", out["service"])
	require.Equal(t, "up", out["database"])
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	app := newApp(t)
	code, out := do(t, app, http.MethodGet, "/api/farms", "", "")
	require.Equal(t, http.StatusUnauthorized, code)
	require.NotEmpty(t, out["error"])

	code, _ = do(t, app, http.MethodGet, "/api/farms", "garbage-token", "")
	require.Equal(t, http.StatusUnauthorized, code)
}

func TestFarmToTaskFlow(t *testing.T) {
	app := newApp(t)
	token := register(t, app, "+84900000001")

	code, out := do(t, app, http.MethodPost, "/api/farms", token,
		`{"name":"F1","province":"Cần Thơ","district":"Ninh Kiều"}`)
	require.Equal(t, http.StatusCreated, code)
	farmID := out["id"].(string)

	// plot without dates: a due date before any planting date is fine
	code, out = do(t, app, http.MethodPost, "/api/plots", token,
		`{"farmId":"`+farmID+`","name":"P1","area_m2":100}`)
	require.Equal(t, http.StatusCreated, code)
	plotID := out["id"].(string)

	code, out = do(t, app, http.MethodPost, "/api/tasks", token,
		`{"plot_id":"`+plotID+`","title":"làm cỏ","type":"weeding","due_date":"2026-09-05"}`)
	require.Equal(t, http.StatusCreated, code)
	taskID := out["id"].(string)

	code, _ = do(t, app, http.MethodPut, "/api/tasks/"+taskID+"/complete", token, "")
	require.Equal(t, http.StatusOK, code)

	tasks := doList(t, app, "/api/tasks", token)
	require.Len(t, tasks, 1)
	require.Equal(t, "done", tasks[0]["status"])
	require.Equal(t, true, tasks[0]["completed"])
	require.Equal(t, "P1", tasks[0]["plotName"])
	require.Equal(t, "F1", tasks[0]["farmName"])
}

func TestOwnershipBoundaryOverHTTP(t *testing.T) {
	app := newApp(t)
	owner := register(t, app, "+84900000001")
	intruder := register(t, app, "+84900000002")

	_, out := do(t, app, http.MethodPost, "/api/farms", owner, `{"name":"F1"}`)
	farmID := out["id"].(string)

	// foreign farm behaves exactly like a missing one
	code, _ := do(t, app, http.MethodPut, "/api/farms/"+farmID, intruder, `{"name":"hijack"}`)
	require.Equal(t, http.StatusNotFound, code)
	codeMissing, _ := do(t, app, http.MethodPut, "/api/farms/no-such-farm", intruder, `{"name":"hijack"}`)
	require.Equal(t, codeMissing, code)

	code, _ = do(t, app, http.MethodPost, "/api/plots", intruder,
		`{"farmId":"`+farmID+`","name":"P","area_m2":50}`)
	require.Equal(t, http.StatusNotFound, code)
}

func TestEmptyFarmUpdateIsRejected(t *testing.T) {
	app := newApp(t)
	token := register(t, app, "+84900000001")
	_, out := do(t, app, http.MethodPost, "/api/farms", token, `{"name":"F1"}`)
	farmID := out["id"].(string)

	code, body := do(t, app, http.MethodPut, "/api/farms/"+farmID, token, `{}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.NotEmpty(t, body["error"])
}

func TestPlotDateRangeRejectedOverHTTP(t *testing.T) {
	app := newApp(t)
	token := register(t, app, "+84900000001")
	_, out := do(t, app, http.MethodPost, "/api/farms", token, `{"name":"F1"}`)
	farmID := out["id"].(string)

	code, body := do(t, app, http.MethodPost, "/api/plots", token,
		`{"farmId":"`+farmID+`","name":"P1","area_m2":100,"planting_date":"2026-06-01","harvest_date":"2026-05-01"}`)
	require.Equal(t, http.StatusBadRequest, code)
	require.NotEmpty(t, body["error"])
}

func TestJournalByPlotOverHTTP(t *testing.T) {
	app := newApp(t)
	token := register(t, app, "+84900000001")

	_, out := do(t, app, http.MethodPost, "/api/farms", token, `{"name":"F1"}`)
	farmID := out["id"].(string)
	_, out = do(t, app, http.MethodPost, "/api/plots", token,
		`{"farmId":"`+farmID+`","name":"P1","area_m2":100}`)
	plotID := out["id"].(string)

	code, _ := do(t, app, http.MethodPost, "/api/journal", token,
		`{"plotId":"`+plotID+`","title":"sạ giống","type":"sowing"}`)
	require.Equal(t, http.StatusCreated, code)

	entries := doList(t, app, "/api/journal/plot/"+plotID, token)
	require.Len(t, entries, 1)
	require.Equal(t, plotID, entries[0]["plotId"])
	require.Equal(t, "sạ giống", entries[0]["title"])

	// a stranger's token sees the plot as missing, not as forbidden
	other := register(t, app, "+84900000002")
	code, body := do(t, app, http.MethodGet, "/api/journal/plot/"+plotID, other, "")
	require.Equal(t, http.StatusNotFound, code)
	require.NotEmpty(t, body["error"])
}

func TestAssistantConversationFlow(t *testing.T) {
	app := newApp(t)
	token := register(t, app, "+84900000001")

	code, out := do(t, app, http.MethodPost, "/api/assistant/conversations", token, `{}`)
	require.Equal(t, http.StatusCreated, code)
	convID := out["id"].(string)

	code, out = do(t, app, http.MethodPost, "/api/assistant/conversations/"+convID+"/messages", token,
		`{"content":"Lúa của tôi bị vàng lá phải làm sao?"}`)
	require.Equal(t, http.StatusCreated, code)

	botMsg := out["assistantMessage"].(map[string]any)
	require.Equal(t, "assistant", botMsg["role"])
	require.Contains(t, botMsg["content"].(string), "vàng lá")

	code, out = do(t, app, http.MethodGet, "/api/assistant/conversations/"+convID, token, "")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, out["messages"].([]any), 2)
}

func TestWeatherFallsBackWithoutKey(t *testing.T) {
	app := newApp(t)

	code, out := do(t, app, http.MethodGet, "/api/weather", "", "")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Mekong Delta, Vietnam", out["location"])

	current := out["current"].(map[string]any)
	require.EqualValues(t, 28, current["temperature"])
}
