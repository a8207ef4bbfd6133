package http_test

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httpdelivery "github.com/aliskhannn/crorepati-bot/internal/delivery/http"
	"github.com/aliskhannn/crorepati-bot/internal/domain/entities"
	"github.com/aliskhannn/crorepati-bot/internal/service"
	"github.com/aliskhannn/crorepati-bot/internal/storage"
)

type staticSource []entities.Question

func (s staticSource) GetAll() []entities.Question {
	out := make([]entities.Question, len(s))
	for i, q := range s {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}

func newRouter(t *testing.T, questions int) *gin.Engine {
	t.Helper()

	qs := make(staticSource, questions)
	for i := range qs {
		qs[i] = entities.Question{
			ID:      i + 1,
			Text:    "question",
			Options: []string{"right", "wrong 1", "wrong 2", "wrong 3"},
		}
	}

	selector := service.NewQuestionSelector(qs, rand.New(rand.NewSource(7)))
	svc := service.NewGameService(storage.NewGameStorage(), selector, zap.NewNop())
	return httpdelivery.NewRouter(httpdelivery.NewHandler(svc, zap.NewNop()), zap.NewNop(), "test")
}

func do(router *gin.Engine, method, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == httpdelivery.SessionCookie {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func decodeScreen(t *testing.T, w *httptest.ResponseRecorder) entities.Screen {
	t.Helper()
	var screen entities.Screen
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &screen))
	return screen
}

func choiceFor(t *testing.T, page *entities.PageView, right bool) string {
	t.Helper()
	for _, o := range page.Options {
		if (o.Text == "right") == right {
			return o.ID
		}
	}
	t.Fatal("option not found")
	return ""
}

func TestHandler_WithoutSession(t *testing.T) {
	router := newRouter(t, 5)

	w := do(router, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.ScreenWelcome, decodeScreen(t, w).Kind)

	w = do(router, http.MethodGet, "/game", nil, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = do(router, http.MethodPost, "/check_answer", url.Values{"answer": {"0"}}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"correct": false, "error": "Session expired"}`, w.Body.String())

	w = do(router, http.MethodPost, "/answer", url.Values{"answer": {"0"}}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	unknown := &http.Cookie{Name: httpdelivery.SessionCookie, Value: "unknown"}
	w = do(router, http.MethodGet, "/game", nil, unknown)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = do(router, http.MethodGet, "/result", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, &entities.ResultView{Status: entities.GameQuit}, decodeScreen(t, w).Result)
}

func TestHandler_CheckThenAnswer(t *testing.T) {
	router := newRouter(t, 5)

	w := do(router, http.MethodPost, "/start", nil, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/game", w.Header().Get("Location"))
	cookie := sessionCookie(t, w)

	w = do(router, http.MethodGet, "/game", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	screen := decodeScreen(t, w)
	require.Equal(t, entities.ScreenQuestion, screen.Kind)
	assert.Equal(t, 0, screen.Page.Level)
	assert.Equal(t, int64(1000), screen.Page.Prize)
	right := choiceFor(t, screen.Page, true)

	w = do(router, http.MethodPost, "/check_answer", url.Values{"answer": {right}}, cookie)
	assert.JSONEq(t, `{"correct": true}`, w.Body.String())

	w = do(router, http.MethodPost, "/check_answer", url.Values{"answer": {"x"}}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPost, "/answer", url.Values{"answer": {right}}, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/game", w.Header().Get("Location"))

	w = do(router, http.MethodGet, "/game", nil, cookie)
	screen = decodeScreen(t, w)
	assert.Equal(t, 1, screen.Page.Level)
	assert.Equal(t, int64(1000), screen.Page.CurrentWinnings)

	w = do(router, http.MethodPost, "/answer", url.Values{"answer": {choiceFor(t, screen.Page, false)}}, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/result?status=lost", w.Header().Get("Location"))

	w = do(router, http.MethodGet, "/result?status=lost", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, &entities.ResultView{Status: entities.GameLost, Winnings: 0}, decodeScreen(t, w).Result)
	assert.Equal(t, -1, sessionCookie(t, w).MaxAge)
}

func TestHandler_QuitKeepsWinnings(t *testing.T) {
	router := newRouter(t, 5)

	cookie := sessionCookie(t, do(router, http.MethodPost, "/start", nil, nil))
	page := decodeScreen(t, do(router, http.MethodGet, "/game", nil, cookie)).Page
	do(router, http.MethodPost, "/answer", url.Values{"answer": {choiceFor(t, page, true)}}, cookie)

	w := do(router, http.MethodGet, "/quit", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/result?status=quit", w.Header().Get("Location"))

	w = do(router, http.MethodGet, "/result?status=quit", nil, cookie)
	assert.Equal(t, &entities.ResultView{Status: entities.GameQuit, Winnings: 1000}, decodeScreen(t, w).Result)
}

func TestHandler_WinningLastQuestion(t *testing.T) {
	router := newRouter(t, 1)

	cookie := sessionCookie(t, do(router, http.MethodPost, "/start", nil, nil))
	page := decodeScreen(t, do(router, http.MethodGet, "/game", nil, cookie)).Page

	w := do(router, http.MethodPost, "/answer", url.Values{"answer": {choiceFor(t, page, true)}}, cookie)
	assert.Equal(t, "/result?status=won", w.Header().Get("Location"))

	w = do(router, http.MethodGet, "/game", nil, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/result", w.Header().Get("Location"))
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	router := newRouter(t, 1)
	do(router, http.MethodPost, "/start", nil, nil)

	w := do(router, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())

	w = do(router, http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "crorepati_games_started_total")
}
