package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/crorepati-bot/internal/domain/entities"
	"github.com/aliskhannn/crorepati-bot/internal/service"
)

const (
	// SessionCookie carries the game ID between requests.
	SessionCookie = "crorepati_session"

	sessionMaxAge = 24 * 60 * 60
)

// GameService is the game logic the handler serves.
type GameService interface {
	Start(ctx context.Context) (*entities.Game, error)
	Page(ctx context.Context, gameID string) (*entities.PageView, error)
	Check(ctx context.Context, gameID, choice string) (bool, error)
	Answer(ctx context.Context, gameID, choice string) (*entities.Game, bool, error)
	Quit(ctx context.Context, gameID string) (*entities.Game, error)
	Result(ctx context.Context, gameID, fallbackStatus string) (*entities.ResultView, error)
}

// Handler serves the game screens. Navigation happens through 303 redirects
// so a client following them always lands on the screen to show next.
type Handler struct {
	games  GameService
	logger *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(games GameService, logger *zap.Logger) *Handler {
	return &Handler{
		games:  games,
		logger: logger.Named("Handler"),
	}
}

// RegisterRoutes registers the game routes.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.index)
	r.POST("/start", h.start)
	r.GET("/game", h.game)
	r.POST("/check_answer", h.checkAnswer)
	r.POST("/answer", h.answer)
	r.GET("/quit", h.quit)
	r.GET("/result", h.result)
}

func (h *Handler) index(c *gin.Context) {
	c.JSON(http.StatusOK, entities.Screen{Kind: entities.ScreenWelcome})
}

func (h *Handler) start(c *gin.Context) {
	game, err := h.games.Start(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}

	gamesStartedTotal.Inc()
	setSession(c, game.ID)
	c.Redirect(http.StatusSeeOther, "/game")
}

func (h *Handler) game(c *gin.Context) {
	gameID, ok := session(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	page, err := h.games.Page(c.Request.Context(), gameID)
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		clearSession(c)
		c.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, service.ErrGameOver):
		c.Redirect(http.StatusSeeOther, "/result")
	case err != nil:
		h.internalError(c, err)
	default:
		c.JSON(http.StatusOK, entities.Screen{Kind: entities.ScreenQuestion, Page: page})
	}
}

func (h *Handler) checkAnswer(c *gin.Context) {
	gameID, ok := session(c)
	if !ok {
		c.JSON(http.StatusOK, entities.Verdict{Error: "Session expired"})
		return
	}

	correct, err := h.games.Check(c.Request.Context(), gameID, c.PostForm("answer"))
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		c.JSON(http.StatusOK, entities.Verdict{Error: "Session expired"})
	case errors.Is(err, service.ErrGameOver):
		c.JSON(http.StatusOK, entities.Verdict{Error: "Game is over"})
	case errors.Is(err, service.ErrInvalidAnswer):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		h.internalError(c, err)
	default:
		answerChecksTotal.WithLabelValues(verdictLabel(correct)).Inc()
		c.JSON(http.StatusOK, entities.Verdict{Correct: correct})
	}
}

func (h *Handler) answer(c *gin.Context) {
	gameID, ok := session(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	game, correct, err := h.games.Answer(c.Request.Context(), gameID, c.PostForm("answer"))
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		clearSession(c)
		c.Redirect(http.StatusSeeOther, "/")
		return
	case errors.Is(err, service.ErrGameOver):
		c.Redirect(http.StatusSeeOther, "/result")
		return
	case errors.Is(err, service.ErrInvalidAnswer):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		h.internalError(c, err)
		return
	}

	answersTotal.WithLabelValues(verdictLabel(correct)).Inc()

	if game.IsActive() {
		c.Redirect(http.StatusSeeOther, "/game")
		return
	}
	c.Redirect(http.StatusSeeOther, "/result?status="+game.Status)
}

func (h *Handler) quit(c *gin.Context) {
	if gameID, ok := session(c); ok {
		_, err := h.games.Quit(c.Request.Context(), gameID)
		if err != nil && !errors.Is(err, service.ErrGameNotFound) {
			h.internalError(c, err)
			return
		}
	}

	c.Redirect(http.StatusSeeOther, "/result?status="+entities.GameQuit)
}

func (h *Handler) result(c *gin.Context) {
	gameID, _ := session(c)

	result, err := h.games.Result(c.Request.Context(), gameID, c.DefaultQuery("status", entities.GameQuit))
	if err != nil {
		h.internalError(c, err)
		return
	}

	clearSession(c)
	gamesFinishedTotal.WithLabelValues(result.Status).Inc()
	c.JSON(http.StatusOK, entities.Screen{Kind: entities.ScreenResult, Result: result})
}

func (h *Handler) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": http.StatusText(http.StatusInternalServerError)})
}

func session(c *gin.Context) (string, bool) {
	id, err := c.Cookie(SessionCookie)
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}

func setSession(c *gin.Context, gameID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, gameID, sessionMaxAge, "/", "", false, true)
}

func clearSession(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}
