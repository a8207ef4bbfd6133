// Package client talks to the game server the way a browser would: the game
// session lives in a cookie, answers are posted as forms and redirects are
// followed to the next screen.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/aliskhannn/crorepati-bot/internal/answer"
	"github.com/aliskhannn/crorepati-bot/internal/domain/entities"
)

const DefaultTimeout = 10 * time.Second

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrNotJSON          = errors.New("response is not json")
)

// Client is a game session on the server. Each Client owns its cookie jar,
// so one Client is one player.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// New creates a client for the server at baseURL. A non-positive timeout
// falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	rc := resty.New().
		SetBaseURL(baseURL).
		SetCookieJar(jar).
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeader("Accept", "application/json")

	return &Client{
		http:   rc,
		logger: logger.Named("client"),
	}, nil
}

// Start begins a new game and returns its first screen.
func (c *Client) Start(ctx context.Context) (*entities.Screen, error) {
	return c.screen(ctx, http.MethodPost, "/start", nil)
}

// Current returns the screen of the game in progress.
func (c *Client) Current(ctx context.Context) (*entities.Screen, error) {
	return c.screen(ctx, http.MethodGet, "/game", nil)
}

// Quit ends the game keeping the current winnings.
func (c *Client) Quit(ctx context.Context) (*entities.Screen, error) {
	return c.screen(ctx, http.MethodGet, "/quit", nil)
}

// Submit posts the final choice and returns the screen the server moved to.
func (c *Client) Submit(ctx context.Context, choice string) (*entities.Screen, error) {
	return c.screen(ctx, http.MethodPost, "/answer", map[string]string{"answer": choice})
}

// Verify asks the server whether choice is correct without submitting it.
// Every failure wraps answer.ErrVerificationUnavailable.
func (c *Client) Verify(ctx context.Context, choice string) (bool, error) {
	var verdict entities.Verdict

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{"answer": choice}).
		SetResult(&verdict).
		Post("/check_answer")
	if err != nil {
		return false, fmt.Errorf("%w: %w", answer.ErrVerificationUnavailable, err)
	}
	if resp.IsError() {
		return false, fmt.Errorf("%w: %w %d", answer.ErrVerificationUnavailable, ErrUnexpectedStatus, resp.StatusCode())
	}
	if !resty.IsJSONType(resp.Header().Get("Content-Type")) {
		return false, fmt.Errorf("%w: %w", answer.ErrVerificationUnavailable, ErrNotJSON)
	}

	if verdict.Error != "" {
		c.logger.Warn("verification rejected",
			zap.String("choice", choice),
			zap.String("reason", verdict.Error),
		)
	}

	return verdict.Correct, nil
}

func (c *Client) screen(ctx context.Context, method, path string, form map[string]string) (*entities.Screen, error) {
	var screen entities.Screen

	req := c.http.R().
		SetContext(ctx).
		SetResult(&screen)
	if form != nil {
		req.SetFormData(form)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s %s: %w %d", method, path, ErrUnexpectedStatus, resp.StatusCode())
	}
	if !resty.IsJSONType(resp.Header().Get("Content-Type")) {
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrNotJSON)
	}

	return &screen, nil
}
