package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dmarakulin/learn-logbook/internal/config"
	"github.com/dmarakulin/learn-logbook/internal/logger"
	"github.com/dmarakulin/learn-logbook/internal/utils"
	"github.com/dmarakulin/learn-logbook/models"
)

type httpServerAdapter struct {
	client *resty.Client
	logger *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPServerAdapter constructs a [ServerAdapter] speaking the logbook
// server's REST API over resty. The base URL and request timeout come from
// the client adapter config; zero values fall back to localhost defaults.
func NewHTTPServerAdapter(cfg config.ClientAdapter, log *logger.Logger) ServerAdapter {
	if cfg.HTTPAddress == "" {
		cfg.HTTPAddress = "http://localhost:8080"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.HTTPAddress, "/")).
		SetTimeout(cfg.RequestTimeout)

	return &httpServerAdapter{client: cli, logger: log}
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("%w: register request: %w", ErrRemote, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("%w: register parse bearer token: %w", ErrRemote, err)
	}
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: register parse user id: %w", ErrRemote, err)
	}

	h.SetToken(token)
	return models.User{UserID: userID, Login: user.Login, Name: user.Name}, nil
}

func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/auth/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: login request: %w", ErrRemote, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: login parse bearer token: %w", ErrRemote, err)
	}
	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: login parse user id: %w", ErrRemote, err)
	}

	h.SetToken(token)
	return models.Token{SignedString: token, UserID: userID}, nil
}

func (h *httpServerAdapter) EventsUpdatedSince(ctx context.Context, since time.Time) ([]models.Event, error) {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("updated_after", since.UTC().Format(time.RFC3339Nano)).
		Get("/api/events")
	if err != nil {
		return nil, fmt.Errorf("%w: events delta request: %w", ErrRemote, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var er models.EventsResponse
	if err = json.Unmarshal(resp.Body(), &er); err != nil {
		return nil, fmt.Errorf("%w: decode events delta response: %w", ErrRemote, err)
	}

	return er.Events, nil
}

func (h *httpServerAdapter) CreateEvent(ctx context.Context, event models.Event) (models.Event, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post("/api/events")
	if err != nil {
		return models.Event{}, fmt.Errorf("%w: create event request: %w", ErrRemote, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Event{}, err
	}

	var created models.Event
	if err = json.Unmarshal(resp.Body(), &created); err != nil {
		return models.Event{}, fmt.Errorf("%w: decode create event response: %w", ErrRemote, err)
	}

	return created, nil
}

func (h *httpServerAdapter) UpdateEvent(ctx context.Context, id string, update models.EventUpdate) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		Patch("/api/events/" + id)
	if err != nil {
		return fmt.Errorf("%w: update event request: %w", ErrRemote, err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) DeleteEvent(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).Delete("/api/events/" + id)
	if err != nil {
		return fmt.Errorf("%w: delete event request: %w", ErrRemote, err)
	}

	// The server answers 204 for absent ids, so no idempotency handling is
	// needed here.
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound, http.StatusForbidden:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("%w: http %d: %s", ErrRemote, resp.StatusCode(), body)
}
