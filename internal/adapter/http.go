package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/gridboard/mobile-core/internal/config"
	"github.com/gridboard/mobile-core/internal/logger"
	"github.com/gridboard/mobile-core/models"
)

type httpBackendGateway struct {
	client *resty.Client

	retryCount   int
	retryBackoff time.Duration

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPBackendGateway constructs the HTTP/REST implementation of
// [BackendGateway]. It normalises and validates the base URL from
// adapterCfg.BaseURL and configures the underlying resty client with the
// resolved base URL and the per-attempt request timeout. The retry budget
// and backoff come from adapterCfg as well.
//
// Returns an error if adapterCfg.BaseURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPBackendGateway(adapterCfg config.Adapter, appCfg config.App, log *logger.Logger) (BackendGateway, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend base url: %w", err)
	}

	userAgent := "gridboard-client"
	if appCfg.Version != "" {
		userAgent += "/" + appCfg.Version
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("User-Agent", userAgent)

	return &httpBackendGateway{
		client:       client,
		retryCount:   adapterCfg.RetryCount,
		retryBackoff: adapterCfg.RetryBackoff,
		logger:       log,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [BackendGateway]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent authenticated
// requests.
func (h *httpBackendGateway) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [BackendGateway]. It returns the bearer token currently
// held by the gateway, or an empty string if none has been set.
func (h *httpBackendGateway) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Login implements [BackendGateway]. It POSTs the credentials to
// POST /api/auth/login under the retry policy. On success the returned
// bearer token is stored via SetToken.
func (h *httpBackendGateway) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	resp, err := callWithRetry(ctx, h.logger, h.retryCount, h.retryBackoff, "login",
		func(ctx context.Context) (*resty.Response, error) {
			return h.request(ctx).
				SetBody(creds).
				Post("/api/auth/login")
		})
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	var auth models.AuthResponse
	if err = json.Unmarshal(resp.Body(), &auth); err != nil {
		return models.AuthResponse{}, fmt.Errorf("decode login response: %w", err)
	}

	h.SetToken(auth.Token)
	return auth, nil
}

// Register implements [BackendGateway]. Identical contract to Login,
// targeting POST /api/auth/register.
func (h *httpBackendGateway) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	resp, err := callWithRetry(ctx, h.logger, h.retryCount, h.retryBackoff, "register",
		func(ctx context.Context) (*resty.Response, error) {
			return h.request(ctx).
				SetBody(req).
				Post("/api/auth/register")
		})
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	var auth models.AuthResponse
	if err = json.Unmarshal(resp.Body(), &auth); err != nil {
		return models.AuthResponse{}, fmt.Errorf("decode register response: %w", err)
	}

	h.SetToken(auth.Token)
	return auth, nil
}

// FetchUser implements [BackendGateway]. It GETs the current user record
// from GET /api/auth/me under the retry policy. Requires a bearer token.
func (h *httpBackendGateway) FetchUser(ctx context.Context) (models.User, error) {
	resp, err := callWithRetry(ctx, h.logger, h.retryCount, h.retryBackoff, "fetch_user",
		func(ctx context.Context) (*resty.Response, error) {
			return h.authedRequest(ctx).Get("/api/auth/me")
		})
	if err != nil {
		return models.User{}, fmt.Errorf("fetch user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var user models.User
	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return models.User{}, fmt.Errorf("decode user response: %w", err)
	}

	return user, nil
}

// FetchTiers implements [BackendGateway]. It GETs the tier catalog from
// GET /api/subscription/tiers under the retry policy.
func (h *httpBackendGateway) FetchTiers(ctx context.Context) (models.TiersResponse, error) {
	resp, err := callWithRetry(ctx, h.logger, h.retryCount, h.retryBackoff, "fetch_tiers",
		func(ctx context.Context) (*resty.Response, error) {
			return h.request(ctx).Get("/api/subscription/tiers")
		})
	if err != nil {
		return models.TiersResponse{}, fmt.Errorf("fetch tiers request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TiersResponse{}, err
	}

	var tiers models.TiersResponse
	if err = json.Unmarshal(resp.Body(), &tiers); err != nil {
		return models.TiersResponse{}, fmt.Errorf("decode tiers response: %w", err)
	}

	return tiers, nil
}

// Upgrade implements [BackendGateway]. It POSTs the upgrade request to
// POST /api/subscription/upgrade under the retry policy. The success body is
// discarded; callers re-fetch the user record for the authoritative
// post-upgrade state. Requires a bearer token.
func (h *httpBackendGateway) Upgrade(ctx context.Context, req models.UpgradeRequest) error {
	resp, err := callWithRetry(ctx, h.logger, h.retryCount, h.retryBackoff, "upgrade",
		func(ctx context.Context) (*resty.Response, error) {
			return h.authedRequest(ctx).
				SetBody(req).
				Post("/api/subscription/upgrade")
		})
	if err != nil {
		return fmt.Errorf("upgrade request: %w", err)
	}

	return mapHTTPError(resp)
}

// Ping implements [BackendGateway]. A single unretried GET /api/health;
// any 2xx means the backend is reachable.
func (h *httpBackendGateway) Ping(ctx context.Context) error {
	resp, err := h.request(ctx).Get("/api/health")
	if err != nil {
		return mapTransportError(err)
	}

	return mapHTTPError(resp)
}

func (h *httpBackendGateway) request(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Request-ID", uuid.NewString())
}

func (h *httpBackendGateway) authedRequest(ctx context.Context) *resty.Request {
	req := h.request(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
