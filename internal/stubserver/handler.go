package stubserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gridboard/mobile-core/internal/app"
	"github.com/gridboard/mobile-core/internal/logger"
	"github.com/gridboard/mobile-core/internal/validators"
	"github.com/gridboard/mobile-core/models"
)

type ctxKey string

const userIDCtxKey ctxKey = "user_id"

type account struct {
	user         models.User
	passwordHash []byte
}

// Handler holds the in-memory account registry and the routes over it.
type Handler struct {
	mu       sync.RWMutex
	accounts map[string]*account // keyed by email
	byID     map[string]*account

	signKey  []byte
	tokenTTL time.Duration
	catalog  models.TiersResponse

	authValidator validators.Validator
	logger        *logger.Logger
}

// NewHandler creates an empty registry. tokenTTL bounds issued bearer
// tokens; expired ones are answered with the explicit expiry detail.
func NewHandler(signKey string, tokenTTL time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		accounts:      make(map[string]*account),
		byID:          make(map[string]*account),
		signKey:       []byte(signKey),
		tokenTTL:      tokenTTL,
		catalog:       defaultCatalog(),
		authValidator: validators.NewAuthValidator(),
		logger:        log,
	}
}

// Init assembles the chi router.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Group(func(r chi.Router) {
		r.Get("/api/health", h.health)
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/subscription/tiers", h.tiers)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/auth/me", h.me)
		r.Post("/api/subscription/upgrade", h.upgrade)
	})

	return router
}

// auth validates the bearer token and stores the user ID in the request
// context. An expired token is answered with the literal expiry detail the
// client keys its forced logout on.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			h.writeError(w, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			h.writeError(w, http.StatusUnauthorized, "Invalid authorization header")
			return
		}

		userID, err := parseToken(tokenString, h.signKey)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				h.writeError(w, http.StatusUnauthorized, app.MsgTokenExpired)
				return
			}
			h.logger.Warn().Err(err).Msg("token rejected")
			h.writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDCtxKey, userID)))
	})
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}
	if err := h.authValidator.Validate(r.Context(), req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Password hashing failed")
		return
	}

	acc := &account{
		user: models.User{
			ID:               uuid.NewString(),
			Email:            req.Email,
			Name:             req.Name,
			SubscriptionTier: "free",
			IsActive:         true,
		},
		passwordHash: hash,
	}

	h.mu.Lock()
	if _, exists := h.accounts[req.Email]; exists {
		h.mu.Unlock()
		h.writeError(w, http.StatusConflict, "Email already registered")
		return
	}
	h.accounts[req.Email] = acc
	h.byID[acc.user.ID] = acc
	h.mu.Unlock()

	h.logger.Info().Str("email", req.Email).Msg("account registered")
	h.respondWithToken(w, http.StatusCreated, acc.user)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}
	if err := h.authValidator.Validate(r.Context(), creds); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.mu.RLock()
	acc, ok := h.accounts[creds.Email]
	h.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(creds.Password)) != nil {
		h.writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.respondWithToken(w, http.StatusOK, acc.user)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(userIDCtxKey).(string)

	h.mu.RLock()
	acc, ok := h.byID[userID]
	h.mu.RUnlock()

	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Unknown account")
		return
	}

	h.writeJSON(w, http.StatusOK, acc.user)
}

func (h *Handler) tiers(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.catalog)
}

func (h *Handler) upgrade(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(userIDCtxKey).(string)

	var req models.UpgradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Malformed request body")
		return
	}

	if _, ok := h.catalog.Tiers[req.Tier]; !ok {
		h.writeError(w, http.StatusBadRequest, "Unknown tier")
		return
	}
	if !h.knownPaymentMethod(req.PaymentMethod) {
		h.writeError(w, http.StatusBadRequest, "Unknown payment method")
		return
	}

	h.mu.Lock()
	acc, ok := h.byID[userID]
	if ok {
		acc.user.SubscriptionTier = req.Tier
	}
	h.mu.Unlock()

	if !ok {
		h.writeError(w, http.StatusUnauthorized, "Unknown account")
		return
	}

	h.logger.Info().Str("user_id", userID).Str("tier", req.Tier).Msg("subscription upgraded")
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) knownPaymentMethod(id string) bool {
	for _, m := range h.catalog.PaymentMethods {
		if m.ID == id {
			return true
		}
	}
	return false
}

func (h *Handler) respondWithToken(w http.ResponseWriter, status int, user models.User) {
	token, err := issueToken(user.ID, h.tokenTTL, h.signKey)
	if err != nil {
		h.logger.Error().Err(err).Msg("token issue failed")
		h.writeError(w, http.StatusInternalServerError, "Token issue failed")
		return
	}

	h.writeJSON(w, status, models.AuthResponse{Token: token, User: user})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error().Err(err).Msg("response encode failed")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, detail string) {
	h.writeJSON(w, status, models.APIError{Detail: detail})
}
