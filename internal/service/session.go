package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/gridboard/mobile-core/internal/adapter"
	"github.com/gridboard/mobile-core/internal/app"
	"github.com/gridboard/mobile-core/internal/logger"
	"github.com/gridboard/mobile-core/internal/store"
	"github.com/gridboard/mobile-core/models"
)

type sessionService struct {
	cache        store.SessionCache
	gateway      adapter.BackendGateway
	connectivity ConnectivitySource
	logger       *logger.Logger

	mu        sync.RWMutex
	token     string
	user      *models.User
	tiers     *models.TiersResponse
	restoring bool

	watchMu sync.Mutex
	subID   int
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewSessionService wires the manager to its dependencies. The instance owns
// all session state; no package-level state exists.
func NewSessionService(localStore *store.ClientStorages, gateway adapter.BackendGateway, connectivity ConnectivitySource, log *logger.Logger) SessionService {
	return &sessionService{
		cache:        localStore.SessionCache,
		gateway:      gateway,
		connectivity: connectivity,
		logger:       log,
	}
}

// Restore implements [SessionService]. Cached state is surfaced before any
// network call so the first render never waits on the backend.
func (s *sessionService) Restore(ctx context.Context) {
	s.mu.Lock()
	s.restoring = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.restoring = false
		s.mu.Unlock()
	}()

	s.restoreFromCache(ctx)

	s.loadTiers(ctx)

	if s.currentToken() != "" {
		// transient failures keep the cached user; only an explicit
		// expiry clears the session
		_ = s.RefreshUser(ctx)
	}
}

// restoreFromCache populates in-memory state from the durable cache: the
// bearer token, the last confirmed user (optimistic restoration) and the
// last tier catalog. Local reads only.
func (s *sessionService) restoreFromCache(ctx context.Context) {
	if token, err := s.cache.Get(ctx, store.KeyAuthToken); err == nil {
		s.mu.Lock()
		s.token = token
		s.mu.Unlock()
		s.gateway.SetToken(token)
	} else if !errors.Is(err, store.ErrCacheMiss) {
		s.logger.Warn().Err(err).Msg("token cache read failed")
	}

	if raw, err := s.cache.Get(ctx, store.KeyUser); err == nil {
		var user models.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			s.logger.Warn().Err(err).Msg("cached user is corrupt, ignoring")
		} else {
			s.mu.Lock()
			s.user = &user
			s.mu.Unlock()
			s.logger.Info().Str("user_id", user.ID).Msg("session restored from cache")
		}
	}

	if raw, err := s.cache.Get(ctx, store.KeyTiers); err == nil {
		var tiers models.TiersResponse
		if err := json.Unmarshal([]byte(raw), &tiers); err != nil {
			s.logger.Warn().Err(err).Msg("cached tier catalog is corrupt, ignoring")
		} else {
			s.mu.Lock()
			s.tiers = &tiers
			s.mu.Unlock()
		}
	}
}

// Start implements [SessionService]. It subscribes to connectivity
// transitions and reconciles with the backend whenever the device comes
// back online. Stopping any previous loop first keeps Start idempotent.
func (s *sessionService) Start(ctx context.Context) {
	s.Stop()

	s.watchMu.Lock()
	id, updates := s.connectivity.Subscribe()
	s.subID = id
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.watchMu.Unlock()

	go func() {
		defer s.wg.Done()

		for {
			select {
			case <-loopCtx.Done():
				return
			case online, ok := <-updates:
				if !ok {
					return
				}
				if online {
					s.logger.Info().Msg("connectivity restored, reconciling with backend")
					s.RetryConnection(loopCtx)
				}
			}
		}
	}()
}

// Stop implements [SessionService]. It cancels the watch loop, waits for it
// to exit and drops the connectivity subscription. Safe to call when the
// loop is not running.
func (s *sessionService) Stop() {
	s.watchMu.Lock()
	cancel := s.cancel
	s.cancel = nil
	id := s.subID
	s.watchMu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	s.wg.Wait()
	s.connectivity.Unsubscribe(id)
}

// Login implements [SessionService].
func (s *sessionService) Login(ctx context.Context, email, password string) error {
	if !s.connectivity.Online() {
		return ErrOffline
	}

	auth, err := s.gateway.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return mapGatewayError(err, app.MsgLoginFailed)
	}

	s.adoptSession(ctx, auth)
	return nil
}

// Register implements [SessionService]. Identical contract to Login.
func (s *sessionService) Register(ctx context.Context, email, password, name string) error {
	if !s.connectivity.Online() {
		return ErrOffline
	}

	auth, err := s.gateway.Register(ctx, models.RegisterRequest{Email: email, Password: password, Name: name})
	if err != nil {
		return mapGatewayError(err, app.MsgRegistrationFailed)
	}

	s.adoptSession(ctx, auth)
	return nil
}

// Logout implements [SessionService]. Unconditional, local-only; contrast
// with failed validation, which preserves the cached session.
func (s *sessionService) Logout(ctx context.Context) {
	s.clearSession(ctx)
	s.logger.Info().Msg("logged out")
}

// RefreshUser implements [SessionService].
func (s *sessionService) RefreshUser(ctx context.Context) error {
	if s.currentToken() == "" {
		return nil
	}

	user, err := s.gateway.FetchUser(ctx)
	if err != nil {
		if errors.Is(err, adapter.ErrTokenExpired) {
			s.logger.Info().Msg("backend reported token expiry, clearing session")
			s.clearSession(ctx)
			return ErrSessionExpired
		}

		// any other failure, including non-expiry 401 variants, preserves
		// the last-known user so connectivity loss never logs the user out
		s.logger.Warn().Err(err).Msg("user validation failed, keeping cached session")
		return mapGatewayError(err, app.MsgNetworkError)
	}

	s.setUser(ctx, user)
	return nil
}

// RetryConnection implements [SessionService]. Idempotent; both steps
// tolerate redundant invocation.
func (s *sessionService) RetryConnection(ctx context.Context) {
	s.loadTiers(ctx)

	if s.currentToken() != "" {
		_ = s.RefreshUser(ctx)
	}
}

// UpgradeSubscription implements [SessionService]. The upgrade response body
// is not trusted as the new user state; the follow-up RefreshUser is
// authoritative.
func (s *sessionService) UpgradeSubscription(ctx context.Context, tier, paymentMethod, reference string) error {
	if s.currentToken() == "" {
		return ErrNotAuthenticated
	}
	if !s.connectivity.Online() {
		return ErrOffline
	}

	req := models.UpgradeRequest{Tier: tier, PaymentMethod: paymentMethod, Reference: reference}
	if err := s.gateway.Upgrade(ctx, req); err != nil {
		return mapGatewayError(err, app.MsgUpgradeFailed)
	}

	s.logger.Info().Str("tier", tier).Msg("subscription upgrade accepted")
	return s.RefreshUser(ctx)
}

// Session implements [SessionService].
func (s *sessionService) Session() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := models.SessionUnauthenticated
	switch {
	case s.user != nil:
		// optimistic restoration: a cached user counts as authenticated
		// even while validation is still in flight
		state = models.SessionAuthenticated
	case s.restoring:
		state = models.SessionRestoring
	}

	var user *models.User
	if s.user != nil {
		u := *s.user
		user = &u
	}

	return models.Session{
		State:    state,
		Token:    s.token,
		User:     user,
		IsOnline: s.connectivity.Online(),
		Loading:  s.restoring,
	}
}

// PaymentMethods implements [SessionService].
func (s *sessionService) PaymentMethods() []models.PaymentMethod {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.tiers == nil {
		return nil
	}
	return append([]models.PaymentMethod(nil), s.tiers.PaymentMethods...)
}

// loadTiers fetches the tier catalog and overwrites the in-memory copy and
// the cache on success. On failure the last cached catalog (if any) keeps
// serving entitlement queries.
func (s *sessionService) loadTiers(ctx context.Context) {
	tiers, err := s.gateway.FetchTiers(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("tier catalog load failed, falling back to cache")

		s.mu.RLock()
		loaded := s.tiers != nil
		s.mu.RUnlock()
		if loaded {
			return
		}

		if raw, cacheErr := s.cache.Get(ctx, store.KeyTiers); cacheErr == nil {
			var cached models.TiersResponse
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				s.mu.Lock()
				s.tiers = &cached
				s.mu.Unlock()
			}
		}
		return
	}

	s.mu.Lock()
	s.tiers = &tiers
	s.mu.Unlock()

	// cache writes follow the successful network confirmation
	if raw, err := json.Marshal(tiers); err == nil {
		if err := s.cache.Set(ctx, store.KeyTiers, string(raw)); err != nil {
			s.logger.Warn().Err(err).Msg("tier catalog cache write failed")
		}
	}
}

// adoptSession installs a backend-confirmed token and user, then persists
// both. Cache writes never precede the confirmation.
func (s *sessionService) adoptSession(ctx context.Context, auth models.AuthResponse) {
	s.mu.Lock()
	s.token = auth.Token
	user := auth.User
	s.user = &user
	s.mu.Unlock()

	s.gateway.SetToken(auth.Token)

	if err := s.cache.Set(ctx, store.KeyAuthToken, auth.Token); err != nil {
		s.logger.Warn().Err(err).Msg("token cache write failed")
	}
	s.persistUser(ctx, auth.User)

	s.logger.Info().Str("user_id", auth.User.ID).Str("tier", auth.User.SubscriptionTier).Msg("session established")
}

func (s *sessionService) setUser(ctx context.Context, user models.User) {
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	s.persistUser(ctx, user)
}

func (s *sessionService) persistUser(ctx context.Context, user models.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		s.logger.Warn().Err(err).Msg("user record marshal failed")
		return
	}
	if err := s.cache.Set(ctx, store.KeyUser, string(raw)); err != nil {
		s.logger.Warn().Err(err).Msg("user cache write failed")
	}
}

// clearSession drops the in-memory session and both cache entries. The tier
// catalog is kept: it is not user-specific.
func (s *sessionService) clearSession(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	s.gateway.SetToken("")

	if err := s.cache.Remove(ctx, store.KeyAuthToken); err != nil {
		s.logger.Warn().Err(err).Msg("token cache remove failed")
	}
	if err := s.cache.Remove(ctx, store.KeyUser); err != nil {
		s.logger.Warn().Err(err).Msg("user cache remove failed")
	}
}

func (s *sessionService) currentToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
