package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gridboard/mobile-core/internal/adapter"
	"github.com/gridboard/mobile-core/internal/logger"
	"github.com/gridboard/mobile-core/internal/mock"
	"github.com/gridboard/mobile-core/internal/store"
	"github.com/gridboard/mobile-core/models"
)

// newTestSessionSvc builds a sessionService wired to mocks.
func newTestSessionSvc(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*sessionService,
	*mock.MockBackendGateway,
	*mock.MockSessionCache,
	*mock.MockConnectivitySource,
) {
	t.Helper()
	mockGateway := mock.NewMockBackendGateway(ctrl)
	mockCache := mock.NewMockSessionCache(ctrl)
	mockConn := mock.NewMockConnectivitySource(ctrl)

	storages := &store.ClientStorages{SessionCache: mockCache}

	svc := NewSessionService(storages, mockGateway, mockConn, logger.Nop()).(*sessionService)
	return svc, mockGateway, mockCache, mockConn
}

func testUser(tier string) models.User {
	return models.User{
		ID:               "u-1",
		Email:            "kai@example.com",
		Name:             "Kai",
		SubscriptionTier: tier,
		IsActive:         true,
	}
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestSessionService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, mockCache, mockConn := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	user := testUser("pro")
	auth := models.AuthResponse{Token: "tok-123", User: user}

	mockConn.EXPECT().Online().Return(true)
	mockGateway.EXPECT().
		Login(ctx, models.Credentials{Email: user.Email, Password: "secret"}).
		Return(auth, nil)
	mockGateway.EXPECT().SetToken("tok-123")

	// both writes happen only after the backend confirmed the login
	mockCache.EXPECT().Set(ctx, store.KeyAuthToken, "tok-123").Return(nil)
	mockCache.EXPECT().Set(ctx, store.KeyUser, gomock.Any()).DoAndReturn(
		func(_ context.Context, _, value string) error {
			var persisted models.User
			require.NoError(t, json.Unmarshal([]byte(value), &persisted))
			assert.Equal(t, user, persisted)
			return nil
		},
	)

	err := svc.Login(ctx, user.Email, "secret")
	require.NoError(t, err)

	snap := svc.Session()
	assert.True(t, snap.Authenticated())
	assert.Equal(t, "pro", snap.User.SubscriptionTier)
	assert.Equal(t, models.SessionAuthenticated, snap.State)
}

func TestSessionService_Login_OfflineRejectedBeforeNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, mockConn := newTestSessionSvc(t, ctrl)

	// no gateway or cache expectations: the call must never reach them
	mockConn.EXPECT().Online().Return(false)

	err := svc.Login(context.Background(), "kai@example.com", "secret")
	assert.ErrorIs(t, err, ErrOffline)
}

func TestSessionService_Login_BadCredentialsLeaveStateUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, _, mockConn := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockConn.EXPECT().Online().Return(true)
	mockGateway.EXPECT().Login(ctx, gomock.Any()).
		Return(models.AuthResponse{}, fmt.Errorf("%w: Invalid credentials", adapter.ErrUnauthorized))

	err := svc.Login(ctx, "kai@example.com", "wrong")

	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "Invalid credentials", rejection.Detail)

	mockConn.EXPECT().Online().Return(true)
	snap := svc.Session()
	assert.False(t, snap.Authenticated())
	assert.Empty(t, snap.Token)
}

func TestSessionService_Login_TimeoutMapsToTimedOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, _, mockConn := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockConn.EXPECT().Online().Return(true)
	mockGateway.EXPECT().Login(ctx, gomock.Any()).
		Return(models.AuthResponse{}, fmt.Errorf("%w: context deadline exceeded", adapter.ErrTimeout))

	err := svc.Login(ctx, "kai@example.com", "secret")
	assert.ErrorIs(t, err, ErrTimedOut)
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestSessionService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, mockCache, mockConn := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	user := testUser("free")
	auth := models.AuthResponse{Token: "tok-reg", User: user}

	mockConn.EXPECT().Online().Return(true)
	mockGateway.EXPECT().
		Register(ctx, models.RegisterRequest{Email: user.Email, Password: "secret", Name: user.Name}).
		Return(auth, nil)
	mockGateway.EXPECT().SetToken("tok-reg")
	mockCache.EXPECT().Set(ctx, store.KeyAuthToken, "tok-reg").Return(nil)
	mockCache.EXPECT().Set(ctx, store.KeyUser, gomock.Any()).Return(nil)

	require.NoError(t, svc.Register(ctx, user.Email, "secret", user.Name))
	assert.True(t, svc.Session().Authenticated())
}

func TestSessionService_Register_Offline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, mockConn := newTestSessionSvc(t, ctrl)

	mockConn.EXPECT().Online().Return(false)

	err := svc.Register(context.Background(), "kai@example.com", "secret", "Kai")
	assert.ErrorIs(t, err, ErrOffline)
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestSessionService_Logout_ClearsSessionAndCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, mockCache, mockConn := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	user := testUser("pro")
	svc.token = "tok-123"
	svc.user = &user

	mockGateway.EXPECT().SetToken("")
	mockCache.EXPECT().Remove(ctx, store.KeyAuthToken).Return(nil)
	mockCache.EXPECT().Remove(ctx, store.KeyUser).Return(nil)

	svc.Logout(ctx)

	mockConn.EXPECT().Online().Return(true)
	snap := svc.Session()
	assert.False(t, snap.Authenticated())
	assert.Equal(t, models.SessionUnauthenticated, snap.State)
	assert.Empty(t, snap.Token)
}

func TestSessionService_Logout_CacheFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, mockCache, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	user := testUser("pro")
	svc.token = "tok-123"
	svc.user = &user

	mockGateway.EXPECT().SetToken("")
	mockCache.EXPECT().Remove(ctx, store.KeyAuthToken).Return(errors.New("disk full"))
	mockCache.EXPECT().Remove(ctx, store.KeyUser).Return(errors.New("disk full"))

	// Logout never fails; the in-memory session is gone regardless
	svc.Logout(ctx)
	assert.Nil(t, svc.user)
	assert.Empty(t, svc.token)
}

// ── RefreshUser ──────────────────────────────────────────────────────────────

func TestSessionService_RefreshUser_NoTokenIsNoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestSessionSvc(t, ctrl)

	require.NoError(t, svc.RefreshUser(context.Background()))
}

func TestSessionService_RefreshUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, mockCache, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	svc.token = "tok-123"
	fresh := testUser("premium")

	mockGateway.EXPECT().FetchUser(ctx).Return(fresh, nil)
	mockCache.EXPECT().Set(ctx, store.KeyUser, gomock.Any()).Return(nil)

	require.NoError(t, svc.RefreshUser(ctx))
	assert.Equal(t, "premium", svc.user.SubscriptionTier)
}

func TestSessionService_RefreshUser_ExpiryClearsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, mockCache, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	user := testUser("pro")
	svc.token = "tok-123"
	svc.user = &user

	mockGateway.EXPECT().FetchUser(ctx).
		Return(models.User{}, fmt.Errorf("%w: Token expired", adapter.ErrTokenExpired))
	mockGateway.EXPECT().SetToken("")
	mockCache.EXPECT().Remove(ctx, store.KeyAuthToken).Return(nil)
	mockCache.EXPECT().Remove(ctx, store.KeyUser).Return(nil)

	err := svc.RefreshUser(ctx)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Nil(t, svc.user)
	assert.Empty(t, svc.token)
}

func TestSessionService_RefreshUser_NonExpiry401PreservesSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, _, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	user := testUser("pro")
	svc.token = "tok-123"
	svc.user = &user

	// an unauthorized response that is NOT the explicit expiry signal must
	// not log the user out
	mockGateway.EXPECT().FetchUser(ctx).
		Return(models.User{}, fmt.Errorf("%w: Signature mismatch", adapter.ErrUnauthorized))

	err := svc.RefreshUser(ctx)

	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.NotNil(t, svc.user)
	assert.Equal(t, "tok-123", svc.token)
}

func TestSessionService_RefreshUser_NetworkFailurePreservesSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, _, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	user := testUser("pro")
	svc.token = "tok-123"
	svc.user = &user

	mockGateway.EXPECT().FetchUser(ctx).
		Return(models.User{}, fmt.Errorf("%w: connection refused", adapter.ErrTransport))

	err := svc.RefreshUser(ctx)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.NotNil(t, svc.user)
	assert.Equal(t, "tok-123", svc.token)
}

// ── Restore ──────────────────────────────────────────────────────────────────

func TestSessionService_Restore_CachedUserSurvivesOfflineStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, mockCache, mockConn := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	user := testUser("pro")
	rawUser, err := json.Marshal(user)
	require.NoError(t, err)

	mockCache.EXPECT().Get(ctx, store.KeyAuthToken).Return("tok-123", nil)
	mockCache.EXPECT().Get(ctx, store.KeyUser).Return(string(rawUser), nil)
	mockCache.EXPECT().Get(ctx, store.KeyTiers).Return("", store.ErrCacheMiss).Times(2)
	mockGateway.EXPECT().SetToken("tok-123")

	// backend unreachable: catalog load and validation both fail on transport
	mockGateway.EXPECT().FetchTiers(ctx).
		Return(models.TiersResponse{}, fmt.Errorf("%w: connection refused", adapter.ErrTransport))
	mockGateway.EXPECT().FetchUser(ctx).
		Return(models.User{}, fmt.Errorf("%w: connection refused", adapter.ErrTransport))

	svc.Restore(ctx)

	mockConn.EXPECT().Online().Return(false)
	snap := svc.Session()
	assert.True(t, snap.Authenticated(), "cached user must survive an offline start")
	assert.Equal(t, "pro", snap.User.SubscriptionTier)
}

func TestSessionService_Restore_EmptyCacheEndsUnauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, mockCache, mockConn := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	tiers := models.TiersResponse{Tiers: map[string]models.TierInfo{
		"free": {Name: "Free", MaxElements: 3},
	}}

	mockCache.EXPECT().Get(ctx, store.KeyAuthToken).Return("", store.ErrCacheMiss)
	mockCache.EXPECT().Get(ctx, store.KeyUser).Return("", store.ErrCacheMiss)
	mockCache.EXPECT().Get(ctx, store.KeyTiers).Return("", store.ErrCacheMiss)
	mockGateway.EXPECT().FetchTiers(ctx).Return(tiers, nil)
	mockCache.EXPECT().Set(ctx, store.KeyTiers, gomock.Any()).Return(nil)

	svc.Restore(ctx)

	mockConn.EXPECT().Online().Return(true)
	snap := svc.Session()
	assert.Equal(t, models.SessionUnauthenticated, snap.State)
	assert.False(t, snap.Loading)
}

func TestSessionService_Restore_ExpiredTokenClearsEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, mockCache, mockConn := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	user := testUser("pro")
	rawUser, err := json.Marshal(user)
	require.NoError(t, err)

	mockCache.EXPECT().Get(ctx, store.KeyAuthToken).Return("tok-stale", nil)
	mockCache.EXPECT().Get(ctx, store.KeyUser).Return(string(rawUser), nil)
	mockCache.EXPECT().Get(ctx, store.KeyTiers).Return("", store.ErrCacheMiss)
	mockGateway.EXPECT().SetToken("tok-stale")

	mockGateway.EXPECT().FetchTiers(ctx).Return(models.TiersResponse{}, nil)
	mockCache.EXPECT().Set(ctx, store.KeyTiers, gomock.Any()).Return(nil)

	mockGateway.EXPECT().FetchUser(ctx).
		Return(models.User{}, fmt.Errorf("%w: Token expired", adapter.ErrTokenExpired))
	mockGateway.EXPECT().SetToken("")
	mockCache.EXPECT().Remove(ctx, store.KeyAuthToken).Return(nil)
	mockCache.EXPECT().Remove(ctx, store.KeyUser).Return(nil)

	svc.Restore(ctx)

	mockConn.EXPECT().Online().Return(true)
	snap := svc.Session()
	assert.False(t, snap.Authenticated())
	assert.Empty(t, snap.Token)
}

func TestSessionService_Restore_CorruptCachedUserIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, mockCache, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	mockCache.EXPECT().Get(ctx, store.KeyAuthToken).Return("", store.ErrCacheMiss)
	mockCache.EXPECT().Get(ctx, store.KeyUser).Return("{not json", nil)
	mockCache.EXPECT().Get(ctx, store.KeyTiers).Return("", store.ErrCacheMiss).Times(2)
	mockGateway.EXPECT().FetchTiers(ctx).
		Return(models.TiersResponse{}, fmt.Errorf("%w: connection refused", adapter.ErrTransport))

	svc.Restore(ctx)
	assert.Nil(t, svc.user)
}

// ── RetryConnection ──────────────────────────────────────────────────────────

func TestSessionService_RetryConnection_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, mockCache, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	tiers := models.TiersResponse{Tiers: map[string]models.TierInfo{
		"free": {Name: "Free", MaxElements: 3},
	}}

	// invoked twice back to back; both rounds succeed and overwrite state
	mockGateway.EXPECT().FetchTiers(ctx).Return(tiers, nil).Times(2)
	mockCache.EXPECT().Set(ctx, store.KeyTiers, gomock.Any()).Return(nil).Times(2)

	svc.RetryConnection(ctx)
	svc.RetryConnection(ctx)

	assert.NotNil(t, svc.tiers)
}

func TestSessionService_RetryConnection_RefreshesUserWhenTokenHeld(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, mockCache, _ := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	svc.token = "tok-123"
	fresh := testUser("premium")

	mockGateway.EXPECT().FetchTiers(ctx).Return(models.TiersResponse{}, nil)
	mockCache.EXPECT().Set(ctx, store.KeyTiers, gomock.Any()).Return(nil)
	mockGateway.EXPECT().FetchUser(ctx).Return(fresh, nil)
	mockCache.EXPECT().Set(ctx, store.KeyUser, gomock.Any()).Return(nil)

	svc.RetryConnection(ctx)
	assert.Equal(t, "premium", svc.user.SubscriptionTier)
}

// ── UpgradeSubscription ──────────────────────────────────────────────────────

func TestSessionService_Upgrade_RequiresAuthentication(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestSessionSvc(t, ctrl)

	err := svc.UpgradeSubscription(context.Background(), "pro", "card", "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSessionService_Upgrade_RequiresConnectivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, mockConn := newTestSessionSvc(t, ctrl)

	svc.token = "tok-123"
	mockConn.EXPECT().Online().Return(false)

	err := svc.UpgradeSubscription(context.Background(), "pro", "card", "")
	assert.ErrorIs(t, err, ErrOffline)
}

func TestSessionService_Upgrade_SuccessRefetchesUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, mockCache, mockConn := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	user := testUser("free")
	svc.token = "tok-123"
	svc.user = &user

	upgraded := testUser("pro")

	mockConn.EXPECT().Online().Return(true)
	gomock.InOrder(
		mockGateway.EXPECT().
			Upgrade(ctx, models.UpgradeRequest{Tier: "pro", PaymentMethod: "card", Reference: "ref-9"}).
			Return(nil),
		// the re-fetched record is authoritative, not the upgrade response
		mockGateway.EXPECT().FetchUser(ctx).Return(upgraded, nil),
	)
	mockCache.EXPECT().Set(ctx, store.KeyUser, gomock.Any()).Return(nil)

	require.NoError(t, svc.UpgradeSubscription(ctx, "pro", "card", "ref-9"))
	assert.Equal(t, "pro", svc.user.SubscriptionTier)
}

func TestSessionService_Upgrade_RejectionSurfacesDetail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, _, mockConn := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	user := testUser("free")
	svc.token = "tok-123"
	svc.user = &user

	mockConn.EXPECT().Online().Return(true)
	mockGateway.EXPECT().Upgrade(ctx, gomock.Any()).
		Return(fmt.Errorf("%w: Unknown tier", adapter.ErrBadRequest))

	err := svc.UpgradeSubscription(ctx, "platinum", "card", "")

	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "Unknown tier", rejection.Detail)
	assert.Equal(t, "free", svc.user.SubscriptionTier)
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestSessionService_Start_ReconcilesOnOnlineTransition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockGateway, mockCache, mockConn := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	updates := make(chan bool, 1)
	var recv <-chan bool = updates

	fetched := make(chan struct{})

	mockConn.EXPECT().Subscribe().Return(7, recv)
	mockConn.EXPECT().Unsubscribe(7)
	mockGateway.EXPECT().FetchTiers(gomock.Any()).DoAndReturn(
		func(context.Context) (models.TiersResponse, error) {
			close(fetched)
			return models.TiersResponse{}, nil
		},
	)
	mockCache.EXPECT().Set(gomock.Any(), store.KeyTiers, gomock.Any()).Return(nil)

	svc.Start(ctx)
	updates <- true
	<-fetched
	svc.Stop()
}

func TestSessionService_Stop_WithoutStartIsSafe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newTestSessionSvc(t, ctrl)

	svc.Stop()
	svc.Stop()
}
