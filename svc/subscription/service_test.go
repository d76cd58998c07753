package subscription_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storykit/pkg/feature"
	"github.com/dmitrymomot/storykit/pkg/tier"
	"github.com/dmitrymomot/storykit/svc/subscription"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, userID uuid.UUID) (*subscription.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *mockStore) Insert(ctx context.Context, sub *subscription.Subscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *mockStore) SetTier(ctx context.Context, userID uuid.UUID, t tier.Tier, status subscription.Status) error {
	return m.Called(ctx, userID, t, status).Error(0)
}

func (m *mockStore) GetDevBypass(ctx context.Context, userID uuid.UUID) (*subscription.DevBypass, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.DevBypass), args.Error(1)
}

func (m *mockStore) UpsertDevBypass(ctx context.Context, b *subscription.DevBypass) error {
	return m.Called(ctx, b).Error(0)
}

var errDown = errors.New("connection refused")

func TestGetSubscription(t *testing.T) {
	t.Parallel()

	t.Run("existing row", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		store := &mockStore{}
		store.On("Get", mock.Anything, userID).Return(&subscription.Subscription{UserID: userID, Tier: tier.Creator, Status: subscription.StatusActive}, nil)

		sub := subscription.NewService(store).GetSubscription(context.Background(), userID)
		assert.Equal(t, tier.Creator, sub.Tier)
		store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("unknown stored tier is free", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		store := &mockStore{}
		store.On("Get", mock.Anything, userID).Return(&subscription.Subscription{UserID: userID, Tier: "platinum"}, nil)

		sub := subscription.NewService(store).GetSubscription(context.Background(), userID)
		assert.Equal(t, tier.Free, sub.Tier)
	})

	t.Run("missing row is created as free active", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		store := &mockStore{}
		store.On("Get", mock.Anything, userID).Return(nil, subscription.ErrNotFound).Once()
		store.On("Insert", mock.Anything, mock.MatchedBy(func(s *subscription.Subscription) bool {
			return s.UserID == userID && s.Tier == tier.Free && s.Status == subscription.StatusActive
		})).Return(nil).Once()

		sub := subscription.NewService(store).GetSubscription(context.Background(), userID)
		assert.Equal(t, tier.Free, sub.Tier)
		assert.Equal(t, subscription.StatusActive, sub.Status)
		store.AssertExpectations(t)
	})

	t.Run("lost insert race re-reads", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		store := &mockStore{}
		store.On("Get", mock.Anything, userID).Return(nil, subscription.ErrNotFound).Once()
		store.On("Insert", mock.Anything, mock.Anything).Return(subscription.ErrAlreadyExists).Once()
		store.On("Get", mock.Anything, userID).Return(&subscription.Subscription{UserID: userID, Tier: tier.Pro, Status: subscription.StatusActive}, nil).Once()

		sub := subscription.NewService(store).GetSubscription(context.Background(), userID)
		assert.Equal(t, tier.Pro, sub.Tier)
		store.AssertExpectations(t)
	})

	t.Run("storage failure falls back to free", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		store := &mockStore{}
		store.On("Get", mock.Anything, userID).Return(nil, errDown)

		sub := subscription.NewService(store).GetSubscription(context.Background(), userID)
		require.NotNil(t, sub)
		assert.Equal(t, userID, sub.UserID)
		assert.Equal(t, tier.Free, sub.Tier)
		assert.Equal(t, subscription.StatusActive, sub.Status)
		store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("insert failure falls back to free", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		store := &mockStore{}
		store.On("Get", mock.Anything, userID).Return(nil, subscription.ErrNotFound)
		store.On("Insert", mock.Anything, mock.Anything).Return(errDown)

		sub := subscription.NewService(store).GetSubscription(context.Background(), userID)
		assert.Equal(t, tier.Free, sub.Tier)
	})
}

func TestGetSubscription_CreatesRowOnce(t *testing.T) {
	t.Parallel()

	store := subscription.NewMemoryStore()
	svc := subscription.NewService(store)
	userID := uuid.New()

	first := svc.GetSubscription(context.Background(), userID)
	second := svc.GetSubscription(context.Background(), userID)

	assert.Equal(t, tier.Free, first.Tier)
	assert.Equal(t, first.ID, second.ID)

	stored, err := store.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
}

func TestHasDevBypass(t *testing.T) {
	t.Parallel()

	t.Run("stored row", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		store := &mockStore{}
		store.On("GetDevBypass", mock.Anything, userID).Return(&subscription.DevBypass{UserID: userID, Enabled: true}, nil)
		assert.True(t, subscription.NewService(store).HasDevBypass(context.Background(), userID))
	})

	t.Run("disabled row", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		store := &mockStore{}
		store.On("GetDevBypass", mock.Anything, userID).Return(&subscription.DevBypass{UserID: userID, Enabled: false}, nil)
		assert.False(t, subscription.NewService(store).HasDevBypass(context.Background(), userID))
	})

	t.Run("absent row", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		store := &mockStore{}
		store.On("GetDevBypass", mock.Anything, userID).Return(nil, subscription.ErrNotFound)
		assert.False(t, subscription.NewService(store).HasDevBypass(context.Background(), userID))
	})

	t.Run("storage failure fails closed", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		store := &mockStore{}
		store.On("GetDevBypass", mock.Anything, userID).Return(nil, errDown)
		assert.False(t, subscription.NewService(store).HasDevBypass(context.Background(), userID))
	})

	t.Run("configured allowlist skips store", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		flags, err := feature.NewMemoryProvider(&feature.Flag{
			Name:     subscription.BypassFlag,
			Enabled:  true,
			Strategy: feature.NewAllowListStrategy([]string{userID.String()}),
		})
		require.NoError(t, err)

		store := &mockStore{}
		svc := subscription.NewService(store, subscription.WithBypassFlags(flags))
		assert.True(t, svc.HasDevBypass(context.Background(), userID))
		store.AssertNotCalled(t, "GetDevBypass", mock.Anything, mock.Anything)
	})

	t.Run("user outside allowlist falls through to store", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		flags, err := feature.NewMemoryProvider(&feature.Flag{
			Name:     subscription.BypassFlag,
			Enabled:  true,
			Strategy: feature.NewAllowListStrategy([]string{uuid.NewString()}),
		})
		require.NoError(t, err)

		store := &mockStore{}
		store.On("GetDevBypass", mock.Anything, userID).Return(nil, subscription.ErrNotFound)
		svc := subscription.NewService(store, subscription.WithBypassFlags(flags))
		assert.False(t, svc.HasDevBypass(context.Background(), userID))
		store.AssertExpectations(t)
	})
}

func TestSetDevBypass(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		svc := subscription.NewService(subscription.NewMemoryStore())
		userID := uuid.New()

		require.NoError(t, svc.SetDevBypass(context.Background(), userID, true, " qa account "))
		assert.True(t, svc.HasDevBypass(context.Background(), userID))

		require.NoError(t, svc.SetDevBypass(context.Background(), userID, false, ""))
		assert.False(t, svc.HasDevBypass(context.Background(), userID))
	})

	t.Run("nil user", func(t *testing.T) {
		t.Parallel()
		svc := subscription.NewService(subscription.NewMemoryStore())
		assert.ErrorIs(t, svc.SetDevBypass(context.Background(), uuid.Nil, true, ""), subscription.ErrInvalidUserID)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		store := &mockStore{}
		store.On("UpsertDevBypass", mock.Anything, mock.Anything).Return(errDown)
		err := subscription.NewService(store).SetDevBypass(context.Background(), uuid.New(), true, "")
		assert.ErrorIs(t, err, subscription.ErrStoreFailure)
		assert.ErrorIs(t, err, errDown)
	})
}

func TestSetTier(t *testing.T) {
	t.Parallel()

	store := subscription.NewMemoryStore()
	svc := subscription.NewService(store)
	userID := uuid.New()

	require.NoError(t, svc.SetTier(context.Background(), userID, tier.Creator, subscription.StatusActive))
	assert.Equal(t, tier.Creator, svc.GetSubscription(context.Background(), userID).Tier)

	require.NoError(t, svc.SetTier(context.Background(), userID, "gold", subscription.StatusActive))
	assert.Equal(t, tier.Free, svc.GetSubscription(context.Background(), userID).Tier)

	assert.ErrorIs(t, svc.SetTier(context.Background(), uuid.Nil, tier.Pro, subscription.StatusActive), subscription.ErrInvalidUserID)
}

// hangStore blocks every call until the caller's context ends.
type hangStore struct{}

func (hangStore) Get(ctx context.Context, _ uuid.UUID) (*subscription.Subscription, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (hangStore) Insert(ctx context.Context, _ *subscription.Subscription) error {
	<-ctx.Done()
	return ctx.Err()
}

func (hangStore) SetTier(ctx context.Context, _ uuid.UUID, _ tier.Tier, _ subscription.Status) error {
	<-ctx.Done()
	return ctx.Err()
}

func (hangStore) GetDevBypass(ctx context.Context, _ uuid.UUID) (*subscription.DevBypass, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (hangStore) UpsertDevBypass(ctx context.Context, _ *subscription.DevBypass) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestService_StoreTimeout(t *testing.T) {
	t.Parallel()

	svc := subscription.NewService(hangStore{}, subscription.WithTimeout(50*time.Millisecond))
	userID := uuid.New()

	t.Run("subscription falls back to free active", func(t *testing.T) {
		t.Parallel()
		start := time.Now()
		sub := svc.GetSubscription(context.Background(), userID)
		assert.Less(t, time.Since(start), time.Second)
		assert.Equal(t, tier.Free, sub.Tier)
		assert.Equal(t, subscription.StatusActive, sub.Status)
		assert.Equal(t, userID, sub.UserID)
	})

	t.Run("bypass reads as disabled", func(t *testing.T) {
		t.Parallel()
		start := time.Now()
		assert.False(t, svc.HasDevBypass(context.Background(), userID))
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("writes report a store failure", func(t *testing.T) {
		t.Parallel()
		start := time.Now()
		err := svc.SetDevBypass(context.Background(), userID, true, "qa")
		assert.ErrorIs(t, err, subscription.ErrStoreFailure)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), time.Second)
	})
}
