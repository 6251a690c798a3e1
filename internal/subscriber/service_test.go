package subscriber_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jpmhone/folio/internal/subscriber"
	"github.com/jpmhone/folio/pkg/unsubtoken"
	"github.com/jpmhone/folio/pkg/validator"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newSigner(t *testing.T, now time.Time) *unsubtoken.Signer {
	t.Helper()
	s, err := unsubtoken.New(testSecret, unsubtoken.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	return s
}

func newService(t *testing.T, cfg subscriber.Config, store subscriber.Store) (*subscriber.Service, *unsubtoken.Signer) {
	t.Helper()
	signer := newSigner(t, fixedNow)
	svc := subscriber.NewService(cfg, store, signer, subscriber.WithClock(func() time.Time { return fixedNow }))
	return svc, signer
}

func activeSubscriber() subscriber.Subscriber {
	return subscriber.Subscriber{
		ID:           uuid.MustParse("0b8f3c2e-6a0d-4f57-9d5a-3f1c2b7e9a10"),
		Email:        "a@example.com",
		Name:         "Ada",
		Active:       true,
		SubscribedAt: fixedNow.Add(-48 * time.Hour),
	}
}

func TestService_Unsubscribe(t *testing.T) {
	t.Parallel()

	t.Run("deactivates active subscriber", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		svc, signer := newService(t, subscriber.Config{}, store)
		sub := activeSubscriber()

		tok, err := signer.Issue(sub.ID.String(), sub.Email)
		require.NoError(t, err)

		deactivated := sub
		deactivated.Active = false
		deactivated.UnsubscribedAt = &fixedNow

		store.On("FindByIDAndEmail", mock.Anything, sub.ID, sub.Email).Return(sub, nil).Once()
		store.On("Deactivate", mock.Anything, sub.ID, subscriber.Deactivation{At: fixedNow}).Return(deactivated, nil).Once()

		got, err := svc.Unsubscribe(context.Background(), tok)
		require.NoError(t, err)
		assert.False(t, got.Active)
		assert.Equal(t, "a@example.com", got.Email)
		store.AssertExpectations(t)
	})

	t.Run("already inactive is a no-op", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		svc, signer := newService(t, subscriber.Config{}, store)
		sub := activeSubscriber()
		sub.Active = false

		tok, err := signer.Issue(sub.ID.String(), sub.Email)
		require.NoError(t, err)

		store.On("FindByIDAndEmail", mock.Anything, sub.ID, sub.Email).Return(sub, nil).Twice()

		for range 2 {
			got, err := svc.Unsubscribe(context.Background(), tok)
			require.NoError(t, err)
			assert.Equal(t, sub, got)
		}
		store.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything, mock.Anything)
		store.AssertExpectations(t)
	})

	t.Run("anonymizes when configured", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		svc, signer := newService(t, subscriber.Config{AnonymizeOnUnsubscribe: true}, store)
		sub := activeSubscriber()

		tok, err := signer.Issue(sub.ID.String(), sub.Email)
		require.NoError(t, err)

		var captured subscriber.Deactivation
		store.On("FindByIDAndEmail", mock.Anything, sub.ID, sub.Email).Return(sub, nil).Once()
		store.On("Deactivate", mock.Anything, sub.ID, mock.AnythingOfType("subscriber.Deactivation")).
			Run(func(args mock.Arguments) { captured = args.Get(2).(subscriber.Deactivation) }).
			Return(subscriber.Subscriber{ID: sub.ID, Email: "unsubscribed_1@deleted.local", Name: "Unsubscribed User"}, nil).
			Once()

		got, err := svc.Unsubscribe(context.Background(), tok)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(captured.Email, "unsubscribed_"))
		assert.True(t, strings.HasSuffix(captured.Email, "@deleted.local"))
		assert.Equal(t, "Unsubscribed User", captured.Name)
		assert.Equal(t, fixedNow, captured.At)
		assert.Equal(t, sub.Email, got.Email)
		store.AssertExpectations(t)
	})

	t.Run("invalid token never reaches store", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		svc, _ := newService(t, subscriber.Config{}, store)

		for _, tok := range []string{"", "abc", "a.b", "a.b.c", "a.b.c.d"} {
			_, err := svc.Unsubscribe(context.Background(), tok)
			require.ErrorIs(t, err, subscriber.ErrInvalidLink, tok)
			assert.Equal(t, subscriber.MessageInvalidLink, subscriber.UserMessage(err))
		}
		store.AssertNotCalled(t, "FindByIDAndEmail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		svc, _ := newService(t, subscriber.Config{}, store)
		sub := activeSubscriber()

		old := newSigner(t, fixedNow.Add(-31*24*time.Hour))
		tok, err := old.Issue(sub.ID.String(), sub.Email)
		require.NoError(t, err)

		_, err = svc.Unsubscribe(context.Background(), tok)
		require.ErrorIs(t, err, subscriber.ErrInvalidLink)
		require.ErrorIs(t, err, unsubtoken.ErrExpired)
	})

	t.Run("unknown subscriber", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		svc, signer := newService(t, subscriber.Config{}, store)
		sub := activeSubscriber()

		tok, err := signer.Issue(sub.ID.String(), sub.Email)
		require.NoError(t, err)

		store.On("FindByIDAndEmail", mock.Anything, sub.ID, sub.Email).
			Return(subscriber.Subscriber{}, subscriber.ErrNotFound).Once()
		store.On("FindByID", mock.Anything, sub.ID).
			Return(subscriber.Subscriber{}, subscriber.ErrNotFound).Once()

		_, err = svc.Unsubscribe(context.Background(), tok)
		require.ErrorIs(t, err, subscriber.ErrSubscriberNotFound)
		assert.Equal(t, subscriber.MessageNotFound, subscriber.UserMessage(err))
	})

	t.Run("address changed without anonymization", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		svc, signer := newService(t, subscriber.Config{}, store)
		sub := activeSubscriber()

		tok, err := signer.Issue(sub.ID.String(), "old@example.com")
		require.NoError(t, err)

		store.On("FindByIDAndEmail", mock.Anything, sub.ID, "old@example.com").
			Return(subscriber.Subscriber{}, subscriber.ErrNotFound).Once()
		store.On("FindByID", mock.Anything, sub.ID).Return(sub, nil).Once()

		_, err = svc.Unsubscribe(context.Background(), tok)
		require.ErrorIs(t, err, subscriber.ErrSubscriberNotFound)
		store.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non uuid subject", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		svc, signer := newService(t, subscriber.Config{}, store)

		tok, err := signer.Issue("sub_123", "a@example.com")
		require.NoError(t, err)

		_, err = svc.Unsubscribe(context.Background(), tok)
		require.ErrorIs(t, err, subscriber.ErrSubscriberNotFound)
		store.AssertNotCalled(t, "FindByIDAndEmail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		svc, signer := newService(t, subscriber.Config{}, store)
		sub := activeSubscriber()

		tok, err := signer.Issue(sub.ID.String(), sub.Email)
		require.NoError(t, err)

		dbErr := errors.New("connection refused")
		store.On("FindByIDAndEmail", mock.Anything, sub.ID, sub.Email).Return(sub, nil).Once()
		store.On("Deactivate", mock.Anything, sub.ID, mock.Anything).Return(subscriber.Subscriber{}, dbErr).Once()

		_, err = svc.Unsubscribe(context.Background(), tok)
		require.ErrorIs(t, err, subscriber.ErrUnavailable)
		require.ErrorIs(t, err, dbErr)
		assert.Equal(t, subscriber.MessageUnavailable, subscriber.UserMessage(err))
	})
}

func TestService_Unsubscribe_Idempotent(t *testing.T) {
	t.Parallel()

	for _, anonymize := range []bool{false, true} {
		t.Run(fmt.Sprintf("anonymize=%t", anonymize), func(t *testing.T) {
			t.Parallel()

			sub := activeSubscriber()
			store := newMemStore(sub)
			svc, signer := newService(t, subscriber.Config{AnonymizeOnUnsubscribe: anonymize}, store)

			tok, err := signer.Issue(sub.ID.String(), sub.Email)
			require.NoError(t, err)

			first, err := svc.Unsubscribe(context.Background(), tok)
			require.NoError(t, err)
			assert.False(t, first.Active)
			assert.Equal(t, sub.Email, first.Email)

			stored := store.get(sub.ID)
			assert.False(t, stored.Active)
			assert.Equal(t, anonymize, stored.Email != sub.Email, "stored address anonymized")

			second, err := svc.Unsubscribe(context.Background(), tok)
			require.NoError(t, err)
			assert.False(t, second.Active)
			assert.Equal(t, sub.Email, second.Email)
			assert.Equal(t, stored, store.get(sub.ID), "second click leaves the record untouched")

			preview, err := svc.Preview(context.Background(), tok)
			require.NoError(t, err)
			assert.False(t, preview.Active)
		})
	}
}

func TestService_Preview(t *testing.T) {
	t.Parallel()

	store := &MockStore{}
	svc, signer := newService(t, subscriber.Config{}, store)
	sub := activeSubscriber()

	tok, err := signer.Issue(sub.ID.String(), sub.Email)
	require.NoError(t, err)

	store.On("FindByIDAndEmail", mock.Anything, sub.ID, sub.Email).Return(sub, nil).Once()

	got, err := svc.Preview(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, sub, got)
	store.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Subscribe(t *testing.T) {
	t.Parallel()

	t.Run("creates normalized record", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		svc, _ := newService(t, subscriber.Config{}, store)

		store.On("Create", mock.Anything, mock.MatchedBy(func(s subscriber.Subscriber) bool {
			return s.Email == "new@example.com" && s.Name == "New" && s.Active && s.SubscribedAt.Equal(fixedNow)
		})).Return(subscriber.Subscriber{Email: "new@example.com", Active: true}, nil).Once()

		got, err := svc.Subscribe(context.Background(), "  NEW@Example.com ", " New ")
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", got.Email)
		store.AssertExpectations(t)
	})

	t.Run("rejects invalid address", func(t *testing.T) {
		t.Parallel()

		svc, _ := newService(t, subscriber.Config{}, &MockStore{})
		_, err := svc.Subscribe(context.Background(), "not-an-email", "")
		require.ErrorIs(t, err, subscriber.ErrInvalidEmail)
		verrs := validator.ExtractValidationErrors(err)
		assert.Equal(t, []string{"email"}, verrs.Fields())

		_, err = svc.Subscribe(context.Background(), "a@example.com", strings.Repeat("n", 101))
		assert.True(t, validator.ExtractValidationErrors(err).Has("name"))
	})

	t.Run("active duplicate", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		svc, _ := newService(t, subscriber.Config{}, store)
		sub := activeSubscriber()

		store.On("Create", mock.Anything, mock.Anything).Return(subscriber.Subscriber{}, subscriber.ErrDuplicateEmail).Once()
		store.On("FindByEmail", mock.Anything, sub.Email).Return(sub, nil).Once()

		_, err := svc.Subscribe(context.Background(), sub.Email, "")
		require.ErrorIs(t, err, subscriber.ErrAlreadySubscribed)
	})

	t.Run("reactivates inactive duplicate", func(t *testing.T) {
		t.Parallel()

		store := &MockStore{}
		svc, _ := newService(t, subscriber.Config{}, store)
		sub := activeSubscriber()
		sub.Active = false

		reactivated := sub
		reactivated.Active = true

		store.On("Create", mock.Anything, mock.Anything).Return(subscriber.Subscriber{}, subscriber.ErrDuplicateEmail).Once()
		store.On("FindByEmail", mock.Anything, sub.Email).Return(sub, nil).Once()
		store.On("Reactivate", mock.Anything, sub.ID, sub.Name, fixedNow).Return(reactivated, nil).Once()

		got, err := svc.Subscribe(context.Background(), sub.Email, "")
		require.NoError(t, err)
		assert.True(t, got.Active)
		store.AssertExpectations(t)
	})
}

func TestService_ListActive(t *testing.T) {
	t.Parallel()

	store := &MockStore{}
	svc, _ := newService(t, subscriber.Config{}, store)

	store.On("ListActive", mock.Anything).Return(nil, errors.New("boom")).Once()
	_, err := svc.ListActive(context.Background())
	require.ErrorIs(t, err, subscriber.ErrUnavailable)
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	assert.Empty(t, subscriber.UserMessage(nil))
	assert.Equal(t, subscriber.MessageUnavailable, subscriber.UserMessage(errors.New("x")))
}
