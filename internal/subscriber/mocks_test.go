package subscriber_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jpmhone/folio/internal/subscriber"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) FindByIDAndEmail(ctx context.Context, id uuid.UUID, email string) (subscriber.Subscriber, error) {
	args := m.Called(ctx, id, email)
	return args.Get(0).(subscriber.Subscriber), args.Error(1)
}

func (m *MockStore) FindByID(ctx context.Context, id uuid.UUID) (subscriber.Subscriber, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(subscriber.Subscriber), args.Error(1)
}

func (m *MockStore) FindByEmail(ctx context.Context, email string) (subscriber.Subscriber, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(subscriber.Subscriber), args.Error(1)
}

func (m *MockStore) Create(ctx context.Context, s subscriber.Subscriber) (subscriber.Subscriber, error) {
	args := m.Called(ctx, s)
	return args.Get(0).(subscriber.Subscriber), args.Error(1)
}

func (m *MockStore) Reactivate(ctx context.Context, id uuid.UUID, name string, at time.Time) (subscriber.Subscriber, error) {
	args := m.Called(ctx, id, name, at)
	return args.Get(0).(subscriber.Subscriber), args.Error(1)
}

func (m *MockStore) Deactivate(ctx context.Context, id uuid.UUID, d subscriber.Deactivation) (subscriber.Subscriber, error) {
	args := m.Called(ctx, id, d)
	return args.Get(0).(subscriber.Subscriber), args.Error(1)
}

func (m *MockStore) ListActive(ctx context.Context) ([]subscriber.Subscriber, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subscriber.Subscriber), args.Error(1)
}

// memStore keeps subscribers in memory so tests can follow a record across
// several calls.
type memStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]subscriber.Subscriber
}

func newMemStore(subs ...subscriber.Subscriber) *memStore {
	m := &memStore{rows: make(map[uuid.UUID]subscriber.Subscriber)}
	for _, s := range subs {
		m.rows[s.ID] = s
	}
	return m
}

func (m *memStore) get(id uuid.UUID) subscriber.Subscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[id]
}

func (m *memStore) FindByIDAndEmail(_ context.Context, id uuid.UUID, email string) (subscriber.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.rows[id]; ok && s.Email == email {
		return s, nil
	}
	return subscriber.Subscriber{}, subscriber.ErrNotFound
}

func (m *memStore) FindByID(_ context.Context, id uuid.UUID) (subscriber.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.rows[id]; ok {
		return s, nil
	}
	return subscriber.Subscriber{}, subscriber.ErrNotFound
}

func (m *memStore) FindByEmail(_ context.Context, email string) (subscriber.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.rows {
		if s.Email == email {
			return s, nil
		}
	}
	return subscriber.Subscriber{}, subscriber.ErrNotFound
}

func (m *memStore) Create(_ context.Context, s subscriber.Subscriber) (subscriber.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Email == s.Email {
			return subscriber.Subscriber{}, subscriber.ErrDuplicateEmail
		}
	}
	m.rows[s.ID] = s
	return s, nil
}

func (m *memStore) Reactivate(_ context.Context, id uuid.UUID, name string, at time.Time) (subscriber.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return subscriber.Subscriber{}, subscriber.ErrNotFound
	}
	s.Active, s.Name, s.SubscribedAt, s.UnsubscribedAt = true, name, at, nil
	m.rows[id] = s
	return s, nil
}

func (m *memStore) Deactivate(_ context.Context, id uuid.UUID, d subscriber.Deactivation) (subscriber.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.rows[id]
	if !ok {
		return subscriber.Subscriber{}, subscriber.ErrNotFound
	}
	at := d.At
	s.Active, s.UnsubscribedAt = false, &at
	if d.Email != "" {
		s.Email = d.Email
	}
	if d.Name != "" {
		s.Name = d.Name
	}
	m.rows[id] = s
	return s, nil
}

func (m *memStore) ListActive(context.Context) ([]subscriber.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []subscriber.Subscriber
	for _, s := range m.rows {
		if s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}
