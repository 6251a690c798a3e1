package web_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jpmhone/folio/internal/comment"
	"github.com/jpmhone/folio/internal/like"
	"github.com/jpmhone/folio/internal/newsletter"
	"github.com/jpmhone/folio/internal/subscriber"
)

type MockSubscribers struct{ mock.Mock }

func (m *MockSubscribers) Preview(ctx context.Context, token string) (subscriber.Subscriber, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(subscriber.Subscriber), args.Error(1)
}

func (m *MockSubscribers) Unsubscribe(ctx context.Context, token string) (subscriber.Subscriber, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(subscriber.Subscriber), args.Error(1)
}

func (m *MockSubscribers) Subscribe(ctx context.Context, email, name string) (subscriber.Subscriber, error) {
	args := m.Called(ctx, email, name)
	return args.Get(0).(subscriber.Subscriber), args.Error(1)
}

type MockNewsletters struct{ mock.Mock }

func (m *MockNewsletters) Send(ctx context.Context, issue newsletter.Issue) (newsletter.Report, error) {
	args := m.Called(ctx, issue)
	return args.Get(0).(newsletter.Report), args.Error(1)
}

type MockComments struct{ mock.Mock }

func (m *MockComments) Thread(ctx context.Context, postID uuid.UUID) ([]*comment.Thread, error) {
	args := m.Called(ctx, postID)
	threads, _ := args.Get(0).([]*comment.Thread)
	return threads, args.Error(1)
}

func (m *MockComments) Post(ctx context.Context, in comment.NewComment) (comment.Comment, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(comment.Comment), args.Error(1)
}

func (m *MockComments) React(ctx context.Context, r comment.Reaction) (comment.Counts, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(comment.Counts), args.Error(1)
}

type MockLikes struct{ mock.Mock }

func (m *MockLikes) Toggle(ctx context.Context, postID uuid.UUID, ip string) (like.Status, error) {
	args := m.Called(ctx, postID, ip)
	return args.Get(0).(like.Status), args.Error(1)
}

func (m *MockLikes) Status(ctx context.Context, postID uuid.UUID, ip string) (like.Status, error) {
	args := m.Called(ctx, postID, ip)
	return args.Get(0).(like.Status), args.Error(1)
}
