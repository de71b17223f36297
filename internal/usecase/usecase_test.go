package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go-portfolio-backend/internal/repository"
	"go-portfolio-backend/pkg/apperror"
	"go-portfolio-backend/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStore is a repository.Store driven by testify expectations
type MockStore struct {
	mock.Mock
}

var _ repository.Store = (*MockStore)(nil)

func (m *MockStore) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	args := m.Called(ctx, collection, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, collection, id string, data json.RawMessage, merge bool) error {
	return m.Called(ctx, collection, id, data, merge).Error(0)
}

func (m *MockStore) List(ctx context.Context, collection string) ([]repository.Document, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Document), args.Error(1)
}

func (m *MockStore) ReplaceCollection(ctx context.Context, collection string, docs []repository.Document) error {
	return m.Called(ctx, collection, docs).Error(0)
}

func (m *MockStore) Watch(ctx context.Context, collection string) (<-chan struct{}, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan struct{}), args.Error(1)
}

func (m *MockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockStore) Close() error {
	return m.Called().Error(0)
}

// MockMailer records contact emails
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) IsConfigured() bool {
	return m.Called().Bool(0)
}

func (m *MockMailer) SendContactEmail(data email.ContactEmailData) error {
	return m.Called(data).Error(0)
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func requireAppError(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected *apperror.AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

var errBoom = errors.New("boom")

