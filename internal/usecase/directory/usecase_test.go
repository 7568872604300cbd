package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-directory-service/internal/domain/directory"
	apperrors "user-directory-service/pkg/errors"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, criteria domain.FilterCriteria, page, size int64) ([]domain.UserRecord, error) {
	args := m.Called(ctx, criteria, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserRecord), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context, criteria domain.FilterCriteria) (int64, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRecord), args.Error(1)
}

func (m *MockRepository) All(ctx context.Context) ([]domain.UserRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserRecord), args.Error(1)
}

func setupTestService(t *testing.T) (*Service, *MockRepository) {
	mockRepo := new(MockRepository)
	svc := New(mockRepo, zaptest.NewLogger(t))
	return svc, mockRepo
}

func TestListUsers_Success(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	criteria := domain.FilterCriteria{Country: "Iran"}
	records := []domain.UserRecord{
		{Counter: 2, UserID: "200", FirstName: "Ali", Country: "Iran"},
		{Counter: 1, UserID: "100", FirstName: "Reza", Country: "Iran"},
	}

	mockRepo.On("Count", ctx, criteria).Return(int64(45), nil)
	mockRepo.On("List", ctx, criteria, int64(1), int64(20)).Return(records, nil)

	resp, err := svc.ListUsers(ctx, ListUsersRequest{Page: 1, Size: 20, Criteria: criteria})

	require.NoError(t, err)
	assert.Equal(t, records, resp.Users)
	assert.Equal(t, domain.Meta{Total: 45, Page: 1, Size: 20, Pages: 3}, resp.Meta)

	mockRepo.AssertExpectations(t)
}

func TestListUsers_ClampsPageAndSize(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("Count", ctx, domain.FilterCriteria{}).Return(int64(0), nil)
	mockRepo.On("List", ctx, domain.FilterCriteria{}, int64(1), int64(DefaultPageSize)).
		Return([]domain.UserRecord{}, nil)

	resp, err := svc.ListUsers(ctx, ListUsersRequest{Page: -3, Size: 0})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Meta.Page)
	assert.Equal(t, int64(DefaultPageSize), resp.Meta.Size)

	mockRepo.AssertExpectations(t)
}

func TestListUsers_SizeCappedAtMax(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("Count", ctx, domain.FilterCriteria{}).Return(int64(500), nil)
	mockRepo.On("List", ctx, domain.FilterCriteria{}, int64(1), int64(MaxPageSize)).
		Return([]domain.UserRecord{}, nil)

	resp, err := svc.ListUsers(ctx, ListUsersRequest{Page: 1, Size: 1000})

	require.NoError(t, err)
	assert.Equal(t, int64(MaxPageSize), resp.Meta.Size)
}

func TestListUsers_RejectsInjectionInCriteria(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.ListUsers(context.Background(), ListUsersRequest{
		Page:     1,
		Size:     20,
		Criteria: domain.FilterCriteria{Name: "ali UNION SELECT * FROM users"},
	})

	require.Error(t, err)
	var vErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestListUsers_RejectsBadFlagValue(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.ListUsers(context.Background(), ListUsersRequest{
		Page:     1,
		Size:     20,
		Criteria: domain.FilterCriteria{IsBanned: "banned"},
	})

	require.Error(t, err)
	var vErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestListUsers_RepositoryError(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("Count", ctx, domain.FilterCriteria{}).Return(int64(0), errors.New("db down"))

	_, err := svc.ListUsers(ctx, ListUsersRequest{Page: 1, Size: 20})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count users")
}

func TestGetUser_Success(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	record := &domain.UserRecord{UserID: "100200300", FirstName: "Ali"}
	mockRepo.On("GetByUserID", ctx, "100200300").Return(record, nil)

	got, err := svc.GetUser(ctx, GetUserRequest{UserID: "100200300"})

	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestGetUser_InvalidID(t *testing.T) {
	svc, _ := setupTestService(t)

	_, err := svc.GetUser(context.Background(), GetUserRequest{UserID: "not-numeric"})

	require.Error(t, err)
	var vErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestGetUser_NotFound(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	mockRepo.On("GetByUserID", ctx, "42").Return(nil, nil)

	_, err := svc.GetUser(ctx, GetUserRequest{UserID: "42"})

	require.Error(t, err)
	var nfErr *apperrors.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestSnapshot_Success(t *testing.T) {
	svc, mockRepo := setupTestService(t)
	ctx := context.Background()

	records := []domain.UserRecord{{UserID: "1"}, {UserID: "2"}}
	mockRepo.On("All", ctx).Return(records, nil)

	resp, err := svc.Snapshot(ctx)

	require.NoError(t, err)
	assert.Equal(t, records, resp.Users)
}
