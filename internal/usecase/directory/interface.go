package directory

import (
	"context"

	domain "user-directory-service/internal/domain/directory"
)

// Usecase defines the interface for directory read operations.
type Usecase interface {
	ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error)
	GetUser(ctx context.Context, in GetUserRequest) (*domain.UserRecord, error)
	Snapshot(ctx context.Context) (*SnapshotResponse, error)
}
