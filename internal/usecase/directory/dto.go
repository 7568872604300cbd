package directory

import domain "user-directory-service/internal/domain/directory"

// ListUsersRequest represents the request payload for one page of the
// admin user directory. All criteria fields are optional; empty means
// unconstrained.
type ListUsersRequest struct {
	Page     int64
	Size     int64
	Criteria domain.FilterCriteria
}

// ListUsersResponse represents the response payload for a directory page.
type ListUsersResponse struct {
	Users []domain.UserRecord
	Meta  domain.Meta
}

// GetUserRequest represents the request payload for a single record lookup.
type GetUserRequest struct {
	UserID string `validate:"required,numeric"`
}

// SnapshotResponse represents the full roster returned to clients that
// filter locally.
type SnapshotResponse struct {
	Users []domain.UserRecord
}
