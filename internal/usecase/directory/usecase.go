package directory

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-directory-service/internal/domain/directory"
	apperrors "user-directory-service/pkg/errors"
	"user-directory-service/pkg/security"
)

// Page size bounds mirror what the admin screen requests.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Repository defines the interface for directory data access. It
// abstracts the data layer, allowing different implementations (plain
// database, cached) to be used interchangeably.
type Repository interface {
	// List returns one page of records matching the criteria, newest
	// counter first.
	List(ctx context.Context, criteria domain.FilterCriteria, page, size int64) ([]domain.UserRecord, error)
	// Count returns the total number of records matching the criteria.
	Count(ctx context.Context, criteria domain.FilterCriteria) (int64, error)
	// GetByUserID retrieves one record by its string identity.
	GetByUserID(ctx context.Context, userID string) (*domain.UserRecord, error)
	// All returns the full roster, newest counter first.
	All(ctx context.Context) ([]domain.UserRecord, error)
}

// Service implements the read-side business logic for the user
// directory screen.
type Service struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new directory Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log, validate: validator.New()}
}

// sanitizeCriteria validates every text criterion before it reaches a
// LIKE clause and normalizes the two flag criteria.
func sanitizeCriteria(c domain.FilterCriteria) (domain.FilterCriteria, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{"name", &c.Name},
		{"userId", &c.UserID},
		{"username", &c.Username},
		{"phoneNumber", &c.PhoneNumber},
		{"country", &c.Country},
	}
	for _, f := range fields {
		clean, err := security.ValidateFilterValue(*f.value)
		if err != nil {
			return c, apperrors.NewValidationError(f.name, err.Error())
		}
		*f.value = clean
	}

	for _, flag := range []struct {
		name  string
		value string
	}{
		{"isBanned", c.IsBanned},
		{"isRegistered", c.IsRegistered},
	} {
		switch flag.value {
		case "", domain.FlagTrue, domain.FlagFalse:
		default:
			return c, apperrors.NewValidationError(flag.name, `must be "true", "false" or empty`)
		}
	}

	return c, nil
}

// ListUsers retrieves one filtered, paginated directory page.
func (s *Service) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	if in.Page <= 0 {
		in.Page = 1
	}
	if in.Size <= 0 {
		in.Size = DefaultPageSize
	}
	if in.Size > MaxPageSize {
		in.Size = MaxPageSize
	}

	criteria, err := sanitizeCriteria(in.Criteria)
	if err != nil {
		s.log.Warn("rejected filter criteria", zap.Error(err))
		return nil, err
	}

	s.log.Info("listing users",
		zap.Int64("page", in.Page),
		zap.Int64("size", in.Size),
		zap.Bool("filtered", !criteria.IsEmpty()),
	)

	total, err := s.repo.Count(ctx, criteria)
	if err != nil {
		s.log.Error("failed to count users", zap.Error(err))
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	users, err := s.repo.List(ctx, criteria, in.Page, in.Size)
	if err != nil {
		s.log.Error("failed to list users", zap.Int64("page", in.Page), zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &ListUsersResponse{
		Users: users,
		Meta:  domain.NewMeta(total, in.Page, in.Size),
	}, nil
}

// GetUser retrieves a single record by its user id.
func (s *Service) GetUser(ctx context.Context, in GetUserRequest) (*domain.UserRecord, error) {
	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("invalid user id", zap.String("user_id", in.UserID), zap.Error(err))
		return nil, apperrors.NewValidationError("userId", "must be a numeric identifier")
	}

	u, err := s.repo.GetByUserID(ctx, in.UserID)
	if err != nil {
		s.log.Error("failed to get user", zap.String("user_id", in.UserID), zap.Error(err))
		return nil, err
	}
	if u == nil {
		return nil, apperrors.NewNotFoundError("user", "")
	}

	return u, nil
}

// Snapshot returns the full roster for clients that paginate and
// filter locally.
func (s *Service) Snapshot(ctx context.Context) (*SnapshotResponse, error) {
	users, err := s.repo.All(ctx)
	if err != nil {
		s.log.Error("failed to load roster snapshot", zap.Error(err))
		return nil, fmt.Errorf("failed to load roster snapshot: %w", err)
	}

	s.log.Debug("roster snapshot served", zap.Int("count", len(users)))
	return &SnapshotResponse{Users: users}, nil
}
