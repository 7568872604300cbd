package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "user-directory-service/internal/domain/directory"
)

// DirectoryRepoPG implements the directory Repository interface using
// GORM. Production runs it against PostgreSQL; tests against an
// in-memory SQLite database.
type DirectoryRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewDirectoryRepoPG creates a new instance of DirectoryRepoPG.
func NewDirectoryRepoPG(db *gorm.DB, log *zap.Logger) *DirectoryRepoPG {
	return &DirectoryRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	Counter      int64  `gorm:"primaryKey;autoIncrement"` // Insertion ordinal, the descending sort key
	UserID       string `gorm:"not null;uniqueIndex;column:user_id"`
	FirstName    string
	LastName     string
	Username     string `gorm:"index"`
	PhoneNumber  string
	Country      string
	IsBan        bool
	IsRegistered bool
	Score        float64
	JoinDate     *int64
	ProfilePath  string
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (m UserSchema) toDomain() domain.UserRecord {
	return domain.UserRecord{
		Counter:      m.Counter,
		UserID:       m.UserID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Username:     m.Username,
		PhoneNumber:  m.PhoneNumber,
		Country:      m.Country,
		IsBan:        m.IsBan,
		IsRegistered: m.IsRegistered,
		Score:        m.Score,
		JoinDate:     m.JoinDate,
		ProfilePath:  m.ProfilePath,
	}
}

// applyCriteria translates non-empty criteria fields into WHERE
// clauses. Text fields match as substrings, the two flags exactly,
// mirroring the query parameters of the admin listing endpoint.
func applyCriteria(q *gorm.DB, c domain.FilterCriteria) *gorm.DB {
	if c.Name != "" {
		like := "%" + c.Name + "%"
		q = q.Where("first_name LIKE ? OR last_name LIKE ?", like, like)
	}
	if c.UserID != "" {
		q = q.Where("user_id LIKE ?", "%"+c.UserID+"%")
	}
	if c.Username != "" {
		q = q.Where("username LIKE ?", "%"+c.Username+"%")
	}
	if c.PhoneNumber != "" {
		q = q.Where("phone_number LIKE ?", "%"+c.PhoneNumber+"%")
	}
	if c.Country != "" {
		q = q.Where("country LIKE ?", "%"+c.Country+"%")
	}
	if c.IsBanned != "" {
		q = q.Where("is_ban = ?", c.IsBanned == domain.FlagTrue)
	}
	if c.IsRegistered != "" {
		q = q.Where("is_registered = ?", c.IsRegistered == domain.FlagTrue)
	}
	return q
}

// List retrieves one page of matching records, newest counter first.
func (r *DirectoryRepoPG) List(ctx context.Context, criteria domain.FilterCriteria, page, size int64) ([]domain.UserRecord, error) {
	var models []UserSchema
	q := applyCriteria(r.db.WithContext(ctx).Model(&UserSchema{}), criteria)
	err := q.Order("counter DESC").Offset(int((page - 1) * size)).Limit(int(size)).Find(&models).Error
	if err != nil {
		r.log.Error("failed to list users from db", zap.Int64("page", page), zap.Int64("size", size), zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]domain.UserRecord, len(models))
	for i, m := range models {
		users[i] = m.toDomain()
	}
	return users, nil
}

// Count returns the number of records matching the criteria.
func (r *DirectoryRepoPG) Count(ctx context.Context, criteria domain.FilterCriteria) (int64, error) {
	var total int64
	q := applyCriteria(r.db.WithContext(ctx).Model(&UserSchema{}), criteria)
	if err := q.Count(&total).Error; err != nil {
		r.log.Error("failed to count users in db", zap.Error(err))
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}

// GetByUserID retrieves a single record by its string identity.
// Returns nil without error when no record exists.
func (r *DirectoryRepoPG) GetByUserID(ctx context.Context, userID string) (*domain.UserRecord, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.String("user_id", userID))
			return nil, nil
		}
		r.log.Error("failed to get user from db", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u := model.toDomain()
	return &u, nil
}

// All retrieves the full roster, newest counter first.
func (r *DirectoryRepoPG) All(ctx context.Context) ([]domain.UserRecord, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("counter DESC").Find(&models).Error; err != nil {
		r.log.Error("failed to load full roster from db", zap.Error(err))
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	users := make([]domain.UserRecord, len(models))
	for i, m := range models {
		users[i] = m.toDomain()
	}
	return users, nil
}
