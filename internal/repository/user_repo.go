package repository

import (
	"context"
	"errors"

	"github.com/redonshkr/gov-content-hub/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository handles app user and role assignment data operations
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.AppUser, error)
	FindByEmail(ctx context.Context, email string) (*domain.AppUser, error)
	// UpsertByEmail creates the user on first sight, otherwise refreshes name and image
	UpsertByEmail(ctx context.Context, email, name, image string) (*domain.AppUser, error)
	Roles(ctx context.Context, userID string) ([]domain.Role, error)
	// RolesFor returns role assignments keyed by user id
	RolesFor(ctx context.Context, userIDs []string) (map[string][]domain.Role, error)
	// SetRoles replaces every role assignment of the user
	SetRoles(ctx context.Context, userID string, roles []domain.Role) error
	List(ctx context.Context, page, limit int) ([]*domain.AppUser, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.AppUser, error) {
	var user domain.AppUser
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.AppUser, error) {
	var user domain.AppUser
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpsertByEmail(ctx context.Context, email, name, image string) (*domain.AppUser, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if user == nil {
		user = &domain.AppUser{
			ID:    domain.NewID(),
			Email: email,
			Name:  name,
			Image: image,
		}
		// A concurrent first login may win the insert; fall through to the lookup.
		result := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
			Create(user)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return r.FindByEmail(ctx, email)
		}
		return user, nil
	}

	if (name != "" && name != user.Name) || (image != "" && image != user.Image) {
		updates := map[string]interface{}{}
		if name != "" {
			updates["name"] = name
			user.Name = name
		}
		if image != "" {
			updates["image"] = image
			user.Image = image
		}
		if err := r.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (r *userRepository) Roles(ctx context.Context, userID string) ([]domain.Role, error) {
	var roles []domain.Role
	err := r.db.WithContext(ctx).Model(&domain.UserRole{}).
		Where("user_id = ?", userID).
		Order("role ASC").
		Pluck("role", &roles).Error
	return roles, err
}

func (r *userRepository) RolesFor(ctx context.Context, userIDs []string) (map[string][]domain.Role, error) {
	result := make(map[string][]domain.Role, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var rows []domain.UserRole
	if err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("role ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.UserID] = append(result[row.UserID], row.Role)
	}
	return result, nil
}

func (r *userRepository) SetRoles(ctx context.Context, userID string, roles []domain.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&domain.UserRole{}).Error; err != nil {
			return err
		}
		if len(roles) == 0 {
			return nil
		}
		seen := make(map[domain.Role]bool, len(roles))
		rows := make([]domain.UserRole, 0, len(roles))
		for _, role := range roles {
			if seen[role] {
				continue
			}
			seen[role] = true
			rows = append(rows, domain.UserRole{UserID: userID, Role: role})
		}
		return tx.Create(&rows).Error
	})
}

func (r *userRepository) List(ctx context.Context, page, limit int) ([]*domain.AppUser, int64, error) {
	page, limit = normalizePage(page, limit)

	var total int64
	query := r.db.WithContext(ctx).Model(&domain.AppUser{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*domain.AppUser
	err := query.
		Order("email ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}
