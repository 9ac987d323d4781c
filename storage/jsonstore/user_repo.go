package jsonstore

import (
	"context"
	"net/url"

	"cabcab/pkg/models"
)

type userRepo struct {
	store *Store
}

func (r *userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	var created models.User
	if err := r.store.create(ctx, "users", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.store.getOne(ctx, "users", id, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns nil, nil when no user has the email.
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	params := url.Values{}
	params.Set("email", email)

	var users []*models.User
	if err := r.store.query(ctx, "users", params, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return users[0], nil
}

func (r *userRepo) Update(ctx context.Context, user *models.User) (*models.User, error) {
	var updated models.User
	if err := r.store.update(ctx, "users", user.ID, user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *userRepo) ListByType(ctx context.Context, userType models.UserType) ([]*models.User, error) {
	params := url.Values{}
	params.Set("user_type", string(userType))

	var users []*models.User
	if err := r.store.query(ctx, "users", params, &users); err != nil {
		return nil, err
	}
	return users, nil
}
