package jsonstore

import (
	"context"
	"net/url"

	"cabcab/pkg/models"
)

type paymentRepo struct {
	store *Store
}

func (r *paymentRepo) Create(ctx context.Context, pm *models.PaymentMethod) (*models.PaymentMethod, error) {
	var created models.PaymentMethod
	if err := r.store.create(ctx, "payments", pm, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *paymentRepo) GetByID(ctx context.Context, id string) (*models.PaymentMethod, error) {
	var pm models.PaymentMethod
	if err := r.store.getOne(ctx, "payments", id, &pm); err != nil {
		return nil, err
	}
	return &pm, nil
}

func (r *paymentRepo) Update(ctx context.Context, pm *models.PaymentMethod) (*models.PaymentMethod, error) {
	var updated models.PaymentMethod
	if err := r.store.update(ctx, "payments", pm.ID, pm, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *paymentRepo) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, "payments", id)
}

func (r *paymentRepo) GetByUser(ctx context.Context, userID string) ([]*models.PaymentMethod, error) {
	params := url.Values{}
	params.Set("user_id", userID)

	var methods []*models.PaymentMethod
	if err := r.store.query(ctx, "payments", params, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}
