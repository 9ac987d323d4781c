package jsonstore

import (
	"context"

	"cabcab/pkg/models"
)

type locationRepo struct {
	store *Store
}

func (r *locationRepo) Create(ctx context.Context, loc *models.Location) (*models.Location, error) {
	var created models.Location
	if err := r.store.create(ctx, "locations", loc, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *locationRepo) GetByID(ctx context.Context, id string) (*models.Location, error) {
	var loc models.Location
	if err := r.store.getOne(ctx, "locations", id, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}
