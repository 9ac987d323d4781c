package jsonstore

import (
	"context"
	"net/url"

	"cabcab/pkg/models"
)

type vehicleRepo struct {
	store *Store
}

func (r *vehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	var created models.Vehicle
	if err := r.store.create(ctx, "vehicles", vehicle, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *vehicleRepo) GetByID(ctx context.Context, id string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.store.getOne(ctx, "vehicles", id, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepo) Update(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	var updated models.Vehicle
	if err := r.store.update(ctx, "vehicles", vehicle.ID, vehicle, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *vehicleRepo) Delete(ctx context.Context, id string) error {
	return r.store.delete(ctx, "vehicles", id)
}

func (r *vehicleRepo) GetByDriver(ctx context.Context, driverID string) ([]*models.Vehicle, error) {
	params := url.Values{}
	params.Set("driver_id", driverID)

	var vehicles []*models.Vehicle
	if err := r.store.query(ctx, "vehicles", params, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepo) GetByPlate(ctx context.Context, plate string) ([]*models.Vehicle, error) {
	params := url.Values{}
	params.Set("license_plate", plate)

	var vehicles []*models.Vehicle
	if err := r.store.query(ctx, "vehicles", params, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepo) GetAll(ctx context.Context) ([]*models.Vehicle, error) {
	var vehicles []*models.Vehicle
	if err := r.store.list(ctx, "vehicles", &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}
