package jsonstore

import (
	"context"
	"net/url"

	"cabcab/pkg/models"
)

type rideRepo struct {
	store *Store
}

func (r *rideRepo) Create(ctx context.Context, ride *models.Ride) (*models.Ride, error) {
	var created models.Ride
	if err := r.store.create(ctx, "rides", ride, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *rideRepo) GetByID(ctx context.Context, id string) (*models.Ride, error) {
	var ride models.Ride
	if err := r.store.getOne(ctx, "rides", id, &ride); err != nil {
		return nil, err
	}
	return &ride, nil
}

func (r *rideRepo) Update(ctx context.Context, ride *models.Ride) (*models.Ride, error) {
	var updated models.Ride
	if err := r.store.update(ctx, "rides", ride.ID, ride, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *rideRepo) GetByStatus(ctx context.Context, status models.RideStatus) ([]*models.Ride, error) {
	return r.queryRides(ctx, url.Values{"status": {string(status)}})
}

func (r *rideRepo) GetByPassenger(ctx context.Context, userID string) ([]*models.Ride, error) {
	return r.queryRides(ctx, url.Values{"user_id": {userID}})
}

func (r *rideRepo) GetByDriver(ctx context.Context, driverID string) ([]*models.Ride, error) {
	return r.queryRides(ctx, url.Values{"driver_id": {driverID}})
}

func (r *rideRepo) queryRides(ctx context.Context, params url.Values) ([]*models.Ride, error) {
	var rides []*models.Ride
	if err := r.store.query(ctx, "rides", params, &rides); err != nil {
		return nil, err
	}
	return rides, nil
}
