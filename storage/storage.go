package storage

import (
	"context"

	"cabcab/pkg/models"
)

type IStorage interface {
	User() IUserStorage
	Ride() IRideStorage
	Vehicle() IVehicleStorage
	Location() ILocationStorage
	Payment() IPaymentStorage
}

type IUserStorage interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	ListByType(ctx context.Context, userType models.UserType) ([]*models.User, error)
}

type IRideStorage interface {
	Create(ctx context.Context, ride *models.Ride) (*models.Ride, error)
	GetByID(ctx context.Context, id string) (*models.Ride, error)
	Update(ctx context.Context, ride *models.Ride) (*models.Ride, error)
	GetByStatus(ctx context.Context, status models.RideStatus) ([]*models.Ride, error)
	GetByPassenger(ctx context.Context, userID string) ([]*models.Ride, error)
	GetByDriver(ctx context.Context, driverID string) ([]*models.Ride, error)
}

type IVehicleStorage interface {
	Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
	Update(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	Delete(ctx context.Context, id string) error
	GetByDriver(ctx context.Context, driverID string) ([]*models.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) ([]*models.Vehicle, error)
	GetAll(ctx context.Context) ([]*models.Vehicle, error)
}

type ILocationStorage interface {
	Create(ctx context.Context, loc *models.Location) (*models.Location, error)
	GetByID(ctx context.Context, id string) (*models.Location, error)
}

type IPaymentStorage interface {
	Create(ctx context.Context, pm *models.PaymentMethod) (*models.PaymentMethod, error)
	GetByID(ctx context.Context, id string) (*models.PaymentMethod, error)
	Update(ctx context.Context, pm *models.PaymentMethod) (*models.PaymentMethod, error)
	Delete(ctx context.Context, id string) error
	GetByUser(ctx context.Context, userID string) ([]*models.PaymentMethod, error)
}
