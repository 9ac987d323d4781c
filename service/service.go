package service

import (
	"cabcab/pkg/logger"
	"cabcab/pkg/token"
	"cabcab/storage"
)

type IServiceManager interface {
	Auth() AuthService
	Ride() RideService
	Vehicle() VehicleService
	Admin() AdminService
	Payment() PaymentService
}

type service struct {
	authService    AuthService
	rideService    RideService
	vehicleService VehicleService
	adminService   AdminService
	paymentService PaymentService
}

func New(stg storage.IStorage, tokens *token.Manager, log logger.ILogger) IServiceManager {
	return &service{
		authService:    NewAuthService(stg, tokens, log),
		rideService:    NewRideService(stg, log),
		vehicleService: NewVehicleService(stg, log),
		adminService:   NewAdminService(stg, log),
		paymentService: NewPaymentService(stg, log),
	}
}

func (s *service) Auth() AuthService       { return s.authService }
func (s *service) Ride() RideService       { return s.rideService }
func (s *service) Vehicle() VehicleService { return s.vehicleService }
func (s *service) Admin() AdminService     { return s.adminService }
func (s *service) Payment() PaymentService { return s.paymentService }
