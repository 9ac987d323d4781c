package service

import (
	"context"
	"sort"
	"time"

	"cabcab/pkg/apperrors"
	"cabcab/pkg/logger"
	"cabcab/pkg/models"
	"cabcab/storage"
)

type AdminService interface {
	VerifyDriver(ctx context.Context, actor *models.User, driverEmail string, verify bool) (*models.User, error)
	BanPassenger(ctx context.Context, actor *models.User, email, reason string, permanent bool) (*models.User, error)
	UnbanPassenger(ctx context.Context, actor *models.User, email string) (*models.User, error)
	ListDrivers(ctx context.Context, actor *models.User, verifiedOnly bool) ([]*models.User, error)
	DriverRides(ctx context.Context, actor *models.User, driverEmail, status string) ([]*models.Ride, error)
}

type adminService struct {
	stg storage.IStorage
	log logger.ILogger
}

func NewAdminService(stg storage.IStorage, log logger.ILogger) AdminService {
	return &adminService{stg: stg, log: log}
}

// VerifyDriver flips the verified flag. Unverified drivers cannot see
// or accept rides.
func (s *adminService) VerifyDriver(ctx context.Context, actor *models.User, driverEmail string, verify bool) (*models.User, error) {
	if err := requireRole(actor, models.UserTypeAdmin); err != nil {
		return nil, err
	}

	driver, err := s.requireDriverByEmail(ctx, driverEmail)
	if err != nil {
		return nil, err
	}

	driver.IsVerified = verify
	driver.UpdatedAt = time.Now().UTC()

	updated, err := s.stg.User().Update(ctx, driver)
	if err != nil {
		return nil, err
	}

	s.log.Info("driver verification changed",
		logger.String("email", driverEmail),
		logger.Bool("verified", verify),
		logger.String("admin_id", actor.ID))

	sanitized := updated.Sanitized()
	return &sanitized, nil
}

func (s *adminService) BanPassenger(ctx context.Context, actor *models.User, email, reason string, permanent bool) (*models.User, error) {
	if err := requireRole(actor, models.UserTypeAdmin); err != nil {
		return nil, err
	}

	user, err := s.stg.User().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user with email %s not found", email)
	}
	if !user.IsPassenger() {
		return nil, apperrors.Validation("user with email %s is not a passenger", email)
	}

	user.IsBanned = true
	user.BanReason = reason
	user.IsPermanentBan = permanent
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.stg.User().Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info("passenger banned",
		logger.String("email", email),
		logger.Bool("permanent", permanent))

	sanitized := updated.Sanitized()
	return &sanitized, nil
}

func (s *adminService) UnbanPassenger(ctx context.Context, actor *models.User, email string) (*models.User, error) {
	if err := requireRole(actor, models.UserTypeAdmin); err != nil {
		return nil, err
	}

	user, err := s.stg.User().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user with email %s not found", email)
	}
	if !user.IsBanned {
		return nil, apperrors.Validation("user with email %s is not banned", email)
	}

	user.IsBanned = false
	user.BanReason = ""
	user.IsPermanentBan = false
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.stg.User().Update(ctx, user)
	if err != nil {
		return nil, err
	}
	sanitized := updated.Sanitized()
	return &sanitized, nil
}

func (s *adminService) ListDrivers(ctx context.Context, actor *models.User, verifiedOnly bool) ([]*models.User, error) {
	if err := requireRole(actor, models.UserTypeAdmin); err != nil {
		return nil, err
	}

	drivers, err := s.stg.User().ListByType(ctx, models.UserTypeDriver)
	if err != nil {
		return nil, err
	}

	out := make([]*models.User, 0, len(drivers))
	for _, d := range drivers {
		if verifiedOnly && !d.IsVerified {
			continue
		}
		sanitized := d.Sanitized()
		out = append(out, &sanitized)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// DriverRides lets an admin inspect all rides a driver has taken.
func (s *adminService) DriverRides(ctx context.Context, actor *models.User, driverEmail, status string) ([]*models.Ride, error) {
	if err := requireRole(actor, models.UserTypeAdmin); err != nil {
		return nil, err
	}

	driver, err := s.requireDriverByEmail(ctx, driverEmail)
	if err != nil {
		return nil, err
	}

	rides, err := s.stg.Ride().GetByDriver(ctx, driver.ID)
	if err != nil {
		return nil, err
	}
	return filterAndSort(rides, status), nil
}

func (s *adminService) requireDriverByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.stg.User().GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user with email %s not found", email)
	}
	if !user.IsDriver() {
		return nil, apperrors.Validation("user with email %s is not a driver", email)
	}
	return user, nil
}
