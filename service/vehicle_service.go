package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"cabcab/pkg/apperrors"
	"cabcab/pkg/logger"
	"cabcab/pkg/models"
	"cabcab/storage"
)

type VehicleService interface {
	Register(ctx context.Context, actor *models.User, input VehicleInput) (*models.Vehicle, error)
	List(ctx context.Context, actor *models.User) ([]*models.Vehicle, error)
	Update(ctx context.Context, actor *models.User, vehicleID string, input VehicleUpdate) (*models.Vehicle, error)
	Delete(ctx context.Context, actor *models.User, vehicleID string) error
	FindByPlate(ctx context.Context, actor *models.User, plate string) ([]*VehicleMatch, error)
}

type VehicleInput struct {
	Make         string `validate:"required"`
	Model        string `validate:"required"`
	Year         int    `validate:"required,gte=1950,lte=2100"`
	Color        string `validate:"required"`
	LicensePlate string `validate:"required"`
	VehicleType  string `validate:"required"`
	Capacity     int    `validate:"required,gt=0"`
}

type VehicleUpdate struct {
	Make        *string
	Model       *string
	Year        *int
	Color       *string
	VehicleType *string
	Capacity    *int
}

// VehicleMatch pairs a vehicle with its owning driver for the admin
// plate search.
type VehicleMatch struct {
	Vehicle *models.Vehicle
	Driver  *models.User
}

type vehicleService struct {
	stg      storage.IStorage
	validate *validator.Validate
	log      logger.ILogger
}

func NewVehicleService(stg storage.IStorage, log logger.ILogger) VehicleService {
	return &vehicleService{stg: stg, validate: validator.New(), log: log}
}

func (s *vehicleService) Register(ctx context.Context, actor *models.User, input VehicleInput) (*models.Vehicle, error) {
	if err := requireRole(actor, models.UserTypeDriver); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeValidation, "invalid vehicle input")
	}

	vehicleType, ok := models.ValidVehicleType(strings.ToUpper(input.VehicleType))
	if !ok {
		return nil, apperrors.Validation("invalid vehicle type %q, choose from: %s",
			input.VehicleType, vehicleTypeNames())
	}

	existing, err := s.stg.Vehicle().GetByPlate(ctx, input.LicensePlate)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, apperrors.Validation("vehicle with license plate %s is already registered", input.LicensePlate)
	}

	vehicle := &models.Vehicle{
		ID:           uuid.New().String(),
		DriverID:     actor.ID,
		Make:         input.Make,
		Model:        input.Model,
		Year:         input.Year,
		Color:        input.Color,
		LicensePlate: input.LicensePlate,
		VehicleType:  vehicleType,
		Capacity:     input.Capacity,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.stg.Vehicle().Create(ctx, vehicle)
	if err != nil {
		return nil, err
	}

	// The driver's first vehicle becomes their primary one.
	driver, err := s.stg.User().GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if driver.VehicleID == nil {
		driver.VehicleID = &created.ID
		driver.UpdatedAt = time.Now().UTC()
		if _, err := s.stg.User().Update(ctx, driver); err != nil {
			return nil, err
		}
	}

	s.log.Info("vehicle registered",
		logger.String("vehicle_id", created.ID),
		logger.String("driver_id", actor.ID))
	return created, nil
}

// List returns the caller's vehicles, or every vehicle for an admin.
func (s *vehicleService) List(ctx context.Context, actor *models.User) ([]*models.Vehicle, error) {
	if err := requireRole(actor, models.UserTypeDriver, models.UserTypeAdmin); err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return s.stg.Vehicle().GetAll(ctx)
	}
	return s.stg.Vehicle().GetByDriver(ctx, actor.ID)
}

func (s *vehicleService) Update(ctx context.Context, actor *models.User, vehicleID string, input VehicleUpdate) (*models.Vehicle, error) {
	if err := requireRole(actor, models.UserTypeDriver); err != nil {
		return nil, err
	}

	vehicle, err := s.stg.Vehicle().GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.DriverID != actor.ID {
		return nil, apperrors.Forbidden("you do not have permission to update this vehicle")
	}

	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.Color != nil {
		vehicle.Color = *input.Color
	}
	if input.VehicleType != nil {
		vt, ok := models.ValidVehicleType(strings.ToUpper(*input.VehicleType))
		if !ok {
			return nil, apperrors.Validation("invalid vehicle type %q, choose from: %s",
				*input.VehicleType, vehicleTypeNames())
		}
		vehicle.VehicleType = vt
	}
	if input.Capacity != nil {
		if *input.Capacity <= 0 {
			return nil, apperrors.Validation("capacity must be a positive integer")
		}
		vehicle.Capacity = *input.Capacity
	}

	return s.stg.Vehicle().Update(ctx, vehicle)
}

func (s *vehicleService) Delete(ctx context.Context, actor *models.User, vehicleID string) error {
	if err := requireRole(actor, models.UserTypeDriver); err != nil {
		return err
	}

	vehicle, err := s.stg.Vehicle().GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if vehicle.DriverID != actor.ID {
		return apperrors.Forbidden("you do not have permission to delete this vehicle")
	}

	// Deleting the primary vehicle promotes another, or clears it.
	driver, err := s.stg.User().GetByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if driver.VehicleID != nil && *driver.VehicleID == vehicleID {
		remaining, err := s.stg.Vehicle().GetByDriver(ctx, actor.ID)
		if err != nil {
			return err
		}
		driver.VehicleID = nil
		for _, v := range remaining {
			if v.ID != vehicleID {
				id := v.ID
				driver.VehicleID = &id
				break
			}
		}
		driver.UpdatedAt = time.Now().UTC()
		if _, err := s.stg.User().Update(ctx, driver); err != nil {
			return err
		}
	}

	return s.stg.Vehicle().Delete(ctx, vehicleID)
}

// FindByPlate is an admin search over normalized plates: spaces
// stripped, case-insensitive, substring match either way.
func (s *vehicleService) FindByPlate(ctx context.Context, actor *models.User, plate string) ([]*VehicleMatch, error) {
	if err := requireRole(actor, models.UserTypeAdmin); err != nil {
		return nil, err
	}

	wanted := normalizePlate(plate)
	if wanted == "" {
		return nil, apperrors.Validation("license plate cannot be empty")
	}

	vehicles, err := s.stg.Vehicle().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*VehicleMatch
	for _, v := range vehicles {
		got := normalizePlate(v.LicensePlate)
		if !strings.Contains(got, wanted) && !strings.Contains(wanted, got) {
			continue
		}
		m := &VehicleMatch{Vehicle: v}
		if driver, err := s.stg.User().GetByID(ctx, v.DriverID); err == nil {
			d := driver.Sanitized()
			m.Driver = &d
		}
		matches = append(matches, m)
	}

	if len(matches) == 0 {
		return nil, apperrors.NotFound("no vehicle found with license plate similar to %q", plate)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Vehicle.LicensePlate < matches[j].Vehicle.LicensePlate
	})
	return matches, nil
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(plate), " ", ""))
}

func vehicleTypeNames() string {
	names := make([]string, len(models.VehicleTypes))
	for i, t := range models.VehicleTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
