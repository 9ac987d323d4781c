package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"cabcab/pkg/apperrors"
	"cabcab/pkg/logger"
	"cabcab/pkg/models"
	"cabcab/storage"
)

type RideService interface {
	Request(ctx context.Context, actor *models.User, pickup, dropoff AddressInput) (*RideDetails, error)
	AvailableRides(ctx context.Context, actor *models.User) ([]*RideDetails, error)
	Accept(ctx context.Context, actor *models.User, rideID string) (*RideDetails, error)
	Start(ctx context.Context, actor *models.User, rideID string) (*models.Ride, error)
	Complete(ctx context.Context, actor *models.User, rideID string) (*models.Ride, error)
	Cancel(ctx context.Context, actor *models.User, rideID string) (*models.Ride, error)
	Rate(ctx context.Context, actor *models.User, rideID string, rating int, feedback string) (*models.Ride, error)
	Get(ctx context.Context, actor *models.User, rideID string) (*RideDetails, error)
	ListForPassenger(ctx context.Context, actor *models.User, status string) ([]*models.Ride, error)
	ListForDriver(ctx context.Context, actor *models.User, status string) ([]*models.Ride, error)
}

type AddressInput struct {
	Address    string
	City       string
	State      string
	PostalCode string
	Country    string
}

// RideDetails is a ride hydrated with the records the CLI displays
// alongside it.
type RideDetails struct {
	Ride      *models.Ride
	Pickup    *models.Location
	Dropoff   *models.Location
	Passenger *models.User
	Driver    *models.User
	Vehicle   *models.Vehicle
}

type rideService struct {
	stg storage.IStorage
	log logger.ILogger
}

func NewRideService(stg storage.IStorage, log logger.ILogger) RideService {
	return &rideService{stg: stg, log: log}
}

func (s *rideService) Request(ctx context.Context, actor *models.User, pickup, dropoff AddressInput) (*RideDetails, error) {
	if err := requireRole(actor, models.UserTypePassenger); err != nil {
		return nil, err
	}
	if pickup.Address == "" || dropoff.Address == "" {
		return nil, apperrors.Validation("pickup and dropoff addresses are required")
	}

	pickupLoc, err := s.saveLocation(ctx, actor.ID, pickup)
	if err != nil {
		return nil, err
	}
	dropoffLoc, err := s.saveLocation(ctx, actor.ID, dropoff)
	if err != nil {
		return nil, err
	}

	distance, duration, fare := estimateRide(
		pickupLoc.Latitude, pickupLoc.Longitude,
		dropoffLoc.Latitude, dropoffLoc.Longitude,
	)

	ride := &models.Ride{
		ID:                uuid.New().String(),
		UserID:            actor.ID,
		DriverID:          nil,
		PickupLocationID:  pickupLoc.ID,
		DropoffLocationID: dropoffLoc.ID,
		Status:            models.RideRequested,
		RequestTime:       time.Now().UTC(),
		EstimatedFare:     fare,
		Distance:          distance,
		Duration:          duration,
	}

	created, err := s.stg.Ride().Create(ctx, ride)
	if err != nil {
		return nil, err
	}

	s.log.Info("ride requested",
		logger.String("ride_id", created.ID),
		logger.String("passenger_id", actor.ID))

	return &RideDetails{Ride: created, Pickup: pickupLoc, Dropoff: dropoffLoc}, nil
}

// AvailableRides returns unassigned REQUESTED rides, oldest first, so
// drivers work through requests in the order they arrived.
func (s *rideService) AvailableRides(ctx context.Context, actor *models.User) ([]*RideDetails, error) {
	if err := requireRole(actor, models.UserTypeDriver); err != nil {
		return nil, err
	}
	if !actor.IsVerified {
		return nil, apperrors.Forbidden("you must be verified to see available rides")
	}
	if !actor.IsAvailable {
		return nil, apperrors.Forbidden("you must set your status to available to see ride requests")
	}

	rides, err := s.stg.Ride().GetByStatus(ctx, models.RideRequested)
	if err != nil {
		return nil, err
	}

	open := rides[:0]
	for _, r := range rides {
		if !r.HasDriver() {
			open = append(open, r)
		}
	}
	sort.Slice(open, func(i, j int) bool {
		return open[i].RequestTime.Before(open[j].RequestTime)
	})

	detailed := make([]*RideDetails, 0, len(open))
	for _, r := range open {
		d, err := s.hydrate(ctx, r)
		if err != nil {
			// A ride with dangling location refs is skipped, not fatal.
			// Anything else (the store being unreachable) is.
			if apperrors.Is(err, apperrors.CodeNotFound) {
				s.log.Warning("skipping ride with missing records",
					logger.String("ride_id", r.ID), logger.Error(err))
				continue
			}
			return nil, err
		}
		detailed = append(detailed, d)
	}
	return detailed, nil
}

func (s *rideService) Accept(ctx context.Context, actor *models.User, rideID string) (*RideDetails, error) {
	if err := requireRole(actor, models.UserTypeDriver); err != nil {
		return nil, err
	}
	if !actor.IsVerified {
		return nil, apperrors.Forbidden("you must be verified to accept ride requests")
	}
	if !actor.IsAvailable {
		return nil, apperrors.Forbidden("you must set your status to available before accepting rides")
	}

	ride, err := s.stg.Ride().GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.Status != models.RideRequested || ride.HasDriver() {
		return nil, apperrors.RideNotAvailable("ride %s is no longer available", rideID)
	}

	driverID := actor.ID
	ride.DriverID = &driverID
	ride.Status = models.RideAccepted

	updated, err := s.stg.Ride().Update(ctx, ride)
	if err != nil {
		return nil, err
	}

	// Accepting a ride takes the driver off the market.
	if err := s.setDriverAvailability(ctx, actor.ID, false); err != nil {
		return nil, err
	}

	s.log.Info("ride accepted",
		logger.String("ride_id", rideID),
		logger.String("driver_id", actor.ID))

	return s.hydrate(ctx, updated)
}

func (s *rideService) Start(ctx context.Context, actor *models.User, rideID string) (*models.Ride, error) {
	ride, err := s.requireAssignedDriver(ctx, actor, rideID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(ride.Status, models.RideInProgress) {
		return nil, apperrors.InvalidTransition("cannot start ride with status %s", ride.Status)
	}

	now := time.Now().UTC()
	ride.StartTime = &now
	ride.Status = models.RideInProgress
	return s.stg.Ride().Update(ctx, ride)
}

func (s *rideService) Complete(ctx context.Context, actor *models.User, rideID string) (*models.Ride, error) {
	ride, err := s.requireAssignedDriver(ctx, actor, rideID)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(ride.Status, models.RideCompleted) {
		return nil, apperrors.InvalidTransition("cannot complete ride with status %s", ride.Status)
	}

	now := time.Now().UTC()
	fare := ride.EstimatedFare
	ride.EndTime = &now
	ride.ActualFare = &fare
	ride.Status = models.RideCompleted

	updated, err := s.stg.Ride().Update(ctx, ride)
	if err != nil {
		return nil, err
	}

	if err := s.setDriverAvailability(ctx, actor.ID, true); err != nil {
		return nil, err
	}

	s.log.Info("ride completed", logger.String("ride_id", rideID))
	return updated, nil
}

func (s *rideService) Cancel(ctx context.Context, actor *models.User, rideID string) (*models.Ride, error) {
	if actor == nil {
		return nil, apperrors.NotAuthenticated("you are not signed in")
	}

	ride, err := s.stg.Ride().GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.IsPassenger() && ride.UserID == actor.ID:
	case actor.IsDriver() && ride.HasDriver() && *ride.DriverID == actor.ID:
	default:
		return nil, apperrors.Forbidden("you do not have permission to cancel this ride")
	}

	if !models.CanTransition(ride.Status, models.RideCancelled) {
		return nil, apperrors.InvalidTransition("cannot cancel ride with status %s", ride.Status)
	}

	// A cancelled ride carries no driver assignment; the snapshot is
	// only for the availability restore below.
	assignedDriver := ""
	if ride.HasDriver() {
		assignedDriver = *ride.DriverID
	}

	ride.DriverID = nil
	ride.Status = models.RideCancelled
	updated, err := s.stg.Ride().Update(ctx, ride)
	if err != nil {
		return nil, err
	}

	// Cancelling an accepted ride puts the driver back on the market.
	if assignedDriver != "" {
		if err := s.setDriverAvailability(ctx, assignedDriver, true); err != nil {
			return nil, err
		}
	}

	s.log.Info("ride cancelled",
		logger.String("ride_id", rideID),
		logger.String("by", string(actor.UserType)))
	return updated, nil
}

func (s *rideService) Rate(ctx context.Context, actor *models.User, rideID string, rating int, feedback string) (*models.Ride, error) {
	if err := requireRole(actor, models.UserTypePassenger); err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, apperrors.Validation("rating must be between 1 and 5 stars")
	}

	ride, err := s.stg.Ride().GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride.UserID != actor.ID {
		return nil, apperrors.Forbidden("you can only rate your own rides")
	}
	if ride.Status != models.RideCompleted {
		return nil, apperrors.InvalidTransition("only completed rides can be rated")
	}
	if ride.Rating != nil {
		return nil, apperrors.Validation("this ride has already been rated")
	}

	ride.Rating = &rating
	if feedback != "" {
		ride.Feedback = &feedback
	}

	updated, err := s.stg.Ride().Update(ctx, ride)
	if err != nil {
		return nil, err
	}

	// Fold the rating into the driver's running average. Failure here
	// does not undo the ride rating itself.
	if ride.HasDriver() {
		if err := s.applyDriverRating(ctx, *ride.DriverID, rating); err != nil {
			s.log.Warning("failed to update driver rating",
				logger.String("driver_id", *ride.DriverID), logger.Error(err))
		}
	}
	return updated, nil
}

func (s *rideService) Get(ctx context.Context, actor *models.User, rideID string) (*RideDetails, error) {
	if actor == nil {
		return nil, apperrors.NotAuthenticated("you are not signed in")
	}

	ride, err := s.stg.Ride().GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	isParty := ride.UserID == actor.ID ||
		(ride.HasDriver() && *ride.DriverID == actor.ID)
	if !isParty && !actor.IsAdmin() {
		return nil, apperrors.Forbidden("you are not a party to this ride")
	}
	return s.hydrate(ctx, ride)
}

func (s *rideService) ListForPassenger(ctx context.Context, actor *models.User, status string) ([]*models.Ride, error) {
	if err := requireRole(actor, models.UserTypePassenger); err != nil {
		return nil, err
	}
	rides, err := s.stg.Ride().GetByPassenger(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return filterAndSort(rides, status), nil
}

func (s *rideService) ListForDriver(ctx context.Context, actor *models.User, status string) ([]*models.Ride, error) {
	if err := requireRole(actor, models.UserTypeDriver); err != nil {
		return nil, err
	}
	rides, err := s.stg.Ride().GetByDriver(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return filterAndSort(rides, status), nil
}

func (s *rideService) requireAssignedDriver(ctx context.Context, actor *models.User, rideID string) (*models.Ride, error) {
	if err := requireRole(actor, models.UserTypeDriver); err != nil {
		return nil, err
	}
	ride, err := s.stg.Ride().GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if !ride.HasDriver() || *ride.DriverID != actor.ID {
		return nil, apperrors.Forbidden("you are not the assigned driver for this ride")
	}
	return ride, nil
}

func (s *rideService) setDriverAvailability(ctx context.Context, driverID string, available bool) error {
	driver, err := s.stg.User().GetByID(ctx, driverID)
	if err != nil {
		return err
	}
	driver.IsAvailable = available
	driver.UpdatedAt = time.Now().UTC()
	_, err = s.stg.User().Update(ctx, driver)
	return err
}

func (s *rideService) applyDriverRating(ctx context.Context, driverID string, rating int) error {
	driver, err := s.stg.User().GetByID(ctx, driverID)
	if err != nil {
		return err
	}

	newRating := float64(rating)
	if driver.Rating != nil && driver.RatingCount > 0 {
		total := *driver.Rating*float64(driver.RatingCount) + float64(rating)
		driver.RatingCount++
		newRating = math.Round(total/float64(driver.RatingCount)*100) / 100
	} else {
		driver.RatingCount = 1
	}
	driver.Rating = &newRating
	driver.UpdatedAt = time.Now().UTC()

	_, err = s.stg.User().Update(ctx, driver)
	return err
}

func (s *rideService) saveLocation(ctx context.Context, userID string, in AddressInput) (*models.Location, error) {
	lat, lng := simulateCoordinates(in.Address)
	loc := &models.Location{
		ID:         uuid.New().String(),
		UserID:     userID,
		Address:    in.Address,
		City:       in.City,
		State:      in.State,
		PostalCode: in.PostalCode,
		Country:    in.Country,
		Latitude:   lat,
		Longitude:  lng,
	}
	return s.stg.Location().Create(ctx, loc)
}

func (s *rideService) hydrate(ctx context.Context, ride *models.Ride) (*RideDetails, error) {
	d := &RideDetails{Ride: ride}

	pickup, err := s.stg.Location().GetByID(ctx, ride.PickupLocationID)
	if err != nil {
		return nil, err
	}
	d.Pickup = pickup

	dropoff, err := s.stg.Location().GetByID(ctx, ride.DropoffLocationID)
	if err != nil {
		return nil, err
	}
	d.Dropoff = dropoff

	if passenger, err := s.stg.User().GetByID(ctx, ride.UserID); err == nil {
		p := passenger.Sanitized()
		d.Passenger = &p
	}

	if ride.HasDriver() {
		driver, err := s.stg.User().GetByID(ctx, *ride.DriverID)
		if err == nil {
			dr := driver.Sanitized()
			d.Driver = &dr
			if driver.VehicleID != nil {
				if vehicle, err := s.stg.Vehicle().GetByID(ctx, *driver.VehicleID); err == nil {
					d.Vehicle = vehicle
				}
			}
		}
	}
	return d, nil
}

func filterAndSort(rides []*models.Ride, status string) []*models.Ride {
	out := rides[:0]
	for _, r := range rides {
		if status == "" || string(r.Status) == status {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RequestTime.After(out[j].RequestTime)
	})
	return out
}

// simulateCoordinates derives stable fake coordinates from the address
// text, anchored around New York. Stands in for a geocoding API.
func simulateCoordinates(address string) (float64, float64) {
	hash := 0
	for _, c := range address {
		hash += int(c)
	}

	baseLat, baseLng := 40.7128, -74.0060
	latOffset := float64(hash%100) / 100.0
	lngOffset := float64((hash/100)%100) / 100.0

	lat := math.Round((baseLat+latOffset-0.5)*10000) / 10000
	lng := math.Round((baseLng+lngOffset-0.5)*10000) / 10000
	return lat, lng
}

// estimateRide computes haversine distance, duration at 30 km/h city
// speed, and a fare of base 2.50 + 1.25/km + 0.35/min, floored at $5.
func estimateRide(pickupLat, pickupLng, dropoffLat, dropoffLng float64) (distanceKm float64, durationMin int, fare float64) {
	const earthRadiusKm = 6371.0

	lat1 := pickupLat * math.Pi / 180
	lng1 := pickupLng * math.Pi / 180
	lat2 := dropoffLat * math.Pi / 180
	lng2 := dropoffLng * math.Pi / 180

	dlat := lat2 - lat1
	dlng := lng2 - lng1
	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	distance := earthRadiusKm * c

	duration := int(distance * 60 / 30)
	if duration < 1 {
		duration = 1
	}

	raw := 2.50 + distance*1.25 + float64(duration)*0.35
	fare = math.Round(raw*100) / 100
	if fare < 5.0 {
		fare = 5.0
	}

	return math.Round(distance*100) / 100, duration, fare
}
