package models

import "time"

type RideStatus string

const (
	RideRequested  RideStatus = "REQUESTED"
	RideAccepted   RideStatus = "ACCEPTED"
	RideInProgress RideStatus = "IN_PROGRESS"
	RideCompleted  RideStatus = "COMPLETED"
	RideCancelled  RideStatus = "CANCELLED"
)

type Ride struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	DriverID          *string    `json:"driver_id"`
	PickupLocationID  string     `json:"pickup_location_id"`
	DropoffLocationID string     `json:"dropoff_location_id"`
	Status            RideStatus `json:"status"`
	RequestTime       time.Time  `json:"request_time"`
	StartTime         *time.Time `json:"start_time"`
	EndTime           *time.Time `json:"end_time"`
	EstimatedFare     float64    `json:"estimated_fare"`
	ActualFare        *float64   `json:"actual_fare"`
	Distance          float64    `json:"distance"`
	Duration          int        `json:"duration"`
	PaymentID         *string    `json:"payment_id"`
	Rating            *int       `json:"rating"`
	Feedback          *string    `json:"feedback"`
}

// rideTransitions is the full set of legal status edges. Who may drive
// each edge is enforced by the ride service; the table only answers
// whether the edge exists at all.
var rideTransitions = map[RideStatus][]RideStatus{
	RideRequested:  {RideAccepted, RideCancelled},
	RideAccepted:   {RideInProgress, RideCancelled},
	RideInProgress: {RideCompleted},
}

// CanTransition reports whether from → to is a legal edge.
func CanTransition(from, to RideStatus) bool {
	for _, next := range rideTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s RideStatus) IsTerminal() bool {
	return len(rideTransitions[s]) == 0
}

// HasDriver reports whether a driver is assigned to the ride.
func (r *Ride) HasDriver() bool {
	return r.DriverID != nil && *r.DriverID != ""
}
