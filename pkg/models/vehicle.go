package models

import "time"

type VehicleType string

const (
	VehicleEconomy VehicleType = "ECONOMY"
	VehicleComfort VehicleType = "COMFORT"
	VehiclePremium VehicleType = "PREMIUM"
	VehicleSUV     VehicleType = "SUV"
	VehicleXL      VehicleType = "XL"
)

var VehicleTypes = []VehicleType{VehicleEconomy, VehicleComfort, VehiclePremium, VehicleSUV, VehicleXL}

func ValidVehicleType(t string) (VehicleType, bool) {
	for _, vt := range VehicleTypes {
		if string(vt) == t {
			return vt, true
		}
	}
	return "", false
}

type Vehicle struct {
	ID           string      `json:"id"`
	DriverID     string      `json:"driver_id"`
	Make         string      `json:"make"`
	Model        string      `json:"model"`
	Year         int         `json:"year"`
	Color        string      `json:"color"`
	LicensePlate string      `json:"license_plate"`
	VehicleType  VehicleType `json:"vehicle_type"`
	Capacity     int         `json:"capacity"`
	IsActive     bool        `json:"is_active"`
	CreatedAt    time.Time   `json:"created_at"`
}
