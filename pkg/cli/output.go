package cli

import (
	"fmt"
	"strings"
	"time"

	"cabcab/pkg/models"
	"cabcab/service"
)

func printUser(u *models.User) {
	fmt.Printf("%s <%s> [%s]\n", u.FullName(), u.Email, u.UserType)
	fmt.Printf("  id:    %s\n", u.ID)
	fmt.Printf("  phone: %s\n", u.Phone)
	if u.IsDriver() {
		fmt.Printf("  license:   %s\n", u.LicenseNumber)
		fmt.Printf("  verified:  %t\n", u.IsVerified)
		fmt.Printf("  available: %t\n", u.IsAvailable)
		if u.Rating != nil {
			fmt.Printf("  rating:    %.2f (%d rides)\n", *u.Rating, u.RatingCount)
		}
	}
	if u.IsBanned {
		kind := "temporarily"
		if u.IsPermanentBan {
			kind = "permanently"
		}
		fmt.Printf("  BANNED %s: %s\n", kind, u.BanReason)
	}
}

func printRide(r *models.Ride) {
	fmt.Printf("ride %s  [%s]\n", r.ID, r.Status)
	fmt.Printf("  requested: %s\n", r.RequestTime.Local().Format(time.RFC1123))
	fmt.Printf("  distance:  %.2f km, about %d min\n", r.Distance, r.Duration)
	fmt.Printf("  fare:      $%.2f estimated", r.EstimatedFare)
	if r.ActualFare != nil {
		fmt.Printf(", $%.2f charged", *r.ActualFare)
	}
	fmt.Println()
	if r.Rating != nil {
		fmt.Printf("  rating:    %d/5\n", *r.Rating)
		if r.Feedback != nil {
			fmt.Printf("  feedback:  %s\n", *r.Feedback)
		}
	}
}

func printRideDetails(d *service.RideDetails) {
	printRide(d.Ride)
	if d.Pickup != nil {
		fmt.Printf("  pickup:    %s\n", formatAddress(d.Pickup))
	}
	if d.Dropoff != nil {
		fmt.Printf("  dropoff:   %s\n", formatAddress(d.Dropoff))
	}
	if d.Passenger != nil {
		fmt.Printf("  passenger: %s (%s)\n", d.Passenger.FullName(), d.Passenger.Phone)
	}
	if d.Driver != nil {
		fmt.Printf("  driver:    %s (%s)\n", d.Driver.FullName(), d.Driver.Phone)
	}
	if d.Vehicle != nil {
		v := d.Vehicle
		fmt.Printf("  vehicle:   %d %s %s, %s, plate %s\n",
			v.Year, v.Make, v.Model, v.Color, v.LicensePlate)
	}
}

func printVehicle(v *models.Vehicle) {
	fmt.Printf("vehicle %s\n", v.ID)
	fmt.Printf("  %d %s %s (%s)\n", v.Year, v.Make, v.Model, v.Color)
	fmt.Printf("  plate:    %s\n", v.LicensePlate)
	fmt.Printf("  type:     %s, seats %d\n", v.VehicleType, v.Capacity)
}

func printPaymentMethod(m *models.PaymentMethod) {
	marker := " "
	if m.IsDefault {
		marker = "*"
	}
	fmt.Printf("%s %s  %s  (%s)\n", marker, m.ID, m.Display, m.PaymentType)
}

func formatAddress(loc *models.Location) string {
	parts := []string{loc.Address}
	for _, p := range []string{loc.City, loc.State, loc.PostalCode, loc.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
