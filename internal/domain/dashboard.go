package domain

type Dashboard struct {
	Flights        int           `json:"flights_count"`
	Users          int           `json:"users_count"`
	Bookings       int           `json:"bookings_count"`
	RecentBookings []BookingView `json:"recent_bookings"`
}

type HealthStatus string

const (
	HealthOK      HealthStatus = "ok"
	HealthPartial HealthStatus = "partial"
	HealthError   HealthStatus = "error"
)

// HealthReport is the result of probing the store.
type HealthReport struct {
	Status HealthStatus      `json:"status"`
	Tables map[string]int    `json:"tables"`
	Errors map[string]string `json:"errors,omitempty"`
}
