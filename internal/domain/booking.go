package domain

import "time"

type Booking struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	FlightID      int64     `json:"flight_id"`
	PassengerName string    `json:"passenger_name"`
	BookingDate   time.Time `json:"booking_date"`
}

// BookingView is a booking joined with its user and flight, as shown in listings.
type BookingView struct {
	Booking
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
	DepartureCity string    `json:"departure_city"`
	ArrivalCity   string    `json:"arrival_city"`
	DepartureDate time.Time `json:"departure_date"`
	ArrivalDate   time.Time `json:"arrival_date"`
	Company       string    `json:"company"`
	Price         int64     `json:"price"`
}
