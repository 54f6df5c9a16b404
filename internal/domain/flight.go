package domain

import "time"

// DateLayout is the calendar date format flights are entered and stored in.
const DateLayout = "2006-01-02"

type Flight struct {
	ID            int64     `json:"id"`
	DepartureCity string    `json:"departure_city"`
	ArrivalCity   string    `json:"arrival_city"`
	DepartureDate time.Time `json:"departure_date"`
	ArrivalDate   time.Time `json:"arrival_date"`
	Company       string    `json:"company"`
	Price         int64     `json:"price"`
}
