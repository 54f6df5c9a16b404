package api

import (
	"encoding/json"
	"strconv"

	"github.com/Domenick1991/airadmin/internal/domain"
	"github.com/gin-gonic/gin"
)

// flexString accepts both JSON strings and numbers, so ids and prices can
// be posted either way. Form values bind as plain strings.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

func (s flexString) String() string {
	return string(s)
}

func stringsOf(values []flexString) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// pageRequest reads ?page=N. Missing or malformed values mean the first page.
func pageRequest(c *gin.Context) domain.PageRequest {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 0
	}
	return domain.PageRequest{Page: page}
}

func pageBody[T any](key string, p domain.Page[T]) gin.H {
	return gin.H{
		key:            p.Items,
		"current_page": p.CurrentPage,
		"total_pages":  p.TotalPages,
	}
}

type flightRequest struct {
	ID            flexString `form:"flight_id" json:"flight_id"`
	DepartureCity string     `form:"departure_city" json:"departure_city"`
	ArrivalCity   string     `form:"arrival_city" json:"arrival_city"`
	DepartureDate string     `form:"departure_date" json:"departure_date"`
	ArrivalDate   string     `form:"arrival_date" json:"arrival_date"`
	Company       string     `form:"company" json:"company"`
	Price         flexString `form:"price" json:"price"`
}

type userRequest struct {
	ID              flexString `form:"user_id" json:"user_id"`
	Name            string     `form:"name" json:"name"`
	Email           string     `form:"email" json:"email"`
	Password        string     `form:"password" json:"password"`
	ConfirmPassword string     `form:"confirm_password" json:"confirm_password"`
}

type bookingRequest struct {
	ID            flexString `form:"booking_id" json:"booking_id"`
	UserID        flexString `form:"user_id" json:"user_id"`
	FlightID      flexString `form:"flight_id" json:"flight_id"`
	PassengerName string     `form:"passenger_name" json:"passenger_name"`
}

type deleteFlightRequest struct {
	FlightID flexString `form:"flight_id" json:"flight_id"`
}

type deleteUsersRequest struct {
	UserIDs []flexString `form:"user_ids" json:"user_ids"`
}

type deleteBookingsRequest struct {
	BookingIDs []flexString `form:"booking_ids" json:"booking_ids"`
}
