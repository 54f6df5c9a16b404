// Package validate holds the field checks applied before any mutation.
// Every function is pure: it returns whether the input is accepted and,
// if not, the reason to show to the operator.
package validate

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Domenick1991/airadmin/internal/domain"
)

const (
	MsgOK             = "ok"
	MsgRegistered     = "registration data is valid"
	MsgRequiredFields = "fill required fields"
	MsgAllRequired    = "all fields are required"
	MsgNameTooShort   = "name must be at least 2 characters"
	MsgNameTooLong    = "name must not exceed 100 characters"
	MsgNameEmailReq   = "name and email are required"
	MsgEmailRequired  = "enter email"
	MsgEmailTooLong   = "email must not exceed 100 characters"
	MsgEmailFormat    = "invalid email format"
	MsgPasswordShort  = "password must be at least 6 characters"
	MsgPasswordMatch  = "passwords do not match"
	MsgPasswordLong   = "password must not exceed 72 bytes"

	MsgDepartureShort = "departure city must be at least 2 characters"
	MsgArrivalShort   = "arrival city must be at least 2 characters"
	MsgSameCities     = "departure and arrival cities must differ"
	MsgDateFormat     = "invalid date format"
	MsgDepartedPast   = "departure date cannot be in the past"
	MsgArrivalBefore  = "arrival date cannot be earlier than departure date"
	MsgCompanyShort   = "company name must be at least 2 characters"
	MsgPriceNumber    = "price must be a number"
	MsgPricePositive  = "price must be a positive number"
	MsgPriceTooHigh   = "price cannot exceed 1 000 000"

	MsgPassengerShort = "passenger name must be at least 2 characters"
	MsgPassengerLong  = "passenger name must not exceed 100 characters"
	MsgInvalidRef     = "invalid user or flight identifier"
)

const (
	minNameLen     = 2
	maxNameLen     = 100
	maxEmailLen    = 100
	minPasswordLen = 6
	// bcrypt only hashes the first 72 bytes and rejects longer input
	maxPasswordBytes = 72
	minCityLen       = 2
	minCompanyLen    = 2
	maxPrice         = 1_000_000
)

func length(s string) int {
	return utf8.RuneCountInString(s)
}

// Registration checks a new user account.
func Registration(name, email, password, confirm string) (bool, string) {
	if name == "" || password == "" || confirm == "" {
		return false, MsgRequiredFields
	}
	if ok, reason := checkName(name); !ok {
		return false, reason
	}
	if ok, reason := checkEmail(email); !ok {
		return false, reason
	}
	if length(password) < minPasswordLen {
		return false, MsgPasswordShort
	}
	if len(password) > maxPasswordBytes {
		return false, MsgPasswordLong
	}
	if password != confirm {
		return false, MsgPasswordMatch
	}
	return true, MsgRegistered
}

// UserUpdate checks an edit of an existing account. An empty password
// means the stored one is kept.
func UserUpdate(name, email, password string) (bool, string) {
	if name == "" || email == "" {
		return false, MsgNameEmailReq
	}
	if ok, reason := checkName(name); !ok {
		return false, reason
	}
	if ok, reason := checkEmail(email); !ok {
		return false, reason
	}
	if password != "" && length(password) < minPasswordLen {
		return false, MsgPasswordShort
	}
	if len(password) > maxPasswordBytes {
		return false, MsgPasswordLong
	}
	return true, MsgOK
}

func checkName(name string) (bool, string) {
	n := length(strings.TrimSpace(name))
	if n < minNameLen {
		return false, MsgNameTooShort
	}
	if n > maxNameLen {
		return false, MsgNameTooLong
	}
	return true, ""
}

func checkEmail(email string) (bool, string) {
	if email == "" {
		return false, MsgEmailRequired
	}
	email = strings.TrimSpace(email)
	if length(email) > maxEmailLen {
		return false, MsgEmailTooLong
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return false, MsgEmailFormat
	}
	return true, ""
}

// Flight checks a flight against the calendar day today.
func Flight(departureCity, arrivalCity, departureDate, arrivalDate, company, price string, today time.Time) (bool, string) {
	if departureCity == "" || arrivalCity == "" || departureDate == "" ||
		arrivalDate == "" || company == "" || price == "" {
		return false, MsgRequiredFields
	}

	departureCity = strings.TrimSpace(departureCity)
	arrivalCity = strings.TrimSpace(arrivalCity)
	if length(departureCity) < minCityLen {
		return false, MsgDepartureShort
	}
	if length(arrivalCity) < minCityLen {
		return false, MsgArrivalShort
	}
	if departureCity == arrivalCity {
		return false, MsgSameCities
	}

	dep, err := ParseDate(departureDate)
	if err != nil {
		return false, MsgDateFormat
	}
	arr, err := ParseDate(arrivalDate)
	if err != nil {
		return false, MsgDateFormat
	}
	if dep.Before(truncateDay(today)) {
		return false, MsgDepartedPast
	}
	if arr.Before(dep) {
		return false, MsgArrivalBefore
	}

	if length(strings.TrimSpace(company)) < minCompanyLen {
		return false, MsgCompanyShort
	}

	p, err := ParsePrice(price)
	if err != nil {
		return false, MsgPriceNumber
	}
	if p <= 0 {
		return false, MsgPricePositive
	}
	if p > maxPrice {
		return false, MsgPriceTooHigh
	}
	return true, MsgOK
}

// Booking checks booking fields. Whether the referenced user and flight
// exist is up to the caller.
func Booking(passengerName, userID, flightID string) (bool, string) {
	if passengerName == "" || userID == "" || flightID == "" {
		return false, MsgAllRequired
	}
	n := length(strings.TrimSpace(passengerName))
	if n < minNameLen {
		return false, MsgPassengerShort
	}
	if n > maxNameLen {
		return false, MsgPassengerLong
	}
	if _, err := ParseID(userID); err != nil {
		return false, MsgInvalidRef
	}
	if _, err := ParseID(flightID); err != nil {
		return false, MsgInvalidRef
	}
	return true, MsgOK
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateLayout, strings.TrimSpace(s))
}

func ParsePrice(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

func ParseID(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseIDs splits raw ids into parsed ones and those that are not integers.
// Blank entries are dropped.
func ParseIDs(raw []string) (ids []int64, invalid []string) {
	for _, s := range raw {
		if strings.TrimSpace(s) == "" {
			continue
		}
		id, err := ParseID(s)
		if err != nil {
			invalid = append(invalid, s)
			continue
		}
		ids = append(ids, id)
	}
	return ids, invalid
}
