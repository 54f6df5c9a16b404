package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var today = time.Date(2026, 10, 15, 13, 45, 0, 0, time.UTC)

func TestRegistration(t *testing.T) {
	tests := []struct {
		name                          string
		fio, email, password, confirm string
		wantOK                        bool
		wantReason                    string
	}{
		{"valid", "Ivan Ivanov", "ivan@test.ru", "password123", "password123", true, MsgRegistered},
		{"empty name", "", "ivan@test.ru", "password123", "password123", false, MsgRequiredFields},
		{"empty confirmation", "Ivan", "ivan@test.ru", "password123", "", false, MsgRequiredFields},
		{"short name", " I ", "ivan@test.ru", "password123", "password123", false, MsgNameTooShort},
		{"long name", strings.Repeat("я", 101), "ivan@test.ru", "password123", "password123", false, MsgNameTooLong},
		{"cyrillic name at limit", strings.Repeat("я", 100), "ivan@test.ru", "password123", "password123", true, MsgRegistered},
		{"missing email", "Ivan", "", "password123", "password123", false, MsgEmailRequired},
		{"email without at", "Ivan", "ivan.test.ru", "password123", "password123", false, MsgEmailFormat},
		{"email without dot", "Ivan", "ivan@test", "password123", "password123", false, MsgEmailFormat},
		{"long email", "Ivan", strings.Repeat("a", 95) + "@x.com", "password123", "password123", false, MsgEmailTooLong},
		{"short password", "Ivan", "ivan@test.ru", "123", "123", false, MsgPasswordShort},
		{"short mismatched password", "Ivan", "ivan@test.ru", "123", "456", false, MsgPasswordShort},
		{"mismatch", "Ivan", "ivan@test.ru", "password123", "password456", false, MsgPasswordMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := Registration(tt.fio, tt.email, tt.password, tt.confirm)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestRegistration_MismatchIndependentOfLength(t *testing.T) {
	for _, pw := range []string{"abcdef", "abcdefghijkl", strings.Repeat("x", 64)} {
		ok, reason := Registration("Ivan", "ivan@test.ru", pw, pw+"!")
		assert.False(t, ok)
		assert.Equal(t, MsgPasswordMatch, reason)
	}
}

func TestPasswordByteLimit(t *testing.T) {
	long := strings.Repeat("p", 80)

	ok, reason := Registration("Ivan Ivanov", "ivan@test.ru", long, long)
	assert.False(t, ok)
	assert.Equal(t, MsgPasswordLong, reason)

	ok, reason = UserUpdate("Ivan Ivanov", "ivan@test.ru", long)
	assert.False(t, ok)
	assert.Equal(t, MsgPasswordLong, reason)

	// 24 Cyrillic letters are 48 bytes
	ok, _ = Registration("Ivan Ivanov", "ivan@test.ru", strings.Repeat("ж", 24), strings.Repeat("ж", 24))
	assert.True(t, ok)

	// 40 Cyrillic letters are 80 bytes
	ok, reason = UserUpdate("Ivan Ivanov", "ivan@test.ru", strings.Repeat("ж", 40))
	assert.False(t, ok)
	assert.Equal(t, MsgPasswordLong, reason)

	exact := strings.Repeat("p", 72)
	ok, _ = Registration("Ivan Ivanov", "ivan@test.ru", exact, exact)
	assert.True(t, ok)
}

func TestUserUpdate(t *testing.T) {
	ok, reason := UserUpdate("Ivan Petrov", "ivan@test.ru", "")
	assert.True(t, ok, reason)

	ok, reason = UserUpdate("Ivan Petrov", "ivan@test.ru", "newpassword456")
	assert.True(t, ok, reason)

	ok, reason = UserUpdate("Ivan Petrov", "ivan@test.ru", "short")
	assert.False(t, ok)
	assert.Equal(t, MsgPasswordShort, reason)

	ok, reason = UserUpdate("", "ivan@test.ru", "")
	assert.False(t, ok)
	assert.Equal(t, MsgNameEmailReq, reason)

	ok, reason = UserUpdate("Ivan", "bad-email", "")
	assert.False(t, ok)
	assert.Equal(t, MsgEmailFormat, reason)
}

func TestFlight(t *testing.T) {
	tests := []struct {
		name       string
		fields     [6]string
		wantOK     bool
		wantReason string
	}{
		{"valid", [6]string{"Moscow", "Kazan", "2026-12-20", "2026-12-20", "Aeroflot", "5000"}, true, MsgOK},
		{"departs today", [6]string{"Moscow", "Kazan", "2026-10-15", "2026-10-16", "Aeroflot", "5000"}, true, MsgOK},
		{"max price", [6]string{"Moscow", "Kazan", "2026-12-20", "2026-12-21", "Aeroflot", "1000000"}, true, MsgOK},
		{"missing field", [6]string{"Moscow", "Kazan", "2026-12-20", "2026-12-20", "", "5000"}, false, MsgRequiredFields},
		{"short departure", [6]string{" M ", "Kazan", "2026-12-20", "2026-12-20", "Aeroflot", "5000"}, false, MsgDepartureShort},
		{"short arrival", [6]string{"Moscow", "K", "2026-12-20", "2026-12-20", "Aeroflot", "5000"}, false, MsgArrivalShort},
		{"same cities", [6]string{"Moscow", " Moscow ", "2026-12-20", "2026-12-20", "Aeroflot", "5000"}, false, MsgSameCities},
		{"bad departure date", [6]string{"Moscow", "Kazan", "20.12.2026", "2026-12-20", "Aeroflot", "5000"}, false, MsgDateFormat},
		{"bad arrival date", [6]string{"Moscow", "Kazan", "2026-12-20", "2026-13-01", "Aeroflot", "5000"}, false, MsgDateFormat},
		{"past departure", [6]string{"Moscow", "Kazan", "2026-10-14", "2026-10-20", "Aeroflot", "5000"}, false, MsgDepartedPast},
		{"arrival before departure", [6]string{"Moscow", "Kazan", "2026-12-20", "2026-12-19", "Aeroflot", "5000"}, false, MsgArrivalBefore},
		{"short company", [6]string{"Moscow", "Kazan", "2026-12-20", "2026-12-20", "X", "5000"}, false, MsgCompanyShort},
		{"price not a number", [6]string{"Moscow", "Kazan", "2026-12-20", "2026-12-20", "Aeroflot", "abc"}, false, MsgPriceNumber},
		{"zero price", [6]string{"Moscow", "Kazan", "2026-12-20", "2026-12-20", "Aeroflot", "0"}, false, MsgPricePositive},
		{"negative price", [6]string{"Moscow", "Kazan", "2026-12-20", "2026-12-20", "Aeroflot", "-10"}, false, MsgPricePositive},
		{"price too high", [6]string{"Moscow", "Kazan", "2026-12-20", "2026-12-20", "Aeroflot", "1000001"}, false, MsgPriceTooHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.fields
			ok, reason := Flight(f[0], f[1], f[2], f[3], f[4], f[5], today)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestFlight_ShortCircuitOrder(t *testing.T) {
	ok, reason := Flight("Kazan", "Kazan", "garbage", "2000-01-01", "", "-1", today)
	assert.False(t, ok)
	assert.Equal(t, MsgRequiredFields, reason)

	ok, reason = Flight("Kazan", "Kazan", "garbage", "2000-01-01", "?", "-1", today)
	assert.False(t, ok)
	assert.Equal(t, MsgSameCities, reason)
}

func TestBooking(t *testing.T) {
	tests := []struct {
		name                        string
		passenger, userID, flightID string
		wantOK                      bool
		wantReason                  string
	}{
		{"valid", "Petr Petrov", "1", "2", true, MsgOK},
		{"missing flight", "Petr Petrov", "1", "", false, MsgAllRequired},
		{"short passenger", "P", "1", "2", false, MsgPassengerShort},
		{"long passenger", strings.Repeat("p", 101), "1", "2", false, MsgPassengerLong},
		{"non numeric user", "Petr Petrov", "abc", "2", false, MsgInvalidRef},
		{"non numeric flight", "Petr Petrov", "1", "2.5", false, MsgInvalidRef},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := Booking(tt.passenger, tt.userID, tt.flightID)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestParseIDs(t *testing.T) {
	ids, invalid := ParseIDs([]string{"1", " 2 ", "", "x7", "3"})

	assert.Equal(t, []int64{1, 2, 3}, ids)
	assert.Equal(t, []string{"x7"}, invalid)
}
