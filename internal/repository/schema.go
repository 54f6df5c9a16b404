package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airadmin/internal/password"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS flights (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		departure_city TEXT NOT NULL,
		arrival_city TEXT NOT NULL,
		departure_date TEXT NOT NULL,
		arrival_date TEXT NOT NULL,
		company TEXT NOT NULL,
		price INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS booking (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		flight_id INTEGER NOT NULL REFERENCES flights(id),
		passenger_name TEXT NOT NULL,
		booking_date TEXT NOT NULL
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS flights (
		id BIGSERIAL PRIMARY KEY,
		departure_city TEXT NOT NULL,
		arrival_city TEXT NOT NULL,
		departure_date TEXT NOT NULL,
		arrival_date TEXT NOT NULL,
		company TEXT NOT NULL,
		price BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS booking (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		flight_id BIGINT NOT NULL REFERENCES flights(id),
		passenger_name TEXT NOT NULL,
		booking_date TEXT NOT NULL
	)`,
}

// EnsureSchema creates the tables that do not exist yet.
func (d *DB) EnsureSchema(ctx context.Context) error {
	stmts := sqliteSchema
	if d.dialect == DialectPostgres {
		stmts = postgresSchema
	}
	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

const (
	SeedAdminName     = "Admin Adminov"
	SeedAdminEmail    = "admin@mail.ru"
	SeedAdminPassword = "admin123"
)

type seedFlight struct {
	from, to, dep, arr, company string
	price                       int64
}

var seedFlights = []seedFlight{
	{"Moscow", "Saint Petersburg", "2026-12-20", "2026-12-20", "Aeroflot", 5000},
	{"Moscow", "Sochi", "2026-12-21", "2026-12-21", "S7 Airlines", 7000},
	{"Saint Petersburg", "Moscow", "2026-12-22", "2026-12-22", "Pobeda", 4500},
}

// Seed inserts the admin account and sample flights into empty tables.
// It reports whether anything was inserted.
func (d *DB) Seed(ctx context.Context) (bool, error) {
	seeded := false

	users, err := d.CountRows(ctx, TableUsers)
	if err != nil {
		return false, err
	}
	if users == 0 {
		hash, err := password.Hash(SeedAdminPassword)
		if err != nil {
			return false, fmt.Errorf("hash admin password: %w", err)
		}
		if _, err := d.exec(ctx, `INSERT INTO users (name, email, password) VALUES (?, ?, ?)`,
			SeedAdminName, SeedAdminEmail, hash); err != nil {
			return false, fmt.Errorf("seed users: %w", err)
		}
		seeded = true
	}

	flights, err := d.CountRows(ctx, TableFlights)
	if err != nil {
		return seeded, err
	}
	if flights == 0 {
		for _, f := range seedFlights {
			if _, err := d.exec(ctx, `INSERT INTO flights (departure_city, arrival_city, departure_date, arrival_date, company, price) VALUES (?, ?, ?, ?, ?, ?)`,
				f.from, f.to, f.dep, f.arr, f.company, f.price); err != nil {
				return seeded, fmt.Errorf("seed flights: %w", err)
			}
		}
		seeded = true
	}

	return seeded, nil
}
