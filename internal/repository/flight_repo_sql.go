package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Domenick1991/airadmin/internal/domain"
)

type FlightRepository interface {
	Page(ctx context.Context, page domain.PageRequest) ([]domain.Flight, int, error)
	All(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	DeleteUnreferenced(ctx context.Context, id int64) error
}

type SQLFlightRepository struct {
	db *DB
}

func NewFlightRepository(db *DB) FlightRepository {
	return &SQLFlightRepository{db: db}
}

const flightColumns = `id, departure_city, arrival_city, departure_date, arrival_date, company, price`

// Page returns one page of flights ordered by departure date and city, plus
// the total number of flights.
func (r *SQLFlightRepository) Page(ctx context.Context, page domain.PageRequest) ([]domain.Flight, int, error) {
	page = page.Normalize()

	rows, err := r.db.query(ctx, `SELECT `+flightColumns+` FROM flights
		ORDER BY departure_date, departure_city, id
		LIMIT ? OFFSET ?`, page.Size, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list flights: %w", err)
	}
	flights, err := scanFlights(rows)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.db.CountRows(ctx, TableFlights)
	if err != nil {
		return nil, 0, err
	}
	return flights, total, nil
}

func (r *SQLFlightRepository) All(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_date, departure_city, id`)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	return scanFlights(rows)
}

func (r *SQLFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.queryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id = ?`, id)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("flight")
		}
		return nil, fmt.Errorf("get flight %d: %w", id, err)
	}
	return &f, nil
}

func (r *SQLFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := r.db.queryRow(ctx, `INSERT INTO flights (departure_city, arrival_city, departure_date, arrival_date, company, price)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		flight.DepartureCity, flight.ArrivalCity, formatDate(flight.DepartureDate), formatDate(flight.ArrivalDate), flight.Company, flight.Price).
		Scan(&flight.ID)
	if err != nil {
		return fmt.Errorf("insert flight: %w", err)
	}
	return nil
}

func (r *SQLFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	res, err := r.db.exec(ctx, `UPDATE flights SET
		departure_city = ?, arrival_city = ?, departure_date = ?, arrival_date = ?, company = ?, price = ?
		WHERE id = ?`,
		flight.DepartureCity, flight.ArrivalCity, formatDate(flight.DepartureDate), formatDate(flight.ArrivalDate), flight.Company, flight.Price, flight.ID)
	if err != nil {
		return fmt.Errorf("update flight %d: %w", flight.ID, err)
	}
	return requireAffected(res, "flight")
}

// DeleteUnreferenced removes a flight unless bookings still point at it, in
// which case a *domain.ConflictError carrying the booking count is returned
// and nothing is deleted.
func (r *SQLFlightRepository) DeleteUnreferenced(ctx context.Context, id int64) error {
	return r.db.inTx(ctx, func(tx *sql.Tx) error {
		return r.db.guardedDelete(ctx, tx, TableFlights, "flight", "flight_id", id)
	})
}

func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFound(entity)
	}
	return nil
}

func scanFlights(rows *sql.Rows) ([]domain.Flight, error) {
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func scanFlight(row scannable) (domain.Flight, error) {
	var (
		f        domain.Flight
		dep, arr string
	)
	if err := row.Scan(&f.ID, &f.DepartureCity, &f.ArrivalCity, &dep, &arr, &f.Company, &f.Price); err != nil {
		return domain.Flight{}, err
	}

	var err error
	if f.DepartureDate, err = parseDate(dep); err != nil {
		return domain.Flight{}, fmt.Errorf("flight %d departure date: %w", f.ID, err)
	}
	if f.ArrivalDate, err = parseDate(arr); err != nil {
		return domain.Flight{}, fmt.Errorf("flight %d arrival date: %w", f.ID, err)
	}
	return f, nil
}

var _ FlightRepository = (*SQLFlightRepository)(nil)
