package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Domenick1991/airadmin/internal/domain"
)

type BookingRepository interface {
	Page(ctx context.Context, page domain.PageRequest) ([]domain.BookingView, int, error)
	Recent(ctx context.Context, limit int) ([]domain.BookingView, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) error
	// Update changes the user, flight and passenger. The booking date is kept.
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, ids []int64) (domain.BatchResult, error)
}

type SQLBookingRepository struct {
	db *DB
}

func NewBookingRepository(db *DB) BookingRepository {
	return &SQLBookingRepository{db: db}
}

const bookingViewQuery = `SELECT
		b.id, b.user_id, b.flight_id, b.passenger_name, b.booking_date,
		u.name, u.email,
		f.departure_city, f.arrival_city, f.departure_date, f.arrival_date, f.company, f.price
	FROM booking b
	JOIN users u ON b.user_id = u.id
	JOIN flights f ON b.flight_id = f.id
	ORDER BY b.booking_date DESC, b.id DESC
	LIMIT ? OFFSET ?`

func (r *SQLBookingRepository) Page(ctx context.Context, page domain.PageRequest) ([]domain.BookingView, int, error) {
	page = page.Normalize()

	views, err := r.views(ctx, page.Size, page.Offset())
	if err != nil {
		return nil, 0, err
	}

	total, err := r.db.CountRows(ctx, TableBookings)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (r *SQLBookingRepository) Recent(ctx context.Context, limit int) ([]domain.BookingView, error) {
	return r.views(ctx, limit, 0)
}

func (r *SQLBookingRepository) views(ctx context.Context, limit, offset int) ([]domain.BookingView, error) {
	rows, err := r.db.query(ctx, bookingViewQuery, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	views := make([]domain.BookingView, 0)
	for rows.Next() {
		v, err := scanBookingView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *SQLBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.queryRow(ctx, `SELECT id, user_id, flight_id, passenger_name, booking_date FROM booking WHERE id = ?`, id)

	var (
		b      domain.Booking
		bookAt string
	)
	if err := row.Scan(&b.ID, &b.UserID, &b.FlightID, &b.PassengerName, &bookAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("booking")
		}
		return nil, fmt.Errorf("get booking %d: %w", id, err)
	}

	var err error
	if b.BookingDate, err = parseTimestamp(bookAt); err != nil {
		return nil, fmt.Errorf("booking %d date: %w", id, err)
	}
	return &b, nil
}

func (r *SQLBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	err := r.db.queryRow(ctx, `INSERT INTO booking (user_id, flight_id, passenger_name, booking_date)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		booking.UserID, booking.FlightID, booking.PassengerName, formatTimestamp(booking.BookingDate)).
		Scan(&booking.ID)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *SQLBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	res, err := r.db.exec(ctx, `UPDATE booking SET user_id = ?, flight_id = ?, passenger_name = ? WHERE id = ?`,
		booking.UserID, booking.FlightID, booking.PassengerName, booking.ID)
	if err != nil {
		return fmt.Errorf("update booking %d: %w", booking.ID, err)
	}
	return requireAffected(res, "booking")
}

// Delete removes bookings unconditionally. Unknown ids are reported.
func (r *SQLBookingRepository) Delete(ctx context.Context, ids []int64) (domain.BatchResult, error) {
	return r.db.deleteEach(ctx, ids, func(ctx context.Context, tx *sql.Tx, id int64) error {
		return r.db.guardedDelete(ctx, tx, TableBookings, "booking", "", id)
	})
}

func scanBookingView(row scannable) (domain.BookingView, error) {
	var (
		v                domain.BookingView
		bookAt, dep, arr string
	)
	err := row.Scan(
		&v.ID, &v.UserID, &v.FlightID, &v.PassengerName, &bookAt,
		&v.UserName, &v.UserEmail,
		&v.DepartureCity, &v.ArrivalCity, &dep, &arr, &v.Company, &v.Price,
	)
	if err != nil {
		return domain.BookingView{}, err
	}

	if v.BookingDate, err = parseTimestamp(bookAt); err != nil {
		return domain.BookingView{}, err
	}
	if v.DepartureDate, err = parseDate(dep); err != nil {
		return domain.BookingView{}, err
	}
	if v.ArrivalDate, err = parseDate(arr); err != nil {
		return domain.BookingView{}, err
	}
	return v, nil
}

var _ BookingRepository = (*SQLBookingRepository)(nil)
