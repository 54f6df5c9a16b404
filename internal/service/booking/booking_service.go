package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Domenick1991/airadmin/internal/domain"
	"github.com/Domenick1991/airadmin/internal/repository"
	"github.com/Domenick1991/airadmin/internal/service/events"
	"github.com/Domenick1991/airadmin/internal/validate"
)

type BookingUseCase interface {
	List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.BookingView], error)
	Options(ctx context.Context) (FormOptions, error)
	Create(ctx context.Context, actor domain.Actor, input BookingInput) (*domain.Booking, error)
	Update(ctx context.Context, actor domain.Actor, input BookingInput) (*domain.Booking, error)
	Delete(ctx context.Context, actor domain.Actor, ids []string) (domain.BatchResult, error)
}

// BookingInput holds the submitted form fields. ID is ignored on create.
type BookingInput struct {
	ID            string
	UserID        string
	FlightID      string
	PassengerName string
}

// FormOptions lists what a booking can reference.
type FormOptions struct {
	Users   []domain.User   `json:"users"`
	Flights []domain.Flight `json:"flights"`
}

type BookingService struct {
	bookings repository.BookingRepository
	users    repository.UserRepository
	flights  repository.FlightRepository
	events   *events.Emitter
	now      func() time.Time
	pageSize int
}

type BookingServiceOption func(*BookingService)

func WithEvents(e *events.Emitter) BookingServiceOption {
	return func(s *BookingService) {
		s.events = e
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithPageSize(size int) BookingServiceOption {
	return func(s *BookingService) {
		s.pageSize = size
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	users repository.UserRepository,
	flights repository.FlightRepository,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings: bookings,
		users:    users,
		flights:  flights,
		now:      time.Now,
		pageSize: domain.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.BookingView], error) {
	if page.Size <= 0 {
		page.Size = s.pageSize
	}
	page = page.Normalize()

	views, total, err := s.bookings.Page(ctx, page)
	if err != nil {
		return domain.Page[domain.BookingView]{}, err
	}
	return domain.Page[domain.BookingView]{
		Items:       views,
		CurrentPage: page.Page,
		TotalPages:  domain.TotalPages(total, page.Size),
	}, nil
}

func (s *BookingService) Options(ctx context.Context) (FormOptions, error) {
	users, err := s.users.All(ctx)
	if err != nil {
		return FormOptions{}, err
	}
	flights, err := s.flights.All(ctx)
	if err != nil {
		return FormOptions{}, err
	}
	return FormOptions{Users: users, Flights: flights}, nil
}

func (s *BookingService) Create(ctx context.Context, actor domain.Actor, input BookingInput) (*domain.Booking, error) {
	booking, err := s.parse(ctx, input)
	if err != nil {
		return nil, err
	}
	booking.BookingDate = s.now().UTC().Truncate(time.Second)

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.events.Emit(ctx, actor, "booking_created", "booking", booking.ID)
	return booking, nil
}

// Update replaces user, flight and passenger. The booking date stays as it
// was recorded at creation.
func (s *BookingService) Update(ctx context.Context, actor domain.Actor, input BookingInput) (*domain.Booking, error) {
	if strings.TrimSpace(input.ID) == "" {
		return nil, domain.NewValidationError("booking id is required")
	}
	id, err := validate.ParseID(input.ID)
	if err != nil {
		return nil, domain.NotFound("booking")
	}
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	booking, err := s.parse(ctx, input)
	if err != nil {
		return nil, err
	}
	booking.ID = id
	booking.BookingDate = current.BookingDate

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.events.Emit(ctx, actor, "booking_updated", "booking", id)
	return booking, nil
}

func (s *BookingService) Delete(ctx context.Context, actor domain.Actor, rawIDs []string) (domain.BatchResult, error) {
	ids, invalid := validate.ParseIDs(rawIDs)
	if len(ids) == 0 && len(invalid) == 0 {
		return domain.BatchResult{}, domain.NewValidationError("no bookings selected")
	}

	res := domain.BatchResult{Deleted: []int64{}, Failures: []domain.BatchFailure{}}
	for _, raw := range invalid {
		res.Fail(raw, errors.New("invalid booking id"))
	}

	if len(ids) > 0 {
		deleted, err := s.bookings.Delete(ctx, ids)
		if err != nil {
			return domain.BatchResult{}, err
		}
		res.Deleted = append(res.Deleted, deleted.Deleted...)
		res.Failures = append(res.Failures, deleted.Failures...)
	}

	if len(res.Deleted) > 0 {
		s.events.Emit(ctx, actor, "booking_deleted", "booking", res.Deleted...)
	}
	return res, nil
}

// parse validates the input and checks that the referenced user and flight exist.
func (s *BookingService) parse(ctx context.Context, input BookingInput) (*domain.Booking, error) {
	if ok, reason := validate.Booking(input.PassengerName, input.UserID, input.FlightID); !ok {
		return nil, domain.NewValidationError(reason)
	}
	userID, _ := validate.ParseID(input.UserID)
	flightID, _ := validate.ParseID(input.FlightID)

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.flights.GetByID(ctx, flightID); err != nil {
		return nil, err
	}

	return &domain.Booking{
		UserID:        userID,
		FlightID:      flightID,
		PassengerName: strings.TrimSpace(input.PassengerName),
	}, nil
}

var _ BookingUseCase = (*BookingService)(nil)
