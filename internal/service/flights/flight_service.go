package flights

import (
	"context"
	"strings"
	"time"

	"github.com/Domenick1991/airadmin/internal/domain"
	"github.com/Domenick1991/airadmin/internal/repository"
	"github.com/Domenick1991/airadmin/internal/service/events"
	"github.com/Domenick1991/airadmin/internal/validate"
)

type FlightUseCase interface {
	List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Flight], error)
	All(ctx context.Context) ([]domain.Flight, error)
	Create(ctx context.Context, actor domain.Actor, input FlightInput) (*domain.Flight, error)
	Update(ctx context.Context, actor domain.Actor, input FlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

// FlightInput holds the raw submitted fields. ID is ignored on create.
type FlightInput struct {
	ID            string
	DepartureCity string
	ArrivalCity   string
	DepartureDate string
	ArrivalDate   string
	Company       string
	Price         string
}

type FlightService struct {
	repo     repository.FlightRepository
	events   *events.Emitter
	now      func() time.Time
	pageSize int
}

type Option func(*FlightService)

func WithEvents(e *events.Emitter) Option {
	return func(s *FlightService) {
		s.events = e
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *FlightService) {
		s.now = now
	}
}

func WithPageSize(size int) Option {
	return func(s *FlightService) {
		s.pageSize = size
	}
}

func NewFlightService(repo repository.FlightRepository, opts ...Option) *FlightService {
	s := &FlightService{repo: repo, now: time.Now, pageSize: domain.DefaultPageSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FlightService) List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Flight], error) {
	if page.Size <= 0 {
		page.Size = s.pageSize
	}
	page = page.Normalize()

	flights, total, err := s.repo.Page(ctx, page)
	if err != nil {
		return domain.Page[domain.Flight]{}, err
	}
	return domain.Page[domain.Flight]{
		Items:       flights,
		CurrentPage: page.Page,
		TotalPages:  domain.TotalPages(total, page.Size),
	}, nil
}

func (s *FlightService) All(ctx context.Context) ([]domain.Flight, error) {
	return s.repo.All(ctx)
}

func (s *FlightService) Create(ctx context.Context, actor domain.Actor, input FlightInput) (*domain.Flight, error) {
	flight, err := s.parse(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}

	s.events.Emit(ctx, actor, "flight_created", "flight", flight.ID)
	return flight, nil
}

func (s *FlightService) Update(ctx context.Context, actor domain.Actor, input FlightInput) (*domain.Flight, error) {
	id, err := parseFlightID(input.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	flight, err := s.parse(input)
	if err != nil {
		return nil, err
	}
	flight.ID = id

	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, err
	}

	s.events.Emit(ctx, actor, "flight_updated", "flight", id)
	return flight, nil
}

// Delete removes a flight that no booking references.
func (s *FlightService) Delete(ctx context.Context, actor domain.Actor, rawID string) error {
	id, err := parseFlightID(rawID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteUnreferenced(ctx, id); err != nil {
		return err
	}

	s.events.Emit(ctx, actor, "flight_deleted", "flight", id)
	return nil
}

func (s *FlightService) parse(in FlightInput) (*domain.Flight, error) {
	ok, reason := validate.Flight(in.DepartureCity, in.ArrivalCity, in.DepartureDate, in.ArrivalDate, in.Company, in.Price, s.now())
	if !ok {
		return nil, domain.NewValidationError(reason)
	}

	// accepted input always parses
	dep, _ := validate.ParseDate(in.DepartureDate)
	arr, _ := validate.ParseDate(in.ArrivalDate)
	price, _ := validate.ParsePrice(in.Price)

	return &domain.Flight{
		DepartureCity: strings.TrimSpace(in.DepartureCity),
		ArrivalCity:   strings.TrimSpace(in.ArrivalCity),
		DepartureDate: dep,
		ArrivalDate:   arr,
		Company:       strings.TrimSpace(in.Company),
		Price:         price,
	}, nil
}

func parseFlightID(raw string) (int64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, domain.NewValidationError("flight id is required")
	}
	id, err := validate.ParseID(raw)
	if err != nil {
		return 0, domain.NotFound("flight")
	}
	return id, nil
}

var _ FlightUseCase = (*FlightService)(nil)
