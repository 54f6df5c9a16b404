package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/airadmin/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCounter struct {
	mock.Mock
}

func (m *MockCounter) CountRows(ctx context.Context, table string) (int, error) {
	args := m.Called(ctx, table)
	return args.Int(0), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Page(ctx context.Context, page domain.PageRequest) ([]domain.BookingView, int, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.BookingView), args.Int(1), args.Error(2)
}

func (m *MockBookingRepository) Recent(ctx context.Context, limit int) ([]domain.BookingView, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.BookingView), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, ids []int64) (domain.BatchResult, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(domain.BatchResult), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dashboard), args.Error(1)
}

func (m *MockCache) SetDashboard(ctx context.Context, d domain.Dashboard) error {
	return m.Called(ctx, d).Error(0)
}

func expectCounts(ctx context.Context, c *MockCounter) {
	c.On("CountRows", ctx, "flights").Return(3, nil).Once()
	c.On("CountRows", ctx, "users").Return(2, nil).Once()
	c.On("CountRows", ctx, "booking").Return(1, nil).Once()
}

func TestDashboardService_Summary_CacheMiss(t *testing.T) {
	counter := &MockCounter{}
	bookings := &MockBookingRepository{}
	cache := &MockCache{}
	service := NewDashboardService(counter, bookings, zap.NewNop(), WithCache(cache))
	ctx := context.Background()

	recent := []domain.BookingView{{Booking: domain.Booking{ID: 1}}}
	want := domain.Dashboard{Flights: 3, Users: 2, Bookings: 1, RecentBookings: recent}

	cache.On("GetDashboard", ctx).Return(nil, nil).Once()
	expectCounts(ctx, counter)
	bookings.On("Recent", ctx, RecentLimit).Return(recent, nil).Once()
	cache.On("SetDashboard", ctx, want).Return(nil).Once()

	got, err := service.Summary(ctx)

	require.NoError(t, err)
	assert.Equal(t, want, got)
	cache.AssertExpectations(t)
	counter.AssertExpectations(t)
}

func TestDashboardService_Summary_CacheHit(t *testing.T) {
	counter := &MockCounter{}
	bookings := &MockBookingRepository{}
	cache := &MockCache{}
	service := NewDashboardService(counter, bookings, zap.NewNop(), WithCache(cache))
	ctx := context.Background()

	cached := &domain.Dashboard{Flights: 10}
	cache.On("GetDashboard", ctx).Return(cached, nil).Once()

	got, err := service.Summary(ctx)

	require.NoError(t, err)
	assert.Equal(t, 10, got.Flights)
	counter.AssertNotCalled(t, "CountRows", mock.Anything, mock.Anything)
	bookings.AssertNotCalled(t, "Recent", mock.Anything, mock.Anything)
}

func TestDashboardService_Summary_CacheErrorFallsThrough(t *testing.T) {
	counter := &MockCounter{}
	bookings := &MockBookingRepository{}
	cache := &MockCache{}
	service := NewDashboardService(counter, bookings, zap.NewNop(), WithCache(cache))
	ctx := context.Background()

	cache.On("GetDashboard", ctx).Return(nil, errors.New("redis down")).Once()
	expectCounts(ctx, counter)
	bookings.On("Recent", ctx, RecentLimit).Return([]domain.BookingView{}, nil).Once()
	cache.On("SetDashboard", ctx, mock.Anything).Return(errors.New("redis down")).Once()

	got, err := service.Summary(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, got.Flights)
}

func TestDashboardService_Summary_NoCache(t *testing.T) {
	counter := &MockCounter{}
	bookings := &MockBookingRepository{}
	service := NewDashboardService(counter, bookings, zap.NewNop())
	ctx := context.Background()

	counter.On("CountRows", ctx, "flights").Return(0, errors.New("database is locked")).Once()

	_, err := service.Summary(ctx)

	assert.EqualError(t, err, "database is locked")
}
