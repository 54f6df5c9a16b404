package users

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Domenick1991/airadmin/internal/domain"
	"github.com/Domenick1991/airadmin/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Page(ctx context.Context, page domain.PageRequest) ([]domain.User, int, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *MockUserRepository) All(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUnreferenced(ctx context.Context, ids []int64) (domain.BatchResult, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(domain.BatchResult), args.Error(1)
}

func TestUserService_List(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)
	ctx := context.Background()

	users := []domain.User{{ID: 1, Name: "Admin Adminov"}}
	mockRepo.On("Page", ctx, domain.PageRequest{Page: 0, Size: 10}).Return(users, 11, nil).Once()

	page, err := service.List(ctx, domain.PageRequest{})

	require.NoError(t, err)
	assert.Equal(t, users, page.Items)
	assert.Equal(t, 2, page.TotalPages)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Create(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Name == "Ivan Ivanov" &&
			u.Email == "ivan@mail.ru" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 5
	}).Return(nil).Once()

	user, err := service.Create(ctx, domain.SystemActor, RegisterInput{
		Name:            " Ivan Ivanov ",
		Email:           "ivan@mail.ru",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Create_PasswordMismatch(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)

	_, err := service.Create(context.Background(), domain.SystemActor, RegisterInput{
		Name:            "Ivan Ivanov",
		Email:           "ivan@mail.ru",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validate.MsgPasswordMatch, verr.Reason)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_LongPasswordRejected(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)
	ctx := context.Background()
	long := strings.Repeat("p", 80)

	_, err := service.Create(ctx, domain.SystemActor, RegisterInput{
		Name:            "Ivan Ivanov",
		Email:           "ivan@mail.ru",
		Password:        long,
		ConfirmPassword: long,
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validate.MsgPasswordLong, verr.Reason)

	mockRepo.On("GetByID", ctx, int64(2)).Return(&domain.User{ID: 2}, nil).Once()

	_, err = service.Update(ctx, domain.SystemActor, UpdateInput{
		ID: "2", Name: "Ivan Ivanov", Email: "ivan@mail.ru", Password: long,
	})

	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validate.MsgPasswordLong, verr.Reason)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)
	service.hash = func(s string) (string, error) { return "hashed:" + s, nil }
	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailExists).Once()

	_, err := service.Create(ctx, domain.SystemActor, RegisterInput{
		Name:            "Ivan Ivanov",
		Email:           "admin@mail.ru",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})

	assert.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestUserService_Update_KeepsPassword(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, int64(2)).Return(&domain.User{ID: 2}, nil).Once()
	mockRepo.On("Update", ctx, &domain.User{ID: 2, Name: "Petr", Email: "petr@mail.ru"}).Return(nil).Once()

	_, err := service.Update(ctx, domain.SystemActor, UpdateInput{ID: "2", Name: "Petr", Email: "petr@mail.ru"})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Update_RehashesPassword(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)
	service.hash = func(s string) (string, error) { return "hashed:" + s, nil }
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, int64(2)).Return(&domain.User{ID: 2}, nil).Once()
	mockRepo.On("Update", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.PasswordHash == "hashed:newpass"
	})).Return(nil).Once()

	_, err := service.Update(ctx, domain.SystemActor, UpdateInput{
		ID: "2", Name: "Petr", Email: "petr@mail.ru", Password: "newpass",
	})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Update_NotFound(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByID", ctx, int64(42)).Return(nil, domain.NotFound("user")).Once()

	_, err := service.Update(ctx, domain.SystemActor, UpdateInput{ID: "42", Name: "Petr", Email: "petr@mail.ru"})

	assert.EqualError(t, err, "user not found")
}

func TestUserService_Delete_Partial(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)
	ctx := context.Background()

	conflict := &domain.ConflictError{Entity: "user", ID: 3, Count: 1}
	repoResult := domain.BatchResult{
		Deleted:  []int64{1, 2},
		Failures: []domain.BatchFailure{{ID: "3", Reason: conflict.Error()}},
	}
	mockRepo.On("DeleteUnreferenced", ctx, []int64{1, 2, 3}).Return(repoResult, nil).Once()

	res, err := service.Delete(ctx, domain.SystemActor, []string{"1", "2", "3"})

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, res.Deleted)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "3", res.Failures[0].ID)
	assert.Equal(t, domain.BatchStatusPartial, res.Status())
	mockRepo.AssertExpectations(t)
}

func TestUserService_Delete_InvalidIDs(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)

	res, err := service.Delete(context.Background(), domain.SystemActor, []string{"abc"})

	require.NoError(t, err)
	assert.Empty(t, res.Deleted)
	assert.Equal(t, "invalid user id", res.Failures[0].Reason)
	assert.Equal(t, domain.BatchStatusError, res.Status())
	mockRepo.AssertNotCalled(t, "DeleteUnreferenced", mock.Anything, mock.Anything)
}

func TestUserService_Delete_Empty(t *testing.T) {
	service := NewUserService(&MockUserRepository{})

	_, err := service.Delete(context.Background(), domain.SystemActor, nil)

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestUserService_Delete_StorageError(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)
	ctx := context.Background()

	mockRepo.On("DeleteUnreferenced", ctx, []int64{1}).Return(domain.BatchResult{}, errors.New("disk I/O error")).Once()

	_, err := service.Delete(ctx, domain.SystemActor, []string{"1"})

	assert.EqualError(t, err, "disk I/O error")
}

func TestUserService_ResolveActor(t *testing.T) {
	mockRepo := &MockUserRepository{}
	service := NewUserService(mockRepo)
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "admin@mail.ru").Return(&domain.User{ID: 1, Name: "Admin Adminov"}, nil).Once()
	mockRepo.On("GetByEmail", ctx, "ghost@mail.ru").Return(nil, domain.NotFound("user")).Once()

	actor, err := service.ResolveActor(ctx, "admin@mail.ru")
	require.NoError(t, err)
	assert.Equal(t, domain.Actor{UserID: 1, Name: "Admin Adminov"}, actor)

	actor, err = service.ResolveActor(ctx, "ghost@mail.ru")
	require.NoError(t, err)
	assert.Equal(t, domain.SystemActor, actor)
}
