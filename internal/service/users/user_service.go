package users

import (
	"context"
	"errors"
	"strings"

	"github.com/Domenick1991/airadmin/internal/domain"
	"github.com/Domenick1991/airadmin/internal/password"
	"github.com/Domenick1991/airadmin/internal/repository"
	"github.com/Domenick1991/airadmin/internal/service/events"
	"github.com/Domenick1991/airadmin/internal/validate"
)

type UserUseCase interface {
	List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.User], error)
	All(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, actor domain.Actor, input RegisterInput) (*domain.User, error)
	Update(ctx context.Context, actor domain.Actor, input UpdateInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Actor, ids []string) (domain.BatchResult, error)
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// UpdateInput changes name and email. An empty Password keeps the current one.
type UpdateInput struct {
	ID       string
	Name     string
	Email    string
	Password string
}

type UserService struct {
	repo     repository.UserRepository
	events   *events.Emitter
	hash     func(string) (string, error)
	pageSize int
}

type Option func(*UserService)

func WithEvents(e *events.Emitter) Option {
	return func(s *UserService) {
		s.events = e
	}
}

func WithPageSize(size int) Option {
	return func(s *UserService) {
		s.pageSize = size
	}
}

func NewUserService(repo repository.UserRepository, opts ...Option) *UserService {
	s := &UserService{repo: repo, hash: password.Hash, pageSize: domain.DefaultPageSize}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *UserService) List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.User], error) {
	if page.Size <= 0 {
		page.Size = s.pageSize
	}
	page = page.Normalize()

	users, total, err := s.repo.Page(ctx, page)
	if err != nil {
		return domain.Page[domain.User]{}, err
	}
	return domain.Page[domain.User]{
		Items:       users,
		CurrentPage: page.Page,
		TotalPages:  domain.TotalPages(total, page.Size),
	}, nil
}

func (s *UserService) All(ctx context.Context) ([]domain.User, error) {
	return s.repo.All(ctx)
}

func (s *UserService) Create(ctx context.Context, actor domain.Actor, input RegisterInput) (*domain.User, error) {
	if ok, reason := validate.Registration(input.Name, input.Email, input.Password, input.ConfirmPassword); !ok {
		return nil, domain.NewValidationError(reason)
	}

	hash, err := s.hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.events.Emit(ctx, actor, "user_created", "user", user.ID)
	return user, nil
}

func (s *UserService) Update(ctx context.Context, actor domain.Actor, input UpdateInput) (*domain.User, error) {
	if strings.TrimSpace(input.ID) == "" {
		return nil, domain.NewValidationError("user id is required")
	}
	id, err := validate.ParseID(input.ID)
	if err != nil {
		return nil, domain.NotFound("user")
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if ok, reason := validate.UserUpdate(input.Name, input.Email, input.Password); !ok {
		return nil, domain.NewValidationError(reason)
	}

	user := &domain.User{
		ID:    id,
		Name:  strings.TrimSpace(input.Name),
		Email: strings.TrimSpace(input.Email),
	}
	if input.Password != "" {
		if user.PasswordHash, err = s.hash(input.Password); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.events.Emit(ctx, actor, "user_updated", "user", id)
	return user, nil
}

// Delete removes each listed user that exists and has no bookings. Failed
// ids are reported in the result and do not stop the others.
func (s *UserService) Delete(ctx context.Context, actor domain.Actor, rawIDs []string) (domain.BatchResult, error) {
	ids, invalid := validate.ParseIDs(rawIDs)
	if len(ids) == 0 && len(invalid) == 0 {
		return domain.BatchResult{}, domain.NewValidationError("no users selected")
	}

	res := domain.BatchResult{Deleted: []int64{}, Failures: []domain.BatchFailure{}}
	for _, raw := range invalid {
		res.Fail(raw, errors.New("invalid user id"))
	}

	if len(ids) > 0 {
		deleted, err := s.repo.DeleteUnreferenced(ctx, ids)
		if err != nil {
			return domain.BatchResult{}, err
		}
		res.Deleted = append(res.Deleted, deleted.Deleted...)
		res.Failures = append(res.Failures, deleted.Failures...)
	}

	if len(res.Deleted) > 0 {
		s.events.Emit(ctx, actor, "user_deleted", "user", res.Deleted...)
	}
	return res, nil
}

// ResolveActor maps the configured admin email to the identity mutations are
// recorded under. Unknown emails resolve to domain.SystemActor.
func (s *UserService) ResolveActor(ctx context.Context, email string) (domain.Actor, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.SystemActor, nil
	}
	if err != nil {
		return domain.SystemActor, err
	}
	return domain.Actor{UserID: user.ID, Name: user.Name}, nil
}

var _ UserUseCase = (*UserService)(nil)
