package services

import (
	"context"
	"errors"

	"usersvc/internal/domain"
	"usersvc/internal/repos"
	"usersvc/internal/validate"
)

// UserStore is the persistence the service needs. *repos.UserRepo implements it.
type UserStore interface {
	List(ctx context.Context) ([]domain.UserView, error)
	ByID(ctx context.Context, id int64) (domain.UserView, error)
	ByEmail(ctx context.Context, email string) (*domain.User, error)
	SearchByName(ctx context.Context, name string) ([]domain.UserView, error)
	Create(ctx context.Context, u domain.User) (int64, error)
	Update(ctx context.Context, id int64, patch domain.UserPatch) error
	Delete(ctx context.Context, id int64) error
}

type UserService struct {
	Users  UserStore
	Hasher PasswordHasher
}

func NewUserService(users UserStore, hasher PasswordHasher) *UserService {
	if hasher == nil {
		hasher = PrefixHasher{}
	}
	return &UserService{Users: users, Hasher: hasher}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.UserView, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, storage("list", err)
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (domain.UserView, error) {
	u, err := s.Users.ByID(ctx, id)
	if err != nil {
		return domain.UserView{}, mapStoreErr("get", err)
	}
	return u, nil
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (int64, error) {
	if !validate.Present(in.Name, in.Email, in.Password) {
		return 0, invalid("Invalid input")
	}
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return 0, storage("hash", err)
	}
	id, err := s.Users.Create(ctx, domain.User{Name: in.Name, Email: in.Email, Password: hash})
	if err != nil {
		return 0, mapStoreErr("create", err)
	}
	return id, nil
}

// UpdateUser changes name and/or email. The password has no update path.
func (s *UserService) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) error {
	if patch.Empty() {
		return invalid("No fields to update")
	}
	if err := s.Users.Update(ctx, id, patch); err != nil {
		return mapStoreErr("update", err)
	}
	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.Users.Delete(ctx, id); err != nil {
		return mapStoreErr("delete", err)
	}
	return nil
}

// SearchUsers returns ErrNoMatches for an empty result, unlike ListUsers.
func (s *UserService) SearchUsers(ctx context.Context, name string) ([]domain.UserView, error) {
	if !validate.Present(name) {
		return nil, invalid("Please provide a name to search")
	}
	users, err := s.Users.SearchByName(ctx, name)
	if err != nil {
		return nil, storage("search", err)
	}
	if len(users) == 0 {
		return nil, ErrNoMatches
	}
	return users, nil
}

func mapStoreErr(op string, err error) error {
	switch {
	case errors.Is(err, repos.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repos.ErrDuplicate):
		return ErrEmailExists
	}
	return storage(op, err)
}

func storage(op string, err error) error { return &StorageError{Op: op, Err: err} }
