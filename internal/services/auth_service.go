package services

import (
	"context"
	"errors"

	"usersvc/internal/repos"
	"usersvc/internal/validate"
)

// Login returns the id of the user owning email when password matches.
// An unknown email and a wrong password both yield ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (int64, error) {
	if !validate.Present(email, password) {
		return 0, invalid("Invalid input")
	}
	u, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return 0, ErrInvalidCredentials
		}
		return 0, storage("login", err)
	}
	if !s.Hasher.Verify(password, u.Password) {
		return 0, ErrInvalidCredentials
	}
	return u.ID, nil
}
