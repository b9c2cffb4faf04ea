package handlers

import (
	"usersvc/internal/config"
	"usersvc/internal/repos"
	"usersvc/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	UserHandler   *UserHandler
	HealthHandler *HealthHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) (*Deps, error) {
	hasher, err := services.NewPasswordHasher(cfg.PasswordScheme)
	if err != nil {
		return nil, err
	}
	userRepo := repos.NewUserRepo(db)
	userSvc := services.NewUserService(userRepo, hasher)

	return &Deps{
		UserHandler:   &UserHandler{Users: userSvc},
		HealthHandler: &HealthHandler{DB: db},
	}, nil
}
