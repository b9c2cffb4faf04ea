package repos

import (
	"context"
	"fmt"

	"usersvc/internal/domain"

	"github.com/jmoiron/sqlx"
)

const (
	updateUserName      = `UPDATE users SET name = ? WHERE id = ?`
	updateUserEmail     = `UPDATE users SET email = ? WHERE id = ?`
	updateUserNameEmail = `UPDATE users SET name = ?, email = ? WHERE id = ?`
)

// UserRepo runs every call on its own connection taken from the Connector
// and gives it back before returning.
type UserRepo struct{ db Connector }

func NewUserRepo(db Connector) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) withConn(ctx context.Context, fn func(conn *sqlx.Conn) error) error {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()
	return fn(conn)
}

// withTx wraps a single write in an explicitly committed transaction.
func (r *UserRepo) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	return r.withConn(ctx, func(conn *sqlx.Conn) error {
		tx, err := conn.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if err := fn(tx); err != nil {
			return err
		}
		return tx.Commit()
	})
}

// List returns every user in the store's scan order, never a nil slice.
func (r *UserRepo) List(ctx context.Context) ([]domain.UserView, error) {
	var out []domain.UserView
	err := r.withConn(ctx, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &out, `SELECT id, name, email FROM users`)
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.UserView{}
	}
	return out, nil
}

func (r *UserRepo) ByID(ctx context.Context, id int64) (domain.UserView, error) {
	var u domain.UserView
	err := r.withConn(ctx, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &u, conn.Rebind(`SELECT id, name, email FROM users WHERE id = ?`), id)
	})
	return u, classify(err)
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.withConn(ctx, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &u, conn.Rebind(`SELECT id, name, email, password FROM users WHERE email = ?`), email)
	})
	if err != nil {
		return nil, classify(err)
	}
	return &u, nil
}

// SearchByName matches name anywhere in the column. Case folding is whatever LIKE does on the store.
func (r *UserRepo) SearchByName(ctx context.Context, name string) ([]domain.UserView, error) {
	var out []domain.UserView
	err := r.withConn(ctx, func(conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &out, conn.Rebind(`SELECT id, name, email FROM users WHERE name LIKE ?`), "%"+name+"%")
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.UserView{}
	}
	return out, nil
}

// Create inserts a user and returns the id assigned by the store.
func (r *UserRepo) Create(ctx context.Context, u domain.User) (int64, error) {
	var id int64
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		return tx.GetContext(ctx, &id,
			tx.Rebind(`INSERT INTO users (name, email, password) VALUES (?, ?, ?) RETURNING id`),
			u.Name, u.Email, u.Password)
	})
	if err != nil {
		return 0, classify(err)
	}
	return id, nil
}

// Update applies patch to the row with the given id. Password is not reachable from here.
func (r *UserRepo) Update(ctx context.Context, id int64, patch domain.UserPatch) error {
	query, args, ok := updateStatement(id, patch)
	if !ok {
		return fmt.Errorf("update user %d: empty patch", id)
	}
	return r.execAffecting(ctx, query, args...)
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	return r.execAffecting(ctx, `DELETE FROM users WHERE id = ?`, id)
}

// execAffecting runs a write and reports ErrNotFound when it touched no rows.
func (r *UserRepo) execAffecting(ctx context.Context, query string, args ...any) error {
	var n int64
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return classify(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// updateStatement picks one of the fixed update statements from which fields
// of patch are set. ok is false when nothing is set.
func updateStatement(id int64, patch domain.UserPatch) (query string, args []any, ok bool) {
	switch {
	case patch.Name != nil && patch.Email != nil:
		return updateUserNameEmail, []any{*patch.Name, *patch.Email, id}, true
	case patch.Name != nil:
		return updateUserName, []any{*patch.Name, id}, true
	case patch.Email != nil:
		return updateUserEmail, []any{*patch.Email, id}, true
	}
	return "", nil, false
}
