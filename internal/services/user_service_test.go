package services_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usersvc/internal/domain"
	"usersvc/internal/repos"
	"usersvc/internal/services"
)

func newService(t *testing.T, hasher services.PasswordHasher) *services.UserService {
	t.Helper()
	db, err := repos.OpenDB(repos.DriverSQLite, filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, repos.Migrate(context.Background(), db, repos.MigrateUp))
	return services.NewUserService(repos.NewUserRepo(db), hasher)
}

func strp(s string) *string { return &s }

func TestCreateUser_RequiresAllFields(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	for _, in := range []services.CreateUserInput{
		{Email: "a@x.test", Password: "p"},
		{Name: "A", Password: "p"},
		{Name: "A", Email: "a@x.test"},
		{},
	} {
		_, err := svc.CreateUser(ctx, in)
		var verr *services.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Invalid input", verr.Msg)
	}

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCreateUser_DistinctIDsAndConflict(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	seen := map[int64]bool{}
	for _, email := range []string{"a@x.test", "b@x.test", "c@x.test"} {
		id, err := svc.CreateUser(ctx, services.CreateUserInput{Name: "N", Email: email, Password: "pw"})
		require.NoError(t, err)
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true

		got, err := svc.GetUser(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, email, got.Email)
	}

	_, err := svc.CreateUser(ctx, services.CreateUserInput{Name: "Other", Email: "a@x.test", Password: "pw"})
	assert.ErrorIs(t, err, services.ErrEmailExists)
}

func TestUpdateUser(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()
	id, err := svc.CreateUser(ctx, services.CreateUserInput{Name: "Eve", Email: "eve@x.test", Password: "pw"})
	require.NoError(t, err)

	var verr *services.ValidationError
	require.ErrorAs(t, svc.UpdateUser(ctx, id, domain.UserPatch{}), &verr)
	assert.Equal(t, "No fields to update", verr.Msg)

	assert.ErrorIs(t, svc.UpdateUser(ctx, id+100, domain.UserPatch{Name: strp("x")}), services.ErrNotFound)

	require.NoError(t, svc.UpdateUser(ctx, id, domain.UserPatch{Name: strp("Evelyn"), Email: strp("evelyn@x.test")}))
	got, err := svc.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.UserView{ID: id, Name: "Evelyn", Email: "evelyn@x.test"}, got)

	// password is unchanged by updates
	uid, err := svc.Login(ctx, "evelyn@x.test", "pw")
	require.NoError(t, err)
	assert.Equal(t, id, uid)
}

func TestDeleteUser_Twice(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()
	id, err := svc.CreateUser(ctx, services.CreateUserInput{Name: "Del", Email: "del@x.test", Password: "pw"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, id))
	assert.ErrorIs(t, svc.DeleteUser(ctx, id), services.ErrNotFound)
	_, err = svc.GetUser(ctx, id)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestSearchUsers(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()
	for _, n := range []string{"Maria", "Mario", "Luigi"} {
		_, err := svc.CreateUser(ctx, services.CreateUserInput{Name: n, Email: strings.ToLower(n) + "@x.test", Password: "pw"})
		require.NoError(t, err)
	}

	var verr *services.ValidationError
	_, err := svc.SearchUsers(ctx, "")
	require.ErrorAs(t, err, &verr)

	found, err := svc.SearchUsers(ctx, "Mari")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	_, err = svc.SearchUsers(ctx, "Peach")
	assert.ErrorIs(t, err, services.ErrNoMatches)

	// listing an empty store is not an error, searching one is
	empty := newService(t, nil)
	all, err := empty.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLogin(t *testing.T) {
	for _, scheme := range []string{services.SchemePrefix, services.SchemeBcrypt} {
		t.Run(scheme, func(t *testing.T) {
			hasher, err := services.NewPasswordHasher(scheme)
			require.NoError(t, err)
			svc := newService(t, hasher)
			ctx := context.Background()

			id, err := svc.CreateUser(ctx, services.CreateUserInput{Name: "Lou", Email: "lou@x.test", Password: "s3cret"})
			require.NoError(t, err)

			got, err := svc.Login(ctx, "lou@x.test", "s3cret")
			require.NoError(t, err)
			assert.Equal(t, id, got)

			_, errWrong := svc.Login(ctx, "lou@x.test", "nope")
			_, errMissing := svc.Login(ctx, "nobody@x.test", "s3cret")
			assert.ErrorIs(t, errWrong, services.ErrInvalidCredentials)
			assert.ErrorIs(t, errMissing, services.ErrInvalidCredentials)
			assert.Equal(t, errWrong, errMissing)

			var verr *services.ValidationError
			_, err = svc.Login(ctx, "lou@x.test", "")
			assert.ErrorAs(t, err, &verr)
		})
	}
}

type brokenStore struct{ services.UserStore }

var errDisk = errors.New("database disk image is malformed")

func (brokenStore) Create(context.Context, domain.User) (int64, error) { return 0, errDisk }
func (brokenStore) List(context.Context) ([]domain.UserView, error) { return nil, errDisk }

func TestStorageErrorsPassThrough(t *testing.T) {
	svc := services.NewUserService(brokenStore{}, nil)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, services.CreateUserInput{Name: "a", Email: "b", Password: "c"})
	var serr *services.StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, errDisk.Error(), err.Error())
	assert.ErrorIs(t, err, errDisk)

	_, err = svc.ListUsers(ctx)
	assert.ErrorIs(t, err, errDisk)
}
