package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organmatch/matching-service/internal/core/domain"
)

func setupRepo(t *testing.T) (*UserRepository, *sqlx.DB) {
	t.Helper()
	db, err := Open(context.Background(), Config{Path: filepath.Join(t.TempDir(), "organ.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepository(db), db
}

func newUser(username string, role domain.Role, organ, blood string) *domain.User {
	return &domain.User{
		Username:     username,
		PasswordHash: "hash-" + username,
		Role:         role,
		Age:          40,
		BloodGroup:   blood,
		Phone:        "+1555" + username,
		Organ:        organ,
	}
}

func countUsers(t *testing.T, db *sqlx.DB, username string) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM users WHERE username = ?`, username))
	return n
}

func TestOpen_CreatesUsersTable(t *testing.T) {
	_, db := setupRepo(t)

	var n int
	err := db.Get(&n, `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='users'`)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	_, db := setupRepo(t)
	require.NoError(t, Migrate(context.Background(), db))
}

func TestOpen_ReopenKeepsRows(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "organ.db")

	db, err := Open(ctx, Config{Path: path})
	require.NoError(t, err)
	_, err = NewUserRepository(db).Create(ctx, newUser("alice", domain.RoleDonor, "kidney", "O+"))
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, Config{Path: path})
	require.NoError(t, err)
	defer db.Close()

	got, err := NewUserRepository(db).FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "kidney", got.Organ)
}

func TestCreate_AssignsIDAndRoundTrips(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newUser("alice", domain.RoleDonor, "kidney", "O+"))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, *created, *byName)
	assert.Equal(t, *created, *byID)
}

func TestCreate_DuplicateUsername(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, newUser("bob", domain.RoleRecipient, "kidney", "O+"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newUser("bob", domain.RoleDonor, "liver", "A+"))
	require.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.Equal(t, 1, countUsers(t, db, "bob"))
}

func TestCreate_ConcurrentSameUsername_ExactlyOneWins(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	const attempts = 8
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		ok    int
		taken int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, newUser("race", domain.RoleDonor, "kidney", "O+"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrUsernameTaken):
				taken++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, taken)
	assert.Equal(t, 1, countUsers(t, db, "race"))
}

func TestFind_NotFound(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	_, err := repo.FindByUsername(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.FindByID(ctx, 999)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestFindMatches_ExactEqualityAndOppositeRole(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	alice, err := repo.Create(ctx, newUser("alice", domain.RoleDonor, "kidney", "O+"))
	require.NoError(t, err)
	for _, u := range []*domain.User{
		newUser("bob", domain.RoleRecipient, "kidney", "O+"),
		newUser("carl", domain.RoleDonor, "kidney", "O+"),
		newUser("dina", domain.RoleRecipient, "kidney", "O-"),
		newUser("eve", domain.RoleRecipient, "Kidney", "O+"),
		newUser("fay", domain.RoleRecipient, "kidney", "O+"),
	} {
		_, err := repo.Create(ctx, u)
		require.NoError(t, err)
	}

	got, err := repo.FindMatches(ctx, domain.CriteriaFor(alice))
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, u := range got {
		names = append(names, u.Username)
	}
	assert.Equal(t, []string{"bob", "fay"}, names)
}

func TestFindMatches_ExcludesSelf(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	me, err := repo.Create(ctx, newUser("me", domain.RoleRecipient, "heart", "B+"))
	require.NoError(t, err)

	got, err := repo.FindMatches(ctx, domain.MatchCriteria{
		Organ: "heart", BloodGroup: "B+", Role: domain.RoleRecipient, ExcludeID: me.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

// ---------------------------------------------------------------------------
// Driver error paths (sqlmock)
// ---------------------------------------------------------------------------

func newRepoWithMock(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return NewUserRepository(sqlx.NewDb(mockDB, driverName)), mock
}

func TestCreate_DBErrorWrapped(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(errors.New("disk I/O error"))

	_, err := repo.Create(context.Background(), newUser("alice", domain.RoleDonor, "kidney", "O+"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUsernameTaken)
	assert.Contains(t, err.Error(), "insert user: disk I/O error")
}

func TestFindByUsername_DBErrorWrapped(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE username = \?`).
		WithArgs("alice").
		WillReturnError(errors.New("database is locked"))

	_, err := repo.FindByUsername(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "find user: database is locked")
}

func TestFindMatches_DBErrorWrapped(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`SELECT .+ FROM users\s+WHERE organ = \?`).
		WillReturnError(errors.New("boom"))

	_, err := repo.FindMatches(context.Background(), domain.MatchCriteria{Organ: "kidney"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "find matches: boom")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDSN(t *testing.T) {
	assert.Equal(t, ":memory:", dsn(":memory:"))
	assert.Equal(t, "file:x.db?mode=ro", dsn("file:x.db?mode=ro"))
	assert.Equal(t, "file:organ.db?_pragma=busy_timeout(5000)", dsn("organ.db"))
}
