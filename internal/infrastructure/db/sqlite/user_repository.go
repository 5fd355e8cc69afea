package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/organmatch/matching-service/internal/core/domain"
)

const userColumns = `id, username, password_hash, role, age, blood_group, phone, organ`

// UserRepository implements ports.UserRepository on the users table.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	Age          int    `db:"age"`
	BloodGroup   string `db:"blood_group"`
	Phone        string `db:"phone"`
	Organ        string `db:"organ"`
}

func (r userRow) toDomain() domain.User {
	return domain.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		Role:         domain.Role(r.Role),
		Age:          r.Age,
		BloodGroup:   r.BloodGroup,
		Phone:        r.Phone,
		Organ:        r.Organ,
	}
}

// Create inserts a user. The UNIQUE constraint on username decides races
// between concurrent registrations.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash, role, age, blood_group, phone, organ)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Username, user.PasswordHash, string(user.Role), user.Age, user.BloodGroup, user.Phone, user.Organ,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert user: last id: %w", err)
	}

	created := *user
	created.ID = id
	return &created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// FindMatches is a plain equality filter; there is no blood-type compatibility logic.
func (r *UserRepository) FindMatches(ctx context.Context, c domain.MatchCriteria) ([]domain.User, error) {
	var rows []userRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+userColumns+` FROM users
		WHERE organ = ? AND blood_group = ? AND role = ? AND id != ?
		ORDER BY id`,
		c.Organ, c.BloodGroup, string(c.Role), c.ExcludeID,
	)
	if err != nil {
		return nil, fmt.Errorf("find matches: %w", err)
	}

	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var row userRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u := row.toDomain()
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
