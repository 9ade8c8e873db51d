package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/askelund/fintrack/internal/domain/models"
	"github.com/askelund/fintrack/internal/storage"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// pq error code for unique_violation
const uniqueViolation = "23505"

type Storage struct {
	db           *sql.DB
	queryTimeout time.Duration
}

func New(dbUrl string, queryTimeout time.Duration) (*Storage, error) {
	db, err := sql.Open("postgres", dbUrl)
	if err != nil {
		return nil, fmt.Errorf("database connection error %s", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect database error %s", err)
	}

	return &Storage{db: db, queryTimeout: queryTimeout}, nil
}

func (s *Storage) Stop() error {
	return s.db.Close()
}

// withTimeout bounds every store call so no request blocks indefinitely.
func (s *Storage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.queryTimeout)
}

func (s *Storage) SaveUser(ctx context.Context, email string, passHash []byte) (*models.User, error) {
	const op = "storage.postgres.SaveUser"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var user models.User
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3) RETURNING id, email",
		uuid.NewString(), email, passHash,
	).Scan(&user.ID, &user.Email)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

// UserByEmail matches the stored email case-sensitively.
func (s *Storage) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.postgres.UserByEmail"

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var user models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash FROM users WHERE email = $1",
		email,
	).Scan(&user.ID, &user.Email, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}
