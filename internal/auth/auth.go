package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"github.com/askelund/fintrack/internal/domain/models"
	"github.com/askelund/fintrack/internal/lib/jwt"
	"github.com/askelund/fintrack/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// Work factor for password hashing. bcrypt.DefaultCost is too cheap for
// offline brute force resistance.
const hashCost = 12

const minPasswordLen = 6

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailInvalid       = errors.New("email is not a valid address")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
)

// CredentialStore persists user identities.
type CredentialStore interface {
	SaveUser(ctx context.Context, email string, passHash []byte) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Gateway issues and verifies session credentials. It is stateless: a token
// stays valid until its embedded expiry regardless of server restarts.
type Gateway struct {
	store    CredentialStore
	secret   []byte
	tokenTTL time.Duration
	logger   *slog.Logger
}

func New(store CredentialStore, secret []byte, tokenTTL time.Duration, logger *slog.Logger) *Gateway {
	return &Gateway{
		store:    store,
		secret:   secret,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Register validates the credentials, hashes the password and persists the
// user. The returned User never carries the hash.
func (g *Gateway) Register(ctx context.Context, email, password string) (*models.User, error) {
	const op = "auth.Register"

	if err := ValidateCredentials(email, password); err != nil {
		return nil, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		g.logger.Error("Failed to hash password", "error", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := g.store.SaveUser(ctx, email, passHash)
	if err != nil {
		if !errors.Is(err, storage.ErrEmailTaken) {
			g.logger.Error("Failed to save user", "error", err)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	g.logger.Info("Registered new user", slog.String("email", email))

	user.PasswordHash = ""
	return user, nil
}

// Authenticate verifies the password and issues a session token. An unknown
// email and a wrong password fail with the same error so the caller cannot
// tell which factor was wrong.
func (g *Gateway) Authenticate(ctx context.Context, email, password string) (token string, userID string, err error) {
	const op = "auth.Authenticate"

	user, err := g.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", "", ErrInvalidCredentials
		}
		g.logger.Error("Failed to look up user", "error", err)
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}

	token, err = jwt.NewToken(user, g.secret, g.tokenTTL)
	if err != nil {
		g.logger.Error("Failed to sign token", "error", err)
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	return token, user.ID, nil
}

// ValidateCredentials checks the signup/login input constraints: a parseable
// email address and a password of at least 6 characters.
func ValidateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrEmailInvalid
	}
	if len(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}
