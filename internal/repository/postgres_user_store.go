package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"PortRisk/internal/domain/models"
	"PortRisk/internal/domain/repository"
	"PortRisk/pkg/postgres"
)

// PostgresUserStore implements UserStore over the users table.
type PostgresUserStore struct {
	client *postgres.Client
}

// NewPostgresUserStore creates a Postgres-backed user store.
func NewPostgresUserStore(client *postgres.Client) repository.UserStore {
	return &PostgresUserStore{client: client}
}

func (s *PostgresUserStore) Create(ctx context.Context, username, passwordHash, role string) (int64, error) {
	var id int64
	err := s.client.Pool().QueryRow(ctx,
		`INSERT INTO users (username, password_hash, role)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		username, passwordHash, role).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, repository.ErrUsernameTaken
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (s *PostgresUserStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.client.Pool().QueryRow(ctx,
		`SELECT id, username, password_hash, role FROM users WHERE username = $1`,
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
