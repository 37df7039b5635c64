package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/probuilds/sc2coach/internal/logger"
	"github.com/probuilds/sc2coach/internal/models"
	"github.com/probuilds/sc2coach/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: id=%d", id)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, discord_id, username, subscriber, created_at, last_seen_at
FROM users
WHERE id = ?
`, id).Scan(&u.ID, &u.DiscordID, &u.Username, &u.Subscriber, &u.CreatedAt, &u.LastSeenAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByDiscordID(ctx context.Context, discordID string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user by discord id: %s", discordID)

	var u models.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, discord_id, username, subscriber, created_at, last_seen_at
FROM users
WHERE discord_id = ?
`, discordID).Scan(&u.ID, &u.DiscordID, &u.Username, &u.Subscriber, &u.CreatedAt, &u.LastSeenAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user by discord id: %v", err)
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Upsert(ctx context.Context, discordID, username string, subscriber bool) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("upserting user: discord_id=%s, subscriber=%t", discordID, subscriber)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (discord_id, username, subscriber)
VALUES (?, ?, ?)
ON CONFLICT(discord_id) DO UPDATE SET
    username = excluded.username,
    subscriber = excluded.subscriber
`, discordID, username, subscriber)
	if err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, err
	}
	return r.GetByDiscordID(ctx, discordID)
}

func (r *userRepository) TouchLastSeen(ctx context.Context, id int64, t time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_seen_at = ? WHERE id = ?`, t, id)
	if err != nil {
		log.Error("failed to touch last_seen_at: %v", err)
	}
	return err
}
