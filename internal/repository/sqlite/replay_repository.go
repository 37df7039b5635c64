package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/probuilds/sc2coach/internal/logger"
	"github.com/probuilds/sc2coach/internal/models"
	"github.com/probuilds/sc2coach/internal/repository"
)

type replayRepository struct {
	db *sql.DB
}

// NewReplayRepository creates a new ReplayRepository implementation
func NewReplayRepository(db *sql.DB) repository.ReplayRepository {
	return &replayRepository{db: db}
}

func (r *replayRepository) Get(ctx context.Context, id string) (*models.Replay, error) {
	log := logger.FromContext(ctx).WithPrefix("replay_repo")
	log.Debug("getting replay: id=%s", id)

	var rep models.Replay
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, filename, matchup, race, map, result, duration_seconds, fingerprint_json, analysis_status, uploaded_at
FROM replays
WHERE id = ?
`, id).Scan(&rep.ID, &rep.UserID, &rep.Filename, &rep.Matchup, &rep.Race, &rep.Map, &rep.Result, &rep.DurationSeconds, &rep.FingerprintJSON, &rep.AnalysisStatus, &rep.UploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("replay not found: id=%s", id)
		} else {
			log.Error("failed to get replay: %v", err)
		}
		return nil, err
	}
	log.Debug("replay found: matchup=%s, map=%s", rep.Matchup, rep.Map)
	return &rep, nil
}

func (r *replayRepository) List(ctx context.Context, filter models.ReplayFilter) ([]models.Replay, error) {
	log := logger.FromContext(ctx).WithPrefix("replay_repo")
	log.Debug("listing replays with filter: user_id=%d, matchup=%s, race=%s, result=%s",
		filter.UserID, filter.Matchup, filter.Race, filter.Result)

	query := sqlBuilder.Select(
		"id", "user_id", "filename", "matchup", "race", "map", "result",
		"duration_seconds", "fingerprint_json", "analysis_status", "uploaded_at",
	).From("replays")

	// Dynamic WHERE clauses
	if filter.UserID != 0 {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.Matchup != "" {
		query = query.Where(squirrel.Eq{"matchup": filter.Matchup})
	}
	if filter.Race != "" {
		query = query.Where(squirrel.Eq{"race": filter.Race})
	}
	if filter.Result != "" {
		query = query.Where(squirrel.Eq{"result": filter.Result})
	}

	// Safe ORDER BY with validation
	orderBy := "uploaded_at"
	if filter.OrderBy == "duration_seconds" {
		orderBy = filter.OrderBy
	}
	orderDir := "DESC"
	if filter.OrderDir == "ASC" {
		orderDir = "ASC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list replays: %v", err)
		return nil, err
	}
	defer rows.Close()
	var replays []models.Replay
	for rows.Next() {
		var rep models.Replay
		if err := rows.Scan(&rep.ID, &rep.UserID, &rep.Filename, &rep.Matchup, &rep.Race, &rep.Map, &rep.Result, &rep.DurationSeconds, &rep.FingerprintJSON, &rep.AnalysisStatus, &rep.UploadedAt); err != nil {
			log.Error("failed to scan replay row: %v", err)
			return nil, err
		}
		replays = append(replays, rep)
	}
	log.Debug("found %d replays", len(replays))
	return replays, rows.Err()
}

func (r *replayRepository) Count(ctx context.Context, filter models.ReplayFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("replay_repo")

	query := sqlBuilder.Select("COUNT(*)").From("replays")

	// Same WHERE logic as List()
	if filter.UserID != 0 {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.Matchup != "" {
		query = query.Where(squirrel.Eq{"matchup": filter.Matchup})
	}
	if filter.Race != "" {
		query = query.Where(squirrel.Eq{"race": filter.Race})
	}
	if filter.Result != "" {
		query = query.Where(squirrel.Eq{"result": filter.Result})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count)
	if err != nil {
		log.Error("failed to count replays: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *replayRepository) Insert(ctx context.Context, rep models.Replay) error {
	log := logger.FromContext(ctx).WithPrefix("replay_repo")
	log.Debug("inserting replay: id=%s, filename=%s", rep.ID, rep.Filename)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO replays (
    id, user_id, filename, matchup, race, map, result,
    duration_seconds, fingerprint_json, analysis_status
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, rep.ID, rep.UserID, rep.Filename, rep.Matchup, rep.Race, rep.Map, rep.Result, rep.DurationSeconds, rep.FingerprintJSON, rep.AnalysisStatus)
	if err != nil {
		log.Error("failed to insert replay: %v", err)
	}
	return err
}

func (r *replayRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	log := logger.FromContext(ctx).WithPrefix("replay_repo")
	log.Debug("updating replay status: id=%s, status=%s", id, status)

	_, err := r.db.ExecContext(ctx, `UPDATE replays SET analysis_status = ? WHERE id = ?`, status, id)
	if err != nil {
		log.Error("failed to update replay status: %v", err)
	}
	return err
}

func (r *replayRepository) UpdateFingerprint(ctx context.Context, id string, rep models.Replay) error {
	log := logger.FromContext(ctx).WithPrefix("replay_repo")
	log.Debug("updating replay fingerprint: id=%s, matchup=%s", id, rep.Matchup)

	_, err := r.db.ExecContext(ctx, `
UPDATE replays
SET matchup = ?, race = ?, map = ?, result = ?, duration_seconds = ?, fingerprint_json = ?, analysis_status = ?
WHERE id = ?
`, rep.Matchup, rep.Race, rep.Map, rep.Result, rep.DurationSeconds, rep.FingerprintJSON, rep.AnalysisStatus, id)
	if err != nil {
		log.Error("failed to update replay fingerprint: %v", err)
	}
	return err
}

func (r *replayRepository) Delete(ctx context.Context, id string, userID int64) error {
	log := logger.FromContext(ctx).WithPrefix("replay_repo")
	log.Debug("deleting replay: id=%s, user_id=%d", id, userID)

	res, err := r.db.ExecContext(ctx, `DELETE FROM replays WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		log.Error("failed to delete replay: %v", err)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
