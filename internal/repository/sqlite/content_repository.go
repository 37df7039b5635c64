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

type contentRepository struct {
	db *sql.DB
}

// NewContentRepository creates a new ContentRepository implementation
func NewContentRepository(db *sql.DB) repository.ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Get(ctx context.Context, id int64) (*models.Content, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("getting content: id=%d", id)

	var c models.Content
	err := r.db.QueryRowContext(ctx, `
SELECT id, title, kind, race, matchup, url, tags, premium, published_at
FROM content
WHERE id = ?
`, id).Scan(&c.ID, &c.Title, &c.Kind, &c.Race, &c.Matchup, &c.URL, &c.Tags, &c.Premium, &c.PublishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("content not found: id=%d", id)
		} else {
			log.Error("failed to get content: %v", err)
		}
		return nil, err
	}
	return &c, nil
}

func (r *contentRepository) contentQuery(filter models.ContentFilter) squirrel.SelectBuilder {
	query := sqlBuilder.Select(
		"id", "title", "kind", "race", "matchup", "url", "tags", "premium", "published_at",
	).From("content")

	if filter.Kind != "" {
		query = query.Where(squirrel.Eq{"kind": filter.Kind})
	}
	if filter.Race != "" {
		query = query.Where(squirrel.Eq{"race": filter.Race})
	}
	if filter.Matchup != "" {
		query = query.Where(squirrel.Eq{"matchup": filter.Matchup})
	}
	if filter.Tag != "" {
		query = query.Where(squirrel.Like{"tags": "%" + filter.Tag + "%"})
	}
	return query
}

func (r *contentRepository) List(ctx context.Context, filter models.ContentFilter) ([]models.Content, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("listing content: kind=%s, race=%s, matchup=%s, tag=%s",
		filter.Kind, filter.Race, filter.Matchup, filter.Tag)

	query := r.contentQuery(filter).OrderBy("published_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
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
		log.Error("failed to list content: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanContent(rows, log)
}

func (r *contentRepository) Count(ctx context.Context, filter models.ContentFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")

	query := sqlBuilder.Select("COUNT(*)").From("content")
	if filter.Kind != "" {
		query = query.Where(squirrel.Eq{"kind": filter.Kind})
	}
	if filter.Race != "" {
		query = query.Where(squirrel.Eq{"race": filter.Race})
	}
	if filter.Matchup != "" {
		query = query.Where(squirrel.Eq{"matchup": filter.Matchup})
	}
	if filter.Tag != "" {
		query = query.Where(squirrel.Like{"tags": "%" + filter.Tag + "%"})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return 0, err
	}

	var count int
	err = r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count)
	if err != nil {
		log.Error("failed to count content: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *contentRepository) Search(ctx context.Context, q string, limit int) ([]models.Content, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("searching content: q=%s", q)

	if limit <= 0 {
		limit = 50
	}
	pattern := "%" + q + "%"
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, kind, race, matchup, url, tags, premium, published_at
FROM content
WHERE title LIKE ? OR tags LIKE ?
ORDER BY published_at DESC
LIMIT ?
`, pattern, pattern, limit)
	if err != nil {
		log.Error("failed to search content: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanContent(rows, log)
}

func scanContent(rows *sql.Rows, log *logger.Logger) ([]models.Content, error) {
	var items []models.Content
	for rows.Next() {
		var c models.Content
		if err := rows.Scan(&c.ID, &c.Title, &c.Kind, &c.Race, &c.Matchup, &c.URL, &c.Tags, &c.Premium, &c.PublishedAt); err != nil {
			log.Error("failed to scan content row: %v", err)
			return nil, err
		}
		items = append(items, c)
	}
	log.Debug("found %d content items", len(items))
	return items, rows.Err()
}
