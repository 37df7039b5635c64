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

type buildOrderRepository struct {
	db *sql.DB
}

// NewBuildOrderRepository creates a new BuildOrderRepository implementation
func NewBuildOrderRepository(db *sql.DB) repository.BuildOrderRepository {
	return &buildOrderRepository{db: db}
}

const buildOrderColumns = `id, name, race, matchup, difficulty, description, benchmark_json, premium, created_at`

func (r *buildOrderRepository) Get(ctx context.Context, id int64) (*models.BuildOrder, error) {
	log := logger.FromContext(ctx).WithPrefix("build_order_repo")
	log.Debug("getting build order: id=%d", id)

	var bo models.BuildOrder
	err := r.db.QueryRowContext(ctx, `
SELECT `+buildOrderColumns+`
FROM build_orders
WHERE id = ?
`, id).Scan(&bo.ID, &bo.Name, &bo.Race, &bo.Matchup, &bo.Difficulty, &bo.Description, &bo.BenchmarkJSON, &bo.Premium, &bo.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("build order not found: id=%d", id)
		} else {
			log.Error("failed to get build order: %v", err)
		}
		return nil, err
	}
	return &bo, nil
}

func (r *buildOrderRepository) GetByName(ctx context.Context, name string) (*models.BuildOrder, error) {
	log := logger.FromContext(ctx).WithPrefix("build_order_repo")
	log.Debug("getting build order by name: %s", name)

	var bo models.BuildOrder
	err := r.db.QueryRowContext(ctx, `
SELECT `+buildOrderColumns+`
FROM build_orders
WHERE name = ?
`, name).Scan(&bo.ID, &bo.Name, &bo.Race, &bo.Matchup, &bo.Difficulty, &bo.Description, &bo.BenchmarkJSON, &bo.Premium, &bo.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get build order by name: %v", err)
		return nil, err
	}
	return &bo, nil
}

func (r *buildOrderRepository) List(ctx context.Context, filter models.BuildOrderFilter) ([]models.BuildOrder, error) {
	log := logger.FromContext(ctx).WithPrefix("build_order_repo")
	log.Debug("listing build orders: race=%s, matchup=%s, difficulty=%s", filter.Race, filter.Matchup, filter.Difficulty)

	query := sqlBuilder.Select(
		"id", "name", "race", "matchup", "difficulty", "description",
		"benchmark_json", "premium", "created_at",
	).From("build_orders")

	if filter.Race != "" {
		query = query.Where(squirrel.Eq{"race": filter.Race})
	}
	if filter.Matchup != "" {
		query = query.Where(squirrel.Eq{"matchup": filter.Matchup})
	}
	if filter.Difficulty != "" {
		query = query.Where(squirrel.Eq{"difficulty": filter.Difficulty})
	}
	query = query.OrderBy("name ASC")

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
		log.Error("failed to list build orders: %v", err)
		return nil, err
	}
	defer rows.Close()
	var orders []models.BuildOrder
	for rows.Next() {
		var bo models.BuildOrder
		if err := rows.Scan(&bo.ID, &bo.Name, &bo.Race, &bo.Matchup, &bo.Difficulty, &bo.Description, &bo.BenchmarkJSON, &bo.Premium, &bo.CreatedAt); err != nil {
			log.Error("failed to scan build order row: %v", err)
			return nil, err
		}
		orders = append(orders, bo)
	}
	log.Debug("found %d build orders", len(orders))
	return orders, rows.Err()
}

func (r *buildOrderRepository) Insert(ctx context.Context, bo models.BuildOrder) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("build_order_repo")
	log.Debug("inserting build order: name=%s", bo.Name)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO build_orders (name, race, matchup, difficulty, description, benchmark_json, premium)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
    race = excluded.race,
    matchup = excluded.matchup,
    difficulty = excluded.difficulty,
    description = excluded.description,
    benchmark_json = excluded.benchmark_json,
    premium = excluded.premium
`, bo.Name, bo.Race, bo.Matchup, bo.Difficulty, bo.Description, bo.BenchmarkJSON, bo.Premium)
	if err != nil {
		log.Error("failed to insert build order: %v", err)
		return 0, err
	}
	if id, err := res.LastInsertId(); err == nil && id != 0 {
		log.Debug("build order inserted: id=%d", id)
		return id, nil
	}
	var id int64
	err = r.db.QueryRowContext(ctx, `SELECT id FROM build_orders WHERE name = ?`, bo.Name).Scan(&id)
	if err != nil {
		log.Error("failed to get build order id: %v", err)
	}
	return id, err
}

func (r *buildOrderRepository) InsertBatch(ctx context.Context, orders []models.BuildOrder) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("build_order_repo")
	log.Debug("batch inserting %d build orders", len(orders))

	if len(orders) == 0 {
		return 0, nil
	}

	inserted := 0
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO build_orders (name, race, matchup, difficulty, description, benchmark_json, premium)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(name) DO NOTHING
`)
		if err != nil {
			log.Error("failed to prepare batch insert: %v", err)
			return err
		}
		defer stmt.Close()

		for _, bo := range orders {
			res, err := stmt.ExecContext(ctx, bo.Name, bo.Race, bo.Matchup, bo.Difficulty, bo.Description, bo.BenchmarkJSON, bo.Premium)
			if err != nil {
				log.Error("failed to insert build order name=%s: %v", bo.Name, err)
				return err
			}
			if n, err := res.RowsAffected(); err == nil && n > 0 {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Debug("batch insert completed, %d new build orders", inserted)
	return inserted, nil
}
