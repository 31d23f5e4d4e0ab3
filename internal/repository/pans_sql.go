package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/brandonleon/carbsmart/internal/domain/model"
)

const panColumns = `id, name, weight_grams, capacity_label, notes, created_at, updated_at`

// SQLPanRepository stores pans in SQLite or PostgreSQL.
type SQLPanRepository struct {
	db *SQLDB
}

// NewSQLPanRepository creates a pan repository on db.
func NewSQLPanRepository(db *SQLDB) *SQLPanRepository {
	return &SQLPanRepository{db: db}
}

func (r *SQLPanRepository) List(ctx context.Context) ([]model.Pan, error) {
	pans := []model.Pan{}
	err := r.db.SelectContext(ctx, &pans,
		`SELECT `+panColumns+` FROM pans ORDER BY name, capacity_label, id`)
	if err != nil {
		return nil, err
	}
	return normalizeTimes(pans), nil
}

func (r *SQLPanRepository) GetByID(ctx context.Context, id int64) (*model.Pan, error) {
	return r.get(ctx, r.db.DB, id)
}

func (r *SQLPanRepository) Create(ctx context.Context, in model.PanInput) (*model.Pan, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	var pan *model.Pan
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var id int64
		query := tx.Rebind(`INSERT INTO pans (name, weight_grams, capacity_label, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?) RETURNING id`)
		if err := tx.GetContext(ctx, &id, query,
			in.Name, in.WeightGrams, in.CapacityLabel, in.Notes, now, now); err != nil {
			return translateSQLError(err)
		}
		var err error
		pan, err = r.get(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pan, nil
}

func (r *SQLPanRepository) Update(ctx context.Context, pan model.Pan) (*model.Pan, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	var updated *model.Pan
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := tx.Rebind(`UPDATE pans SET name = ?, weight_grams = ?, capacity_label = ?, notes = ?, updated_at = ?
			WHERE id = ?`)
		res, err := tx.ExecContext(ctx, query,
			pan.Name, pan.WeightGrams, pan.CapacityLabel, pan.Notes, now, pan.ID)
		if err != nil {
			return translateSQLError(err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrNotFound
		}
		updated, err = r.get(ctx, tx, pan.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *SQLPanRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM pans WHERE id = ?`), id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *SQLPanRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM pans`); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *SQLPanRepository) Ping(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}

func (r *SQLPanRepository) get(ctx context.Context, q sqlx.QueryerContext, id int64) (*model.Pan, error) {
	var pan model.Pan
	query := r.db.Rebind(`SELECT ` + panColumns + ` FROM pans WHERE id = ?`)
	if err := sqlx.GetContext(ctx, q, &pan, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	pan.CreatedAt = pan.CreatedAt.UTC()
	pan.UpdatedAt = pan.UpdatedAt.UTC()
	return &pan, nil
}

func normalizeTimes(pans []model.Pan) []model.Pan {
	for i := range pans {
		pans[i].CreatedAt = pans[i].CreatedAt.UTC()
		pans[i].UpdatedAt = pans[i].UpdatedAt.UTC()
	}
	return pans
}

func translateSQLError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicateKey
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return ErrDuplicateKey
	}
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicateKey
	}
	return err
}
