// Package repository persists brackets as opaque JSONB blobs in Postgres
// (spec §6 persistence boundary). The engine itself never touches a
// database; this package is the one SPEC_FULL-added collaborator that
// does, and row-level locking here is what gives a bracket the "strictly
// ordered by caller" concurrency guarantee of spec §5 in a world where two
// HTTP requests for the same bracket can arrive concurrently.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/bracketeer/bracket/internal/domain"
)

// ErrBracketNotFound is returned when a lookup or locked update targets an
// id with no matching row.
var ErrBracketNotFound = errors.New("bracket not found")

// BracketRepository stores and retrieves Bracket values by ID. Matches are
// never queried or updated independently of their owning bracket — the
// whole bracket is the unit of storage, per spec §3's "Bracket exclusively
// owns its Match sequence".
type BracketRepository interface {
	Create(ctx context.Context, b domain.Bracket) error
	Get(ctx context.Context, id domain.BracketID) (domain.Bracket, error)
	// WithLock runs fn against the current state of bracket id inside a
	// transaction that holds a row lock for the duration, then persists
	// whatever fn returns. No other WithLock or Get on the same id can
	// observe a half-applied update; two concurrent callers serialise on
	// the row lock rather than racing to overwrite one another.
	WithLock(ctx context.Context, id domain.BracketID, fn func(domain.Bracket) (domain.Bracket, error)) (domain.Bracket, error)
	Delete(ctx context.Context, id domain.BracketID) error
}

type bracketRepository struct {
	db *sql.DB
}

// NewBracketRepository wraps db as a BracketRepository.
func NewBracketRepository(db *sql.DB) BracketRepository {
	return &bracketRepository{db: db}
}

func (r *bracketRepository) Create(ctx context.Context, b domain.Bracket) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}

	const query = `INSERT INTO brackets (id, data) VALUES ($1, $2)`
	_, err = r.db.ExecContext(ctx, query, b.ID, data)
	return err
}

func (r *bracketRepository) Get(ctx context.Context, id domain.BracketID) (domain.Bracket, error) {
	const query = `SELECT data FROM brackets WHERE id = $1`
	var data []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Bracket{}, ErrBracketNotFound
		}
		return domain.Bracket{}, err
	}

	var b domain.Bracket
	if err := json.Unmarshal(data, &b); err != nil {
		return domain.Bracket{}, err
	}
	return b, nil
}

func (r *bracketRepository) WithLock(ctx context.Context, id domain.BracketID, fn func(domain.Bracket) (domain.Bracket, error)) (domain.Bracket, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Bracket{}, err
	}
	defer tx.Rollback()

	const selectQuery = `SELECT data FROM brackets WHERE id = $1 FOR UPDATE`
	var data []byte
	if err := tx.QueryRowContext(ctx, selectQuery, id).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Bracket{}, ErrBracketNotFound
		}
		return domain.Bracket{}, err
	}

	var before domain.Bracket
	if err := json.Unmarshal(data, &before); err != nil {
		return domain.Bracket{}, err
	}

	after, err := fn(before)
	if err != nil {
		return domain.Bracket{}, err
	}

	updated, err := json.Marshal(after)
	if err != nil {
		return domain.Bracket{}, err
	}

	const updateQuery = `UPDATE brackets SET data = $1, updated_at = NOW() WHERE id = $2`
	if _, err := tx.ExecContext(ctx, updateQuery, updated, id); err != nil {
		return domain.Bracket{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Bracket{}, err
	}
	return after, nil
}

func (r *bracketRepository) Delete(ctx context.Context, id domain.BracketID) error {
	const query = `DELETE FROM brackets WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBracketNotFound
	}
	return nil
}
