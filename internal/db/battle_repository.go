package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/battlecore/internal/replay"
)

// ErrBattleNotFound is returned when no record has the requested id.
var ErrBattleNotFound = errors.New("battle record not found")

// BattleRecord is a finished battle and its action journal.
type BattleRecord struct {
	ID        int64
	BattleID  int
	Seed      uint64
	Result    string
	Turns     int
	Digest    string
	CreatedAt time.Time
	Actions   []replay.Entry
}

// BattleRepository stores battle records.
type BattleRepository struct {
	pool *pgxpool.Pool
}

// NewBattleRepository creates a BattleRepository.
func NewBattleRepository(pool *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{pool: pool}
}

// Save inserts rec and its actions in one transaction, then sets rec.ID
// and rec.CreatedAt.
func (r *BattleRepository) Save(ctx context.Context, rec *BattleRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "battleID", rec.BattleID, "error", err)
		}
	}()

	err = tx.QueryRow(ctx,
		`INSERT INTO battles (battle_id, seed, result, turns, digest)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		rec.BattleID, int64(rec.Seed), rec.Result, rec.Turns, rec.Digest,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting battle %d: %w", rec.BattleID, err)
	}

	if err := r.saveActionsTx(ctx, tx, rec); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *BattleRepository) saveActionsTx(ctx context.Context, tx pgx.Tx, rec *BattleRecord) error {
	if len(rec.Actions) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(rec.Actions))
	for _, a := range rec.Actions {
		rows = append(rows, []any{rec.ID, a.Seq, a.Turn, a.Kind, a.Action})
	}
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"battle_actions"},
		[]string{"record_id", "seq", "turn", "kind", "action"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("inserting actions of battle %d: %w", rec.BattleID, err)
	}
	return nil
}

// Load returns the record id with its actions in order.
func (r *BattleRepository) Load(ctx context.Context, id int64) (*BattleRecord, error) {
	rec := &BattleRecord{ID: id}
	var seed int64
	err := r.pool.QueryRow(ctx,
		`SELECT battle_id, seed, result, turns, digest, created_at
		 FROM battles WHERE id = $1`, id,
	).Scan(&rec.BattleID, &seed, &rec.Result, &rec.Turns, &rec.Digest, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("loading battle record %d: %w", id, ErrBattleNotFound)
		}
		return nil, fmt.Errorf("querying battle record %d: %w", id, err)
	}
	rec.Seed = uint64(seed)

	rows, err := r.pool.Query(ctx,
		`SELECT seq, turn, kind, action
		 FROM battle_actions
		 WHERE record_id = $1
		 ORDER BY seq`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("querying actions of battle record %d: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e replay.Entry
		if err := rows.Scan(&e.Seq, &e.Turn, &e.Kind, &e.Action); err != nil {
			return nil, fmt.Errorf("scanning action row: %w", err)
		}
		rec.Actions = append(rec.Actions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating action rows: %w", err)
	}
	return rec, nil
}

// CountByDigest returns how many stored battles resolved to digest.
func (r *BattleRepository) CountByDigest(ctx context.Context, digest string) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM battles WHERE digest = $1`, digest,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting battles with digest %s: %w", digest, err)
	}
	return n, nil
}

// Delete removes the record id and its actions.
func (r *BattleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM battles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting battle record %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deleting battle record %d: %w", id, ErrBattleNotFound)
	}
	return nil
}
