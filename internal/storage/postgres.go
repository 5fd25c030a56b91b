package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tteslee/fundamental/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Errorf("failed to ping postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// Exec runs arbitrary SQL, used for startup migrations.
func (p *PostgresStorage) Exec(ctx context.Context, sql string) error {
	_, err := p.pool.Exec(ctx, sql)
	return err
}

// --- RecordRepository ---

const recordColumns = `id, type, start_time, end_time, duration, memo, user_id, created_at, updated_at`

func (p *PostgresStorage) InsertRecord(ctx context.Context, rec *internal.Record) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO records (id, type, start_time, end_time, duration, memo, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.Type, rec.StartTime, rec.EndTime, rec.Duration, rec.Memo, rec.UserID, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert record: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListRecords(ctx context.Context, userID string) ([]internal.Record, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+recordColumns+` FROM records WHERE user_id = $1 ORDER BY start_time DESC`, userID)
	if err != nil {
		p.logger.Errorf("failed to query records: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (p *PostgresStorage) ListRecordsByRange(ctx context.Context, userID string, from, to time.Time) ([]internal.Record, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+recordColumns+` FROM records
		 WHERE user_id = $1 AND start_time >= $2 AND start_time <= $3
		 ORDER BY start_time ASC`, userID, from, to)
	if err != nil {
		p.logger.Errorf("failed to query records by range: %v", err)
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (p *PostgresStorage) UpdateRecord(ctx context.Context, id, userID string, fields RecordFields) (*internal.Record, bool, error) {
	row := p.pool.QueryRow(ctx,
		`UPDATE records
		 SET type = $3, start_time = $4, end_time = $5, duration = $6, memo = $7, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+recordColumns,
		id, userID, fields.Type, fields.StartTime, fields.EndTime, fields.Duration, fields.Memo)

	var rec internal.Record
	err := row.Scan(&rec.ID, &rec.Type, &rec.StartTime, &rec.EndTime, &rec.Duration, &rec.Memo, &rec.UserID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		p.logger.Errorf("failed to update record: %v", err)
		return nil, false, err
	}
	return &rec, true, nil
}

func (p *PostgresStorage) DeleteRecord(ctx context.Context, id, userID string) (bool, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM records WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		p.logger.Errorf("failed to delete record: %v", err)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// --- UserRepository ---

func (p *PostgresStorage) UpsertUser(ctx context.Context, user *internal.User) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO users (id, email, name, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name, updated_at = EXCLUDED.updated_at`,
		user.ID, user.Email, user.Name, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to upsert user: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetUser(ctx context.Context, id string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, email, name, created_at, updated_at FROM users WHERE id = $1`, id)
	var u internal.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.CreatedAt, &u.UpdatedAt); err != nil {
		p.logger.Errorf("user not found: %v", err)
		return nil, err
	}
	return &u, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRecords(rows rowScanner) ([]internal.Record, error) {
	var records []internal.Record
	for rows.Next() {
		var r internal.Record
		if err := rows.Scan(&r.ID, &r.Type, &r.StartTime, &r.EndTime, &r.Duration, &r.Memo, &r.UserID, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// --- Compile-time assertions ---
var _ RecordRepository = (*PostgresStorage)(nil)
var _ UserRepository = (*PostgresStorage)(nil)
