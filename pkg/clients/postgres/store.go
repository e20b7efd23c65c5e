package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"rentaid-waitlist/pkg/datastore"
	"rentaid-waitlist/pkg/models"
)

// Pool is the subset of pgxpool.Pool the store uses
type Pool interface {
	Ping(ctx context.Context) error
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store appends submissions directly to Postgres
type Store struct {
	pool Pool
	log  *zap.Logger
}

// Connect opens a pool and verifies it with a ping
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 5
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func NewStore(pool Pool, log *zap.Logger) *Store {
	if pool == nil {
		panic("postgres: pool required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{pool: pool, log: log}
}

func (s *Store) TestConnection(ctx context.Context) bool {
	if err := s.pool.Ping(ctx); err != nil {
		s.log.Warn("Database ping failed", zap.Error(err))
		return false
	}
	return true
}

func (s *Store) Insert(ctx context.Context, table string, record models.SubmissionRecord) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (full_name, phone_number, email, location, rent_out_type,
		    extra_comments, activeunits, islandlord, istenant, date_to_move_in)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`, pgx.Identifier{table}.Sanitize())

	var id int64
	err := s.pool.QueryRow(ctx, query,
		record.FullName,
		record.PhoneNumber,
		record.Email,
		record.Location,
		record.RentOutType,
		record.ExtraComments,
		record.ActiveUnits,
		record.IsLandlord,
		record.IsTenant,
		record.DateToMoveIn,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return "", &datastore.Error{
				Code:    pgErr.Code,
				Message: pgErr.Message,
				Details: pgErr.Detail,
				Hint:    pgErr.Hint,
			}
		}
		return "", fmt.Errorf("insert into %s: %w", table, err)
	}

	return strconv.FormatInt(id, 10), nil
}
