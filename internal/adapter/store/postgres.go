package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/guillermoBallester/foodbank/internal/adapter/store/migrations"
	"github.com/guillermoBallester/foodbank/internal/core/domain"
	"github.com/guillermoBallester/foodbank/internal/core/port"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/guillermoBallester/foodbank/internal/adapter/store"

// PostgresRequestStore implements port.RequestStore on a food_requests table,
// keeping item names and quantity as JSONB documents.
type PostgresRequestStore struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
	tracer       trace.Tracer
}

// NewPostgresRequestStore creates a store backed by the given pool.
func NewPostgresRequestStore(pool *pgxpool.Pool, queryTimeout time.Duration) *PostgresRequestStore {
	return &PostgresRequestStore{
		pool:         pool,
		queryTimeout: queryTimeout,
		tracer:       otel.Tracer(tracerName),
	}
}

// NewPool opens a pgx pool and verifies connectivity.
func NewPool(ctx context.Context, dbURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return pool, nil
}

// Migrate applies goose migrations from the embedded migration files.
func Migrate(dbURL string) error {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("opening db for migrations: %w", err)
	}
	defer func() { _ = db.Close() }()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Create inserts a food request and returns the stored row.
func (s *PostgresRequestStore) Create(ctx context.Context, req *domain.FoodRequest) (*domain.FoodRequest, error) {
	ctx, span := s.startSpan(ctx, "insert")
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	names, err := json.Marshal(req.ItemNames)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("encoding item_names: %w", err))
	}

	rec, err := scanRequest(s.pool.QueryRow(ctx, queryInsertRequest,
		string(names),
		string(req.ItemQuantity),
		req.RequesterName,
		req.RequesterEmail,
		req.RequesterPhone,
		req.Owner,
	))
	if err != nil {
		return nil, spanError(span, fmt.Errorf("inserting food request: %w", err))
	}
	return rec, nil
}

// FindOne returns the oldest matching request, or nil when none match.
func (s *PostgresRequestStore) FindOne(ctx context.Context, filter port.RequestFilter) (*domain.FoodRequest, error) {
	ctx, span := s.startSpan(ctx, "find_one")
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	names, err := filterNames(filter)
	if err != nil {
		return nil, spanError(span, err)
	}

	rec, err := scanRequest(s.pool.QueryRow(ctx, queryFindOneRequest, filter.Owner, names))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, spanError(span, fmt.Errorf("querying food request: %w", err))
	}
	return rec, nil
}

// Find returns all matching requests ordered by creation time.
func (s *PostgresRequestStore) Find(ctx context.Context, filter port.RequestFilter) ([]domain.FoodRequest, error) {
	ctx, span := s.startSpan(ctx, "find")
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	names, err := filterNames(filter)
	if err != nil {
		return nil, spanError(span, err)
	}

	rows, err := s.pool.Query(ctx, queryFindRequests, filter.Owner, names)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("querying food requests: %w", err))
	}
	defer rows.Close()

	result := make([]domain.FoodRequest, 0)
	for rows.Next() {
		rec, err := scanRequest(rows)
		if err != nil {
			return nil, spanError(span, fmt.Errorf("scanning food request: %w", err))
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, spanError(span, fmt.Errorf("iterating food requests: %w", err))
	}

	span.SetAttributes(attribute.Int("db.rows", len(result)))
	return result, nil
}

// Delete removes a food request by id.
func (s *PostgresRequestStore) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.startSpan(ctx, "delete")
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	pgID, err := toPgUUID(id)
	if err != nil {
		return spanError(span, fmt.Errorf("invalid request id: %w", err))
	}

	tag, err := s.pool.Exec(ctx, queryDeleteRequest, pgID)
	if err != nil {
		return spanError(span, fmt.Errorf("deleting food request: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("food request %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Ping checks database connectivity.
func (s *PostgresRequestStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()
	return s.pool.Ping(ctx)
}

func (s *PostgresRequestStore) startSpan(ctx context.Context, op string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "food_requests."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", op),
		),
	)
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// filterNames encodes the item-name constraint, or returns nil for "any".
func filterNames(filter port.RequestFilter) (any, error) {
	if filter.ItemNames == nil {
		return nil, nil
	}
	b, err := json.Marshal(filter.ItemNames)
	if err != nil {
		return nil, fmt.Errorf("encoding item_names filter: %w", err)
	}
	return string(b), nil
}

func scanRequest(row pgx.Row) (*domain.FoodRequest, error) {
	var (
		rec      domain.FoodRequest
		id       pgtype.UUID
		names    []byte
		quantity []byte
	)
	err := row.Scan(
		&id,
		&names,
		&quantity,
		&rec.RequesterName,
		&rec.RequesterEmail,
		&rec.RequesterPhone,
		&rec.Owner,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.ID = fromPgUUID(id)
	if err := json.Unmarshal(names, &rec.ItemNames); err != nil {
		return nil, fmt.Errorf("decoding item_names: %w", err)
	}
	rec.ItemQuantity = json.RawMessage(quantity)
	return &rec, nil
}

// toPgUUID converts a uuid.UUID to pgtype.UUID.
func toPgUUID(id uuid.UUID) (pgtype.UUID, error) {
	var pg pgtype.UUID
	if err := pg.Scan(id.String()); err != nil {
		return pg, err
	}
	return pg, nil
}

// fromPgUUID converts a pgtype.UUID to uuid.UUID, returning uuid.Nil on failure.
func fromPgUUID(pg pgtype.UUID) uuid.UUID {
	if !pg.Valid {
		return uuid.Nil
	}
	id, err := uuid.FromBytes(pg.Bytes[:])
	if err != nil {
		return uuid.Nil
	}
	return id
}
