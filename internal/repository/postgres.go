package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"eventbot/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// schemaSQL is embedded so the service can bootstrap its own tables.
//
//go:embed schema.sql
var schemaSQL string

const eventColumns = `id, title, description, category, starts_at, ends_at,
	location, address, price, contact, link, active, created_at, updated_at`

// EventRepository is the read side of the event catalog plus chat logging.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository connects to PostgreSQL and verifies the connection.
func NewEventRepository(dsn string, maxConn, maxIdleConn int) (*EventRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &EventRepository{db: db}, nil
}

// EnsureSchema applies schema.sql. Safe to run repeatedly.
func (r *EventRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schemaSQL)
	return err
}

// Close closes the database connection.
func (r *EventRepository) Close() error {
	return r.db.Close()
}

// SearchEvents runs the filter against the catalog. Results come back ordered
// by start instant, ties broken by insertion order. A filter marked None
// yields an empty result without touching the database.
func (r *EventRepository) SearchEvents(ctx context.Context, filter *model.EventFilter) ([]model.Event, error) {
	if filter != nil && filter.None {
		return []model.Event{}, nil
	}

	whereClause, args := buildWhere(filter)
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE %s
		ORDER BY starts_at, id
	`, eventColumns, whereClause)

	events := []model.Event{}
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return events, nil
}

// buildWhere translates a filter into a WHERE clause with positional args.
// Every query is implicitly restricted to active events.
func buildWhere(filter *model.EventFilter) (string, []interface{}) {
	clauses := []string{"active = true"}
	args := []interface{}{}
	argIndex := 1

	if filter == nil {
		return strings.Join(clauses, " AND "), args
	}

	if filter.StartFrom != nil {
		clauses = append(clauses, fmt.Sprintf("starts_at >= $%d", argIndex))
		args = append(args, *filter.StartFrom)
		argIndex++
	}
	if filter.StartBefore != nil {
		clauses = append(clauses, fmt.Sprintf("starts_at < $%d", argIndex))
		args = append(args, *filter.StartBefore)
		argIndex++
	}
	if filter.StartUpTo != nil {
		clauses = append(clauses, fmt.Sprintf("starts_at <= $%d", argIndex))
		args = append(args, *filter.StartUpTo)
		argIndex++
	}
	if filter.Category != nil {
		clauses = append(clauses, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, string(*filter.Category))
		argIndex++
	}
	if filter.LocationContains != nil && *filter.LocationContains != "" {
		clauses = append(clauses, fmt.Sprintf("(location ILIKE $%d OR address ILIKE $%d)", argIndex, argIndex+1))
		pattern := "%" + *filter.LocationContains + "%"
		args = append(args, pattern, pattern)
		argIndex += 2
	}
	if filter.TextContains != nil && *filter.TextContains != "" {
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d OR location ILIKE $%d)",
			argIndex, argIndex+1, argIndex+2))
		pattern := "%" + *filter.TextContains + "%"
		args = append(args, pattern, pattern, pattern)
		argIndex += 3
	}
	if filter.FreeOnly {
		clauses = append(clauses, "price = 0")
	}
	if filter.PriceCeiling != nil {
		// Free events always satisfy a ceiling.
		clauses = append(clauses, fmt.Sprintf("(price = 0 OR price <= $%d)", argIndex))
		args = append(args, *filter.PriceCeiling)
		argIndex++
	}

	return strings.Join(clauses, " AND "), args
}

// ActiveEvents returns every active event, ordered like SearchEvents.
func (r *EventRepository) ActiveEvents(ctx context.Context) ([]model.Event, error) {
	return r.SearchEvents(ctx, nil)
}

// GetEventByTitle looks an event up by exact title, case-insensitively.
// Returns nil without error when no event matches.
func (r *EventRepository) GetEventByTitle(ctx context.Context, title string) (*model.Event, error) {
	var event model.Event
	query := fmt.Sprintf(`SELECT %s FROM events WHERE LOWER(title) = LOWER($1) LIMIT 1`, eventColumns)
	err := r.db.GetContext(ctx, &event, query, title)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

// PastEvents lists events that started before the cutoff, active or not.
// Used by the cleanup command for its preview mode.
func (r *EventRepository) PastEvents(ctx context.Context, before time.Time) ([]model.Event, error) {
	events := []model.Event{}
	query := fmt.Sprintf(`SELECT %s FROM events WHERE starts_at < $1 ORDER BY starts_at, id`, eventColumns)
	if err := r.db.SelectContext(ctx, &events, query, before); err != nil {
		return nil, fmt.Errorf("failed to fetch past events: %w", err)
	}
	return events, nil
}

// DeletePastEvents removes events that started before the cutoff and reports
// how many rows went away.
func (r *EventRepository) DeletePastEvents(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE starts_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete past events: %w", err)
	}
	return res.RowsAffected()
}

// LogChat records one handled chat message. Callers treat failures as
// non-fatal; a lost log line never affects the response.
func (r *EventRepository) LogChat(ctx context.Context, id uuid.UUID, message string, intent *model.ParsedIntent, resultCount int, tookMs int64) error {
	intentJSON, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("failed to marshal intent: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO chat_logs (id, message, intent, result_count, took_ms)
		VALUES ($1, $2, $3, $4, $5)
	`, id, message, intentJSON, resultCount, tookMs)
	if err != nil {
		return fmt.Errorf("failed to log chat: %w", err)
	}
	return nil
}
