package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quickqueue/internal/model"
	apperrors "quickqueue/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	List(ctx context.Context, filter model.EventFilter) ([]*model.Event, error)
	ListByOrganizer(ctx context.Context, organizerID int) ([]*model.Event, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Event, error)
	FindByID(ctx context.Context, id int) (*model.Event, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error)
	Replace(ctx context.Context, id int, event *model.Event) (*model.Event, error)
	Count(ctx context.Context) (int, error)
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `id, event_id, title, description, organizer_id, organizer_name,
		       venue, date, duration_hours, category, image_url, terms, status,
		       created_at, updated_at`

func scanEvent(row pgx.Row, event *model.Event) error {
	return row.Scan(
		&event.ID,
		&event.EventID,
		&event.Title,
		&event.Description,
		&event.OrganizerID,
		&event.OrganizerName,
		&event.Venue,
		&event.Date,
		&event.DurationHours,
		&event.Category,
		&event.ImageURL,
		&event.Terms,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO events (
			event_id, title, description, organizer_id, organizer_name,
			venue, date, duration_hours, category, image_url, terms, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + eventColumns

	err = scanEvent(tx.QueryRow(ctx, query,
		event.EventID, event.Title, event.Description, event.OrganizerID, event.OrganizerName,
		event.Venue, event.Date, event.DurationHours, event.Category, event.ImageURL,
		event.Terms, event.Status,
	), event)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if err := r.insertTicketTypes(ctx, tx, event.ID, event.TicketTypes); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) insertTicketTypes(ctx context.Context, tx pgx.Tx, eventID int, ticketTypes []model.TicketType) error {
	query := `
		INSERT INTO ticket_types (event_id, name, price, available)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for i := range ticketTypes {
		ticketTypes[i].EventID = eventID
		err := tx.QueryRow(ctx, query,
			eventID, ticketTypes[i].Name, ticketTypes[i].Price, ticketTypes[i].Available,
		).Scan(&ticketTypes[i].ID)
		if err != nil {
			return fmt.Errorf("failed to create ticket type: %w", err)
		}
	}
	return nil
}

// List 只回傳已發佈的活動，支援分類、關鍵字與時間/價格篩選
func (r *EventRepositoryImpl) List(ctx context.Context, filter model.EventFilter) ([]*model.Event, error) {
	conds := []string{"status = $1"}
	args := []interface{}{model.EventStatusPublished}
	argPos := 2

	if filter.Category != "" {
		conds = append(conds, fmt.Sprintf("category = $%d", argPos))
		args = append(args, filter.Category)
		argPos++
	}

	if filter.Search != "" {
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE $%d OR venue ILIKE $%d OR organizer_name ILIKE $%d)",
			argPos, argPos, argPos,
		))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	now := time.Now().UTC()
	switch filter.FilterType {
	case "today":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		conds = append(conds, fmt.Sprintf("date >= $%d AND date < $%d", argPos, argPos+1))
		args = append(args, start, start.AddDate(0, 0, 1))
		argPos += 2
	case "week":
		conds = append(conds, fmt.Sprintf("date >= $%d AND date < $%d", argPos, argPos+1))
		args = append(args, now, now.AddDate(0, 0, 7))
		argPos += 2
	case "month":
		conds = append(conds, fmt.Sprintf("date >= $%d AND date < $%d", argPos, argPos+1))
		args = append(args, now, now.AddDate(0, 0, 30))
		argPos += 2
	case "free":
		conds = append(conds, "EXISTS (SELECT 1 FROM ticket_types tt WHERE tt.event_id = events.id AND tt.price = 0)")
	case "paid":
		conds = append(conds, "EXISTS (SELECT 1 FROM ticket_types tt WHERE tt.event_id = events.id AND tt.price > 0)")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE %s
		ORDER BY date ASC
	`, eventColumns, strings.Join(conds, " AND "))

	return r.queryEvents(ctx, query, args...)
}

func (r *EventRepositoryImpl) ListByOrganizer(ctx context.Context, organizerID int) ([]*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE organizer_id = $1
		ORDER BY created_at DESC
	`, eventColumns)

	return r.queryEvents(ctx, query, organizerID)
}

func (r *EventRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		ORDER BY created_at DESC
		LIMIT $1
	`, eventColumns)

	return r.queryEvents(ctx, query, limit)
}

func (r *EventRepositoryImpl) queryEvents(ctx context.Context, query string, args ...interface{}) ([]*model.Event, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		var event model.Event
		if err := scanEvent(rows, &event); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadTicketTypes(ctx, events); err != nil {
		return nil, err
	}

	return events, nil
}

// loadTicketTypes 一次撈出所有活動的票種，避免 N+1
func (r *EventRepositoryImpl) loadTicketTypes(ctx context.Context, events []*model.Event) error {
	if len(events) == 0 {
		return nil
	}

	ids := make([]int, 0, len(events))
	byID := make(map[int]*model.Event, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
		byID[e.ID] = e
		e.TicketTypes = make([]model.TicketType, 0)
	}

	query := `
		SELECT id, event_id, name, price, available
		FROM ticket_types
		WHERE event_id = ANY($1)
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var tt model.TicketType
		err := rows.Scan(&tt.ID, &tt.EventID, &tt.Name, &tt.Price, &tt.Available)
		if err != nil {
			return err
		}
		if event, ok := byID[tt.EventID]; ok {
			event.TicketTypes = append(event.TicketTypes, tt)
		}
	}
	return rows.Err()
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE id = $1
	`, eventColumns)

	var event model.Event
	err := scanEvent(r.pool.QueryRow(ctx, query, id), &event)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	if err := r.loadTicketTypes(ctx, []*model.Event{&event}); err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *EventRepositoryImpl) FindByEventID(ctx context.Context, eventID uuid.UUID) (*model.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE event_id = $1
	`, eventColumns)

	var event model.Event
	err := scanEvent(r.pool.QueryRow(ctx, query, eventID), &event)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	if err := r.loadTicketTypes(ctx, []*model.Event{&event}); err != nil {
		return nil, err
	}

	return &event, nil
}

// Replace 整筆覆寫活動內容與票種。organizer 與 created_at 由 service 保留，
// 既有訂票不受影響（金額在建立當下已固定）
func (r *EventRepositoryImpl) Replace(ctx context.Context, id int, event *model.Event) (*model.Event, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE events
		SET title = $1, description = $2, venue = $3, date = $4, duration_hours = $5,
		    category = $6, image_url = $7, terms = $8, status = $9, updated_at = $10
		WHERE id = $11
		RETURNING ` + eventColumns

	err = scanEvent(tx.QueryRow(ctx, query,
		event.Title, event.Description, event.Venue, event.Date, event.DurationHours,
		event.Category, event.ImageURL, event.Terms, event.Status, time.Now().UTC(), id,
	), event)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	_, err = tx.Exec(ctx, `DELETE FROM ticket_types WHERE event_id = $1`, id)
	if err != nil {
		return nil, err
	}

	if err := r.insertTicketTypes(ctx, tx, id, event.TicketTypes); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
