package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/control"
)

// Event is one journaled action attempt.
type Event struct {
	ID        string
	Gesture   string
	Action    string
	Executed  bool
	Error     string
	CreatedAt time.Time
}

// EventFromOutcome converts a dispatcher outcome into an Event.
func EventFromOutcome(o control.Outcome) *Event {
	e := &Event{
		Gesture:   o.Gesture.String(),
		Action:    o.Action,
		Executed:  o.Executed(),
		CreatedAt: o.At,
	}
	if o.Err != nil {
		e.Error = o.Err.Error()
	}
	return e
}

// Count summarizes the journal for one gesture and action.
type Count struct {
	Gesture  string
	Action   string
	Executed int
	Failed   int
}

// EventRepository reads and writes the dispatch journal.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Record inserts e, assigning an ID and timestamp when they are unset.
func (r *EventRepository) Record(e *Event) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	_, err := r.db.Exec(
		`INSERT INTO dispatches (id, gesture, action, executed, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Gesture, e.Action, e.Executed, e.Error, e.CreatedAt,
	)
	return err
}

// GetByID retrieves an event by its ID.
func (r *EventRepository) GetByID(id string) (*Event, error) {
	e := &Event{}
	var executed int

	err := r.db.QueryRow(
		`SELECT id, gesture, action, executed, error, created_at
		 FROM dispatches WHERE id = ?`,
		id,
	).Scan(&e.ID, &e.Gesture, &e.Action, &executed, &e.Error, &e.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	e.Executed = executed != 0
	return e, nil
}

// List returns the newest events first. A non-positive limit returns all.
func (r *EventRepository) List(limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.Query(
		`SELECT id, gesture, action, executed, error, created_at
		 FROM dispatches ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		var executed int

		if err := rows.Scan(&e.ID, &e.Gesture, &e.Action, &executed, &e.Error, &e.CreatedAt); err != nil {
			return nil, err
		}

		e.Executed = executed != 0
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Counts tallies executed and failed attempts per gesture and action.
func (r *EventRepository) Counts() ([]Count, error) {
	rows, err := r.db.Query(
		`SELECT gesture, action,
		        SUM(CASE WHEN executed != 0 THEN 1 ELSE 0 END),
		        SUM(CASE WHEN executed = 0 THEN 1 ELSE 0 END)
		 FROM dispatches GROUP BY gesture, action ORDER BY gesture, action`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []Count
	for rows.Next() {
		var c Count
		if err := rows.Scan(&c.Gesture, &c.Action, &c.Executed, &c.Failed); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// Clear deletes every event and reports how many were removed.
func (r *EventRepository) Clear() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM dispatches`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
