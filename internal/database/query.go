package database

import (
	"time"
)

// GetRecentEvents returns the most recent events, newest first
func (h *HistoryDB) GetRecentEvents(limit int) ([]Event, error) {
	query := `
	SELECT id, timestamp, action, path, file_name, mode, reason, error_message, created_at
	FROM events ORDER BY timestamp DESC LIMIT ?
	`
	return h.queryEvents(query, limit)
}

// GetEventsByAction returns all events with the given action, newest first
func (h *HistoryDB) GetEventsByAction(action string) ([]Event, error) {
	query := `
	SELECT id, timestamp, action, path, file_name, mode, reason, error_message, created_at
	FROM events WHERE action = ? ORDER BY timestamp DESC
	`
	return h.queryEvents(query, action)
}

// GetEventsSince returns all events recorded at or after the given time
func (h *HistoryDB) GetEventsSince(since time.Time) ([]Event, error) {
	query := `
	SELECT id, timestamp, action, path, file_name, mode, reason, error_message, created_at
	FROM events WHERE timestamp >= ? ORDER BY timestamp DESC
	`
	return h.queryEvents(query, since)
}

// GetEventsByPath returns events whose path matches the SQL LIKE pattern
func (h *HistoryDB) GetEventsByPath(pathPattern string) ([]Event, error) {
	query := `
	SELECT id, timestamp, action, path, file_name, mode, reason, error_message, created_at
	FROM events WHERE path LIKE ? ORDER BY timestamp DESC
	`
	return h.queryEvents(query, pathPattern)
}

// GetEventCountByAction returns how many events were recorded per action
func (h *HistoryDB) GetEventCountByAction() (map[string]int, error) {
	rows, err := h.db.Query("SELECT action, COUNT(*) FROM events GROUP BY action")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var action string
		var count int
		if err := rows.Scan(&action, &count); err != nil {
			return nil, err
		}
		counts[action] = count
	}
	return counts, rows.Err()
}

// queryEvents runs a query returning full event rows
func (h *HistoryDB) queryEvents(query string, args ...interface{}) ([]Event, error) {
	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(
			&e.ID,
			&e.Timestamp,
			&e.Action,
			&e.Path,
			&e.FileName,
			&e.Mode,
			&e.Reason,
			&e.ErrorMessage,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
