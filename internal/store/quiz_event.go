package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var quizEventFields = []string{
	"id", "sequence", "timestamp", "session_id", "action",
	"category", "count", "score", "total", "message",
}

func (r *eventRepo) AppendQuizEvent(ctx context.Context, data QuizEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := sqlite().Insert(tableQuizEvents).
		Columns(quizEventFields[1:]...).
		Values(
			seqNum, time.Now().UTC(), data.SessionID, data.Action,
			data.Category, data.Count, data.Score, data.Total, data.Message,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryQuizEvents(ctx context.Context, opts QueryOpts) ([]QuizEvent, error) {
	sel := sqlite().Select(quizEventFields...).From(entsql.Table(tableQuizEvents))
	query, args := filter(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz events: %w", err)
	}
	defer rows.Close()

	var events []QuizEvent
	for rows.Next() {
		var e QuizEvent
		err := rows.Scan(
			&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &e.Action,
			&e.Category, &e.Count, &e.Score, &e.Total, &e.Message,
		)
		if err != nil {
			return nil, fmt.Errorf("scan quiz event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
