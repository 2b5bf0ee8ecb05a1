package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"mandalart-cli/internal/model"
)

func insertEvent(ctx context.Context, ex interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
}, ev model.Event) error {
	pj, err := payloadJSON(ev.Payload)
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx, `
		INSERT INTO events(id, ts_unixms, type, entity_id, year, payload_json)
		VALUES(?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.TS.UTC().UnixMilli(), ev.Type, ev.EntityID, ev.Year, pj,
	)
	return err
}

func appendEventSQLite(ctx context.Context, path string, ev model.Event) error {
	db, err := openSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()
	return insertEvent(ctx, db, ev)
}

func readEventsSQLite(ctx context.Context, path string) ([]model.Event, error) {
	db, err := openSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT id, ts_unixms, type, entity_id, year, payload_json
		FROM events
		ORDER BY ts_unixms ASC, rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		var (
			id, typ, entityID, pj string
			tsMs                  int64
			year                  int
		)
		if err := rows.Scan(&id, &tsMs, &typ, &entityID, &year, &pj); err != nil {
			return nil, err
		}
		out = append(out, model.Event{
			ID:       id,
			TS:       time.UnixMilli(tsMs).UTC(),
			Type:     typ,
			EntityID: entityID,
			Year:     year,
			Payload:  rawPayload(pj),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// replaceEventsSQLite is meant for restore, not day-to-day mutations.
func replaceEventsSQLite(ctx context.Context, path string, evs []model.Event) error {
	db, err := openSQLite(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM events;`); err != nil {
		return err
	}
	for _, ev := range evs {
		if strings.TrimSpace(ev.ID) == "" {
			return errors.New("restore: event has empty id")
		}
		if ev.TS.IsZero() {
			ev.TS = time.Now().UTC()
		}
		if err := insertEvent(ctx, tx, ev); err != nil {
			return err
		}
	}
	return tx.Commit()
}
