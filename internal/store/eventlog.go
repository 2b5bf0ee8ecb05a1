package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"mandalart-cli/internal/model"
)

var errEventContract = errors.New("event contract violation")

const eventIDPrefix = "evt-"

func newEvent(typ, entityID string, year int, payload any) (model.Event, error) {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return model.Event{}, errors.Join(errEventContract, errors.New("missing type"))
	}
	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return model.Event{}, errors.Join(errEventContract, errors.New("missing entity id"))
	}
	return model.Event{
		ID:       eventIDPrefix + uuid.NewString(),
		TS:       time.Now().UTC(),
		Type:     typ,
		EntityID: entityID,
		Year:     year,
		Payload:  payload,
	}, nil
}

// AppendEvent records one change in the workspace event log.
func (s Store) AppendEvent(ctx context.Context, typ, entityID string, year int, payload any) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	ev, err := newEvent(typ, entityID, year, payload)
	if err != nil {
		return err
	}
	if s.backend() == BackendJSON {
		return appendEventJSONL(s.eventsPath(), ev)
	}
	return appendEventSQLite(ctx, s.sqlitePath(), ev)
}

// ReadEvents returns logged events oldest first. limit > 0 keeps only the most
// recent limit events.
func (s Store) ReadEvents(ctx context.Context, limit int) ([]model.Event, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	var (
		evs []model.Event
		err error
	)
	if s.backend() == BackendJSON {
		evs, err = ReadEventsJSONL(s.eventsPath())
	} else {
		evs, err = readEventsSQLite(ctx, s.sqlitePath())
	}
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(evs) > limit {
		evs = evs[len(evs)-limit:]
	}
	return evs, nil
}

// ReplaceEvents swaps the whole event log for evs.
func (s Store) ReplaceEvents(ctx context.Context, evs []model.Event) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	if s.backend() == BackendJSON {
		return WriteEventsJSONL(s.eventsPath(), evs)
	}
	return replaceEventsSQLite(ctx, s.sqlitePath(), evs)
}

func payloadJSON(p any) (string, error) {
	if p == nil {
		return "null", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func rawPayload(s string) json.RawMessage {
	s = strings.TrimSpace(s)
	if s == "" {
		return json.RawMessage("null")
	}
	return json.RawMessage(s)
}
