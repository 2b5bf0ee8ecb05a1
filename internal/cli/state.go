package cli

import (
	"context"

	"mandalart-cli/internal/mutate"
	"mandalart-cli/internal/store"
)

func loadState(ctx context.Context, app *App) (store.State, store.Store, error) {
	s, err := app.store()
	if err != nil {
		return store.State{}, store.Store{}, err
	}
	st, err := s.Load(ctx)
	if err != nil {
		return store.State{}, s, err
	}
	return st, s, nil
}

// commit saves a changed result and records its event. Unlike the
// interactive session, the CLI reports storage failures.
func commit(ctx context.Context, s store.Store, res mutate.Result) error {
	if !res.Changed {
		return nil
	}
	if err := s.Save(ctx, res.State); err != nil {
		return err
	}
	if res.EventType == "" {
		return nil
	}
	return s.AppendEvent(ctx, res.EventType, res.EntityID, res.Year, res.EventPayload)
}
