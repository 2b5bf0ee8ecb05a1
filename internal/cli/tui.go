package cli

import (
	"context"

	"mandalart-cli/internal/logging"
	"mandalart-cli/internal/model"
	"mandalart-cli/internal/mutate"
	"mandalart-cli/internal/session"
	"mandalart-cli/internal/store"
	"mandalart-cli/internal/tui"

	"github.com/spf13/cobra"
)

func runTUI(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := app.store()
	if err != nil {
		return writeErr(cmd, err)
	}

	// The TUI owns the terminal: log to the configured file or nowhere.
	logger := logging.Discard()
	if app.cfg.LogFile != "" {
		logger = app.logger
	}
	s.Logger = logger

	_, existed, err := s.LoadRaw(ctx)
	if err != nil {
		return writeErr(cmd, err)
	}
	sess, err := session.Open(ctx, s, session.WithLogger(logger), session.WithClock(app.now))
	if err != nil {
		return writeErr(cmd, err)
	}
	if !existed {
		// A brand-new store takes its language from config.
		lang := model.Language(app.cfg.Language)
		sess.Apply(ctx, func(st store.State) mutate.Result {
			res, err := mutate.SetLanguage(st, lang)
			if err != nil {
				return mutate.Result{State: st}
			}
			return res
		})
	}

	return tui.Run(ctx, tui.Options{
		Session: sess,
		Store:   s,
		Year:    app.year(),
		Glyphs:  app.cfg.TUI.Glyphs,
		Theme:   app.cfg.TUI.Theme,
		Logger:  logger,
	})
}
