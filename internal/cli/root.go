package cli

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"GolfPassport/internal/catalog"
	"GolfPassport/internal/config"
	"GolfPassport/internal/recorder"
)

// App carries the dependencies every command needs.
type App struct {
	Config   *config.Config
	Catalog  *catalog.Catalog
	Recorder recorder.Recorder
	Log      zerolog.Logger
	Now      func() time.Time
}

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

// NewRootCommand builds the passport command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	if app.Now == nil {
		app.Now = time.Now
	}

	root := &cobra.Command{
		Use:   "passport",
		Short: "Yorkshire Golf Passport membership planner",
		Long: `Plan a golf passport membership: find courses near home, compare
packages, and spread rounds across the Signature, Select and Classic
credit banks.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			info := commandContext{correlationID: uuid.New(), startedAt: time.Now()}
			cmd.SetContext(context.WithValue(cmd.Context(), commandContextKey{}, info))
			app.Log.Debug().
				Str("command", cmd.CommandPath()).
				Str("correlation_id", info.correlationID.String()).
				Msg("command start")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
			if !ok {
				return
			}
			app.Log.Debug().
				Str("command", cmd.CommandPath()).
				Str("correlation_id", info.correlationID.String()).
				Int64("duration_ms", time.Since(info.startedAt).Milliseconds()).
				Msg("command end")
		},
	}

	root.AddCommand(newCoursesCommand(app))
	root.AddCommand(newPackagesCommand(app))
	root.AddCommand(newBanksCommand(app))
	root.AddCommand(newPlanCommand(app))
	return root
}
