package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	configcmd "github.com/alessiobussolari/better-seo/cli/cmd/config"
	"github.com/alessiobussolari/better-seo/pkg/logger"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "betterseo",
		Short:             "better-seo configuration tool",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}
	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error, disabled)")
	root.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	root.PersistentFlags().Bool("log-source", false, "Include source locations in logs")
	configcmd.AddSourceFlags(root.PersistentFlags())

	root.AddCommand(
		configcmd.NewConfigCommand(),
	)

	return root
}

// setupLogging installs the logger selected by the persistent flags and
// attaches it to the command context.
func setupLogging(cmd *cobra.Command, _ []string) error {
	level, logJSON, logSource, err := logger.GetLoggerConfig(cmd)
	if err != nil {
		return errors.Wrap(err, "failed to read logging flags")
	}
	log := logger.SetupLogger(level, logJSON, logSource)
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), log))
	return nil
}
