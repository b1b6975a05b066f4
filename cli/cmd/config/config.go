// Package config implements the "betterseo config" command group.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/alessiobussolari/better-seo/engine/core"
	"github.com/alessiobussolari/better-seo/pkg/config"
	"github.com/alessiobussolari/better-seo/pkg/logger"
)

const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"

	// DefaultConfigFile is read when --config is not given. A missing file
	// leaves the defaults in place.
	DefaultConfigFile = "config/better_seo.yaml"
)

// AddSourceFlags registers the flags that select configuration sources.
func AddSourceFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", DefaultConfigFile, "Path to the YAML configuration file")
	fs.String("env-file", ".env", "Path to a .env file read below the process environment")
	fs.String("env-prefix", config.EnvPrefix, "Prefix of configuration environment variables")
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and validate the SEO configuration",
	}
	cmd.AddCommand(
		NewConfigShowCommand(),
		NewConfigValidateCommand(),
		NewConfigFeaturesCommand(),
	)
	return cmd
}

// NewConfigShowCommand creates the config show subcommand.
func NewConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Display the configuration after layering defaults, the YAML file and
environment variables. Supports JSON, YAML, and table output formats.`,
		RunE: runConfigShow,
	}
	cmd.Flags().StringP("format", "f", "", "Output format (json, yaml, table); table on a terminal, json otherwise")
	cmd.Flags().BoolP("sources", "s", false, "Show which source provided each value")
	return cmd
}

// NewConfigValidateCommand creates the config validate subcommand.
func NewConfigValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Long: `Validate the effective configuration and report every problem.
With --watch the YAML file is validated again on every change.`,
		RunE: runConfigValidate,
	}
	cmd.Flags().BoolP("watch", "w", false, "Validate again whenever the configuration file changes")
	return cmd
}

// NewConfigFeaturesCommand creates the config features subcommand.
func NewConfigFeaturesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "List features and whether they are enabled",
		RunE:  runConfigFeatures,
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	showSources, err := cmd.Flags().GetBool("sources")
	if err != nil {
		return fmt.Errorf("failed to get sources flag: %w", err)
	}
	if format == "" {
		format = defaultFormat()
	}
	cfg, loader, err := loadConfig(cmd.Context(), cmd)
	if cfg == nil {
		return err
	}
	if err != nil {
		logger.FromContext(cmd.Context()).Warn("configuration is invalid", "error", err)
	}
	var sources map[string]config.SourceType
	if showSources {
		sources = loader.Metadata().Sources
	}
	return formatConfigOutput(cmd.OutOrStdout(), cfg, sources, format)
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	result := validateOnce(ctx, cmd, out)
	if !watch {
		return result
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	return watchAndValidate(ctx, cmd, out, path)
}

func validateOnce(ctx context.Context, cmd *cobra.Command, out io.Writer) error {
	cfg, _, err := loadConfig(ctx, cmd)
	if err == nil {
		fmt.Fprintln(out, "Configuration is valid")
		return nil
	}
	if cfg == nil {
		return err
	}
	messages := validationMessages(err)
	fmt.Fprintln(out, "Configuration is invalid:")
	for _, msg := range messages {
		fmt.Fprintf(out, "  - %s\n", msg)
	}
	return errors.Errorf("configuration has %d problem(s)", len(messages))
}

func watchAndValidate(ctx context.Context, cmd *cobra.Command, out io.Writer, path string) error {
	log := logger.FromContext(ctx)
	source := config.NewYAMLProvider(path)
	defer source.Close()

	changes := make(chan struct{}, 1)
	err := source.Watch(ctx, func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return errors.Wrap(err, "failed to watch configuration file")
	}
	log.Info("watching configuration file", "path", path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			if err := validateOnce(ctx, cmd, out); err != nil {
				log.Warn("configuration changed and is invalid", "error", err)
			}
		}
	}
}

func runConfigFeatures(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd.Context(), cmd)
	if cfg == nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FEATURE\tSTATUS")
	for _, name := range config.FeatureNames() {
		fmt.Fprintf(w, "%s\t%s\n", name, cfg.FeatureStatus(name))
	}
	return w.Flush()
}

// loadConfig layers the YAML file, the .env file and the environment selected
// by the flags. A configuration that fails validation is returned together with
// the error.
func loadConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, *config.Loader, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get env-file flag: %w", err)
	}
	prefix, err := cmd.Flags().GetString("env-prefix")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get env-prefix flag: %w", err)
	}
	sources := []config.Source{config.NewYAMLProvider(path)}
	if envFile != "" {
		sources = append(sources, config.NewDotEnvProvider(envFile, prefix))
	}
	sources = append(sources, config.NewEnvProvider(prefix))
	loader := config.NewLoader()
	cfg, err := loader.Load(ctx, sources...)
	if cfg == nil {
		return nil, nil, errors.Wrap(err, "failed to load configuration")
	}
	return cfg, loader, err
}

func validationMessages(err error) []string {
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		return ve.Messages()
	}
	return []string{err.Error()}
}

func defaultFormat() string {
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return FormatTable
	}
	return FormatJSON
}

// formatConfigOutput writes cfg in the requested format. sources is nil unless
// source information was requested.
func formatConfigOutput(
	out io.Writer,
	cfg *config.Config,
	sources map[string]config.SourceType,
	format string,
) error {
	switch format {
	case FormatJSON:
		return outputJSON(out, cfg, sources)
	case FormatYAML:
		return outputYAML(out, cfg, sources)
	case FormatTable:
		return outputTable(out, cfg, sources)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func outputJSON(out io.Writer, cfg *config.Config, sources map[string]config.SourceType) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(withSources(cfg, sources))
}

func outputYAML(out io.Writer, cfg *config.Config, sources map[string]config.SourceType) error {
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(withSources(cfg, sources)); err != nil {
		return err
	}
	return encoder.Close()
}

func withSources(cfg *config.Config, sources map[string]config.SourceType) any {
	if sources == nil {
		return cfg.ToMap()
	}
	return map[string]any{
		"config":  cfg.ToMap(),
		"sources": sources,
	}
}

func outputTable(out io.Writer, cfg *config.Config, sources map[string]config.SourceType) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	flat := flattenConfig(cfg.ToMap())
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if sources != nil {
		fmt.Fprintln(w, "KEY\tVALUE\tSOURCE")
	} else {
		fmt.Fprintln(w, "KEY\tVALUE")
	}
	for _, key := range keys {
		if sources != nil {
			source := sources[key]
			if source == "" {
				source = config.SourceDefault
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", key, flat[key], source)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", key, flat[key])
	}
	return w.Flush()
}

// flattenConfig turns the nested tree into dotted keys with printable values.
func flattenConfig(tree map[string]any) map[string]string {
	result := make(map[string]string)
	flattenInto(result, "", tree)
	return result
}

func flattenInto(result map[string]string, prefix string, tree map[string]any) {
	for key, value := range tree {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flattenInto(result, path, v)
		case nil:
			result[path] = ""
		case []string:
			result[path] = strings.Join(v, ",")
		default:
			result[path] = fmt.Sprint(v)
		}
	}
}
