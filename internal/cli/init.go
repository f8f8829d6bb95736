package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pmlite/pmlite/internal/config"
	"github.com/pmlite/pmlite/internal/constants"
	"github.com/pmlite/pmlite/internal/tui"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	project bool
	force   bool
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Write a starter configuration file with the built-in defaults.

By default the global config (~/.pmlite/config.yaml) is written.
Use --project to write a project-local .pmlite/config.yaml in the
current directory instead; it overrides the global one.

Examples:
  pmlite init             # write ~/.pmlite/config.yaml
  pmlite init --project   # write ./.pmlite/config.yaml
  pmlite init --force     # overwrite an existing file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.project, "project", false, "write a project-local config instead of the global one")
	cmd.Flags().BoolVar(&flags.force, "force", false, "overwrite an existing config file")

	return cmd
}

// runInit writes the default configuration to the chosen location.
func runInit(w io.Writer, flags *initFlags) error {
	out := tui.NewTTYOutput(w)

	path, err := initConfigPath(flags.project)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !flags.force {
		out.Warning(fmt.Sprintf("%s already exists; use --force to overwrite", path))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	logger := GetLogger()
	logger.Info().Str("path", path).Msg("config written")
	out.Success("wrote " + path)
	return nil
}

// initConfigPath resolves where init writes its file.
func initConfigPath(project bool) (string, error) {
	if project {
		return config.ProjectConfigPath(), nil
	}
	dir, err := config.GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}
