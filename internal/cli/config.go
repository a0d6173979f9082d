package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindscape/pkg/config"
)

// configFileName is the name of the config file inside configDir.
const configFileName = "config.toml"

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage engine configuration",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := defaultConfigPath()
			if err != nil {
				return fmt.Errorf("get config dir: %w", err)
			}
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				printWarning("Config already exists")
				printDetail("Path: %s", path)
				printNextStep("Overwrite with", fmt.Sprintf("%s config init --force", appName))
				return nil
			}

			if err := config.Save(config.Default(), path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			printSuccess("Wrote default configuration")
			printFile(path)
			printNextStep("Use it with", fmt.Sprintf("%s layout --config %s <content>", appName, path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return config.Write(cfg, cmd.OutOrStdout())
		},
	}
}

// defaultConfigPath returns ~/.config/mindscape/config.toml.
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
