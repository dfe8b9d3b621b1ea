package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/chenyukang/fiber-world/internal/config"
)

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialise the configuration file",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration as TOML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return toml.NewEncoder(cmd.OutOrStdout()).Encode(a.cfg)
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write the default configuration unless the file exists",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if _, err := os.Stat(a.configPath); err == nil {
					return fmt.Errorf("%s already exists", a.configPath)
				}
				if err := config.Save(a.configPath, config.Default()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s wrote %s\n", good.Sprint("✓"), a.configPath)
				return nil
			},
		},
	)
	return cmd
}
