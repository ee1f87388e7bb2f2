package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/portfolio/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a portfolio config with an interactive wizard",
	Long: `Asks for the port, data directory, content directory, site details and
contact submission mode, then writes them to the config file (.portfolio.yml
unless --config is given).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath
		}
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists; pass --force to overwrite it", path)
		}

		c, err := config.RunWizard(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Start the site with: portfolio server --port %d\n", c.Port)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
