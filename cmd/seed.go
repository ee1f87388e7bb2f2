package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/portfolio/internal/audit"
	"github.com/ziadkadry99/portfolio/internal/markdown"
	"github.com/ziadkadry99/portfolio/internal/progress"
	"github.com/ziadkadry99/portfolio/internal/projects"
	"github.com/ziadkadry99/portfolio/internal/users"
)

var seedCmd = &cobra.Command{
	Use:   "seed <projects.yml>",
	Short: "Load projects from a YAML file",
	Long: `Creates the owner user if needed and adds every project from the file
that the owner does not already have. Running the same file twice is safe.`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolP("quiet", "q", false, "Do not show progress")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	seed, err := projects.ParseSeed(f)
	if err != nil {
		return err
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	reporter := progress.NewReporter(cmd.ErrOrStderr(), "Seeding projects")
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		reporter = progress.Nop()
	}
	res, err := projects.Seed(cmd.Context(), users.NewStore(database), projects.NewStore(database, markdown.New()), seed, reporter)
	if err != nil {
		return err
	}

	recordCLIAction(cmd.Context(), audit.NewStore(database), audit.ActionProjectsSeeded, args[0],
		fmt.Sprintf("created %d, skipped %d", res.Created, res.Skipped))

	logger.Info("seed complete",
		zap.String("file", args[0]),
		zap.Int("created", res.Created),
		zap.Int("skipped", res.Skipped))
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d projects (%d already present)\n", res.Created, res.Skipped)
	return nil
}
