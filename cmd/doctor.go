package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/portfolio/internal/content"
	"github.com/ziadkadry99/portfolio/internal/doctor"
	"github.com/ziadkadry99/portfolio/internal/markdown"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, database and content",
	RunE: func(cmd *cobra.Command, args []string) error {
		checks := []doctor.Check{doctor.ConfigCheck(cfg)}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		checks = append(checks, doctor.DatabaseCheck(database))

		md := markdown.New()
		checks = append(checks, doctor.ContentCheck(func() (*content.Library, error) {
			return loadContent(cfg, md)
		}))

		if _, ok := doctor.RunAll(cmd.Context(), cmd.OutOrStdout(), checks); !ok {
			return errors.New("doctor: some checks failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
