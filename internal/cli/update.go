package cli

import (
	"fmt"

	"github.com/guiyumin/linkparse/internal/updater"
	"github.com/guiyumin/linkparse/internal/version"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update linkparse to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		installed, err := updater.Update(cmd.Context(), version.Version)
		if err != nil {
			return err
		}
		if installed == version.Version {
			fmt.Fprintf(cmd.OutOrStdout(), "linkparse %s is up to date\n", installed)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated linkparse %s -> %s\n", version.Version, installed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
