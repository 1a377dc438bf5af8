package cli

import (
	"fmt"

	"github.com/guiyumin/linkparse/internal/linkparser"
	"github.com/spf13/cobra"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List supported services in match order",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for i, r := range linkparser.Default().Recognizers() {
			fmt.Fprintf(out, "%d. %s\n", i+1, r.Name())
			if p, ok := r.(interface{ Pattern() string }); ok {
				fmt.Fprintf(out, "   %s\n", p.Pattern())
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(servicesCmd)
}
