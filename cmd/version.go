package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

const platformName = "exynos7904"

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of powerd",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("powerd v%s (%s)\n", version, platformName)
	},
}
