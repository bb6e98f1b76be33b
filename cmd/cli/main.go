package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pawalert/pawalert/cmd/cli/bundle"
	"github.com/pawalert/pawalert/cmd/cli/img"
	"github.com/spf13/cobra"
)

func init() {
	if err := godotenv.Load(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(img.Group)
	rootCmd.AddCommand(img.Generate)
	rootCmd.AddGroup(bundle.Group)
	rootCmd.AddCommand(bundle.CustomElements)
}

var rootCmd = &cobra.Command{
	Use:  "pawalert-cli",
	Long: `Command line utilities for PawAlert`,
	Run: func(cmd *cobra.Command, args []string) {
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
