package main

import (
	"fmt"
	"os"

	"github.com/beka-birhanu/vinom-portfolio/config"
	"github.com/beka-birhanu/vinom-portfolio/infrastruture/logger"
	"github.com/beka-birhanu/vinom-portfolio/service/i"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	appLogger i.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vinom-portfolio",
	Short: "Portfolio site API and first-person maze",
	Long: `vinom-portfolio serves the portfolio site's API (posts, sitemap,
contact relay, admin) and plays the site's maze demo in a terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logger.New("APP", config.ColorGreen, os.Stdout)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		l.SetDebug(verbose)
		appLogger = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug lines")
	rootCmd.AddCommand(serveCmd, mazeCmd, playCmd, hashPasswordCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
