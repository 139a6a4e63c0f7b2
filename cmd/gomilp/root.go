package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/opensolv/gomilp/logger"

	// Register the engine backends selectable via --backend.
	_ "github.com/opensolv/gomilp/native/grb"
	_ "github.com/opensolv/gomilp/native/stub"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "gomilp",
	Short: "Build and solve linear and mixed-integer programs",
	Long: `gomilp builds optimization models from JSON problem descriptions and
hands them to a native solver backend.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			level = zerolog.InfoLevel
		}
		logger.Set(logger.Logger().Level(level))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.SetOut(os.Stdout)
}
