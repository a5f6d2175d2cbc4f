package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ivlev/draftsync/internal/config"
)

var (
	cfgFile  string
	logLevel string
	pretty   bool

	cfg    *config.Config
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "draftsync",
	Short: "Lay out images on a Jianying/CapCut draft in time with its subtitles",
	Long: `draftsync edits the draft_content.json of a Jianying/CapCut draft: it adds a
video track of still images cut at the subtitle boundaries, each with a slow
pan and a random entrance animation. Everything else in the draft is kept.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Logging.Level = logLevel
		}
		if cmd.Flags().Changed("pretty") {
			loaded.Logging.Pretty = pretty
		}
		cfg = loaded
		logger = setupLogger(cfg.Logging, cmd.ErrOrStderr())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", true, "human-readable log output")
}

func setupLogger(lc config.LoggingConfig, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)

	if lc.Pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: out}).
			With().
			Timestamp().
			Logger()
	}

	return zerolog.New(out).
		With().
		Timestamp().
		Logger()
}
