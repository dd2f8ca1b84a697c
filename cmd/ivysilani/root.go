package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/ivysilani/internal/config"
	"github.com/vmunix/ivysilani/pkg/ivysilani"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
	debug      bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ivysilani",
		Short: "Browse and play the Česká televize iVysílání archive",
		Long: `ivysilani - command line client for the iVysílání catch-up TV API

Lists live channels, spotlights, genres, the A-Z index and day schedules,
shows programme details and sub-lists, resolves playable stream URLs and
downloads subtitles.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug logging")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("ivysilani {{.Version}}\n")

	rootCmd.AddCommand(
		newChannelsCmd(),
		newLiveCmd(),
		newSpotlightsCmd(),
		newDateCmd(),
		newGenresCmd(),
		newLettersCmd(),
		newSearchCmd(),
		newProgrammeCmd(),
		newSubListCmd("episodes", "List episodes of a programme"),
		newSubListCmd("related", "List programmes related to a programme"),
		newSubListCmd("bonuses", "List bonus videos of a programme"),
		newSubsCmd(),
		newQualitiesCmd(),
		newURLCmd(),
		newVariantsCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// env is what every command needs to talk to the API.
type env struct {
	cfg    *config.Config
	client *ivysilani.Client
	log    *slog.Logger
	out    io.Writer
}

// setup loads the configuration and builds a client for cmd.
func setup(cmd *cobra.Command) (*env, error) {
	cfg, path, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := parseLogLevel(cfg.Log.Level)
	if debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if path != "" {
		log.Debug("config loaded", "path", path)
	}

	return &env{
		cfg:    cfg,
		client: ivysilani.New(cfg.ClientOptions(log)...),
		log:    log,
		out:    cmd.OutOrStdout(),
	}, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
