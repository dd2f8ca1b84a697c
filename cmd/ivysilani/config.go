package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/ivysilani/internal/config"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	testCmd := &cobra.Command{
		Use:   "test [path]",
		Short: "Validate configuration file",
		Long:  "Validates config.toml syntax, values and environment variable substitution.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				found, err := config.Discover()
				if err != nil {
					return err
				}
				path = found
			}
			return runConfigTest(cmd.OutOrStdout(), path)
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write an example configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if len(args) > 0 {
				path = args[0]
			}
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.WriteDefault(path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	configCmd.AddCommand(testCmd, initCmd)
	return configCmd
}

func runConfigTest(w io.Writer, path string) error {
	_, _ = fmt.Fprintf(w, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.Error
		if errors.As(err, &configErr) {
			printConfigErrors(w, configErr)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(w, cfg)
	_, _ = fmt.Fprintln(w, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.Error) {
	if len(e.Missing) > 0 {
		_, _ = fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			_, _ = fmt.Fprintf(w, "  - %s\n", m)
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		_, _ = fmt.Fprintln(w, "Validation errors:")
		for _, msg := range e.Errors {
			_, _ = fmt.Fprintf(w, "  - %s\n", msg)
		}
		_, _ = fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	web := cfg.Client.WebBaseURL
	if web == "" {
		web = "(default)"
	}
	api := cfg.Client.APIBaseURL
	if api == "" {
		api = "(default)"
	}
	subs := cfg.Subtitles.Dir
	if subs == "" {
		subs = "(current directory)"
	}

	_, _ = fmt.Fprintln(w, "Configuration Summary:")
	_, _ = fmt.Fprintf(w, "  Web host:   %s\n", web)
	_, _ = fmt.Fprintf(w, "  API host:   %s\n", api)
	_, _ = fmt.Fprintf(w, "  Timeout:    %s\n", cfg.Client.Timeout)
	_, _ = fmt.Fprintf(w, "  Images:     %dpx, %d per page\n", cfg.Client.ImageWidth, cfg.Client.PageSize)
	_, _ = fmt.Fprintf(w, "  Log:        %s (verbose: %t)\n", cfg.Log.Level, cfg.Log.Verbose)
	_, _ = fmt.Fprintf(w, "  Subtitles:  %s\n", subs)
}
