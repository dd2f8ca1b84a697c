package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vmunix/ivysilani/pkg/ivysilani"
)

// programmeJSON is the JSON shape of a programme detail.
type programmeJSON struct {
	Fields             ivysilani.Fields `json:"fields"`
	SubtitlesAvailable bool             `json:"subtitlesAvailable"`
}

func newProgrammeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "programme <id>",
		Short: "Show programme details",
		Long: `Show every field the API returns for a programme.

With --subs the subtitles are scraped from the programme's web page and
written to the given file. Relative paths land in subtitles.dir.

Examples:
  ivysilani programme 217562210100001
  ivysilani programme 217562210100001 --subs most.srt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}

			subs, _ := cmd.Flags().GetString("subs")
			if subs != "" {
				if subs, err = subtitlesPath(e, subs); err != nil {
					return err
				}
			}

			p, err := e.client.Programme(cmd.Context(), args[0], subs)
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(e.out, programmeJSON{Fields: p.Fields, SubtitlesAvailable: p.SubtitlesAvailable})
			}
			for _, key := range p.Keys() {
				_, _ = fmt.Fprintf(e.out, "%-16s %s\n", key+":", p.Value(key))
			}
			if subs != "" {
				if p.SubtitlesAvailable {
					_, _ = fmt.Fprintf(e.out, "\nSubtitles written to %s\n", subs)
				} else {
					_, _ = fmt.Fprintln(e.out, "\nNo subtitles available")
				}
			}
			return nil
		},
	}
	cmd.Flags().String("subs", "", "Write subtitles to this file")
	return cmd
}

func newSubListCmd(name, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			page, _ := cmd.Flags().GetInt("page")
			pageSize, _ := cmd.Flags().GetInt("page-size")

			p := e.client.ProgrammeRef(args[0])
			var programmes []*ivysilani.Programme
			switch name {
			case "episodes":
				programmes, err = p.Episodes(cmd.Context(), page, pageSize)
			case "related":
				programmes, err = p.Related(cmd.Context(), page, pageSize)
			default:
				programmes, err = p.Bonuses(cmd.Context(), page, pageSize)
			}
			if err != nil {
				return err
			}
			return printProgrammes(e.out, programmes)
		},
	}
	cmd.Flags().Int("page", 1, "Page number")
	cmd.Flags().Int("page-size", 0, "Items per page (default: client.page_size)")
	return cmd
}

func newSubsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "subs <id> <file>",
		Short: "Download subtitles of a programme",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			path, err := subtitlesPath(e, args[1])
			if err != nil {
				return err
			}

			p, err := e.client.Programme(cmd.Context(), args[0], "")
			if err != nil {
				return err
			}
			n, err := p.WriteSubtitles(cmd.Context(), path)
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(e.out, map[string]any{"id": p.ID(), "path": path, "captions": n})
			}
			_, _ = fmt.Fprintf(e.out, "Wrote %d captions to %s\n", n, path)
			return nil
		},
	}
}

// subtitlesPath places a relative file name in the configured subtitles
// directory, creating it if needed.
func subtitlesPath(e *env, name string) (string, error) {
	if filepath.IsAbs(name) || e.cfg.Subtitles.Dir == "" {
		return name, nil
	}
	if err := os.MkdirAll(e.cfg.Subtitles.Dir, 0755); err != nil {
		return "", fmt.Errorf("create subtitles dir: %w", err)
	}
	return filepath.Join(e.cfg.Subtitles.Dir, name), nil
}
