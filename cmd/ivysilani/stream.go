package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/ivysilani/pkg/ivysilani"
)

// stream is anything that resolves to playable URLs.
type stream interface {
	URL(ctx context.Context, q ivysilani.Quality, streamType string) (string, error)
	AvailableQualities(ctx context.Context) []ivysilani.Quality
	Variants(ctx context.Context, q ivysilani.Quality) ([]ivysilani.Variant, error)
}

func addStreamFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("quality", "q", "web", "Quality (mobile, web, AD, 720p, ...)")
	cmd.Flags().String("stream-type", ivysilani.StreamHLS, "Stream type (hls or dash)")
}

func qualityFlag(cmd *cobra.Command) (ivysilani.Quality, error) {
	raw, _ := cmd.Flags().GetString("quality")
	return ivysilani.ParseQuality(raw)
}

// resolveStream returns the programme with id, or the live channel named by
// id when --live is set.
func resolveStream(cmd *cobra.Command, e *env, id string) (stream, error) {
	if live, _ := cmd.Flags().GetBool("live"); live {
		return resolveChannel(e.client, id)
	}
	return e.client.ProgrammeRef(id), nil
}

func newQualitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qualities <id>",
		Short: "List the qualities a programme can be played in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			s, err := resolveStream(cmd, e, args[0])
			if err != nil {
				return err
			}

			qualities := s.AvailableQualities(cmd.Context())
			if jsonOutput {
				return printJSON(e.out, qualities)
			}
			if len(qualities) == 0 {
				_, _ = fmt.Fprintln(e.out, "No playable qualities.")
				return nil
			}
			for _, q := range qualities {
				_, _ = fmt.Fprintf(e.out, "%-8s %s\n", q.String(), q.Label())
			}
			return nil
		},
	}
	cmd.Flags().Bool("live", false, "Treat the argument as a live channel")
	return cmd
}

func newURLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "url <id>",
		Short: "Resolve a playable stream URL",
		Long: `Resolve a verified stream URL for a programme or live channel.

Examples:
  ivysilani url 217562210100001
  ivysilani url 217562210100001 --quality 720p --stream-type dash
  ivysilani url 24 --live`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			q, err := qualityFlag(cmd)
			if err != nil {
				return err
			}
			streamType, _ := cmd.Flags().GetString("stream-type")
			s, err := resolveStream(cmd, e, args[0])
			if err != nil {
				return err
			}

			u, err := s.URL(cmd.Context(), q, streamType)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(e.out, map[string]string{"id": args[0], "quality": q.String(), "url": u})
			}
			_, _ = fmt.Fprintln(e.out, u)
			return nil
		},
	}
	cmd.Flags().Bool("live", false, "Treat the argument as a live channel")
	addStreamFlags(cmd)
	return cmd
}

func newVariantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "variants <id>",
		Short: "List the renditions of a programme's HLS stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			q, err := qualityFlag(cmd)
			if err != nil {
				return err
			}
			s, err := resolveStream(cmd, e, args[0])
			if err != nil {
				return err
			}

			variants, err := s.Variants(cmd.Context(), q)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(e.out, variants)
			}
			for _, v := range variants {
				_, _ = fmt.Fprintf(e.out, "%9d  %-10s %s\n", v.Bandwidth, v.Resolution, v.URI)
			}
			return nil
		},
	}
	cmd.Flags().Bool("live", false, "Treat the argument as a live channel")
	cmd.Flags().StringP("quality", "q", "web", "Quality (mobile, web, AD, 720p, ...)")
	return cmd
}
