package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vmunix/ivysilani/pkg/ivysilani"
	"github.com/vmunix/ivysilani/pkg/titlematch"
)

// channelJSON is the JSON shape of a live channel.
type channelJSON struct {
	Code      string               `json:"code"`
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	Permanent bool                 `json:"permanent"`
	Programme *ivysilani.Programme `json:"programme,omitempty"`
}

func newChannelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "List live channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}

			channels := e.client.LiveChannels()
			if jsonOutput {
				out := make([]channelJSON, 0, len(channels))
				for _, ch := range channels {
					out = append(out, channelJSON{Code: ch.Code, ID: ch.ID(), Title: ch.Title, Permanent: ch.Permanent})
				}
				return printJSON(e.out, out)
			}

			for _, ch := range channels {
				title := ch.Title
				if title == "" {
					title = "(event channel)"
				}
				_, _ = fmt.Fprintf(e.out, "%-10s %-8s %s\n", ch.Code, ch.ID(), title)
			}
			return nil
		},
	}
}

func newLiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live <channel>",
		Short: "Show what a live channel is broadcasting",
		Long: `Show the programme currently on air on a live channel.

The channel can be given by code (24), ID (CT24) or name (ct sport).

Examples:
  ivysilani live 24
  ivysilani live "ČT art" --url --quality 720p`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			ch, err := resolveChannel(e.client, args[0])
			if err != nil {
				return err
			}

			if withURL, _ := cmd.Flags().GetBool("url"); withURL {
				q, err := qualityFlag(cmd)
				if err != nil {
					return err
				}
				streamType, _ := cmd.Flags().GetString("stream-type")
				u, err := ch.URL(cmd.Context(), q, streamType)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(e.out, map[string]string{"channel": ch.ID(), "quality": q.String(), "url": u})
				}
				_, _ = fmt.Fprintln(e.out, u)
				return nil
			}

			p, err := ch.Programme(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return printJSON(e.out, channelJSON{Code: ch.Code, ID: ch.ID(), Title: ch.Title, Permanent: ch.Permanent, Programme: p})
			}
			_, _ = fmt.Fprintf(e.out, "%s (%s)\n", ch.Title, ch.ID())
			if p == nil {
				_, _ = fmt.Fprintln(e.out, "  nothing on air")
				return nil
			}
			_, _ = fmt.Fprintf(e.out, "  %s %s [%s]\n", p.Time(), p.Title(), p.ID())
			return nil
		},
	}
	cmd.Flags().Bool("url", false, "Print the stream URL instead")
	addStreamFlags(cmd)
	return cmd
}

func newSpotlightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spotlights [spotlight]",
		Short: "List spotlights or the programmes of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				spotlights := ivysilani.Spotlights()
				if jsonOutput {
					return printJSON(e.out, spotlights)
				}
				for _, s := range spotlights {
					_, _ = fmt.Fprintf(e.out, "%-16s %s\n", s.ID, s.Label)
				}
				return nil
			}

			s, err := resolveSpotlight(args[0])
			if err != nil {
				return err
			}
			return printProgrammes(e.out, e.client.List(cmd.Context(), s))
		},
	}
}

func newDateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "date <YYYY-MM-DD> <channel>",
		Short: "List a channel's schedule for a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			ch, err := resolveChannel(e.client, args[1])
			if err != nil {
				return err
			}
			listing, err := ivysilani.NewDateListing(args[0], ch)
			if err != nil {
				return err
			}
			return printProgrammes(e.out, e.client.List(cmd.Context(), listing))
		},
	}
}

func newGenresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genres [genre]",
		Short: "List genres or the programmes of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				genres, err := e.client.Genres(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(e.out, genres)
				}
				for _, g := range genres {
					_, _ = fmt.Fprintf(e.out, "%-6s %s\n", g.Link, g.Title)
				}
				return nil
			}

			g, err := resolveGenre(cmd.Context(), e.client, args[0])
			if err != nil {
				return err
			}
			return printProgrammes(e.out, e.client.List(cmd.Context(), g))
		},
	}
}

func newLettersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "letters [letter]",
		Short: "List the A-Z index or the programmes under a letter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				letters, err := e.client.Alphabet(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(e.out, letters)
				}
				for _, l := range letters {
					_, _ = fmt.Fprintf(e.out, "%-4s %s\n", l.Title, l.Link)
				}
				return nil
			}

			l, err := resolveLetter(cmd.Context(), e.client, args[0])
			if err != nil {
				return err
			}
			return printProgrammes(e.out, e.client.List(cmd.Context(), l))
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <title>",
		Short: "Find programmes by title",
		Long: `Find programmes by title in the A-Z index.

The index letter is taken from the start of the title, then titles under
that letter are matched ignoring case, diacritics and punctuation.

Examples:
  ivysilani search "kocka neni pes"
  ivysilani search Četnické`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}

			letters, err := e.client.Alphabet(cmd.Context())
			if err != nil {
				return err
			}
			letter, ok := letterFor(letters, args[0])
			if !ok {
				return fmt.Errorf("no index letter for %q", args[0])
			}
			e.log.Debug("searching letter", "letter", letter.Title, "query", args[0])

			candidates := e.client.List(cmd.Context(), letter)
			titles := make([]string, len(candidates))
			for i, p := range candidates {
				titles[i] = p.Title()
			}

			found := make([]*ivysilani.Programme, 0)
			for _, i := range titlematch.Filter(args[0], titles, titlematch.ConfidenceMedium) {
				found = append(found, candidates[i])
			}
			return printProgrammes(e.out, found)
		},
	}
}

func printProgrammes(w io.Writer, programmes []*ivysilani.Programme) error {
	if jsonOutput {
		return printJSON(w, programmes)
	}
	if len(programmes) == 0 {
		_, _ = fmt.Fprintln(w, "No programmes found.")
		return nil
	}
	for _, p := range programmes {
		marker := " "
		if p.IsPlayable() {
			marker = "▶"
		}
		_, _ = fmt.Fprintf(w, "%s %-18s %-6s %s\n", marker, p.ID(), p.Time(), p.Title())
	}
	return nil
}
