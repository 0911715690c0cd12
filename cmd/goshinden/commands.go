package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/alvarorichard/Goshinden/internal/util"
	"github.com/alvarorichard/Goshinden/internal/version"
	"github.com/alvarorichard/Goshinden/pkg/goshinden"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var all, pick bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search series by title",
		Long:  "Search series by title. Without a query the title is asked for interactively.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			query := strings.Join(args, " ")
			if query == "" {
				var err error
				if query, err = promptQuery(); err != nil {
					return err
				}
			}

			page, err := a.client.Search(ctx, query)
			if err != nil {
				return err
			}

			var results []goshinden.SearchResult
			for {
				pageResults, err := page.Results(ctx)
				if err != nil {
					return err
				}
				results = append(results, pageResults...)

				if !all || page.IsLast() {
					break
				}
				if page, err = page.NextPage(); err != nil {
					return err
				}
				util.Info("Fetching next result page", "page", page.Index(), "of", page.TotalPages())
			}

			if len(results) == 0 {
				util.Warn("No results", "query", query)
				return nil
			}

			if !pick {
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"#", "Title", "Type", "Status", "Rating", "URL"},
					searchRows(0, results),
				))
				if !all && !page.IsLast() {
					fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(
						fmt.Sprintf("page %d of %d, use --all to fetch every page", page.Index(), page.TotalPages())))
				}
				return nil
			}

			idx, err := fuzzyfinder.Find(
				results,
				func(i int) string { return results[i].Title },
				fuzzyfinder.WithPromptString("Select series: "),
				fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
					if i < 0 || i >= len(results) {
						return ""
					}
					r := results[i]
					return fmt.Sprintf("%s\n\nType: %s\nStatus: %s\nRating: %.2f\n%s", r.Title, r.Kind, r.Status, r.Rating, r.SeriesURL)
				}),
			)
			if err != nil {
				return errors.Wrap(err, "series selection cancelled")
			}
			return showInfo(ctx, cmd, a, results[idx].SeriesURL.String())
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "fetch every result page")
	cmd.Flags().BoolVar(&pick, "pick", false, "pick a result interactively and show its details")
	return cmd
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <series-url>",
		Short: "Show the details and statistics of a series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showInfo(cmd.Context(), cmd, a, args[0])
		},
	}
}

func showInfo(ctx context.Context, cmd *cobra.Command, a *app, seriesURL string) error {
	anime, err := a.client.Anime(ctx, seriesURL)
	if err != nil {
		return err
	}

	title, err := anime.Title(ctx)
	if err != nil {
		return err
	}
	rating, err := anime.Rating(ctx)
	if err != nil {
		return err
	}
	description, err := anime.Description(ctx)
	if err != nil {
		return err
	}
	image, err := anime.ImageURL(ctx)
	if err != nil {
		return err
	}
	details, err := anime.Details(ctx)
	if err != nil {
		return err
	}
	stats, err := anime.Stats(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s  %s\n", titleStyle.Render(title), mutedStyle.Render(fmt.Sprintf("%.2f", rating)))
	fmt.Fprintln(out, mutedStyle.Render(anime.URL().String()))
	fmt.Fprintln(out, mutedStyle.Render("cover: "+image.String()))
	if anime.LoginRequired() {
		fmt.Fprintln(out, mutedStyle.Render("this series is only visible to logged-in users"))
	}
	if description != "" {
		fmt.Fprintf(out, "\n%s\n\n", description)
	}
	fmt.Fprintln(out, renderTable([]string{"Detail", "Value"}, detailRows(details)))
	fmt.Fprintln(out, renderTable([]string{"Users", "Count"}, statRows(stats)))
	return nil
}

func newEpisodesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "episodes <series-url>",
		Short: "List the episodes of a series, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			anime, err := a.client.Anime(ctx, args[0])
			if err != nil {
				return err
			}
			episodes, err := anime.Episodes(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "Title", "Aired", "Languages", "Players"},
				episodeRows(episodes),
			))
			return nil
		},
	}
}

func newPlayersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "players <series-url> [episode]",
		Short: "List the players of an episode",
		Long:  "List the players of an episode. Without an episode number the episode is picked interactively.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			episode, err := selectEpisode(ctx, a, args)
			if err != nil {
				return err
			}
			players, err := episode.Players(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render(episode.Title))
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "Service", "Audio", "Subtitles", "Quality", "Uploader", "Added"},
				playerRows(players),
			))
			return nil
		},
	}
}

func newResolveCmd(a *app) *cobra.Command {
	var playerNumber int

	cmd := &cobra.Command{
		Use:   "resolve <series-url> [episode]",
		Short: "Resolve the embed URL of a player",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			episode, err := selectEpisode(ctx, a, args)
			if err != nil {
				return err
			}
			players, err := episode.Players(ctx)
			if err != nil {
				return err
			}
			if len(players) == 0 {
				return errors.Errorf("episode %q has no players", episode.Title)
			}

			player, err := selectPlayer(players, playerNumber)
			if err != nil {
				return err
			}

			embed, err := resolveEmbed(ctx, cmd.ErrOrStderr(), player)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), embed.String())
			return nil
		},
	}

	cmd.Flags().IntVarP(&playerNumber, "player", "p", 0, "player number as listed by the players command")
	return cmd
}

// resolveEmbed shows a spinner on out while the player API pause runs. The
// spinner is static when out is not a file.
func resolveEmbed(ctx context.Context, out io.Writer, player *goshinden.Player) (*url.URL, error) {
	_, isFile := out.(*os.File)

	var embed *url.URL
	err := spinner.New().
		Title(fmt.Sprintf("Resolving %s player...", player.Service)).
		Type(spinner.Dots).
		Output(out).
		Accessible(!isFile).
		Context(ctx).
		ActionWithErr(func(ctx context.Context) error {
			u, err := player.ExternalURL(ctx)
			if err != nil {
				return err
			}
			embed = u
			return nil
		}).
		Run()
	if err != nil {
		return nil, err
	}
	if embed == nil {
		return nil, errors.Errorf("no embed URL resolved for %s player", player.Service)
	}
	return embed, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			version.ShowVersion(cmd.OutOrStdout())
		},
	}
}

const minQueryLength = 2

func promptQuery() (string, error) {
	var query string

	err := huh.NewInput().
		Title("Search shinden.pl").
		Placeholder("e.g. Hunter x Hunter").
		Value(&query).
		Validate(validateQuery).
		Run()
	if err != nil {
		return "", errors.Wrap(err, "search prompt cancelled")
	}
	return strings.TrimSpace(query), nil
}

func validateQuery(query string) error {
	if len([]rune(strings.TrimSpace(query))) < minQueryLength {
		return errors.Errorf("the title must have at least %d characters", minQueryLength)
	}
	return nil
}

// selectEpisode uses the 1-based episode number in args[1] when present and
// falls back to an interactive pick.
func selectEpisode(ctx context.Context, a *app, args []string) (*goshinden.Episode, error) {
	anime, err := a.client.Anime(ctx, args[0])
	if err != nil {
		return nil, err
	}
	episodes, err := anime.Episodes(ctx)
	if err != nil {
		return nil, err
	}
	if len(episodes) == 0 {
		return nil, errors.New("series has no episodes")
	}

	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 || n > len(episodes) {
			return nil, errors.Errorf("episode must be a number between 1 and %d", len(episodes))
		}
		return episodes[n-1], nil
	}

	idx, err := fuzzyfinder.Find(
		episodes,
		func(i int) string {
			return fmt.Sprintf("%d. %s", i+1, episodes[i].Title)
		},
		fuzzyfinder.WithPromptString("Select episode: "),
	)
	if err != nil {
		return nil, errors.Wrap(err, "episode selection cancelled")
	}
	return episodes[idx], nil
}

func selectPlayer(players []*goshinden.Player, number int) (*goshinden.Player, error) {
	if number > 0 {
		if number > len(players) {
			return nil, errors.Errorf("player must be a number between 1 and %d", len(players))
		}
		return players[number-1], nil
	}
	if len(players) == 1 {
		return players[0], nil
	}

	idx, err := fuzzyfinder.Find(
		players,
		func(i int) string {
			p := players[i]
			return fmt.Sprintf("%s [%s/%s] %s", p.Service, p.AudioLanguage, p.SubtitleLanguage, p.MaxResolution)
		},
		fuzzyfinder.WithPromptString("Select player: "),
	)
	if err != nil {
		return nil, errors.Wrap(err, "player selection cancelled")
	}
	return players[idx], nil
}
