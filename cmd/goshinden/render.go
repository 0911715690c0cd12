package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alvarorichard/Goshinden/pkg/goshinden"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#D9480F")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA726"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

func searchRows(offset int, results []goshinden.SearchResult) [][]string {
	return lo.Map(results, func(r goshinden.SearchResult, i int) []string {
		return []string{
			strconv.Itoa(offset + i + 1),
			r.Title,
			string(r.Kind),
			string(r.Status),
			fmt.Sprintf("%.2f", r.Rating),
			r.SeriesURL.String(),
		}
	})
}

func episodeRows(episodes []*goshinden.Episode) [][]string {
	return lo.Map(episodes, func(e *goshinden.Episode, i int) []string {
		players := "no"
		if e.PlayersURL.IsPresent() {
			players = "yes"
		}
		return []string{
			strconv.Itoa(i + 1),
			e.Title,
			e.EmissionDate,
			strings.Join(e.Languages, ", "),
			players,
		}
	})
}

func playerRows(players []*goshinden.Player) [][]string {
	return lo.Map(players, func(p *goshinden.Player, i int) []string {
		return []string{
			strconv.Itoa(i + 1),
			p.Service,
			p.AudioLanguage,
			p.SubtitleLanguage,
			p.MaxResolution,
			p.Username,
			p.Added,
		}
	})
}

// detailRows renders only the details the site filled in
func detailRows(d goshinden.AnimeDetails) [][]string {
	rows := [][]string{
		{"Type", string(d.Kind)},
		{"Status", string(d.Status)},
		{"Aired", d.Aired.OrEmpty()},
		{"Ended", d.Ended.OrEmpty()},
		{"Episodes", optionalNumber(d.Episodes.Get())},
		{"Studio", strings.Join(d.Producers, ", ")},
		{"Duration", lo.Ternary(d.Duration.IsPresent(), optionalNumber(d.Duration.Get())+" min", "")},
		{"MPAA", d.MPAA.OrEmpty()},
	}
	return lo.Filter(rows, func(row []string, _ int) bool {
		return row[1] != ""
	})
}

func statRows(s goshinden.AnimeStats) [][]string {
	return [][]string{
		{"Watching", strconv.Itoa(s.CurrentlyWatching)},
		{"Completed", strconv.Itoa(s.Viewed)},
		{"Skipped", strconv.Itoa(s.Skipped)},
		{"On hold", strconv.Itoa(s.OnHold)},
		{"Dropped", strconv.Itoa(s.Abandoned)},
		{"Plan to watch", strconv.Itoa(s.PlansToWatch)},
		{"Favourites", strconv.Itoa(s.Likes)},
	}
}

func optionalNumber(n int, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.Itoa(n)
}
