package shinden

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// AnimeKind is the "Typ" detail as the site spells it (TV, OVA, ...)
type AnimeKind string

// AnimeStatus is the airing status as the site spells it
type AnimeStatus string

// AnimeStats holds the seven user counters shown on a series page
type AnimeStats struct {
	CurrentlyWatching int
	Viewed            int
	Skipped           int
	OnHold            int
	Abandoned         int
	PlansToWatch      int
	Likes             int
}

// AnimeDetails is the "information" box of a series page
type AnimeDetails struct {
	Kind      AnimeKind
	Status    AnimeStatus
	Aired     mo.Option[string]
	Ended     mo.Option[string]
	Episodes  mo.Option[int]
	Producers []string
	// Duration is the length of one episode in minutes
	Duration mo.Option[int]
	MPAA     mo.Option[string]
}

// DetailLabel is a dt label of the information box
type DetailLabel string

const (
	LabelKind      DetailLabel = "Typ"
	LabelStatus    DetailLabel = "Status"
	LabelAired     DetailLabel = "Data emisji"
	LabelEnded     DetailLabel = "Koniec emisji"
	LabelEpisodes  DetailLabel = "Liczba odcinków"
	LabelProducers DetailLabel = "Studio"
	LabelDuration  DetailLabel = "Długość odcinka"
	LabelMPAA      DetailLabel = "MPAA"
)

// DetailLabels lists every label the parser understands
var DetailLabels = []DetailLabel{
	LabelKind,
	LabelStatus,
	LabelAired,
	LabelEnded,
	LabelEpisodes,
	LabelProducers,
	LabelDuration,
	LabelMPAA,
}

type detailSetter func(d *AnimeDetails, value string)

var detailSetters = map[DetailLabel]detailSetter{
	LabelKind: func(d *AnimeDetails, v string) {
		d.Kind = AnimeKind(v)
	},
	LabelStatus: func(d *AnimeDetails, v string) {
		d.Status = AnimeStatus(v)
	},
	LabelAired: func(d *AnimeDetails, v string) {
		d.Aired = mo.Some(v)
	},
	LabelEnded: func(d *AnimeDetails, v string) {
		d.Ended = mo.Some(v)
	},
	LabelEpisodes: func(d *AnimeDetails, v string) {
		d.Episodes = optionalInt(v)
	},
	LabelProducers: func(d *AnimeDetails, v string) {
		d.Producers = splitProducers(v)
	},
	LabelDuration: func(d *AnimeDetails, v string) {
		d.Duration = optionalInt(strings.ReplaceAll(v, "min", ""))
	},
	LabelMPAA: func(d *AnimeDetails, v string) {
		d.MPAA = mo.Some(v)
	},
}

// setDetail applies one dt/dd pair. Unknown labels are an error.
func (d *AnimeDetails) setDetail(label, value string) error {
	set, ok := detailSetters[DetailLabel(label)]
	if !ok {
		return &UnsupportedDetailError{Label: label}
	}
	set(d, strings.TrimSpace(value))
	return nil
}

func splitProducers(value string) []string {
	producers := lo.Map(strings.Split(value, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})
	return lo.Uniq(lo.Compact(producers))
}

// optionalInt is None for values the site leaves blank or unknown ("?")
func optionalInt(value string) mo.Option[int] {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return mo.None[int]()
	}
	return mo.Some(n)
}
