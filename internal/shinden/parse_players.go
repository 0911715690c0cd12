package shinden

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/samber/mo"
)

// flexString accepts JSON strings, numbers and null. The players listing
// mixes quoted and bare ids between rows.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Errorf("expected string or number, got %s", data)
	}
	*f = flexString(n.String())
	return nil
}

// playerData mirrors the data-episode attribute of a players row
type playerData struct {
	OnlineID   flexString  `json:"online_id"`
	Player     flexString  `json:"player"`
	Username   flexString  `json:"username"`
	UserID     *flexString `json:"user_id"`
	LangAudio  flexString  `json:"lang_audio"`
	LangSubs   flexString  `json:"lang_subs"`
	MaxRes     flexString  `json:"max_res"`
	SubsAuthor flexString  `json:"subs_author"`
	Added      flexString  `json:"added"`
	Source     flexString  `json:"source"`
}

func (d playerData) toPlayer() *Player {
	userID := mo.None[string]()
	if d.UserID != nil && *d.UserID != "" {
		userID = mo.Some(string(*d.UserID))
	}

	return &Player{
		OnlineID:         string(d.OnlineID),
		Service:          string(d.Player),
		Username:         string(d.Username),
		UserID:           userID,
		AudioLanguage:    string(d.LangAudio),
		SubtitleLanguage: string(d.LangSubs),
		MaxResolution:    string(d.MaxRes),
		SubtitleAuthor:   string(d.SubsAuthor),
		Added:            string(d.Added),
		Source:           string(d.Source),
	}
}

// parsePlayersPage decodes every player row in page order
func parsePlayersPage(html string) ([]*Player, error) {
	doc, err := newDocument(html, PagePlayers)
	if err != nil {
		return nil, err
	}

	players := []*Player{}
	doc.Find("a[data-episode]").EachWithBreak(func(i int, a *goquery.Selection) bool {
		raw := strings.TrimSpace(a.AttrOr("data-episode", ""))
		if raw == "" {
			err = missingField(PagePlayers, "data-episode")
			return false
		}

		var data playerData
		if jsonErr := json.Unmarshal([]byte(raw), &data); jsonErr != nil {
			err = errors.Wrapf(jsonErr, "error parsing %s: player #%d", PagePlayers, i+1)
			return false
		}
		if data.OnlineID == "" {
			err = missingField(PagePlayers, "online_id")
			return false
		}

		players = append(players, data.toPlayer())
		return true
	})
	if err != nil {
		return nil, err
	}
	return players, nil
}
