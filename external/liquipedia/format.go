package liquipedia

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/matchdata-sync/internal/domain/match"
	"github.com/riskibarqy/matchdata-sync/internal/platform/country"
	"github.com/riskibarqy/matchdata-sync/internal/usecase"
)

// DefaultTeamImage is used when an opponent has no dark-mode logo.
const DefaultTeamImage = "https://liquipedia.net/commons/images/thumb/d/da/Counter-Strike_2_default_darkmode.png/373px-Counter-Strike_2_default_darkmode.png"

const (
	walkoverForfeit = "ff"
	typeOffline     = "Offline"
	hltvLinkKey     = "hltv"
)

var matchDateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

var validate = validator.New()

// formatMatch maps one provider match into the canonical record. It never
// mutates raw and returns *usecase.MalformedRecordError when a required
// identifier is missing.
func formatMatch(raw matchRecord, countries *country.Resolver) (match.Match, error) {
	matchID := strings.TrimSpace(raw.ObjectName)
	if matchID == "" {
		return match.Match{}, malformed("", "missing objectname")
	}

	pageID := raw.PageID.String()
	if pageID == "" || pageID == "0" {
		return match.Match{}, malformed(matchID, "missing pageid")
	}

	team1, ok := findOpponent(raw.Opponents, 1)
	if !ok {
		return match.Match{}, malformed(matchID, "missing opponent 1")
	}
	team2, ok := findOpponent(raw.Opponents, 2)
	if !ok {
		return match.Match{}, malformed(matchID, "missing opponent 2")
	}

	startTime, ok := matchStartTime(raw)
	if !ok {
		return match.Match{}, malformed(matchID, "missing timestamp and date")
	}

	out := match.Match{
		MatchID:         matchID,
		EventID:         pageID,
		PageName:        raw.PageName,
		ParentEventPage: raw.Parent,
		MatchStartTime:  startTime,
		Team1ID:         team1.Template,
		Team1Name:       team1.Name,
		Team1Image:      teamImage(team1),
		Team2ID:         team2.Template,
		Team2Name:       team2.Name,
		Team2Image:      teamImage(team2),
		Team1Players:    formatPlayers(team1.Players, countries),
		Team2Players:    formatPlayers(team2.Players, countries),
		Maps:            formatMaps(raw.Games),
		WinningTeam:     winningTeam(raw.Winner),
		Forfeited:       raw.Walkover == walkoverForfeit,
		ValveRanked:     true,
		LAN:             raw.Type == typeOffline,
	}

	if err := validate.Struct(out); err != nil {
		return match.Match{}, malformed(matchID, err.Error())
	}
	return out, nil
}

// HasTrustedLink reports whether links carries a statistics-site reference
// whose values mention one of the allow-listed host tokens.
func HasTrustedLink(links map[string]any, hosts []string) bool {
	if len(links) == 0 || len(hosts) == 0 {
		return false
	}

	var entries []any
	switch typed := links[hltvLinkKey].(type) {
	case map[string]any:
		for _, entry := range typed {
			entries = append(entries, entry)
		}
	case []any:
		entries = typed
	default:
		return false
	}

	for _, entry := range entries {
		var values []any
		switch fields := entry.(type) {
		case map[string]any:
			for _, value := range fields {
				values = append(values, value)
			}
		case []any:
			values = fields
		default:
			continue
		}
		for _, value := range values {
			text, ok := value.(string)
			if !ok {
				continue
			}
			if containsHost(text, hosts) {
				return true
			}
		}
	}
	return false
}

func containsHost(value string, hosts []string) bool {
	value = strings.ToLower(value)
	for _, host := range hosts {
		if host != "" && strings.Contains(value, strings.ToLower(host)) {
			return true
		}
	}
	return false
}

func findOpponent(opponents []opponentRecord, id int) (opponentRecord, bool) {
	for _, opponent := range opponents {
		if opponent.ID != id {
			continue
		}
		if strings.TrimSpace(opponent.Template) == "" {
			return opponentRecord{}, false
		}
		return opponent, true
	}
	return opponentRecord{}, false
}

func matchStartTime(raw matchRecord) (int64, bool) {
	if raw.ExtraData.Set {
		if ts := int64(raw.ExtraData.Data.Timestamp); ts > 0 {
			return ts, true
		}
	}

	date := strings.TrimSpace(raw.Date)
	if date == "" {
		return 0, false
	}
	for _, layout := range matchDateLayouts {
		parsed, err := time.ParseInLocation(layout, date, time.UTC)
		if err == nil {
			return parsed.Unix(), true
		}
	}
	return 0, false
}

func teamImage(opponent opponentRecord) string {
	if opponent.TeamTemplate.Set {
		if url := strings.TrimSpace(opponent.TeamTemplate.Data.ImageDarkURL); url != "" {
			return url
		}
	}
	return DefaultTeamImage
}

func formatPlayers(players []playerRecord, countries *country.Resolver) []match.Player {
	out := make([]match.Player, 0, len(players))
	for _, player := range players {
		name, iso := countries.Normalize(player.Flag)
		out = append(out, match.Player{
			PlayerID:   player.Name,
			Nick:       player.DisplayName,
			Country:    name,
			CountryISO: iso,
			SteamIDs:   []string{},
		})
	}
	return out
}

func formatMaps(games []gameRecord) []match.MapScore {
	out := make([]match.MapScore, 0, len(games))
	for _, game := range games {
		item := match.MapScore{MapName: strings.ToLower(game.Map)}
		if len(game.Scores) > 0 {
			item.Team1Score = int(game.Scores[0])
		}
		if len(game.Scores) > 1 {
			item.Team2Score = int(game.Scores[1])
		}
		out = append(out, item)
	}
	return out
}

func winningTeam(raw flexString) *int {
	switch parseInt(raw.String()) {
	case 1:
		v := 1
		return &v
	case 2:
		v := 2
		return &v
	default:
		return nil
	}
}

func malformed(matchID, reason string) error {
	return &usecase.MalformedRecordError{MatchID: matchID, Reason: reason}
}
