package match

import "strings"

// OnlineMarker is appended to the event id of matches played online so that
// online and LAN stages of the same provider page become separate events.
const OnlineMarker = "_On"

// Match is one finished series as persisted in the corpus. It is never
// mutated once written.
type Match struct {
	MatchID         string     `json:"matchId" validate:"required"`
	EventID         string     `json:"eventId" validate:"required"`
	PageName        string     `json:"pagename"`
	ParentEventPage string     `json:"parentEventPage"`
	MatchStartTime  int64      `json:"matchStartTime" validate:"gt=0"`
	Team1ID         string     `json:"team1Id" validate:"required"`
	Team1Name       string     `json:"team1Name"`
	Team1Image      string     `json:"team1Image"`
	Team2ID         string     `json:"team2Id" validate:"required"`
	Team2Name       string     `json:"team2Name"`
	Team2Image      string     `json:"team2Image"`
	Team1Players    []Player   `json:"team1Players"`
	Team2Players    []Player   `json:"team2Players"`
	Maps            []MapScore `json:"maps"`
	WinningTeam     *int       `json:"winningTeam"`
	Forfeited       bool       `json:"forfeited"`
	ValveRanked     bool       `json:"valveRanked"`
	LAN             bool       `json:"lan"`
}

type Player struct {
	PlayerID   string   `json:"playerId"`
	Nick       string   `json:"nick"`
	Country    string   `json:"country"`
	CountryISO string   `json:"countryIso"`
	SteamIDs   []string `json:"steamIds"`
}

type MapScore struct {
	MapName    string `json:"mapName"`
	Team1Score int    `json:"team1Score"`
	Team2Score int    `json:"team2Score"`
}

// TeamIDs returns both side ids in side order.
func (m Match) TeamIDs() [2]string {
	return [2]string{m.Team1ID, m.Team2ID}
}

// WithOnlineMarker returns the event id a match groups under. LAN ids are
// kept as-is; online ids get the marker unless they already carry it.
func WithOnlineMarker(eventID string, lan bool) string {
	if lan || strings.HasSuffix(eventID, OnlineMarker) {
		return eventID
	}
	return eventID + OnlineMarker
}
