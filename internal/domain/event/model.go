package event

import "strings"

// PlaceholderPrizePool is the display value used until tournament metadata
// provides the real prize pool.
const PlaceholderPrizePool = "$1"

// Event is one tournament stage derived from a group of matches.
type Event struct {
	EventID           string      `json:"eventId"`
	EventPage         string      `json:"eventPage"`
	Parent            string      `json:"parent"`
	EventName         string      `json:"eventName"`
	PrizePool         string      `json:"prizePool"`
	LAN               bool        `json:"lan"`
	Location          string      `json:"location"`
	ValveRanked       bool        `json:"valveRanked"`
	Finished          bool        `json:"finished"`
	FMT               int64       `json:"fmt"`
	LMT               int64       `json:"lmt"`
	DifferingParent   bool        `json:"differingParent"`
	Tier              string      `json:"tier,omitempty"`
	PrizeDistribution []PrizeItem `json:"prizeDistribution"`
}

type PrizeItem struct {
	Placement       string   `json:"placement"`
	TeamID          string   `json:"teamId"`
	Prize           float64  `json:"prize"`
	ClubShare       float64  `json:"clubShare"`
	Shared          bool     `json:"shared"`
	Progress        bool     `json:"progress"`
	QualifiedEvents []string `json:"qualifiedEvents"`
}

// Patch carries optional overrides for an Event. Nil fields are left alone.
type Patch struct {
	Finished  *bool
	Tier      *string
	PrizePool *string
}

// Overlay applies the fields defined by p onto e.
func (e *Event) Overlay(p Patch) {
	if p.Finished != nil {
		e.Finished = *p.Finished
	}
	if p.Tier != nil {
		e.Tier = *p.Tier
	}
	if p.PrizePool != nil {
		e.PrizePool = *p.PrizePool
	}
}

// Clone returns a deep copy so callers can mutate prize items freely.
func (e Event) Clone() Event {
	out := e
	out.PrizeDistribution = make([]PrizeItem, len(e.PrizeDistribution))
	for i, item := range e.PrizeDistribution {
		item.QualifiedEvents = append([]string{}, item.QualifiedEvents...)
		out.PrizeDistribution[i] = item
	}
	return out
}

// NewPrizeItem returns the placeholder entry a team gets before placements
// are resolved.
func NewPrizeItem(teamID string) PrizeItem {
	return PrizeItem{
		TeamID:          teamID,
		QualifiedEvents: []string{},
	}
}

// NameFromPage turns a wiki page name into a display name.
func NameFromPage(page string) string {
	return strings.TrimSpace(strings.NewReplacer("_", " ", "/", " ").Replace(page))
}

// IsSharedPlacement reports whether a placement label spans a range, e.g. "3-4".
func IsSharedPlacement(placement string) bool {
	return strings.Contains(placement, "-")
}

// Summary is the reviewer-facing projection written to the update report.
type Summary struct {
	EventID         string `json:"eventId"`
	EventName       string `json:"eventName"`
	EventPage       string `json:"eventPage"`
	Tier            string `json:"tier,omitempty"`
	LAN             bool   `json:"lan"`
	PrizePool       string `json:"prizePool"`
	DifferingParent bool   `json:"differingParent"`
	Finished        bool   `json:"finished"`
}

func (e Event) Summary() Summary {
	return Summary{
		EventID:         e.EventID,
		EventName:       e.EventName,
		EventPage:       e.EventPage,
		Tier:            e.Tier,
		LAN:             e.LAN,
		PrizePool:       e.PrizePool,
		DifferingParent: e.DifferingParent,
		Finished:        e.Finished,
	}
}
