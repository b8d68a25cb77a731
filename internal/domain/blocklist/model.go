package blocklist

// List holds ids that must never reach the persisted corpus.
type List struct {
	Matches []string `json:"matches"`
	Events  []string `json:"events"`
}

// Set is the lookup form of List.
type Set struct {
	matches map[string]struct{}
	events  map[string]struct{}
}

func (l List) Set() Set {
	return Set{
		matches: toSet(l.Matches),
		events:  toSet(l.Events),
	}
}

func (s Set) MatchBlocked(matchID string) bool {
	_, ok := s.matches[matchID]
	return ok
}

func (s Set) EventBlocked(eventID string) bool {
	_, ok := s.events[eventID]
	return ok
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, item := range items {
		out[item] = struct{}{}
	}
	return out
}
