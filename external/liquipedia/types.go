package liquipedia

import (
	"bytes"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
)

// resultEnvelope keeps records raw so one oddly typed record can be skipped
// without rejecting the whole page.
type resultEnvelope struct {
	Result []sonic.NoCopyRawMessage `json:"result"`
}

type matchRecord struct {
	ObjectName string                  `json:"objectname"`
	PageID     flexString              `json:"pageid"`
	PageName   string                  `json:"pagename"`
	Parent     string                  `json:"parent"`
	Date       string                  `json:"date"`
	Type       string                  `json:"type"`
	Walkover   string                  `json:"walkover"`
	Winner     flexString              `json:"winner"`
	ExtraData  lenient[matchExtraData] `json:"extradata"`
	Links      lenient[map[string]any] `json:"links"`
	Opponents  []opponentRecord        `json:"match2opponents"`
	Games      []gameRecord            `json:"match2games"`
}

type matchExtraData struct {
	Timestamp flexInt `json:"timestamp"`
}

type opponentRecord struct {
	ID           int                   `json:"id"`
	Template     string                `json:"template"`
	Name         string                `json:"name"`
	TeamTemplate lenient[teamTemplate] `json:"teamtemplate"`
	Players      []playerRecord        `json:"match2players"`
}

type teamTemplate struct {
	ImageDarkURL string `json:"imagedarkurl"`
}

type playerRecord struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayname"`
	Flag        string `json:"flag"`
}

type gameRecord struct {
	Map    string    `json:"map"`
	Scores []flexInt `json:"scores"`
}

type placementRecord struct {
	PageName         string     `json:"pagename"`
	OpponentTemplate string     `json:"opponenttemplate"`
	PrizeMoney       flexAmount `json:"prizemoney"`
	Placement        flexString `json:"placement"`
}

type tournamentRecord struct {
	PageName      string     `json:"pagename"`
	EndDate       string     `json:"enddate"`
	PublisherTier flexString `json:"publishertier"`
	PrizePool     flexAmount `json:"prizepool"`
}

// lenient decodes T when the payload holds an object and leaves the zero
// value otherwise. The wiki emits [] or "" for absent objects.
type lenient[T any] struct {
	Data T
	Set  bool
}

func (l *lenient[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		l.Set = false
		return nil
	}

	var direct T
	if err := sonic.Unmarshal(trimmed, &direct); err != nil {
		return err
	}
	l.Data = direct
	l.Set = true
	return nil
}

// flexString accepts a JSON string or number.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = ""
		return nil
	}
	if trimmed[0] == '"' {
		var value string
		if err := sonic.Unmarshal(trimmed, &value); err != nil {
			return err
		}
		*s = flexString(value)
		return nil
	}
	*s = flexString(string(trimmed))
	return nil
}

func (s flexString) String() string {
	return strings.TrimSpace(string(s))
}

// flexInt accepts a JSON number or numeric string. Anything else is zero.
type flexInt int64

func (n *flexInt) UnmarshalJSON(data []byte) error {
	var raw flexString
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}
	*n = flexInt(parseInt(raw.String()))
	return nil
}

// flexAmount decodes a money value given as number, numeric string or empty.
type flexAmount struct {
	decimal.Decimal
}

func (a *flexAmount) UnmarshalJSON(data []byte) error {
	var raw flexString
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}
	value := strings.ReplaceAll(raw.String(), ",", "")
	if value == "" {
		a.Decimal = decimal.Zero
		return nil
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	a.Decimal = parsed
	return nil
}

func parseInt(raw string) int64 {
	if raw == "" {
		return 0
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int64(f)
	}
	return 0
}
