package country

import (
	"strings"

	"github.com/biter777/countries"
)

// UnknownISO is returned for names that do not resolve to a country.
const UnknownISO = "XX"

// NonRepresenting is the flag the wiki uses for players competing without a
// nation. They are recorded as Russia.
const NonRepresenting = "Non-representing"

// Resolver maps wiki flag names to ISO 3166-1 alpha-2 codes.
type Resolver struct {
	overrides map[string]string
}

func NewResolver() *Resolver {
	return &Resolver{
		overrides: map[string]string{
			strings.ToLower(NonRepresenting): "RU",
			"moldova":                        "MD",
		},
	}
}

// ISO returns the alpha-2 code for name, or UnknownISO.
func (r *Resolver) ISO(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return UnknownISO
	}
	if code, ok := r.overrides[key]; ok {
		return code
	}
	code := countries.ByName(name)
	if code == countries.Unknown {
		return UnknownISO
	}
	alpha2 := code.Alpha2()
	if len(alpha2) != 2 {
		return UnknownISO
	}
	return alpha2
}

// Normalize returns the display country and ISO code recorded for a player.
func (r *Resolver) Normalize(flag string) (string, string) {
	if strings.EqualFold(strings.TrimSpace(flag), NonRepresenting) {
		return "Russia", "RU"
	}
	return flag, r.ISO(flag)
}
