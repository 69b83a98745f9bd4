package api

import (
	"strconv"
	"strings"
)

// Country is the location tag attached to every activity. The service
// only knows Portugal and Spain.
type Country string

const (
	CountryPT Country = "PT"
	CountryES Country = "ES"
)

// Valid reports whether c is one of the two known country codes.
func (c Country) Valid() bool {
	return c == CountryPT || c == CountryES
}

// Flag returns the flag glyph for the country. A code outside the
// two-country world comes back as-is so bad reference data stays
// visible instead of being mislabeled.
func (c Country) Flag() string {
	switch c {
	case CountryPT:
		return "🇵🇹"
	case CountryES:
		return "🇪🇸"
	}
	return string(c)
}

// ActivityType is server-owned reference data; the set of valid codes
// lives on the service and is fetched fresh on every use.
type ActivityType struct {
	Code int    `json:"codigo"`
	Name string `json:"nome"`
}

// Activity is one logged outing as returned by the listing endpoint.
// Records are immutable once fetched; the client only submits new ones.
type Activity struct {
	ID         int     `json:"id"`
	RecordedAt string  `json:"data_hora"`
	Country    Country `json:"localizacao"`
	PlaceName  string  `json:"nome_local"`
	TypeCode   int     `json:"tipo_codigo"`
	TypeLabel  string  `json:"tipo_texto"`
	DistanceKm int     `json:"kilometragem"`
	PhotoURL   string  `json:"foto_url"`
}

// Submission carries the fields of a new activity. PhotoPath is an
// optional local file to attach.
type Submission struct {
	Country    Country
	PlaceName  string
	TypeCode   int
	DistanceKm int
	PhotoPath  string
}

// Filter narrows the activity listing. Zero-valued fields mean
// "no constraint" and are omitted from the request entirely.
type Filter struct {
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	TypeCodes []int
}

// typesParam joins the selected type codes into the comma list the
// service expects, or "" when no types are selected.
func (f Filter) typesParam() string {
	if len(f.TypeCodes) == 0 {
		return ""
	}
	parts := make([]string, len(f.TypeCodes))
	for i, c := range f.TypeCodes {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

// serverMessage is the {mensagem} / {detail} envelope the service uses
// for registration and submission responses.
type serverMessage struct {
	Mensagem string `json:"mensagem"`
	Detail   string `json:"detail"`
}

// text returns whichever field the server filled in, mensagem first.
func (m serverMessage) text() string {
	if m.Mensagem != "" {
		return m.Mensagem
	}
	return m.Detail
}
