package domain

// ResultEntry is a Place annotated with the country it belongs to.
// OriginCountry is the owning country for cities, or the text after the last
// comma of the name for beaches and temples ("" when there is no comma).
type ResultEntry struct {
	Name          string `json:"name"`
	ImageURL      string `json:"imageUrl"`
	Description   string `json:"description"`
	OriginCountry string `json:"originCountry"`
}

// Card is one rendered result. TimeZone is empty when no clock is shown.
type Card struct {
	Entry     ResultEntry
	TimeZone  string
	TimeLabel string // e.g. "Local time in Japan: "
}

// TimeZoneBinding ties an on-screen label to the zone it displays.
// Bindings live only as long as the render batch that created them.
type TimeZoneBinding struct {
	Label    TimeLabel
	TimeZone string
	Prefix   string
}

const (
	NoResultsTitle = "No results"
	NoResultsHint  = "Try keywords like “beaches”, “temples”, or a country name (e.g., Japan)."
)
