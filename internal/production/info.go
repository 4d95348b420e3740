package production

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Info captures production metadata for one screenplay.
type Info struct {
	ProductionHouse   string `json:"production_house"`
	Title             string `json:"title"`
	DirectorName      string `json:"director_name"`
	ProducerName      string `json:"producer_name"`
	ProductionManager string `json:"production_manager"`
	AssistantDirector string `json:"assistant_director"`
	Cinematographer   string `json:"cinematographer"`
	ContactNumber     string `json:"contact_number"`
	Genre             string `json:"genre"`
	ShootLocation     string `json:"shoot_location"`
}

// Normalize trims whitespace and title-cases name fields so autofilled
// documents render consistently regardless of how the backend stored them.
func (i Info) Normalize() Info {
	out := Info{
		ProductionHouse:   strings.TrimSpace(i.ProductionHouse),
		Title:             strings.TrimSpace(i.Title),
		DirectorName:      normalizeName(i.DirectorName),
		ProducerName:      normalizeName(i.ProducerName),
		ProductionManager: normalizeName(i.ProductionManager),
		AssistantDirector: normalizeName(i.AssistantDirector),
		Cinematographer:   normalizeName(i.Cinematographer),
		ContactNumber:     strings.TrimSpace(i.ContactNumber),
		Genre:             strings.TrimSpace(i.Genre),
		ShootLocation:     strings.TrimSpace(i.ShootLocation),
	}
	return out
}

// IsZero reports whether every field is empty.
func (i Info) IsZero() bool {
	return i == Info{}
}

func normalizeName(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	// Leave mixed-case names alone; only lift all-lower or all-upper input.
	// The caser is built per call: cases.Caser carries internal state and is
	// not safe for concurrent use.
	if trimmed == strings.ToLower(trimmed) || trimmed == strings.ToUpper(trimmed) {
		return cases.Title(language.Und).String(strings.ToLower(trimmed))
	}
	return trimmed
}
