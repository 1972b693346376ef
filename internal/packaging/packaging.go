package packaging

import "strings"

// Info is a packaging material guess inferred from product category tags.
type Info struct {
	Material      string `json:"material"`
	Recyclable    bool   `json:"recyclable"`
	Biodegradable bool   `json:"biodegradable"`
	Inferred      bool   `json:"inferred"`
}

var profiles = []struct {
	Keyword string
	Info    Info
}{
	{"sodas", Info{Material: "PET/Aluminum", Recyclable: true, Biodegradable: false, Inferred: true}},
	{"chips", Info{Material: "Multi-layer plastic", Recyclable: false, Biodegradable: false, Inferred: true}},
	{"yogurts", Info{Material: "Plastic (PP)", Recyclable: true, Biodegradable: false, Inferred: true}},
	{"fruit", Info{Material: "Organic or Paper", Recyclable: true, Biodegradable: true, Inferred: true}},
	{"milk", Info{Material: "Tetra Pak", Recyclable: true, Biodegradable: false, Inferred: true}},
	{"vegetables", Info{Material: "Loose/Compostable Bag", Recyclable: true, Biodegradable: true, Inferred: true}},
}

// Infer guesses packaging from category tags, scanning tags in order and
// returning the first keyword profile that matches. Total function: unknown
// tags yield an uninferred Unknown profile, never an error.
func Infer(categories []string) Info {
	for _, category := range categories {
		lower := strings.ToLower(category)
		for _, profile := range profiles {
			if strings.Contains(lower, profile.Keyword) {
				return profile.Info
			}
		}
	}
	return Info{Material: "Unknown"}
}
