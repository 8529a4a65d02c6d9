package anime

import "encoding/json"

// Data is the structured catalog record for one anime.
type Data struct {
	Title      string        `json:"title"`
	Synopsis   string        `json:"synopsis"`
	Rating     float64       `json:"rating"`
	Episodes   int           `json:"episodes"`
	Genres     []string      `json:"genres"`
	Characters []Character   `json:"characters"`
	Staff      []StaffMember `json:"staff"`
}

type Character struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	VoiceActor string `json:"voice_actor,omitempty"`
}

type StaffMember struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Summary renders the record as a single string suitable for injection
// into a completion prompt.
func (d *Data) Summary() string {
	b, err := json.Marshal(d)
	if err != nil {
		return d.Title
	}
	return string(b)
}
