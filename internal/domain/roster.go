package domain

import "strings"

// Trainer is a roster trainer owned by the acting user
type Trainer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Monster is a roster monster. TrainerID is stamped client-side when the
// roster is merged, since the per-trainer endpoint does not always return it.
type Monster struct {
	ID        int64  `json:"id"`
	Name      string `json:"name,omitempty"`
	Species1  string `json:"species1"`
	Species2  string `json:"species2,omitempty"`
	Species3  string `json:"species3,omitempty"`
	Level     int    `json:"level"`
	Type1     string `json:"type1,omitempty"`
	Type2     string `json:"type2,omitempty"`
	Type3     string `json:"type3,omitempty"`
	Type4     string `json:"type4,omitempty"`
	Type5     string `json:"type5,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
	TrainerID int64  `json:"trainer_id"`
}

// DisplayName returns the nickname, falling back to the species chain
// ("Species1/Species2/Species3").
func (m Monster) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	parts := make([]string, 0, 3)
	for _, s := range []string{m.Species1, m.Species2, m.Species3} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// Types returns the non-empty type slots in order.
func (m Monster) Types() []string {
	types := make([]string, 0, 5)
	for _, t := range []string{m.Type1, m.Type2, m.Type3, m.Type4, m.Type5} {
		if t != "" {
			types = append(types, t)
		}
	}
	return types
}
