package domain

// MicroAction is a short guided activity from the catalogue.
type MicroAction struct {
	ID          string `json:"action_id" yaml:"action_id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	DurationMin int    `json:"duration_min" yaml:"duration_min"`
	DurationMax int    `json:"duration_max" yaml:"duration_max"`
	EnergyLevel string `json:"energy_level" yaml:"energy_level"`
	IsPremium   bool   `json:"is_premium" yaml:"is_premium"`
	Icon        string `json:"icon" yaml:"icon"`
}
