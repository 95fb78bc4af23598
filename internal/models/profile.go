package models

import "gorm.io/datatypes"

// PartnerProfile is a denormalized snapshot of a relationship's other party.
// Sessions and advice records embed a copy; they never reference the
// relationship document it came from.
type PartnerProfile struct {
	Name               string            `json:"name,omitempty"`
	PersonalityType    string            `json:"personality_type,omitempty"`
	LoveLanguage       string            `json:"love_language,omitempty"`
	CommunicationStyle string            `json:"communication_style,omitempty"`
	Interests          []string          `json:"interests,omitempty"`
	Preferences        datatypes.JSONMap `json:"preferences,omitempty"`
}

// SelfAssessment is the user's own profile, used to personalize coaching tone.
type SelfAssessment struct {
	PersonalityType    string   `json:"personality_type,omitempty"`
	LoveLanguage       string   `json:"love_language,omitempty"`
	CommunicationStyle string   `json:"communication_style,omitempty"`
	EmotionalPatterns  []string `json:"emotional_patterns,omitempty"`
	Strengths          []string `json:"strengths,omitempty"`
	GrowthAreas        []string `json:"growth_areas,omitempty"`
	RelationshipValues []string `json:"relationship_values,omitempty"`
}
