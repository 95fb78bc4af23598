// Package prompt assembles the system instruction sent to the model.
// Build is deterministic and does no I/O.
package prompt

import (
	"strings"

	"github.com/luvvtapp/coach/internal/models"
)

type field struct {
	label string
	value string
}

// joined renders the non-empty fields, one per line, preserving order.
func joined(fields []field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		out = append(out, f.label+": "+f.value)
	}
	return out
}

// Build composes the system prompt from the relationship type, an optional
// partner snapshot and an optional self-assessment. Unknown relationship
// types simply get no extra guidance block. The disclaimer lives in the
// preamble, so it appears exactly once.
func Build(relationshipType string, partner *models.PartnerProfile, self *models.SelfAssessment) string {
	parts := []string{basePrompt}

	parts = append(parts, "\nCurrent Relationship Context: "+relationshipType)

	if ctx, ok := RelationshipContexts[relationshipType]; ok {
		parts = append(parts, "\n"+ctx)
	}

	if partner != nil {
		info := joined([]field{
			{"Partner's name", partner.Name},
			{"Personality type", partner.PersonalityType},
			{"Love language", partner.LoveLanguage},
			{"Communication style", partner.CommunicationStyle},
			{"Interests", strings.Join(partner.Interests, ", ")},
		})
		if len(info) > 0 {
			parts = append(parts, "\nPartner Profile:\n"+strings.Join(info, "\n"))
		}
		if tip, ok := LoveLanguageTips[partner.LoveLanguage]; ok {
			parts = append(parts, "\nPartner's Love Language ("+partner.LoveLanguage+"):\n"+tip)
		}
		if insight, ok := PersonalityInsights[partner.PersonalityType]; ok {
			parts = append(parts, "\nPartner's Personality ("+partner.PersonalityType+"): "+insight)
		}
	}

	if self != nil {
		info := joined([]field{
			{"Your personality type", self.PersonalityType},
			{"Your love language", self.LoveLanguage},
			{"Your communication style", self.CommunicationStyle},
			{"Your strengths", strings.Join(self.Strengths, ", ")},
			{"Areas for growth", strings.Join(self.GrowthAreas, ", ")},
			{"What matters most in relationships", strings.Join(self.RelationshipValues, ", ")},
		})
		if len(info) > 0 {
			parts = append(parts, "\nYour Self-Assessment:\n"+strings.Join(info, "\n"))
		}
		if insight, ok := PersonalityInsights[self.PersonalityType]; ok {
			parts = append(parts, "\nUser's Personality ("+self.PersonalityType+"): "+insight)
		}
	}

	return strings.Join(parts, "\n")
}
