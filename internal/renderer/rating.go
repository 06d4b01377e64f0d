package renderer

import (
	"strings"
)

// RatingScale is a fixed ordered vocabulary rendered as a run of filled
// glyphs followed by unfilled ones, out of a fixed maximum.
type RatingScale struct {
	Label    string
	Levels   []string // ordered level names; empty for numeric scales
	Max      int
	Filled   rune
	Unfilled rune
}

// DifficultyScale renders beginner/intermediate/advanced out of three squares.
var DifficultyScale = RatingScale{
	Label:    "Difficulty",
	Levels:   []string{"beginner", "intermediate", "advanced"},
	Max:      3,
	Filled:   '■',
	Unfilled: '□',
}

// RecommendationScale renders 1..5 out of five stars.
var RecommendationScale = RatingScale{
	Label:    "Recommended",
	Max:      5,
	Filled:   '★',
	Unfilled: '☆',
}

// Rank returns the 1-based rank of a level name, or 0 if unrecognized.
// Matching is case-insensitive.
func (s RatingScale) Rank(level string) int {
	for i, name := range s.Levels {
		if strings.EqualFold(name, level) {
			return i + 1
		}
	}
	return 0
}

// Glyphs renders a rank as filled glyphs up to rank and unfilled glyphs for
// the complement. Ranks outside 1..Max render as the empty string.
func (s RatingScale) Glyphs(rank int) string {
	if rank < 1 || rank > s.Max {
		return ""
	}

	var b strings.Builder
	for i := 0; i < rank; i++ {
		b.WriteRune(s.Filled)
	}
	for i := rank; i < s.Max; i++ {
		b.WriteRune(s.Unfilled)
	}
	return b.String()
}

// Render formats a rank as "Label: glyphs". Out-of-range ranks render as
// the empty string so callers leave the element untouched.
func (s RatingScale) Render(rank int) string {
	glyphs := s.Glyphs(rank)
	if glyphs == "" {
		return ""
	}
	return s.Label + ": " + glyphs
}

// RenderDifficulty renders a difficulty level name as a glyph line.
// The input is the structured front-matter value, never previously
// rendered text, so repeated rendering always yields the same string.
func RenderDifficulty(level string) string {
	return DifficultyScale.Render(DifficultyScale.Rank(level))
}

// RenderRecommendation renders a recommendation level as a star line.
func RenderRecommendation(level int) string {
	return RecommendationScale.Render(level)
}
