package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderDifficulty(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"beginner", "Difficulty: ■□□"},
		{"intermediate", "Difficulty: ■■□"},
		{"advanced", "Difficulty: ■■■"},
		{"Intermediate", "Difficulty: ■■□"},
		{"expert", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RenderDifficulty(tt.level), "level=%q", tt.level)
	}
}

func TestRenderRecommendation(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "Recommended: ★☆☆☆☆"},
		{3, "Recommended: ★★★☆☆"},
		{5, "Recommended: ★★★★★"},
		{0, ""},
		{6, ""},
		{-1, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RenderRecommendation(tt.level), "level=%d", tt.level)
	}
}

func TestRatingScale_Rank(t *testing.T) {
	assert.Equal(t, 2, DifficultyScale.Rank("intermediate"))
	assert.Equal(t, 0, DifficultyScale.Rank("unknown"))
	assert.Equal(t, 0, RecommendationScale.Rank("3"), "numeric scales have no level names")
}

func TestRenderDifficulty_Idempotent(t *testing.T) {
	// Rendering always starts from the structured level, so rendering twice
	// can never double up glyphs.
	first := RenderDifficulty("intermediate")
	second := RenderDifficulty("intermediate")
	assert.Equal(t, first, second)
}
