package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHeader string
		wantBody   string
	}{
		{
			name:       "header and body",
			input:      "---\ntitle: T\n---\nbody\n",
			wantHeader: "title: T",
			wantBody:   "body\n",
		},
		{
			name:       "no front matter",
			input:      "# heading\n",
			wantHeader: "",
			wantBody:   "# heading\n",
		},
		{
			name:       "unterminated fence",
			input:      "---\ntitle: T\nbody\n",
			wantHeader: "",
			wantBody:   "---\ntitle: T\nbody\n",
		},
		{
			name:       "fence with no trailing newline",
			input:      "---\ntitle: T\n---",
			wantHeader: "title: T",
			wantBody:   "",
		},
		{
			name:       "crlf line endings",
			input:      "---\r\ntitle: T\n---\r\nbody\r\n",
			wantHeader: "title: T",
			wantBody:   "body\r\n",
		},
		{
			name:       "dashes mid-document are not a fence",
			input:      "intro\n---\nnot a header\n",
			wantHeader: "",
			wantBody:   "intro\n---\nnot a header\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body := splitFrontMatter([]byte(tt.input))
			assert.Equal(t, tt.wantHeader, string(header))
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestParseArticle_DateFormats(t *testing.T) {
	for _, date := range []string{"2024-03-18", "2024-03-18T10:30:00Z", "2024-03-18 10:30:00"} {
		article, err := ParseArticle("a.md", []byte("---\ndate: "+date+"\n---\nbody\n"))
		require.NoError(t, err, date)
		assert.Equal(t, 18, article.Date.Day(), date)
	}

	_, err := ParseArticle("a.md", []byte("---\ndate: yesterday\n---\nbody\n"))
	assert.Error(t, err)
}

func TestParseArticle_TagWhitespace(t *testing.T) {
	article, err := ParseArticle("a.md", []byte("---\ntags: [' async ', '', threading]\n---\nbody\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"async", "threading"}, article.Tags)
}

func TestParseArticle_TagsSafeAsPathSegments(t *testing.T) {
	article, err := ParseArticle("a.md", []byte(
		"---\ntags: ['a/b', 'c\\d', '..', '.', 'async await', 'c++', 'v1.0']\n---\nbody\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a-b", "c-d", "async-await", "c++", "v1.0"}, article.Tags)
}

func TestParseArticle_DifficultyNormalized(t *testing.T) {
	article, err := ParseArticle("a.md", []byte("---\ndifficulty: ' Intermediate '\n---\nbody\n"))
	require.NoError(t, err)
	assert.Equal(t, "intermediate", article.Difficulty)
}
