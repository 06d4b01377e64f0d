package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotateLayout(t *testing.T) {
	fragment := `<h2>Waiting</h2>` +
		`<p>Intro</p>` +
		`<table><tbody><tr><td>x</td></tr></tbody></table>` +
		`<pre><code>Monitor.Wait(gate);</code></pre>` +
		`<blockquote><p>Note</p></blockquote>` +
		`<p><img src="/static/diagram.png"/></p>` +
		`<p><a href="https://example.com">ref</a> and <a href="/articles/other/">local</a></p>`

	annotated, err := AnnotateLayout(fragment)
	require.NoError(t, err)

	assert.Contains(t, annotated, `<h2 class="article-heading">`)
	assert.Contains(t, annotated, `<table class="article-table">`)
	assert.Contains(t, annotated, `<pre class="article-code">`)
	assert.Contains(t, annotated, `<blockquote class="titlenote">`)
	assert.Contains(t, annotated, `class="article-image"`)
	assert.Contains(t, annotated, `<a href="https://example.com" class="external-link">`)
	assert.Contains(t, annotated, `<a href="/articles/other/">local</a>`)
}

func TestAnnotateLayout_Idempotent(t *testing.T) {
	fragment := `<table><tbody><tr><td>x</td></tr></tbody></table>`

	once, err := AnnotateLayout(fragment)
	require.NoError(t, err)

	twice, err := AnnotateLayout(once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestAnnotateLayout_MissingElementsAreNoOps(t *testing.T) {
	annotated, err := AnnotateLayout(`<p>plain paragraph</p>`)
	require.NoError(t, err)
	assert.Contains(t, annotated, `<p>plain paragraph</p>`)
}

func TestAnnotateLayout_Empty(t *testing.T) {
	annotated, err := AnnotateLayout("")
	require.NoError(t, err)
	assert.Equal(t, "", annotated)
}
