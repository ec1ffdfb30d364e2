package pagebuilder

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/jamb/internal/core"
)

func renderBlock(t *testing.T, r RendererFunc, raw string) string {
	t.Helper()
	blocks := mustBlocks(t, "["+raw+"]")
	var buf bytes.Buffer
	err := r(context.Background(), &buf, Input{
		Document: homeDoc,
		Block:    blocks[0],
		Env:      Env{Images: core.ImageURLBuilder{ProjectID: "p1", Dataset: "production"}},
	})
	require.NoError(t, err)
	return buf.String()
}

func TestHeroSection(t *testing.T) {
	html := renderBlock(t, renderHero, `{"_type":"hero","_key":"a","image":{"asset":{"_ref":"image-abc-1920x900-jpg"},"alt":"Front"}}`)
	assert.Contains(t, html, `id="hero"`)
	assert.Contains(t, html, "cdn.sanity.io/images/p1/production/abc-1920x900.jpg")
	assert.Contains(t, html, `alt="Front"`)
	assert.Contains(t, html, `loading="eager"`)

	empty := renderBlock(t, renderHero, `{"_type":"hero","_key":"a"}`)
	assert.NotContains(t, empty, "<img")
}

func TestSplitFeatureLayouts(t *testing.T) {
	t.Run("standard keeps text first", func(t *testing.T) {
		html := renderBlock(t, renderSplitFeature, `{"_type":"splitFeature","_key":"b","title":"Stone","image":{"url":"https://img.example/a.jpg"}}`)
		assert.Contains(t, html, "split--standard")
		assert.Less(t, strings.Index(html, "split__text"), strings.Index(html, "split__media"))
	})

	t.Run("image left swaps order", func(t *testing.T) {
		html := renderBlock(t, renderSplitFeature, `{"_type":"splitFeature","_key":"b","title":"Stone","imagePosition":"left"}`)
		assert.Contains(t, html, "split--image-left")
		assert.Less(t, strings.Index(html, "split__media"), strings.Index(html, "split__text"))
	})

	t.Run("centered", func(t *testing.T) {
		html := renderBlock(t, renderSplitFeature, `{"_type":"splitFeature","_key":"b","title":"Stone","layout":"centered","eyebrow":"New"}`)
		assert.Contains(t, html, "split--centered")
		assert.Contains(t, html, `<p class="eyebrow">New</p>`)
	})

	t.Run("overlay falls back to title", func(t *testing.T) {
		html := renderBlock(t, renderSplitFeature, `{"_type":"splitFeature","_key":"b","title":"Stone","layout":"overlay"}`)
		assert.Contains(t, html, "split--overlay")
		assert.Contains(t, html, "<h2>Stone</h2>")
	})

	t.Run("overlay title wins", func(t *testing.T) {
		html := renderBlock(t, renderSplitFeature, `{"_type":"splitFeature","_key":"b","title":"Stone","overlayTitle":"Marble","layout":"overlay"}`)
		assert.Contains(t, html, "<h2>Marble</h2>")
		assert.NotContains(t, html, "Stone")
	})

	t.Run("unknown layout renders standard", func(t *testing.T) {
		html := renderBlock(t, renderSplitFeature, `{"_type":"splitFeature","_key":"b","layout":"diagonal"}`)
		assert.Contains(t, html, "split--standard")
	})
}

func TestSplitFeatureButtons(t *testing.T) {
	html := renderBlock(t, renderSplitFeature, `{"_type":"splitFeature","_key":"b","buttons":[
		{"_key":"1","text":"Visit","href":"/visit","openInNewTab":true},
		{"_key":"2","text":"Nowhere"}
	]}`)

	assert.Contains(t, html, `href="/visit"`)
	assert.Contains(t, html, `target="_blank"`)
	assert.Contains(t, html, `aria-label="Navigate to Visit"`)
	assert.Contains(t, html, "Link Broken")
	assert.NotContains(t, html, "Nowhere")
}

func TestProductGridSection(t *testing.T) {
	html := renderBlock(t, renderProductGrid, `{"_type":"productGrid","_key":"p","title":"New In","columns":"5","products":[
		{"_key":"1","title":"Lantern","subtitle":"Bronze","href":"/lantern","openInNewTab":true},
		{"_key":"2","title":"Chair"}
	]}`)

	assert.Contains(t, html, "grid-cols-5")
	assert.Contains(t, html, `<a class="card-link" href="/lantern" target="_blank" rel="noopener noreferrer">`)
	assert.Contains(t, html, "<h3>Chair</h3>")
	assert.Equal(t, 1, strings.Count(html, "card-link"))

	fallback := renderBlock(t, renderProductGrid, `{"_type":"productGrid","_key":"p","columns":"7"}`)
	assert.Contains(t, fallback, "grid-cols-4")
}

func TestCategoryLinksSection(t *testing.T) {
	html := renderBlock(t, renderCategoryLinks, `{"_type":"categoryLinks","_key":"c","links":[
		{"_key":"1","text":"Fireplaces","href":"/fireplaces"},
		{"_key":"2","text":"Lighting","href":"/lighting","openInNewTab":true},
		{"_key":"3","text":"Broken"}
	]}`)

	assert.Equal(t, 2, strings.Count(html, `<span class="separator">|</span>`))
	assert.Contains(t, html, `href="/lighting" target="_blank" rel="noopener noreferrer"`)
	assert.Contains(t, html, `href="#"`)

	assert.Empty(t, renderBlock(t, renderCategoryLinks, `{"_type":"categoryLinks","_key":"c"}`))
}

func TestStoryCardsSection(t *testing.T) {
	html := renderBlock(t, renderStoryCards, `{"_type":"storyCards","_key":"s","title":"Stories","stories":[
		{"_key":"1","title":"Restoring a hall","href":"/journal/hall"}
	]}`)

	assert.Contains(t, html, "<h2>Stories</h2>")
	assert.Contains(t, html, "card--story")
	assert.Contains(t, html, `target="_self"`)
}
