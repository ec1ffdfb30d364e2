package pagebuilder

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3-lines-studio/jamb/internal/core"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

var homeDoc = core.DocumentRef{ID: "home", Type: core.DocHomePage}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustBlocks(t *testing.T, raw string) core.Blocks {
	t.Helper()
	blocks, err := core.DecodeBlocks([]byte(raw))
	require.NoError(t, err)
	return blocks
}

func TestDispatcherMixedSequence(t *testing.T) {
	blocks := mustBlocks(t, `[
		{"_type":"hero","_key":"a"},
		{"_type":"splitFeature","_key":"b","title":"First"},
		{"_type":"splitFeature","_key":"c","title":"Second"},
		{"_type":"unknownType","_key":"d"}
	]`)

	var unknown []UnknownBlock
	d := NewDispatcher(DefaultRegistry(),
		WithLogger(quietLogger()),
		WithUnknownHook(func(_ context.Context, b UnknownBlock) {
			unknown = append(unknown, b)
		}),
	)

	outputs := d.Render(context.Background(), homeDoc, blocks)
	require.Len(t, outputs, 4)

	for i, key := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, key, outputs[i].Key)
	}

	assert.Equal(t, core.Spacing{}, outputs[0].Spacing)
	assert.Equal(t, core.Spacing{JoinBottom: true}, outputs[1].Spacing)
	assert.Equal(t, core.Spacing{JoinTop: true}, outputs[2].Spacing)

	assert.False(t, outputs[1].Placeholder)
	assert.Contains(t, string(outputs[1].HTML), "First")
	assert.Contains(t, string(outputs[1].HTML), "join-bottom")
	assert.Contains(t, string(outputs[2].HTML), "join-top")

	assert.True(t, outputs[3].Placeholder)
	html := string(outputs[3].HTML)
	assert.Contains(t, html, `role="alert"`)
	assert.Contains(t, html, "<code>unknownType</code>")
	assert.Contains(t, html, "<code>d</code>")

	require.Len(t, unknown, 1)
	assert.Equal(t, UnknownBlock{Document: homeDoc, Type: "unknownType", Key: "d", Index: 3}, unknown[0])
}

func TestDispatcherEmptySequence(t *testing.T) {
	d := NewDispatcher(nil, WithLogger(quietLogger()))

	assert.Empty(t, d.Render(context.Background(), homeDoc, nil))
	assert.Equal(t, "", string(d.RenderHTML(context.Background(), homeDoc, nil)))
	assert.Equal(t, "", string(d.RenderHTML(context.Background(), homeDoc, core.Blocks{})))

	plain := string(d.RenderHTML(context.Background(), homeDoc, core.Blocks{{Type: core.TagHero, Key: "a", Raw: []byte(`{}`)}}))
	assert.NotContains(t, plain, "data-sanity")
}

func TestDispatcherRoutesToOwnRenderer(t *testing.T) {
	calls := map[string][]string{}
	record := func(tag string) Renderer {
		return RendererFunc(func(_ context.Context, w io.Writer, in Input) error {
			calls[tag] = append(calls[tag], in.Block.Key)
			_, err := io.WriteString(w, "<p>"+tag+"</p>")
			return err
		})
	}

	reg := NewRegistry()
	require.NoError(t, reg.Register("alpha", record("alpha")))
	require.NoError(t, reg.Register("beta", record("beta")))

	blocks := core.Blocks{
		{Type: "alpha", Key: "1"},
		{Type: "beta", Key: "2"},
		{Type: "alpha", Key: "3"},
	}
	outputs := NewDispatcher(reg, WithLogger(quietLogger())).Render(context.Background(), homeDoc, blocks)

	require.Len(t, outputs, 3)
	assert.Equal(t, []string{"1", "3"}, calls["alpha"])
	assert.Equal(t, []string{"2"}, calls["beta"])
	assert.Contains(t, string(outputs[1].HTML), "<p>beta</p>")
}

func TestDispatcherContainsFailures(t *testing.T) {
	reg := DefaultRegistry()
	require.NoError(t, reg.Register("explodes", RendererFunc(func(context.Context, io.Writer, Input) error {
		panic("boom")
	})))
	require.NoError(t, reg.Register("fails", RendererFunc(func(context.Context, io.Writer, Input) error {
		return errors.New("payload rejected")
	})))

	blocks := mustBlocks(t, `[
		{"_type":"productGrid","_key":"p","products":"not a list"},
		{"_type":"explodes","_key":"x"},
		{"_type":"fails","_key":"f"},
		{"_type":"hero","_key":"h"}
	]`)

	outputs := NewDispatcher(reg, WithLogger(quietLogger())).Render(context.Background(), homeDoc, blocks)
	require.Len(t, outputs, 4)

	assert.True(t, outputs[0].Placeholder)
	assert.Contains(t, outputs[0].Reason, "productGrid")
	assert.Contains(t, string(outputs[0].HTML), "<code>p</code>")

	assert.True(t, outputs[1].Placeholder)
	assert.Contains(t, outputs[1].Reason, "boom")

	assert.True(t, outputs[2].Placeholder)
	assert.Contains(t, string(outputs[2].HTML), "payload rejected")

	assert.False(t, outputs[3].Placeholder)
	assert.Contains(t, string(outputs[3].HTML), `id="hero"`)
}

func TestDispatcherMissingTag(t *testing.T) {
	outputs := NewDispatcher(nil, WithLogger(quietLogger())).Render(context.Background(), homeDoc, core.Blocks{{Key: "k"}})
	require.Len(t, outputs, 1)
	assert.True(t, outputs[0].Placeholder)
	assert.Contains(t, string(outputs[0].HTML), "(missing)")
}

func TestDispatcherVisualEditing(t *testing.T) {
	d := NewDispatcher(nil,
		WithLogger(quietLogger()),
		WithVisualEditing(core.VisualEditing{StudioURL: "/studio"}),
	)
	html := string(d.RenderHTML(context.Background(), core.DocumentRef{ID: "drafts.home", Type: core.DocHomePage}, core.Blocks{
		{Type: core.TagHero, Key: "a", Raw: []byte(`{"_type":"hero","_key":"a"}`)},
	}))

	assert.True(t, strings.HasPrefix(html, `<main class="page-builder" data-document-id="home" data-sanity="id=home;type=homePage;path=pageBuilder;base=/studio">`))
	assert.Contains(t, html, `data-sanity="id=home;type=homePage;path=pageBuilder[_key==&#34;a&#34;];base=/studio"`)
}

func TestDispatcherCustomJoinable(t *testing.T) {
	blocks := core.Blocks{
		{Type: core.TagHero, Key: "a", Raw: []byte(`{}`)},
		{Type: core.TagHero, Key: "b", Raw: []byte(`{}`)},
		{Type: core.TagSplitFeature, Key: "c", Raw: []byte(`{}`)},
		{Type: core.TagSplitFeature, Key: "d", Raw: []byte(`{}`)},
	}
	outputs := NewDispatcher(nil, WithLogger(quietLogger()), WithJoinable(core.TagHero)).Render(context.Background(), homeDoc, blocks)

	assert.Equal(t, core.Spacing{JoinBottom: true}, outputs[0].Spacing)
	assert.Equal(t, core.Spacing{JoinTop: true}, outputs[1].Spacing)
	assert.Equal(t, core.Spacing{}, outputs[2].Spacing)
	assert.Equal(t, core.Spacing{}, outputs[3].Spacing)
}

func TestDispatcherSnapshot(t *testing.T) {
	blocks := mustBlocks(t, `[
		{"_type":"hero","_key":"a","image":{"url":"https://img.example/hero.jpg","alt":"Showroom"}},
		{"_type":"splitFeature","_key":"b","eyebrow":"New","title":"Chimneypieces","richText":"Carved in *Portland* stone.","buttons":[{"_key":"k","text":"View","href":"/fireplaces"}]},
		{"_type":"splitFeature","_key":"c","title":"Lighting","layout":"overlay","overlayTitle":"Lanterns"},
		{"_type":"unknownType","_key":"d"}
	]`)

	html := NewDispatcher(nil, WithLogger(quietLogger())).RenderHTML(context.Background(), homeDoc, blocks)
	snaps.WithConfig(snaps.Ext(".html")).MatchSnapshot(t, string(html))
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	noop := RendererFunc(func(context.Context, io.Writer, Input) error { return nil })

	assert.ErrorIs(t, reg.Register("", noop), ErrEmptyTag)
	assert.ErrorIs(t, reg.Register("hero", nil), ErrNilRenderer)
	require.NoError(t, reg.Register("hero", noop))
	assert.ErrorIs(t, reg.Register("hero", noop), ErrDuplicateTag)

	_, ok := reg.Lookup("hero")
	assert.True(t, ok)
	_, ok = reg.Lookup("splitFeature")
	assert.False(t, ok)

	assert.Equal(t, []string{"categoryLinks", "hero", "productGrid", "splitFeature", "storyCards"}, DefaultRegistry().Tags())
}
