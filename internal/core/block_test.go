package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBlocks(t *testing.T) {
	raw := []byte(`[
		{"_type":"hero","_key":"a","image":{"alt":"Front"}},
		{"_type":"splitFeature","_key":"b","title":"One"},
		{"_type":"unknownType","_key":"d"}
	]`)

	blocks, err := DecodeBlocks(raw)
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"hero", "splitFeature", "unknownType"}, blocks.Tags()); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "b", blocks[1].Key)
	assert.Equal(t, 2, blocks.IndexOf("d"))
	assert.Equal(t, -1, blocks.IndexOf("zzz"))

	var split SplitFeature
	require.NoError(t, blocks[1].Decode(&split))
	assert.Equal(t, "One", split.Title)
}

func TestDecodeBlocksEmpty(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty input", ""},
		{"null", "null"},
		{"empty array", "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := DecodeBlocks([]byte(tt.raw))
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if len(blocks) != 0 {
				t.Errorf("Expected no blocks, got %d", len(blocks))
			}
		})
	}
}

func TestDecodeBlocksRejectsNonArray(t *testing.T) {
	for _, raw := range []string{`{"_type":"hero"}`, `[{"_type":`, `"hero"`} {
		_, err := DecodeBlocks([]byte(raw))
		if !errors.Is(err, ErrInvalidBlocks) {
			t.Errorf("DecodeBlocks(%s): expected ErrInvalidBlocks, got %v", raw, err)
		}
	}
}

func TestBlockDecodeMalformedPayload(t *testing.T) {
	blocks, err := DecodeBlocks([]byte(`[{"_type":"productGrid","_key":"p","products":"oops"}]`))
	require.NoError(t, err)

	var grid ProductGrid
	err = blocks[0].Decode(&grid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `productGrid block "p"`)
}

func TestBlocksRoundTripKeepsPayload(t *testing.T) {
	var doc PageDocument
	err := jsonUnmarshal(`{"_id":"drafts.home","_type":"homePage","pageBuilder":[{"_type":"hero","_key":"a","image":{"alt":"x"}}]}`, &doc)
	require.NoError(t, err)
	require.Len(t, doc.PageBuilder, 1)
	assert.JSONEq(t, `{"_type":"hero","_key":"a","image":{"alt":"x"}}`, string(doc.PageBuilder[0].Raw))
	assert.Equal(t, DocumentRef{ID: "home", Type: DocHomePage}, doc.Ref())
}

func TestBlocksValidate(t *testing.T) {
	blocks := Blocks{
		{Type: "hero", Key: "a"},
		{Type: "", Key: "b"},
		{Type: "hero", Key: ""},
		{Type: "splitFeature", Key: "a"},
	}

	err := blocks.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingType)
	assert.ErrorIs(t, err, ErrMissingKey)
	assert.ErrorIs(t, err, ErrDuplicateKey)

	var be *BlockError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 1, be.Index)

	assert.NoError(t, Blocks{{Type: "hero", Key: "a"}, {Type: "hero", Key: "b"}}.Validate())
}
