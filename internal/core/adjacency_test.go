package core

import "testing"

func TestJoinRuleSpacing(t *testing.T) {
	blocks := Blocks{
		{Type: TagHero, Key: "a"},
		{Type: TagSplitFeature, Key: "b"},
		{Type: TagSplitFeature, Key: "c"},
		{Type: "unknownType", Key: "d"},
	}
	rule := NewJoinRule(TagSplitFeature)

	want := []Spacing{
		{},
		{JoinBottom: true},
		{JoinTop: true},
		{},
	}

	for i, b := range blocks {
		got := rule.Spacing(b.Type, PositionOf(blocks, i))
		if got != want[i] {
			t.Errorf("block %s: expected %+v, got %+v", b.Key, want[i], got)
		}
	}
}

func TestJoinRuleRuns(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want []Spacing
	}{
		{
			name: "lone split keeps full spacing",
			tags: []string{TagHero, TagSplitFeature, TagHero},
			want: []Spacing{{}, {}, {}},
		},
		{
			name: "run of three",
			tags: []string{TagSplitFeature, TagSplitFeature, TagSplitFeature},
			want: []Spacing{{JoinBottom: true}, {JoinTop: true, JoinBottom: true}, {JoinTop: true}},
		},
		{
			name: "non joinable neighbours",
			tags: []string{TagHero, TagHero},
			want: []Spacing{{}, {}},
		},
	}

	rule := NewJoinRule(TagSplitFeature)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := make(Blocks, len(tt.tags))
			for i, tag := range tt.tags {
				blocks[i] = Block{Type: tag, Key: string(rune('a' + i))}
			}
			for i := range blocks {
				got := rule.Spacing(blocks[i].Type, PositionOf(blocks, i))
				if got != tt.want[i] {
					t.Errorf("index %d: expected %+v, got %+v", i, tt.want[i], got)
				}
			}
		})
	}
}

func TestSpacingClasses(t *testing.T) {
	tests := []struct {
		in   Spacing
		want string
	}{
		{Spacing{}, ""},
		{Spacing{JoinTop: true}, "join-top"},
		{Spacing{JoinBottom: true}, "join-bottom"},
		{Spacing{JoinTop: true, JoinBottom: true}, "join-top join-bottom"},
	}
	for _, tt := range tests {
		if got := tt.in.Classes(); got != tt.want {
			t.Errorf("Classes(%+v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestPositionEdges(t *testing.T) {
	blocks := Blocks{{Type: "x", Key: "1"}, {Type: "y", Key: "2"}}
	first := PositionOf(blocks, 0)
	if first.Index != 0 || first.Total != 2 || first.Prev != "" || first.Next != "y" {
		t.Errorf("unexpected first position %+v", first)
	}
	last := PositionOf(blocks, 1)
	if last.Index != 1 || last.Next != "" || last.Prev != "x" {
		t.Errorf("unexpected last position %+v", last)
	}
}
