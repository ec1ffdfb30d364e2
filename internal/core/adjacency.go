package core

// Position is the context a renderer gets about where its block sits.
// Prev and Next hold the neighbouring tags, empty at the edges.
type Position struct {
	Index int
	Total int
	Prev  string
	Next  string
}

func PositionOf(blocks Blocks, i int) Position {
	pos := Position{Index: i, Total: len(blocks)}
	if i > 0 {
		pos.Prev = blocks[i-1].Type
	}
	if i+1 < len(blocks) {
		pos.Next = blocks[i+1].Type
	}
	return pos
}

// Spacing says which outer boundaries of a block lose their padding
// because a neighbour of the same joinable tag sits against them.
type Spacing struct {
	JoinTop    bool
	JoinBottom bool
}

func (s Spacing) Classes() string {
	switch {
	case s.JoinTop && s.JoinBottom:
		return "join-top join-bottom"
	case s.JoinTop:
		return "join-top"
	case s.JoinBottom:
		return "join-bottom"
	}
	return ""
}

type JoinRule struct {
	tags map[string]struct{}
}

func NewJoinRule(tags ...string) JoinRule {
	r := JoinRule{tags: make(map[string]struct{}, len(tags))}
	for _, t := range tags {
		if t != "" {
			r.tags[t] = struct{}{}
		}
	}
	return r
}

func (r JoinRule) Joinable(tag string) bool {
	_, ok := r.tags[tag]
	return ok
}

func (r JoinRule) Spacing(tag string, pos Position) Spacing {
	if !r.Joinable(tag) {
		return Spacing{}
	}
	return Spacing{
		JoinTop:    pos.Prev == tag,
		JoinBottom: pos.Next == tag,
	}
}
