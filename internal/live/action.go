package live

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/3-lines-studio/jamb/internal/core"
)

var (
	ErrUnknownAction   = errors.New("live: unknown action")
	ErrMissingDocument = errors.New("live: action names no document")
)

type ActionKind string

const (
	ActionEdit    ActionKind = "edit"
	ActionPatch   ActionKind = "patch"
	ActionConfirm ActionKind = "confirm"
	ActionRevert  ActionKind = "revert"
)

// Action is one message from the editing channel. An edit carries the
// whole edited document; a patch carries field mutations against the
// sequence currently shown.
type Action struct {
	Kind         ActionKind      `json:"type"`
	ID           string          `json:"id"`
	DocumentType string          `json:"documentType,omitempty"`
	Rev          string          `json:"rev,omitempty"`
	Document     json.RawMessage `json:"document,omitempty"`
	Patch        Patch           `json:"patch,omitempty"`
}

func DecodeAction(data []byte) (Action, error) {
	var a Action
	if err := json.Unmarshal(data, &a); err != nil {
		return Action{}, fmt.Errorf("decode live action: %w", err)
	}
	if a.ID == "" {
		return Action{}, ErrMissingDocument
	}
	return a, nil
}

func (a Action) Ref() core.DocumentRef {
	ref := core.DocumentRef{ID: core.PublishedID(a.ID), Type: a.DocumentType}
	if ref.Type == "" && len(a.Document) > 0 {
		ref.Type = gjson.GetBytes(a.Document, "_type").String()
	}
	return ref
}

// Apply runs the action against the store. The boolean reports whether any
// document state changed; actions that do not concern the page builder of
// the named document are accepted and ignored.
func (s *Store) Apply(a Action) (bool, error) {
	ref := a.Ref()
	if ref.ID == "" {
		return false, ErrMissingDocument
	}

	switch a.Kind {
	case ActionEdit:
		edit, err := editFromDocument(a, ref)
		if err != nil {
			return false, err
		}
		return s.Edit(edit), nil
	case ActionPatch:
		edit, err := s.editFromPatch(a, ref)
		if err != nil {
			return false, err
		}
		return s.Edit(edit), nil
	case ActionConfirm:
		return s.Confirm(ref, a.Rev), nil
	case ActionRevert:
		return s.Revert(ref), nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
}

func editFromDocument(a Action, ref core.DocumentRef) (core.Edit, error) {
	edit := core.Edit{Document: ref, Rev: a.Rev}
	if len(a.Document) == 0 || !gjson.ValidBytes(a.Document) {
		return edit, nil
	}
	doc := gjson.ParseBytes(a.Document)
	if id := doc.Get("_id").String(); id != "" && core.PublishedID(id) != ref.ID {
		return edit, nil
	}
	if edit.Rev == "" {
		edit.Rev = doc.Get("_rev").String()
	}

	pb := doc.Get(core.BuilderPath)
	if !pb.Exists() {
		return edit, nil
	}
	blocks, err := core.DecodeBlocks([]byte(pb.Raw))
	if err != nil {
		return edit, err
	}
	edit.Blocks = blocks
	edit.HasBlocks = true
	return edit, nil
}

func touchesPageBuilder(p Patch) bool {
	for path := range p.Set {
		if strings.HasPrefix(path, core.BuilderPath) {
			return true
		}
	}
	for _, path := range p.Unset {
		if strings.HasPrefix(path, core.BuilderPath) {
			return true
		}
	}
	return false
}

func (s *Store) editFromPatch(a Action, ref core.DocumentRef) (core.Edit, error) {
	edit := core.Edit{Document: ref, Rev: a.Rev}
	if !touchesPageBuilder(a.Patch) {
		return edit, nil
	}

	current, _ := s.Current(ref)
	if current == nil {
		current = core.Blocks{}
	}
	base, err := json.Marshal(map[string]core.Blocks{core.BuilderPath: current})
	if err != nil {
		return edit, err
	}
	patched, err := ApplyPatch(base, a.Patch)
	if err != nil {
		return edit, err
	}
	blocks, err := core.DecodeBlocks([]byte(gjson.GetBytes(patched, core.BuilderPath).Raw))
	if err != nil {
		return edit, err
	}
	edit.Blocks = blocks
	edit.HasBlocks = true
	return edit, nil
}
