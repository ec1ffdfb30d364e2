package core

import (
	"fmt"
	"strings"
)

// VisualEditing builds the data-sanity attribute values that let the
// studio overlay map rendered elements back to document fields.
type VisualEditing struct {
	StudioURL string
	ProjectID string
	Dataset   string
}

// BuilderPath is the document field holding the block sequence.
const BuilderPath = "pageBuilder"

func BlockPath(key string) string {
	return fmt.Sprintf("%s[_key==%q]", BuilderPath, key)
}

func (v VisualEditing) Attribute(doc DocumentRef, path string) string {
	parts := []string{
		"id=" + doc.PublishedID(),
		"type=" + doc.Type,
		"path=" + path,
	}
	if v.StudioURL != "" {
		parts = append(parts, "base="+v.StudioURL)
	}
	if v.ProjectID != "" {
		parts = append(parts, "projectId="+v.ProjectID)
	}
	if v.Dataset != "" {
		parts = append(parts, "dataset="+v.Dataset)
	}
	return strings.Join(parts, ";")
}
