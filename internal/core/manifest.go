package core

import (
	"encoding/json"
)

// AssetManifest maps logical asset names to the hashed files written by an
// export.
type AssetManifest struct {
	Assets map[string]string `json:"assets"`
}

func ParseManifest(data []byte) (*AssetManifest, error) {
	var m AssetManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Href returns the public path for name, falling back to the unhashed
// /dist/ path when the manifest has no entry.
func (m *AssetManifest) Href(name string) string {
	if m != nil {
		if hashed, ok := m.Assets[name]; ok {
			return "/dist/" + hashed
		}
	}
	return "/dist/" + name
}
