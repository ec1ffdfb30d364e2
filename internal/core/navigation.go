package core

// Navigation is everything the site chrome needs, gathered once per
// request. Any part may be missing when its document is absent or failed
// to load.
type Navigation struct {
	Navbar        *Navbar           `json:"navbarData"`
	Settings      *Settings         `json:"settingsData"`
	Drawer        *DrawerNavigation `json:"drawerData"`
	Footer        *Footer           `json:"footerData,omitempty"`
	CategoryLinks []Link            `json:"categoryLinks"`
}

// ExtractCategoryLinks flattens the links of every categoryLinks block in
// authored order. Blocks that fail to decode are skipped.
func ExtractCategoryLinks(blocks Blocks) []Link {
	links := []Link{}
	for _, b := range blocks {
		if b.Type != TagCategoryLinks {
			continue
		}
		var payload CategoryLinks
		if err := b.Decode(&payload); err != nil {
			continue
		}
		links = append(links, payload.Links...)
	}
	return links
}
