package homepage

import (
	"strings"

	"github.com/google/uuid"

	"github.com/luannguen/vrc-cms/internal/document"
)

// SettingsSlug names the global this service aggregates.
const SettingsSlug = "homepage-settings"

// Section identifiers used in settings payloads and view error maps.
const (
	SectionBanners  = "banners"
	SectionFeatured = "featuredProducts"
	SectionPosts    = "posts"
)

// Mode selects how a section's children are picked.
type Mode string

const (
	// ModeManual resolves an explicit, curated reference list.
	ModeManual Mode = "manual"
	// ModeAuto picks the most recent published documents.
	ModeAuto Mode = "auto"
)

// SectionSettings is the parsed configuration of one homepage section.
type SectionSettings struct {
	Enabled    bool
	Mode       Mode
	References []uuid.UUID
	Limit      int
}

// Settings is the parsed homepage-settings global. A nil section means the
// settings document does not configure it at all.
type Settings struct {
	Banners  *SectionSettings
	Featured *SectionSettings
	Posts    *SectionSettings
}

// View is the aggregated homepage response. Disabled or failed sections are
// absent, not empty: consumers treat absence as "do not render". An enabled
// section that resolved to nothing still serializes as an empty list, so the
// pointer distinguishes "off" from "currently empty".
type View struct {
	Banners          *[]map[string]any `json:"banners,omitempty"`
	FeaturedProducts *[]map[string]any `json:"featuredProducts,omitempty"`
	Posts            *[]map[string]any `json:"posts,omitempty"`
	Errors           map[string]string `json:"errors,omitempty"`
}

// ParseSettings reads the section configuration out of the settings global.
// Unknown or malformed entries degrade to a disabled section rather than
// failing the whole view.
func ParseSettings(doc *document.Document) Settings {
	if doc == nil {
		return Settings{}
	}
	return Settings{
		Banners:  parseSection(doc, "bannersSection", "banners"),
		Featured: parseSection(doc, "featuredSection", "products"),
		Posts:    parseSection(doc, "postsSection", "posts"),
	}
}

func parseSection(doc *document.Document, key, itemsKey string) *SectionSettings {
	raw, ok := doc.Field(key)
	if !ok {
		return nil
	}
	section, ok := raw.(map[string]any)
	if !ok {
		return nil
	}

	parsed := &SectionSettings{
		Enabled: boolValue(section["isEnabled"]),
		Mode:    parseMode(section["mode"]),
		Limit:   intValue(section["limit"]),
	}
	parsed.References = parseReferences(section[itemsKey])
	return parsed
}

func parseMode(raw any) Mode {
	if s, ok := raw.(string); ok {
		switch Mode(strings.ToLower(strings.TrimSpace(s))) {
		case ModeAuto:
			return ModeAuto
		case ModeManual:
			return ModeManual
		}
	}
	return ModeManual
}

// parseReferences normalizes a relationship list to bare IDs. Entries may be
// ID strings or already-expanded objects carrying an "id" key.
func parseReferences(raw any) []uuid.UUID {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]uuid.UUID, 0, len(items))
	seen := map[uuid.UUID]struct{}{}
	for _, item := range items {
		id, ok := referenceID(item)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func referenceID(item any) (uuid.UUID, bool) {
	switch v := item.(type) {
	case string:
		id, err := uuid.Parse(strings.TrimSpace(v))
		return id, err == nil
	case uuid.UUID:
		return v, v != uuid.Nil
	case map[string]any:
		if nested, ok := v["id"]; ok {
			return referenceID(nested)
		}
		// Polymorphic relationships arrive as {relationTo, value}.
		if nested, ok := v["value"]; ok {
			return referenceID(nested)
		}
	case *document.Document:
		if v != nil {
			return v.ID, v.ID != uuid.Nil
		}
	}
	return uuid.Nil, false
}

func boolValue(raw any) bool {
	b, ok := raw.(bool)
	return ok && b
}

func intValue(raw any) int {
	switch n := raw.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
