package effects

import (
	"strings"

	"github.com/ivlev/draftsync/internal/draft"
	"github.com/ivlev/draftsync/internal/ids"
	"github.com/ivlev/draftsync/internal/timeline"
)

// EntranceDuration is how long every entrance animation plays.
const EntranceDuration = 700 * timeline.Second / 1000

// AnimationType is the material type of animation records.
const AnimationType = "sticker_animation"

// Preset is one canned entrance animation.
type Preset struct {
	Name       string
	ResourceID string
}

// EntrancePresets are the animations segments are decorated with.
var EntrancePresets = []Preset{
	{Name: "渐显", ResourceID: "fade"},
	{Name: "向右甩入", ResourceID: "scale_in_right"},
	{Name: "向左滑动", ResourceID: "slide_in_left"},
	{Name: "雨刷 II", ResourceID: "wiper"},
	{Name: "左右抖动", ResourceID: "shake"},
}

// AnimationCatalog selects entrance animations and builds their records.
type AnimationCatalog struct {
	presets []Preset
	entropy ids.Entropy
}

func NewAnimationCatalog(e ids.Entropy) *AnimationCatalog {
	return &AnimationCatalog{presets: EntrancePresets, entropy: e}
}

func (c *AnimationCatalog) Presets() []Preset {
	return c.presets
}

// Select picks a preset uniformly and returns a new record for it.
func (c *AnimationCatalog) Select() *draft.MaterialAnimation {
	return c.Build(c.presets[c.entropy.Rand.Intn(len(c.presets))])
}

// Build returns a new record for p. Every call yields a distinct id and
// request id, even for the same preset.
func (c *AnimationCatalog) Build(p Preset) *draft.MaterialAnimation {
	suffix := c.entropy.IDs.NewID()
	suffix = suffix[:min(8, len(suffix))]
	requestID := c.entropy.Now().Format("20060102150405") + strings.ToUpper(suffix)
	return &draft.MaterialAnimation{
		Animations: []draft.AnimationEffect{{
			CategoryID:   "in",
			CategoryName: "入场",
			Duration:     EntranceDuration,
			ID:           p.ResourceID,
			MaterialType: "video",
			Name:         p.Name,
			Panel:        "video",
			Platform:     "all",
			RequestID:    requestID,
			ResourceID:   p.ResourceID,
			Start:        0,
			Type:         "in",
		}},
		ID:   c.entropy.IDs.NewID(),
		Type: AnimationType,
	}
}
