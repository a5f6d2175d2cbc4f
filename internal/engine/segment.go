package engine

import (
	"github.com/ivlev/draftsync/internal/draft"
	"github.com/ivlev/draftsync/internal/effects"
	"github.com/ivlev/draftsync/internal/ids"
	"github.com/ivlev/draftsync/internal/timeline"
)

// ImageScale is the zoom applied to every image so a pan never shows the
// canvas edge.
const ImageScale = 1.25

// SegmentBuilder turns allocated windows into image segments.
type SegmentBuilder struct {
	IDs        ids.Generator
	Motion     *effects.MotionGenerator
	Animations *effects.AnimationCatalog
	Registry   *MaterialRegistry
	Direction  effects.Direction
}

// Build returns a segment showing materialID during w. The segment gets a
// pan and a freshly selected entrance animation, which is registered as a
// side effect.
func (b *SegmentBuilder) Build(materialID string, w timeline.Window, index int) *draft.Segment {
	anim := b.Animations.Select()
	b.Registry.RegisterAnimation(anim)

	return &draft.Segment{
		Clip: &draft.Clip{
			Alpha: 1,
			Scale: draft.Vec2{X: ImageScale, Y: ImageScale},
		},
		CommonKeyframes:   b.Motion.Keyframes(w, b.Direction),
		EnableColorCurves: true,
		EnableColorWheels: true,
		ExtraMaterialRefs: []string{anim.ID},
		ID:                b.IDs.NewID(),
		MaterialID:        materialID,
		RenderIndex:       index,
		SourceTimerange:   &draft.Timerange{Start: 0, Duration: w.Duration},
		Speed:             1,
		TargetTimerange:   &draft.Timerange{Start: w.Start, Duration: w.Duration},
		TemplateScene:     "default",
		UniformScale:      &draft.UniformScale{On: true, Value: 1},
		Visible:           true,
		Volume:            1,
	}
}
