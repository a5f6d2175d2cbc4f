package engine

import (
	"github.com/ivlev/draftsync/internal/draft"
	"github.com/ivlev/draftsync/internal/ids"
)

// TrackAssembler creates the tracks a synchronization run adds.
type TrackAssembler struct {
	IDs ids.Generator
}

// BuildImageTrack wraps segments, in order, into a new video track.
func (a *TrackAssembler) BuildImageTrack(segments []*draft.Segment) *draft.Track {
	if segments == nil {
		segments = []*draft.Segment{}
	}
	return &draft.Track{
		ID:       a.IDs.NewID(),
		Segments: segments,
		Type:     draft.TrackVideo,
	}
}

// EnsureEffectTrack appends an empty effect track unless doc already has
// one. It reports whether a track was added.
func (a *TrackAssembler) EnsureEffectTrack(doc *draft.Document) bool {
	if len(doc.TracksOfType(draft.TrackEffect)) > 0 {
		return false
	}
	doc.Tracks = append(doc.Tracks, &draft.Track{
		ID:       a.IDs.NewID(),
		Segments: []*draft.Segment{},
		Type:     draft.TrackEffect,
	})
	return true
}
