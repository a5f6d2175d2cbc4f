// Package validate runs advisory checks over a draft. Problems are reported
// as warnings; nothing here fails or changes the draft.
package validate

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/ivlev/draftsync/internal/draft"
	"github.com/ivlev/draftsync/internal/effects"
	"github.com/ivlev/draftsync/internal/timeline"
)

// MaxSkew is the largest tolerated gap between the picture and sound ends.
const MaxSkew = timeline.Second / 2

// MaxOffset bounds keyframed positions; beyond it the image leaves the
// canvas.
const MaxOffset = 1.0

var (
	pictureTracks = map[string]bool{draft.TrackVideo: true, draft.TrackSticker: true}
	soundTracks   = map[string]bool{draft.TrackAudio: true, draft.TrackText: true, draft.TrackSubtitle: true}
)

// Dir checks the document inside a draft folder.
func Dir(path string) []string {
	doc, err := draft.Load(filepath.Join(path, draft.ContentFileName))
	if err != nil {
		return []string{err.Error()}
	}
	return Document(doc)
}

// Document checks doc and returns one warning per problem found.
func Document(doc *draft.Document) []string {
	if doc == nil {
		return []string{"no document"}
	}

	var warnings []string
	if len(doc.Tracks) < 2 {
		warnings = append(warnings, "too few tracks: expected at least a video track and an audio or text track")
	}

	var pictureEnd, soundEnd int64
	for _, t := range doc.Tracks {
		if t == nil {
			continue
		}
		typ := strings.ToLower(t.Type)
		switch {
		case pictureTracks[typ]:
			pictureEnd = max(pictureEnd, t.End())
		case soundTracks[typ]:
			soundEnd = max(soundEnd, t.End())
		}
	}
	if pictureEnd > 0 && soundEnd > 0 {
		if skew := pictureEnd - soundEnd; skew > MaxSkew || skew < -MaxSkew {
			warnings = append(warnings, fmt.Sprintf(
				"picture and sound ends differ by %.2fs (more than %.1fs), check the timeline alignment",
				math.Abs(float64(skew))/float64(timeline.Second), float64(MaxSkew)/float64(timeline.Second)))
		}
	}

	warnings = append(warnings, danglingRefs(doc)...)
	warnings = append(warnings, offCanvas(doc)...)
	return warnings
}

func danglingRefs(doc *draft.Document) []string {
	if doc.Materials == nil {
		return nil
	}
	known := doc.Materials.IDs()
	var warnings []string
	for _, t := range doc.Tracks {
		if t == nil {
			continue
		}
		for _, seg := range t.Segments {
			if seg == nil {
				continue
			}
			if seg.MaterialID != "" && !known[seg.MaterialID] {
				warnings = append(warnings, fmt.Sprintf("segment %s references missing material %s", seg.ID, seg.MaterialID))
			}
			for _, ref := range seg.ExtraMaterialRefs {
				if ref != "" && !known[ref] {
					warnings = append(warnings, fmt.Sprintf("segment %s references missing material %s", seg.ID, ref))
				}
			}
		}
	}
	return warnings
}

// offCanvas samples position keyframes at both ends and the middle of each
// segment.
func offCanvas(doc *draft.Document) []string {
	var warnings []string
	for _, t := range doc.Tracks {
		if t == nil {
			continue
		}
		for _, seg := range t.Segments {
			if seg == nil || seg.TargetTimerange == nil {
				continue
			}
			d := seg.TargetTimerange.Duration
			for _, kf := range seg.CommonKeyframes {
				if kf.PropertyType != draft.PropertyPositionX && kf.PropertyType != draft.PropertyPositionY {
					continue
				}
				for _, at := range []int64{0, d / 2, d} {
					if v := effects.ValueAt(kf, at); math.Abs(v) > MaxOffset {
						warnings = append(warnings, fmt.Sprintf("segment %s moves off the canvas (%s = %.2f)", seg.ID, kf.PropertyType, v))
						break
					}
				}
			}
		}
	}
	return warnings
}
