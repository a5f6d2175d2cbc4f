package timeline

import (
	"sort"
	"strings"

	"github.com/ivlev/draftsync/internal/draft"
)

// anchorTrackTypes are the track kinds that may carry subtitle segments.
var anchorTrackTypes = map[string]bool{
	draft.TrackText:     true,
	draft.TrackSubtitle: true,
	draft.TrackSticker:  true,
}

// ExtractAnchors returns the start times of all subtitle-like segments of
// doc in ascending order. Segments without a start count as 0; equal starts
// keep document order.
func ExtractAnchors(doc *draft.Document) []int64 {
	if doc == nil {
		return nil
	}

	var anchors []int64
	for _, track := range doc.Tracks {
		if track == nil || !anchorTrackTypes[strings.ToLower(track.Type)] {
			continue
		}
		for _, seg := range track.Segments {
			if seg == nil || !seg.IsText() {
				continue
			}
			start, _ := seg.Start()
			anchors = append(anchors, start)
		}
	}

	sort.SliceStable(anchors, func(i, j int) bool {
		return anchors[i] < anchors[j]
	})
	return anchors
}
