package effects

import "github.com/ivlev/draftsync/internal/draft"

// ValueAt samples kf at offset by linear interpolation between its points.
// Offsets outside the keyframe list clamp to the first or last value.
func ValueAt(kf draft.Keyframe, offset int64) float64 {
	points := kf.KeyframeList
	if len(points) == 0 {
		return 0
	}
	if offset <= points[0].TimeOffset {
		return first(points[0])
	}
	last := points[len(points)-1]
	if offset >= last.TimeOffset {
		return first(last)
	}

	for i := 0; i < len(points)-1; i++ {
		prev, next := points[i], points[i+1]
		if offset >= prev.TimeOffset && offset < next.TimeOffset {
			span := next.TimeOffset - prev.TimeOffset
			if span == 0 {
				return first(next)
			}
			t := float64(offset-prev.TimeOffset) / float64(span)
			return lerp(first(prev), first(next), t)
		}
	}
	return first(last)
}

func first(p draft.KeyframePoint) float64 {
	if len(p.Values) == 0 {
		return 0
	}
	return p.Values[0]
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
