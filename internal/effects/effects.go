package effects

import (
	"fmt"
	"strings"

	"github.com/ivlev/draftsync/internal/draft"
	"github.com/ivlev/draftsync/internal/ids"
	"github.com/ivlev/draftsync/internal/timeline"
)

// Direction is the pan direction of an image segment.
type Direction string

const (
	Left   Direction = "left"
	Right  Direction = "right"
	Up     Direction = "up"
	Down   Direction = "down"
	Random Direction = ""
)

// Directions lists the concrete pan directions in selection order.
var Directions = []Direction{Left, Right, Up, Down}

// PanAmplitude is the normalized offset a pan starts and ends at.
const PanAmplitude = 0.21

// ParseDirection accepts a direction name, "random" or the empty string.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Left, Right, Up, Down, Random:
		return d, nil
	case "random":
		return Random, nil
	default:
		return "", fmt.Errorf("unknown pan direction: %s", s)
	}
}

// MotionGenerator produces the position keyframes of a slow linear pan.
type MotionGenerator struct {
	IDs       ids.Generator
	Rand      ids.Rand
	Amplitude float64
}

func NewMotionGenerator(e ids.Entropy) *MotionGenerator {
	return &MotionGenerator{
		IDs:       e.IDs,
		Rand:      e.Rand,
		Amplitude: PanAmplitude,
	}
}

// Keyframes returns the X and Y keyframes for w. A Random direction picks
// one of Directions uniformly. Left and up pan from -A to +A, right and down
// from +A to -A; the other axis stays at 0.
func (g *MotionGenerator) Keyframes(w timeline.Window, dir Direction) []draft.Keyframe {
	if dir == Random {
		dir = Directions[g.Rand.Intn(len(Directions))]
	}

	from := g.Amplitude
	if dir == Left || dir == Up {
		from = -g.Amplitude
	}
	to := -from

	switch dir {
	case Left, Right:
		return []draft.Keyframe{
			g.keyframe(draft.PropertyPositionX, from, to, w.Duration),
			g.keyframe(draft.PropertyPositionY, 0, 0, w.Duration),
		}
	default:
		return []draft.Keyframe{
			g.keyframe(draft.PropertyPositionX, 0, 0, w.Duration),
			g.keyframe(draft.PropertyPositionY, from, to, w.Duration),
		}
	}
}

func (g *MotionGenerator) keyframe(property string, from, to float64, duration int64) draft.Keyframe {
	return draft.Keyframe{
		ID: g.IDs.NewID(),
		KeyframeList: []draft.KeyframePoint{
			{TimeOffset: 0, Values: []float64{from}},
			{TimeOffset: duration, Values: []float64{to}},
		},
		PropertyType: property,
	}
}
