package draft

import (
	"encoding/json"
	"fmt"
)

// ContentFileName is the timeline document inside a draft folder.
const ContentFileName = "draft_content.json"

// Track types the engine reads or writes.
const (
	TrackVideo    = "video"
	TrackAudio    = "audio"
	TrackText     = "text"
	TrackSubtitle = "subtitle"
	TrackSticker  = "sticker"
	TrackEffect   = "effect"
)

// Keyframe property types for position animation.
const (
	PropertyPositionX = "KFTypePositionX"
	PropertyPositionY = "KFTypePositionY"
)

// Timerange is a span on the timeline in microseconds.
type Timerange struct {
	Duration int64 `json:"duration"`
	Start    int64 `json:"start"`
}

func (t Timerange) End() int64 {
	return t.Start + t.Duration
}

// KeyframePoint is one sample of an animated property.
type KeyframePoint struct {
	TimeOffset int64     `json:"time_offset"`
	Values     []float64 `json:"values"`
}

// Keyframe animates one property of a segment.
type Keyframe struct {
	ID           string          `json:"id"`
	KeyframeList []KeyframePoint `json:"keyframe_list"`
	PropertyType string          `json:"property_type"`
}

type Flip struct {
	Horizontal bool `json:"horizontal"`
	Vertical   bool `json:"vertical"`
}

type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Clip is the visual transform of a segment.
type Clip struct {
	Alpha     float64 `json:"alpha"`
	Flip      Flip    `json:"flip"`
	Rotation  float64 `json:"rotation"`
	Scale     Vec2    `json:"scale"`
	Transform Vec2    `json:"transform"`
}

type UniformScale struct {
	On    bool    `json:"on"`
	Value float64 `json:"value"`
}

// Segment is one timed placement of a material on a track.
//
// Segments decoded from a document are read-only views: only the fields the
// engine reads are populated and the original bytes are written back as is.
type Segment struct {
	Cartoon           bool          `json:"cartoon"`
	Clip              *Clip         `json:"clip"`
	CommonKeyframes   []Keyframe    `json:"common_keyframes"`
	EnableAdjust      bool          `json:"enable_adjust"`
	EnableColorCurves bool          `json:"enable_color_curves"`
	EnableColorWheels bool          `json:"enable_color_wheels"`
	ExtraMaterialRefs []string      `json:"extra_material_refs"`
	GroupID           string        `json:"group_id"`
	ID                string        `json:"id"`
	IntensifiesAudio  bool          `json:"intensifies_audio"`
	IsPlaceholder     bool          `json:"is_placeholder"`
	MaterialID        string        `json:"material_id"`
	RenderIndex       int           `json:"render_index"`
	SourceTimerange   *Timerange    `json:"source_timerange"`
	Speed             float64       `json:"speed"`
	TargetTimerange   *Timerange    `json:"target_timerange"`
	TemplateID        string        `json:"template_id"`
	TemplateScene     string        `json:"template_scene"`
	TrackAttribute    int           `json:"track_attribute"`
	TrackRenderIndex  int           `json:"track_render_index"`
	UniformScale      *UniformScale `json:"uniform_scale"`
	Visible           bool          `json:"visible"`
	Volume            float64       `json:"volume"`

	text  bool
	start *int64
	raw   json.RawMessage
}

type segmentJSON Segment

// IsText reports whether the segment carries a text or subtitle attribute.
func (s *Segment) IsText() bool {
	return s.text
}

// Start returns the segment start, preferring the target range over the
// source range. ok is false when neither carries a start.
func (s *Segment) Start() (start int64, ok bool) {
	if s.start != nil {
		return *s.start, true
	}
	if s.raw == nil && s.TargetTimerange != nil {
		return s.TargetTimerange.Start, true
	}
	return 0, false
}

func (s *Segment) UnmarshalJSON(b []byte) error {
	fields, ok := asObject(b)
	if !ok {
		return fmt.Errorf("segment is not an object")
	}
	*s = Segment{raw: append(json.RawMessage(nil), b...)}
	s.ID = asString(fields["id"])
	s.MaterialID = asString(fields["material_id"])
	s.ExtraMaterialRefs = asStrings(fields["extra_material_refs"])
	s.CommonKeyframes = decodeKeyframes(fields["common_keyframes"])

	_, hasText := fields["text"]
	_, hasSubtitle := fields["subtitle"]
	attrs, _ := asObject(fields["attrs"])
	s.text = hasText || hasSubtitle || truthy(attrs["is_text"])

	var targetStart, sourceStart *int64
	s.TargetTimerange, targetStart = decodeTimerange(fields["target_timerange"])
	s.SourceTimerange, sourceStart = decodeTimerange(fields["source_timerange"])
	if targetStart != nil {
		s.start = targetStart
	} else {
		s.start = sourceStart
	}
	return nil
}

func (s *Segment) MarshalJSON() ([]byte, error) {
	if s.raw != nil {
		return s.raw, nil
	}
	return encode((*segmentJSON)(s))
}

func decodeTimerange(raw json.RawMessage) (*Timerange, *int64) {
	fields, ok := asObject(raw)
	if !ok {
		return nil, nil
	}
	tr := &Timerange{
		Start:    asInt(fields["start"]),
		Duration: asInt(fields["duration"]),
	}
	if _, has := fields["start"]; has {
		start := tr.Start
		return tr, &start
	}
	return tr, nil
}

func decodeKeyframes(raw json.RawMessage) []Keyframe {
	items, ok := asArray(raw)
	if !ok {
		return nil
	}
	var out []Keyframe
	for _, item := range items {
		fields, ok := asObject(item)
		if !ok {
			continue
		}
		kf := Keyframe{
			ID:           asString(fields["id"]),
			PropertyType: asString(fields["property_type"]),
		}
		points, _ := asArray(fields["keyframe_list"])
		for _, p := range points {
			pf, ok := asObject(p)
			if !ok {
				continue
			}
			kf.KeyframeList = append(kf.KeyframeList, KeyframePoint{
				TimeOffset: asInt(pf["time_offset"]),
				Values:     asFloats(pf["values"]),
			})
		}
		out = append(out, kf)
	}
	return out
}

// Track is an ordered list of segments sharing a kind.
type Track struct {
	Attribute int        `json:"attribute"`
	Flag      int        `json:"flag"`
	ID        string     `json:"id"`
	Segments  []*Segment `json:"segments"`
	Type      string     `json:"type"`

	raw json.RawMessage
}

type trackJSON Track

func (t *Track) UnmarshalJSON(b []byte) error {
	fields, ok := asObject(b)
	if !ok {
		return fmt.Errorf("track is not an object")
	}
	*t = Track{raw: append(json.RawMessage(nil), b...)}
	t.ID = asString(fields["id"])
	t.Type = asString(fields["type"])
	if t.Type == "" {
		t.Type = asString(fields["track_type"])
	}
	t.Attribute = int(asInt(fields["attribute"]))
	t.Flag = int(asInt(fields["flag"]))

	items, _ := asArray(fields["segments"])
	for i, item := range items {
		seg := &Segment{}
		if err := seg.UnmarshalJSON(item); err != nil {
			return fmt.Errorf("track %s segment %d: %w", t.ID, i, err)
		}
		t.Segments = append(t.Segments, seg)
	}
	return nil
}

func (t *Track) MarshalJSON() ([]byte, error) {
	if t.raw != nil {
		return t.raw, nil
	}
	out := trackJSON(*t)
	if out.Segments == nil {
		out.Segments = []*Segment{}
	}
	return encode(&out)
}

// End returns the latest segment end on the track.
func (t *Track) End() int64 {
	var end int64
	for _, seg := range t.Segments {
		if seg.TargetTimerange == nil {
			continue
		}
		if e := seg.TargetTimerange.End(); e > end {
			end = e
		}
	}
	return end
}
