package draft

import (
	"encoding/json"
	"fmt"
)

// Material collection keys.
const (
	CollectionVideos     = "videos"
	CollectionAnimations = "material_animations"
)

type Crop struct {
	LowerLeftX  float64 `json:"lower_left_x"`
	LowerLeftY  float64 `json:"lower_left_y"`
	LowerRightX float64 `json:"lower_right_x"`
	LowerRightY float64 `json:"lower_right_y"`
	UpperLeftX  float64 `json:"upper_left_x"`
	UpperLeftY  float64 `json:"upper_left_y"`
	UpperRightX float64 `json:"upper_right_x"`
	UpperRightY float64 `json:"upper_right_y"`
}

// FullCrop covers the whole image.
func FullCrop() Crop {
	return Crop{
		LowerLeftX: 0, LowerLeftY: 1,
		LowerRightX: 1, LowerRightY: 1,
		UpperLeftX: 0, UpperLeftY: 0,
		UpperRightX: 1, UpperRightY: 0,
	}
}

type Matting struct {
	Flag              int    `json:"flag"`
	HasUseQuickBrush  bool   `json:"has_use_quick_brush"`
	HasUseQuickEraser bool   `json:"has_use_quick_eraser"`
	InteractiveTime   []any  `json:"interactiveTime"`
	Path              string `json:"path"`
	Strokes           []any  `json:"strokes"`
}

type Stable struct {
	MatrixPath  string    `json:"matrix_path"`
	StableLevel int       `json:"stable_level"`
	TimeRange   Timerange `json:"time_range"`
}

type VideoAlgorithm struct {
	Algorithms            []any  `json:"algorithms"`
	ComplementFrameConfig any    `json:"complement_frame_config"`
	Deflicker             any    `json:"deflicker"`
	GameplayConfigs       []any  `json:"gameplay_configs"`
	MotionBlurConfig      any    `json:"motion_blur_config"`
	NoiseReduction        any    `json:"noise_reduction"`
	Path                  string `json:"path"`
	QualityEnhance        any    `json:"quality_enhance"`
	TimeRange             any    `json:"time_range"`
}

// ImageMaterial is a photo entry of materials.videos.
type ImageMaterial struct {
	AigcType               string         `json:"aigc_type"`
	AudioFade              any            `json:"audio_fade"`
	CartoonPath            string         `json:"cartoon_path"`
	CategoryID             string         `json:"category_id"`
	CategoryName           string         `json:"category_name"`
	CheckFlag              int            `json:"check_flag"`
	Crop                   Crop           `json:"crop"`
	CropRatio              string         `json:"crop_ratio"`
	CropScale              float64        `json:"crop_scale"`
	Duration               int64          `json:"duration"`
	FormulaID              string         `json:"formula_id"`
	Freeze                 any            `json:"freeze"`
	HasAudio               bool           `json:"has_audio"`
	Height                 int            `json:"height"`
	ID                     string         `json:"id"`
	IntensifiesAudioPath   string         `json:"intensifies_audio_path"`
	IntensifiesPath        string         `json:"intensifies_path"`
	IsAIGenerateContent    bool           `json:"is_ai_generate_content"`
	IsCopyright            bool           `json:"is_copyright"`
	IsTextEditOverdub      bool           `json:"is_text_edit_overdub"`
	IsUnifiedBeautyMode    bool           `json:"is_unified_beauty_mode"`
	LocalID                string         `json:"local_id"`
	LocalMaterialID        string         `json:"local_material_id"`
	MaterialID             string         `json:"material_id"`
	MaterialName           string         `json:"material_name"`
	MaterialURL            string         `json:"material_url"`
	Matting                Matting        `json:"matting"`
	MediaPath              string         `json:"media_path"`
	ObjectLocked           any            `json:"object_locked"`
	OriginMaterialID       string         `json:"origin_material_id"`
	Path                   string         `json:"path"`
	PictureFrom            string         `json:"picture_from"`
	PictureSetCategoryID   string         `json:"picture_set_category_id"`
	PictureSetCategoryName string         `json:"picture_set_category_name"`
	RequestID              string         `json:"request_id"`
	ReverseIntensifiesPath string         `json:"reverse_intensifies_path"`
	ReversePath            string         `json:"reverse_path"`
	SmartMotion            any            `json:"smart_motion"`
	Source                 int            `json:"source"`
	SourcePlatform         int            `json:"source_platform"`
	Stable                 Stable         `json:"stable"`
	TeamID                 string         `json:"team_id"`
	Type                   string         `json:"type"`
	VideoAlgorithm         VideoAlgorithm `json:"video_algorithm"`
	Width                  int            `json:"width"`

	raw json.RawMessage
}

type imageMaterialJSON ImageMaterial

func (m *ImageMaterial) UnmarshalJSON(b []byte) error {
	fields, ok := asObject(b)
	if !ok {
		return fmt.Errorf("material is not an object")
	}
	*m = ImageMaterial{raw: append(json.RawMessage(nil), b...)}
	m.ID = asString(fields["id"])
	m.Path = asString(fields["path"])
	m.Type = asString(fields["type"])
	m.MaterialName = asString(fields["material_name"])
	m.Width = int(asInt(fields["width"]))
	m.Height = int(asInt(fields["height"]))
	return nil
}

func (m *ImageMaterial) MarshalJSON() ([]byte, error) {
	if m.raw != nil {
		return m.raw, nil
	}
	return encode((*imageMaterialJSON)(m))
}

// AnimationEffect is one canned animation inside a MaterialAnimation.
type AnimationEffect struct {
	AnimAdjustParams any    `json:"anim_adjust_params"`
	CategoryID       string `json:"category_id"`
	CategoryName     string `json:"category_name"`
	Duration         int64  `json:"duration"`
	ID               string `json:"id"`
	MaterialType     string `json:"material_type"`
	Name             string `json:"name"`
	Panel            string `json:"panel"`
	Path             string `json:"path"`
	Platform         string `json:"platform"`
	RequestID        string `json:"request_id"`
	ResourceID       string `json:"resource_id"`
	Start            int64  `json:"start"`
	Type             string `json:"type"`
}

// MaterialAnimation is an entry of materials.material_animations referenced
// from a segment's extra_material_refs.
type MaterialAnimation struct {
	Animations []AnimationEffect `json:"animations"`
	ID         string            `json:"id"`
	Type       string            `json:"type"`

	raw json.RawMessage
}

type materialAnimationJSON MaterialAnimation

func (a *MaterialAnimation) UnmarshalJSON(b []byte) error {
	fields, ok := asObject(b)
	if !ok {
		return fmt.Errorf("animation is not an object")
	}
	*a = MaterialAnimation{raw: append(json.RawMessage(nil), b...)}
	a.ID = asString(fields["id"])
	a.Type = asString(fields["type"])
	return nil
}

func (a *MaterialAnimation) MarshalJSON() ([]byte, error) {
	if a.raw != nil {
		return a.raw, nil
	}
	out := materialAnimationJSON(*a)
	if out.Animations == nil {
		out.Animations = []AnimationEffect{}
	}
	return encode(&out)
}

// Materials holds the document's named material collections. Collections
// other than videos and material_animations are kept in Extra untouched.
type Materials struct {
	Videos     []*ImageMaterial
	Animations []*MaterialAnimation
	Extra      map[string]json.RawMessage
}

func (m *Materials) UnmarshalJSON(b []byte) error {
	fields, ok := asObject(b)
	if !ok {
		return fmt.Errorf("materials is not an object")
	}
	*m = Materials{Extra: make(map[string]json.RawMessage)}
	for key, raw := range fields {
		switch {
		case key == CollectionVideos && !isNull(raw):
			if err := json.Unmarshal(raw, &m.Videos); err != nil {
				return fmt.Errorf("materials.%s: %w", key, err)
			}
			if m.Videos == nil {
				m.Videos = []*ImageMaterial{}
			}
		case key == CollectionAnimations && !isNull(raw):
			if err := json.Unmarshal(raw, &m.Animations); err != nil {
				return fmt.Errorf("materials.%s: %w", key, err)
			}
			if m.Animations == nil {
				m.Animations = []*MaterialAnimation{}
			}
		default:
			m.Extra[key] = raw
		}
	}
	return nil
}

func (m *Materials) MarshalJSON() ([]byte, error) {
	typed := make(map[string]any, 2)
	if m.Videos != nil {
		typed[CollectionVideos] = m.Videos
	}
	if m.Animations != nil {
		typed[CollectionAnimations] = m.Animations
	}
	return mergeObject(m.Extra, typed)
}

// IDs returns the id of every record in every collection, including the
// collections kept in Extra.
func (m *Materials) IDs() map[string]bool {
	ids := make(map[string]bool)
	if m == nil {
		return ids
	}
	for _, v := range m.Videos {
		if v != nil {
			ids[v.ID] = true
		}
	}
	for _, a := range m.Animations {
		if a != nil {
			ids[a.ID] = true
		}
	}
	for _, raw := range m.Extra {
		items, ok := asArray(raw)
		if !ok {
			continue
		}
		for _, item := range items {
			if fields, ok := asObject(item); ok {
				if id := asString(fields["id"]); id != "" {
					ids[id] = true
				}
			}
		}
	}
	return ids
}
