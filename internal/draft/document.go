package draft

import (
	"encoding/json"
	"fmt"
)

// Document is the whole project state of one draft.
//
// Only tracks and materials are modelled; every other top-level key is kept
// in Extra and written back unchanged.
type Document struct {
	Tracks    []*Track
	Materials *Materials
	Extra     map[string]json.RawMessage
}

// Parse decodes a draft document.
func Parse(data []byte) (*Document, error) {
	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return doc, nil
}

func (d *Document) UnmarshalJSON(b []byte) error {
	fields, ok := asObject(b)
	if !ok {
		return fmt.Errorf("document is not an object")
	}
	*d = Document{Extra: make(map[string]json.RawMessage)}
	for key, raw := range fields {
		switch {
		case key == "tracks" && !isNull(raw):
			if err := json.Unmarshal(raw, &d.Tracks); err != nil {
				return fmt.Errorf("tracks: %w", err)
			}
			if d.Tracks == nil {
				d.Tracks = []*Track{}
			}
		case key == "materials" && !isNull(raw):
			d.Materials = &Materials{}
			if err := json.Unmarshal(raw, d.Materials); err != nil {
				return fmt.Errorf("materials: %w", err)
			}
		default:
			d.Extra[key] = raw
		}
	}
	return nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	typed := make(map[string]any, 2)
	if d.Tracks != nil {
		typed["tracks"] = d.Tracks
	}
	if d.Materials != nil {
		typed["materials"] = d.Materials
	}
	return mergeObject(d.Extra, typed)
}

// Marshal encodes the document without HTML escaping.
func (d *Document) Marshal() ([]byte, error) {
	return encode(d)
}

// EnsureCollections creates the tracks list and the videos and
// material_animations collections when they are missing.
func (d *Document) EnsureCollections() {
	if d.Tracks == nil {
		d.Tracks = []*Track{}
	}
	if d.Materials == nil {
		d.Materials = &Materials{}
	}
	if d.Materials.Extra == nil {
		d.Materials.Extra = make(map[string]json.RawMessage)
	}
	if d.Materials.Videos == nil {
		d.Materials.Videos = []*ImageMaterial{}
	}
	if d.Materials.Animations == nil {
		d.Materials.Animations = []*MaterialAnimation{}
	}
}

// TracksOfType returns the tracks whose type matches one of types.
func (d *Document) TracksOfType(types ...string) []*Track {
	var out []*Track
	for _, t := range d.Tracks {
		if t == nil {
			continue
		}
		for _, typ := range types {
			if t.Type == typ {
				out = append(out, t)
				break
			}
		}
	}
	return out
}
