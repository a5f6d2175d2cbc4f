package engine

import (
	"path/filepath"

	"github.com/ivlev/draftsync/internal/draft"
	"github.com/ivlev/draftsync/internal/ids"
)

// Size is the pixel size recorded on an image material.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DefaultSize is the nominal size of images that were not probed.
var DefaultSize = Size{Width: 1920, Height: 1080}

// PlaceholderName is the material name of the stand-in used when a run has
// no images.
const PlaceholderName = "placeholder"

// MaterialRegistry appends material records to a document. It never
// removes or deduplicates existing records.
type MaterialRegistry struct {
	materials   *draft.Materials
	ids         ids.Generator
	sizes       map[string]Size
	defaultSize Size
}

// NewMaterialRegistry makes sure doc has the videos and material_animations
// collections and returns a registry writing into them. sizes maps image
// paths to probed dimensions; paths missing from it get defaultSize.
func NewMaterialRegistry(doc *draft.Document, gen ids.Generator, sizes map[string]Size, defaultSize Size) *MaterialRegistry {
	doc.EnsureCollections()
	if defaultSize.Width <= 0 || defaultSize.Height <= 0 {
		defaultSize = DefaultSize
	}
	return &MaterialRegistry{
		materials:   doc.Materials,
		ids:         gen,
		sizes:       sizes,
		defaultSize: defaultSize,
	}
}

// RegisterImage appends a photo material for path and returns its id.
func (r *MaterialRegistry) RegisterImage(path string) string {
	size, ok := r.sizes[path]
	if !ok {
		size = r.defaultSize
	}
	m := newImageMaterial(r.ids.NewID(), path, filepath.Base(path), size)
	r.materials.Videos = append(r.materials.Videos, m)
	return m.ID
}

// RegisterPlaceholder appends a photo material with no file behind it.
func (r *MaterialRegistry) RegisterPlaceholder() string {
	m := newImageMaterial(r.ids.NewID(), "", PlaceholderName, r.defaultSize)
	r.materials.Videos = append(r.materials.Videos, m)
	return m.ID
}

func (r *MaterialRegistry) RegisterAnimation(a *draft.MaterialAnimation) {
	r.materials.Animations = append(r.materials.Animations, a)
}

func newImageMaterial(id, path, name string, size Size) *draft.ImageMaterial {
	return &draft.ImageMaterial{
		AigcType:     "none",
		Crop:         draft.FullCrop(),
		CropRatio:    "free",
		CropScale:    1,
		Height:       size.Height,
		ID:           id,
		MaterialName: name,
		Matting: draft.Matting{
			InteractiveTime: []any{},
			Strokes:         []any{},
		},
		Path:        path,
		PictureFrom: "none",
		Type:        "photo",
		VideoAlgorithm: draft.VideoAlgorithm{
			Algorithms:      []any{},
			GameplayConfigs: []any{},
		},
		Width: size.Width,
	}
}
