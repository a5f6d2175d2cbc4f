package engine

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ivlev/draftsync/internal/draft"
	"github.com/ivlev/draftsync/internal/effects"
	"github.com/ivlev/draftsync/internal/ids"
	"github.com/ivlev/draftsync/internal/timeline"
)

// ErrNilDocument is returned when there is no document to synchronize.
var ErrNilDocument = errors.New("nil draft document")

// ErrIncompleteEntropy is returned when an id, random or clock source is missing.
var ErrIncompleteEntropy = errors.New("incomplete entropy source")

// Synchronizer lays out images on a new video track aligned to the
// document's subtitle anchors.
type Synchronizer struct {
	MinDuration int64
	Direction   effects.Direction
	Entropy     ids.Entropy
	Sizes       map[string]Size
	DefaultSize Size
	Logger      zerolog.Logger
}

type Option func(*Synchronizer)

func WithMinDuration(d int64) Option {
	return func(s *Synchronizer) { s.MinDuration = d }
}

func WithDirection(d effects.Direction) Option {
	return func(s *Synchronizer) { s.Direction = d }
}

func WithEntropy(e ids.Entropy) Option {
	return func(s *Synchronizer) { s.Entropy = e }
}

// WithImageSizes records probed dimensions keyed by image path.
func WithImageSizes(sizes map[string]Size) Option {
	return func(s *Synchronizer) { s.Sizes = sizes }
}

// WithDefaultSize sets the size of images missing from the probed sizes.
func WithDefaultSize(size Size) Option {
	return func(s *Synchronizer) { s.DefaultSize = size }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Synchronizer) { s.Logger = l }
}

func NewSynchronizer(opts ...Option) *Synchronizer {
	s := &Synchronizer{
		MinDuration: timeline.DefaultMinDuration,
		Direction:   effects.Random,
		Entropy:     ids.Default(),
		DefaultSize: DefaultSize,
		Logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synchronize is a one-shot Synchronizer run with default collaborators.
func Synchronize(doc *draft.Document, imagePaths []string, minDuration int64) (*draft.Document, error) {
	return NewSynchronizer(WithMinDuration(minDuration)).Synchronize(doc, imagePaths)
}

// Synchronize mutates doc in place and returns it. It registers one
// material per image (or a placeholder when there are none), builds one
// segment per allocated window cycling through the materials, appends the
// new video track and makes sure an effect track exists.
//
// Windows are computed before anything is written, so an invalid minimum
// duration leaves doc untouched.
func (s *Synchronizer) Synchronize(doc *draft.Document, imagePaths []string) (*draft.Document, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	windows, err := timeline.Allocate(timeline.ExtractAnchors(doc), s.MinDuration)
	if err != nil {
		return nil, err
	}

	registry := NewMaterialRegistry(doc, s.Entropy.IDs, s.Sizes, s.DefaultSize)
	var materialIDs []string
	for _, path := range imagePaths {
		materialIDs = append(materialIDs, registry.RegisterImage(path))
	}
	if len(materialIDs) == 0 {
		materialIDs = append(materialIDs, registry.RegisterPlaceholder())
		s.Logger.Warn().Msg("no images given, using a placeholder material")
	}

	builder := &SegmentBuilder{
		IDs:        s.Entropy.IDs,
		Motion:     effects.NewMotionGenerator(s.Entropy),
		Animations: effects.NewAnimationCatalog(s.Entropy),
		Registry:   registry,
		Direction:  s.Direction,
	}
	segments := make([]*draft.Segment, 0, len(windows))
	for i, w := range windows {
		segments = append(segments, builder.Build(materialIDs[i%len(materialIDs)], w, i))
	}

	assembler := &TrackAssembler{IDs: s.Entropy.IDs}
	track := assembler.BuildImageTrack(segments)
	doc.Tracks = append(doc.Tracks, track)
	if assembler.EnsureEffectTrack(doc) {
		s.Logger.Debug().Msg("added effect track")
	}

	s.Logger.Info().
		Int("images", len(imagePaths)).
		Int("segments", len(segments)).
		Int64("duration_us", timeline.TotalDuration(windows)).
		Str("track", track.ID).
		Msg("images synchronized")
	return doc, nil
}

// Validate checks the options that would make Synchronize fail.
func (s *Synchronizer) Validate() error {
	if s.MinDuration <= 0 {
		return fmt.Errorf("%w: %d", timeline.ErrInvalidDuration, s.MinDuration)
	}
	if s.Entropy.IDs == nil || s.Entropy.Rand == nil || s.Entropy.Now == nil {
		return ErrIncompleteEntropy
	}
	return nil
}
