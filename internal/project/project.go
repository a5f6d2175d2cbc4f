package project

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ivlev/draftsync/internal/config"
	"github.com/ivlev/draftsync/internal/draft"
	"github.com/ivlev/draftsync/internal/effects"
	"github.com/ivlev/draftsync/internal/engine"
	"github.com/ivlev/draftsync/internal/ids"
	"github.com/ivlev/draftsync/internal/manifest"
	"github.com/ivlev/draftsync/internal/source"
	"github.com/ivlev/draftsync/internal/system"
)

// Project runs render jobs against drafts on this machine.
type Project struct {
	Config   *config.Config
	Platform system.Platform
	Entropy  ids.Entropy
	Logger   zerolog.Logger
}

func New(cfg *config.Config, logger zerolog.Logger) *Project {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Project{
		Config:   cfg,
		Platform: system.CurrentPlatform(),
		Entropy:  ids.Default(),
		Logger:   logger,
	}
}

// RenderOptions are the per-run inputs of Render.
type RenderOptions struct {
	ManifestPath string
	Preset       string // overrides the manifest preset
	OutputDir    string // write DIR/draft_content.json instead of editing in place
	DryRunPath   string // write the plan here and leave the draft alone
}

// AutoOptions are the per-run inputs of Auto.
type AutoOptions struct {
	ImagesDir string
	Root      string
}

// Result describes a finished run.
type Result struct {
	DraftDir string
	Document string
	Backup   string
	Images   int
	Plan     *engine.Plan
}

// Render applies a manifest: it finds the draft, backs it up when asked,
// lays the manifest images out against the subtitles and saves the result.
func (p *Project) Render(ctx context.Context, opts RenderOptions) (*Result, error) {
	m, err := manifest.Load(opts.ManifestPath)
	if err != nil {
		return nil, err
	}
	log := p.Logger.With().Str("project", m.Name()).Logger()

	presetName := m.Preset
	if opts.Preset != "" {
		presetName = opts.Preset
	}
	size := engine.DefaultSize
	if presetName != "" {
		preset, err := p.Config.ResolvePreset(presetName)
		if err != nil {
			return nil, err
		}
		w, h, err := preset.Size()
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", presetName, err)
		}
		size = engine.Size{Width: w, Height: h}
		log.Debug().Str("preset", presetName).Str("resolution", preset.Resolution).Msg("preset selected")
	}

	contentPath, err := system.FindDraftContent(m.DraftPath(), p.draftRoot(""))
	if err != nil {
		return nil, err
	}
	draftDir := filepath.Dir(contentPath)
	log.Info().Str("draft", contentPath).Msg("draft found")

	images, err := m.Images()
	if err != nil {
		return nil, err
	}
	if n := len(m.Audio()) + len(m.Fonts()); n > 0 || m.BGM() != "" {
		log.Debug().Int("audio_and_fonts", n).Str("bgm", m.BGM()).Msg("only images are placed on the timeline")
	}

	doc, err := draft.Load(contentPath)
	if err != nil {
		return nil, err
	}
	syncer, err := p.synchronizer(ctx, images, size)
	if err != nil {
		return nil, err
	}
	result := &Result{DraftDir: draftDir, Images: len(images)}

	if opts.DryRunPath != "" {
		plan, err := syncer.Plan(doc, images)
		if err != nil {
			return nil, err
		}
		if err := engine.WritePlan(plan, opts.DryRunPath); err != nil {
			return nil, err
		}
		result.Plan = plan
		result.Document = opts.DryRunPath
		log.Info().Str("plan", opts.DryRunPath).Int("segments", len(plan.Segments)).Msg("dry run written")
		return result, nil
	}

	if location := m.BackupLocation(); location != "" {
		// Archives are named from the wall clock even when Entropy is seeded.
		archive, err := system.BackupDraft(draftDir, location, time.Now(), log)
		if err != nil {
			return nil, fmt.Errorf("backup draft: %w", err)
		}
		result.Backup = archive
	}

	if _, err := syncer.Synchronize(doc, images); err != nil {
		return nil, err
	}

	target := contentPath
	if opts.OutputDir != "" {
		target = filepath.Join(opts.OutputDir, draft.ContentFileName)
		result.DraftDir = opts.OutputDir
	}
	if err := draft.Save(target, doc); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	result.Document = target
	return result, nil
}

// Auto synchronizes the most recently edited draft with the images of a
// folder, in place.
func (p *Project) Auto(ctx context.Context, opts AutoOptions) (*Result, error) {
	draftDir, err := system.FindLatestDraftFolder(p.draftRoot(opts.Root))
	if err != nil {
		return nil, err
	}
	contentPath := filepath.Join(draftDir, draft.ContentFileName)

	imagesDir := opts.ImagesDir
	if imagesDir == "" {
		imagesDir = p.Config.Images.Dir
	}
	if imagesDir == "" {
		imagesDir = system.DefaultImagesDir(p.Platform)
	}
	imagesDir = system.ExpandHome(imagesDir, p.Platform)

	var images []string
	if src, err := source.NewImageSource(imagesDir); err != nil {
		p.Logger.Warn().Err(err).Str("dir", imagesDir).Msg("image folder unavailable")
	} else {
		images = src.Paths()
	}

	doc, err := draft.Load(contentPath)
	if err != nil {
		return nil, err
	}
	syncer, err := p.synchronizer(ctx, images, engine.DefaultSize)
	if err != nil {
		return nil, err
	}
	if _, err := syncer.Synchronize(doc, images); err != nil {
		return nil, err
	}
	if err := draft.Save(contentPath, doc); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return &Result{DraftDir: draftDir, Document: contentPath, Images: len(images)}, nil
}

func (p *Project) synchronizer(ctx context.Context, images []string, size engine.Size) (*engine.Synchronizer, error) {
	direction, err := effects.ParseDirection(p.Config.Sync.Direction)
	if err != nil {
		return nil, err
	}

	probed, err := source.NewProber(p.Config.Images.ProbeWorkers, p.Logger).Probe(ctx, images)
	if err != nil {
		return nil, err
	}
	sizes := make(map[string]engine.Size, len(probed))
	for path, d := range probed {
		sizes[path] = engine.Size{Width: d.Width, Height: d.Height}
	}

	s := engine.NewSynchronizer(
		engine.WithMinDuration(p.Config.MinDurationMicros()),
		engine.WithDirection(direction),
		engine.WithEntropy(p.Entropy),
		engine.WithImageSizes(sizes),
		engine.WithDefaultSize(size),
		engine.WithLogger(p.Logger),
	)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// draftRoot picks the folder drafts are searched in.
func (p *Project) draftRoot(override string) string {
	root := override
	if root == "" {
		root = p.Config.Drafts.Root
	}
	if root == "" {
		return system.DefaultDraftRoot(p.Platform)
	}
	return system.ExpandHome(root, p.Platform)
}
