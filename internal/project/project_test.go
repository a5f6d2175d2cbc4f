package project

import (
	"archive/zip"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/draftsync/internal/config"
	"github.com/ivlev/draftsync/internal/draft"
	"github.com/ivlev/draftsync/internal/ids"
	"github.com/ivlev/draftsync/internal/manifest"
	"github.com/ivlev/draftsync/internal/system"
)

const subtitleDraft = `{
	"version": 360000,
	"materials": {"texts": [], "videos": [], "material_animations": []},
	"tracks": [{"id": "subs", "type": "text", "segments": [
		{"id": "a", "text": "one", "target_timerange": {"start": 0, "duration": 3000000}},
		{"id": "b", "text": "two", "target_timerange": {"start": 6000000, "duration": 3000000}},
		{"id": "c", "text": "three", "target_timerange": {"start": 14000000, "duration": 3000000}}
	]}]
}`

type fixture struct {
	dir      string
	draftDir string
	project  *Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	draftDir := filepath.Join(dir, "drafts", "episode")
	require.NoError(t, os.MkdirAll(draftDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(draftDir, draft.ContentFileName), []byte(subtitleDraft), 0644))

	images := filepath.Join(dir, "images")
	require.NoError(t, os.MkdirAll(images, 0755))
	writePNG(t, filepath.Join(images, "1.png"), 640, 360)
	writePNG(t, filepath.Join(images, "2.png"), 800, 600)

	cfg := config.Default()
	cfg.Drafts.Root = filepath.Join(dir, "drafts")
	cfg.Images.Dir = images

	return &fixture{
		dir:      dir,
		draftDir: draftDir,
		project: &Project{
			Config:   cfg,
			Platform: system.Platform{OS: "linux", Home: dir},
			Entropy:  ids.Seeded(11),
			Logger:   zerolog.Nop(),
		},
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))))
}

func (f *fixture) writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, "job.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func loadDraft(t *testing.T, path string) *draft.Document {
	t.Helper()
	doc, err := draft.Load(path)
	require.NoError(t, err)
	return doc
}

func TestRender_InPlaceWithBackup(t *testing.T) {
	f := newFixture(t)
	path := f.writeManifest(t, `{
		"project_name": "episode",
		"preset": "portrait",
		"assets": {"images": ["images/1.png", "images/2.png", "images/missing.png"]},
		"draft_settings": {"draft_path": "drafts/episode", "backup": {"enable": true, "location": "backups"}}
	}`)

	res, err := f.project.Render(context.Background(), RenderOptions{ManifestPath: path})
	require.NoError(t, err)
	assert.Equal(t, f.draftDir, res.DraftDir)
	assert.Equal(t, 3, res.Images)
	require.NotEmpty(t, res.Backup)

	zr, err := zip.OpenReader(res.Backup)
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, draft.ContentFileName, zr.File[0].Name)
	zr.Close()

	doc := loadDraft(t, res.Document)
	videos := doc.TracksOfType(draft.TrackVideo)
	require.Len(t, videos, 1)
	assert.Len(t, videos[0].Segments, 3)
	assert.Len(t, doc.TracksOfType(draft.TrackEffect), 1)

	require.Len(t, doc.Materials.Videos, 3)
	assert.Equal(t, 640, doc.Materials.Videos[0].Width)
	assert.Equal(t, 600, doc.Materials.Videos[1].Height)
	assert.Equal(t, 1080, doc.Materials.Videos[2].Width, "unprobed image gets the preset size")
	assert.Equal(t, 1920, doc.Materials.Videos[2].Height)
	assert.Contains(t, doc.Extra, "version")
}

func TestRender_BackupUsesWallClock(t *testing.T) {
	f := newFixture(t)
	path := f.writeManifest(t, `{
		"project_name": "episode",
		"assets": {"images": ["images/1.png"]},
		"draft_settings": {"draft_path": "drafts/episode", "backup": {"enable": true, "location": "backups"}}
	}`)

	before := time.Now().Truncate(time.Second)
	res, err := f.project.Render(context.Background(), RenderOptions{ManifestPath: path})
	require.NoError(t, err)
	after := time.Now()

	name := strings.TrimSuffix(filepath.Base(res.Backup), ".zip")
	require.True(t, strings.HasPrefix(name, "backup_"), name)
	stamp := strings.TrimPrefix(name, "backup_")[:len("20060102_150405")]
	at, err := time.ParseInLocation("20060102_150405", stamp, time.Local)
	require.NoError(t, err)
	assert.False(t, at.Before(before), "backup named %s, want >= %s", name, before)
	assert.False(t, at.After(after), "backup named %s, want <= %s", name, after)
	assert.NotEqual(t, f.project.Entropy.Now().Format("20060102_150405"), stamp)
}

func TestRender_OutputDir(t *testing.T) {
	f := newFixture(t)
	path := f.writeManifest(t, `{"project_name": "p", "assets": {"images": ["images"]}}`)
	out := filepath.Join(f.dir, "out")

	res, err := f.project.Render(context.Background(), RenderOptions{ManifestPath: path, OutputDir: out})
	require.NoError(t, err)
	assert.Equal(t, out, res.DraftDir)
	assert.Equal(t, filepath.Join(out, draft.ContentFileName), res.Document)
	assert.Empty(t, res.Backup)

	original := loadDraft(t, filepath.Join(f.draftDir, draft.ContentFileName))
	assert.Len(t, original.Tracks, 1, "source draft untouched")
	assert.Len(t, loadDraft(t, res.Document).Tracks, 3)
}

func TestRender_DryRun(t *testing.T) {
	f := newFixture(t)
	path := f.writeManifest(t, `{"project_name": "p", "assets": {"images": ["images"]},
		"draft_settings": {"backup": {"enable": true, "location": "backups"}}}`)
	planPath := filepath.Join(f.dir, "plan.yaml")

	res, err := f.project.Render(context.Background(), RenderOptions{ManifestPath: path, DryRunPath: planPath})
	require.NoError(t, err)
	require.NotNil(t, res.Plan)
	assert.Len(t, res.Plan.Segments, 3)
	assert.FileExists(t, planPath)
	assert.NoDirExists(t, filepath.Join(f.dir, "backups"))
	assert.Len(t, loadDraft(t, filepath.Join(f.draftDir, draft.ContentFileName)).Tracks, 1)
}

func TestRender_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.project.Render(context.Background(), RenderOptions{
		ManifestPath: f.writeManifest(t, `{"project_name": "p", "assets": {"images": []}}`),
		Preset:       "vhs",
	})
	assert.ErrorIs(t, err, config.ErrUnknownPreset)

	_, err = f.project.Render(context.Background(), RenderOptions{
		ManifestPath: f.writeManifest(t, `{"assets": {}}`),
	})
	assert.ErrorIs(t, err, manifest.ErrInvalid)

	f.project.Config.Drafts.Root = filepath.Join(f.dir, "nowhere")
	_, err = f.project.Render(context.Background(), RenderOptions{
		ManifestPath: f.writeManifest(t, `{"project_name": "p", "assets": {"bgm": "x.mp3"}}`),
	})
	assert.ErrorIs(t, err, draft.ErrMissingDocument)
}

func TestRender_MalformedDraft(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.draftDir, draft.ContentFileName), []byte(`{"tracks": `), 0644))

	_, err := f.project.Render(context.Background(), RenderOptions{
		ManifestPath: f.writeManifest(t, `{"project_name": "p", "assets": {"images": ["images"]}}`),
	})
	assert.ErrorIs(t, err, draft.ErrMalformed)
}

func TestAuto(t *testing.T) {
	f := newFixture(t)

	res, err := f.project.Auto(context.Background(), AutoOptions{})
	require.NoError(t, err)
	assert.Equal(t, f.draftDir, res.DraftDir)
	assert.Equal(t, 2, res.Images)

	doc := loadDraft(t, res.Document)
	assert.Len(t, doc.Materials.Videos, 2)
	assert.Len(t, doc.TracksOfType(draft.TrackVideo)[0].Segments, 3)
}

func TestAuto_NoImagesUsesPlaceholder(t *testing.T) {
	f := newFixture(t)

	res, err := f.project.Auto(context.Background(), AutoOptions{ImagesDir: filepath.Join(f.dir, "none")})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Images)

	doc := loadDraft(t, res.Document)
	require.Len(t, doc.Materials.Videos, 1)
	assert.Equal(t, "placeholder", doc.Materials.Videos[0].MaterialName)
}

func TestAuto_NoDrafts(t *testing.T) {
	f := newFixture(t)
	_, err := f.project.Auto(context.Background(), AutoOptions{Root: t.TempDir()})
	assert.ErrorIs(t, err, draft.ErrMissingDocument)
}
