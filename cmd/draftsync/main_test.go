package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/draftsync/internal/draft"
	"github.com/ivlev/draftsync/internal/manifest"
)

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

func writeDraftDir(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, draft.ContentFileName), []byte(content), 0644))
}

func TestVersionCmd_Executes(t *testing.T) {
	original := version
	version = "test-1.2.3"
	defer func() { version = original }()

	out, err := run(t, "version")
	assert.NoError(t, err)
	assert.Contains(t, out, "draftsync version test-1.2.3")
}

func TestValidateCmd(t *testing.T) {
	dir := t.TempDir()
	writeDraftDir(t, dir, `{"tracks": [{"type": "video", "segments": []}]}`)

	out, err := run(t, "validate", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "validation warnings:")
	assert.Contains(t, out, "- too few tracks")

	writeDraftDir(t, dir, `{"tracks": [{"type": "video", "segments": []}, {"type": "audio", "segments": []}]}`)
	out, err = run(t, "validate", filepath.Join(dir, draft.ContentFileName))
	require.NoError(t, err)
	assert.Contains(t, out, "validation passed")

	_, err = run(t, "validate")
	assert.Error(t, err)
}

func TestValidateCmd_Manifest(t *testing.T) {
	defer func() { validateManifest = false }()
	dir := t.TempDir()

	good := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(good, []byte("project_name: x\nassets: {images: [a.png]}\n"), 0644))
	out, err := run(t, "validate", "--manifest", good)
	require.NoError(t, err)
	assert.Contains(t, out, "validation passed")

	bad := filepath.Join(dir, "job.json5")
	require.NoError(t, os.WriteFile(bad, []byte("{assets: {images: []}}"), 0644))
	out, err = run(t, "validate", "--manifest", bad)
	require.NoError(t, err)
	assert.Contains(t, out, "validation warnings:")

	broken := filepath.Join(dir, "job.json")
	require.NoError(t, os.WriteFile(broken, []byte("[1, 2"), 0644))
	out, err = run(t, "validate", "--manifest", broken)
	require.NoError(t, err)
	assert.Contains(t, out, "malformed")
}

func TestRenderCmd(t *testing.T) {
	dir := t.TempDir()
	draftDir := filepath.Join(dir, "draft")
	writeDraftDir(t, draftDir, `{"tracks": [{"type": "text", "segments": [
		{"text": "a", "target_timerange": {"start": 0, "duration": 1}},
		{"text": "b", "target_timerange": {"start": 9000000, "duration": 1}}]}]}`)
	job := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(job, []byte(`
project_name: cli
assets:
  images: [a.png]
draft_settings:
  draft_path: draft
`), 0644))

	plan := filepath.Join(dir, "plan.yaml")
	out, err := run(t, "render", "--manifest", job, "--dry-run", plan, "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "plan written: "+plan+" (2 segments)")
	assert.Contains(t, out, "    0           0us  +9000000us  "+filepath.Join(dir, "a.png"))
	assert.Contains(t, out, "    1     9000000us  +")
	renderDryRun = ""

	out, err = run(t, "render", "--manifest", job, "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "updated draft: "+draftDir)

	doc, err := draft.Load(filepath.Join(draftDir, draft.ContentFileName))
	require.NoError(t, err)
	assert.Len(t, doc.TracksOfType(draft.TrackVideo), 1)
}

func TestRenderCmd_Errors(t *testing.T) {
	renderManifest = ""
	_, err := run(t, "render")
	assert.Error(t, err, "manifest flag is required")

	job := filepath.Join(t.TempDir(), "job.json")
	require.NoError(t, os.WriteFile(job, []byte(`{"assets": {"images": []}}`), 0644))
	_, err = run(t, "render", "--manifest", job)
	assert.ErrorIs(t, err, manifest.ErrInvalid)
}
