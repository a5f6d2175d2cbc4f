package draft

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDraft = `{
  "canvas_config": {"height": 1080, "ratio": "original", "width": 1920},
  "duration": 20000000,
  "fps": 30.0,
  "materials": {
    "texts": [{"id": "txt-1", "content": "<b>hello</b>"}],
    "videos": [{"id": "vid-1", "path": "/a.mp4", "type": "video", "width": 1280.0, "height": 720}],
    "material_animations": []
  },
  "tracks": [
    {"id": "t-text", "type": "text", "segments": [
      {"id": "s1", "material_id": "txt-1", "text": "hi", "target_timerange": {"start": 7000000.0, "duration": 1000000}},
      {"id": "s2", "attrs": {"is_text": 1}, "source_timerange": {"start": 3000000, "duration": 1}},
      {"id": "s3", "target_timerange": {"duration": 5}}
    ]},
    {"id": "t-audio", "track_type": "audio", "segments": [], "volume": 0.5}
  ]
}`

func TestParse_TypedFields(t *testing.T) {
	doc, err := Parse([]byte(sampleDraft))
	require.NoError(t, err)

	require.Len(t, doc.Tracks, 2)
	text := doc.Tracks[0]
	assert.Equal(t, "text", text.Type)
	require.Len(t, text.Segments, 3)

	s1, s2, s3 := text.Segments[0], text.Segments[1], text.Segments[2]
	assert.True(t, s1.IsText())
	start, ok := s1.Start()
	assert.True(t, ok)
	assert.Equal(t, int64(7_000_000), start)

	assert.True(t, s2.IsText())
	start, ok = s2.Start()
	assert.True(t, ok)
	assert.Equal(t, int64(3_000_000), start)

	assert.False(t, s3.IsText())
	_, ok = s3.Start()
	assert.False(t, ok)

	assert.Equal(t, "audio", doc.Tracks[1].Type)

	require.NotNil(t, doc.Materials)
	require.Len(t, doc.Materials.Videos, 1)
	assert.Equal(t, "vid-1", doc.Materials.Videos[0].ID)
	assert.Equal(t, 1280, doc.Materials.Videos[0].Width)
	assert.NotNil(t, doc.Materials.Animations)
	assert.Contains(t, doc.Materials.Extra, "texts")
	assert.Contains(t, doc.Extra, "canvas_config")
}

func TestMarshal_PassesThroughUnknownContent(t *testing.T) {
	doc, err := Parse([]byte(sampleDraft))
	require.NoError(t, err)

	out, err := doc.Marshal()
	require.NoError(t, err)

	var before, after map[string]any
	require.NoError(t, json.Unmarshal([]byte(sampleDraft), &before))
	require.NoError(t, json.Unmarshal(out, &after))
	assert.Equal(t, before, after)

	assert.Contains(t, string(out), "<b>hello</b>")
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{"tracks": [`},
		{"not an object", `[1, 2]`},
		{"tracks not array", `{"tracks": {"a": 1}}`},
		{"segment not object", `{"tracks": [{"segments": [3]}]}`},
		{"videos not array", `{"materials": {"videos": "x"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestEnsureCollections_KeepsExisting(t *testing.T) {
	doc, err := Parse([]byte(`{"materials": {"texts": [{"id": "x"}]}}`))
	require.NoError(t, err)

	doc.EnsureCollections()
	assert.NotNil(t, doc.Tracks)
	assert.NotNil(t, doc.Materials.Videos)
	assert.NotNil(t, doc.Materials.Animations)
	assert.Contains(t, doc.Materials.Extra, "texts")

	out, err := doc.Marshal()
	require.NoError(t, err)
	var top map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &top))
	assert.JSONEq(t, `[]`, string(top["tracks"]))
	var materials map[string]any
	require.NoError(t, json.Unmarshal(top["materials"], &materials))
	assert.Equal(t, []any{}, materials["videos"])
	assert.Equal(t, []any{}, materials["material_animations"])
}

func TestMaterialIDs_IncludesExtraCollections(t *testing.T) {
	doc, err := Parse([]byte(sampleDraft))
	require.NoError(t, err)

	ids := doc.Materials.IDs()
	assert.True(t, ids["vid-1"])
	assert.True(t, ids["txt-1"])
	assert.False(t, ids["missing"])
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ContentFileName))
	assert.ErrorIs(t, err, ErrMissingDocument)
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ContentFileName)
	require.NoError(t, os.WriteFile(path, []byte(sampleDraft), 0600))

	doc, err := Load(path)
	require.NoError(t, err)
	doc.Tracks = append(doc.Tracks, &Track{ID: "new", Type: TrackEffect})
	require.NoError(t, Save(path, doc))

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, reloaded.Tracks, 3)
	assert.Equal(t, TrackEffect, reloaded.Tracks[2].Type)
	assert.Empty(t, reloaded.Tracks[2].Segments)

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), fi.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestTrackEnd(t *testing.T) {
	track := &Track{Segments: []*Segment{
		{TargetTimerange: &Timerange{Start: 0, Duration: 5}},
		{TargetTimerange: &Timerange{Start: 5, Duration: 7}},
		{},
	}}
	assert.Equal(t, int64(12), track.End())
}

func TestParse_DecodesKeyframes(t *testing.T) {
	doc, err := Parse([]byte(`{"tracks": [{"type": "video", "segments": [{
		"id": "s", "common_keyframes": [
			{"id": "k", "property_type": "KFTypePositionX", "keyframe_list": [
				{"time_offset": 0, "values": [-0.21]},
				{"time_offset": 5000000.0, "values": [0.21, "x"]}
			]},
			"junk"
		]}]}]}`))
	require.NoError(t, err)

	kfs := doc.Tracks[0].Segments[0].CommonKeyframes
	require.Len(t, kfs, 1)
	assert.Equal(t, PropertyPositionX, kfs[0].PropertyType)
	assert.Equal(t, []KeyframePoint{
		{TimeOffset: 0, Values: []float64{-0.21}},
		{TimeOffset: 5_000_000, Values: []float64{0.21}},
	}, kfs[0].KeyframeList)
}
