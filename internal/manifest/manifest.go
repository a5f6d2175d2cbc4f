package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json5 "github.com/yosuke-furukawa/json5/encoding/json5"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/draftsync/internal/source"
)

var (
	// ErrMalformed is returned when a manifest cannot be parsed.
	ErrMalformed = errors.New("malformed manifest")
	// ErrInvalid is returned when a manifest fails schema validation.
	ErrInvalid = errors.New("invalid manifest")
)

// DefaultProjectName is used when a manifest names no project.
const DefaultProjectName = "untitled"

// Manifest is a render job description. Paths are kept as written; use the
// accessor methods to get them resolved against the manifest folder.
type Manifest struct {
	ProjectName string        `json:"project_name"`
	Project     *Project      `json:"project,omitempty"`
	Preset      string        `json:"preset,omitempty"`
	Assets      Assets        `json:"assets"`
	Draft       DraftSettings `json:"draft_settings"`

	// BaseDir is the folder relative paths resolve against.
	BaseDir string `json:"-"`
}

// Project is the legacy way of naming the project.
type Project struct {
	Name string `json:"name"`
}

type Assets struct {
	Images []string `json:"images"`
	Audio  []string `json:"audio"`
	Fonts  []string `json:"fonts"`
	BGM    *string  `json:"bgm"`
}

type DraftSettings struct {
	DraftPath *string      `json:"draft_path"`
	Backup    BackupConfig `json:"backup"`
}

type BackupConfig struct {
	Enable   bool    `json:"enable"`
	Location *string `json:"location"`
}

// Load reads, validates and decodes the manifest at path. Files ending in
// .yaml or .yml are YAML; anything else is JSON, with JSON5 extensions
// accepted.
func Load(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	raw, err := parseRaw(data, abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, filepath.Base(abs), err)
	}
	if problems := Validate(raw); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}

	m, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	m.BaseDir = filepath.Dir(abs)
	return m, nil
}

// Parse decodes manifest bytes without validating them. format is a file
// name or extension used to pick the syntax.
func Parse(data []byte, format string) (map[string]any, error) {
	raw, err := parseRaw(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return raw, nil
}

func parseRaw(data []byte, pathHint string) (map[string]any, error) {
	switch strings.ToLower(filepath.Ext(pathHint)) {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		var raw map[string]any
		if err := decoder.Decode(&raw); err != nil {
			return nil, err
		}
		if err := decoder.Decode(&struct{}{}); err != io.EOF {
			return nil, fmt.Errorf("expected a single document")
		}
		if raw == nil {
			raw = map[string]any{}
		}
		return raw, nil
	default:
		var raw map[string]any
		if err := json5.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, fmt.Errorf("manifest must be an object")
		}
		return raw, nil
	}
}

func decode(raw map[string]any) (*Manifest, error) {
	payload, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Name returns project_name, falling back to project.name.
func (m *Manifest) Name() string {
	if m.ProjectName != "" {
		return m.ProjectName
	}
	if m.Project != nil && m.Project.Name != "" {
		return m.Project.Name
	}
	return DefaultProjectName
}

// ResolvePath makes path absolute relative to BaseDir. Empty stays empty.
func (m *Manifest) ResolvePath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.BaseDir, path)
}

func (m *Manifest) resolveAll(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if r := m.ResolvePath(p); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// Images returns the resolved image files in manifest order. An entry
// naming a folder expands to the images inside it.
func (m *Manifest) Images() ([]string, error) {
	var out []string
	for _, p := range m.resolveAll(m.Assets.Images) {
		fi, err := os.Stat(p)
		if err != nil || !fi.IsDir() {
			out = append(out, p)
			continue
		}
		src, err := source.NewImageSource(p)
		if err != nil {
			return nil, fmt.Errorf("image folder %s: %w", p, err)
		}
		out = append(out, src.Paths()...)
	}
	return out, nil
}

func (m *Manifest) Audio() []string {
	return m.resolveAll(m.Assets.Audio)
}

func (m *Manifest) Fonts() []string {
	return m.resolveAll(m.Assets.Fonts)
}

// BGM returns the resolved background music path, or "".
func (m *Manifest) BGM() string {
	if m.Assets.BGM == nil {
		return ""
	}
	return m.ResolvePath(*m.Assets.BGM)
}

// DraftPath returns the resolved draft location, or "" to use the default.
func (m *Manifest) DraftPath() string {
	if m.Draft.DraftPath == nil {
		return ""
	}
	return m.ResolvePath(*m.Draft.DraftPath)
}

// BackupLocation returns where to back up the draft, or "" when backups are
// off or no location is set.
func (m *Manifest) BackupLocation() string {
	if !m.Draft.Backup.Enable || m.Draft.Backup.Location == nil {
		return ""
	}
	return m.ResolvePath(*m.Draft.Backup.Location)
}
