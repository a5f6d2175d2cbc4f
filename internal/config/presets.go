package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownPreset is returned for a preset name that is not defined.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named output format.
type Preset struct {
	Resolution    string `yaml:"resolution"` // WIDTHxHEIGHT
	FPS           int    `yaml:"fps"`
	TitleFontSize int    `yaml:"title_font_size"`
	Transition    string `yaml:"transition"`
}

// Size parses Resolution.
func (p Preset) Size() (width, height int, err error) {
	w, h, ok := strings.Cut(strings.ToLower(p.Resolution), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid resolution %q", p.Resolution)
	}
	width, err = strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid resolution %q: %w", p.Resolution, err)
	}
	height, err = strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid resolution %q: %w", p.Resolution, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("invalid resolution %q", p.Resolution)
	}
	return width, height, nil
}

// Presets are the built-in formats.
var Presets = map[string]Preset{
	"横屏专业": {Resolution: "1920x1080", FPS: 30, TitleFontSize: 36, Transition: "crossfade"},
	"竖屏快剪": {Resolution: "1080x1920", FPS: 60, TitleFontSize: 42, Transition: "slide"},
	"电影质感": {Resolution: "2048x858", FPS: 24, TitleFontSize: 28, Transition: "film"},
}

// presetAliases are ASCII names for the built-in presets.
var presetAliases = map[string]string{
	"landscape": "横屏专业",
	"portrait":  "竖屏快剪",
	"cinema":    "电影质感",
}

// ResolvePreset looks name up in the presets of c, then in the built-ins,
// then in the aliases.
func (c *Config) ResolvePreset(name string) (Preset, error) {
	name = strings.TrimSpace(name)
	if p, ok := c.Presets[name]; ok {
		return p, nil
	}
	if p, ok := Presets[name]; ok {
		return p, nil
	}
	if canonical, ok := presetAliases[strings.ToLower(name)]; ok {
		return Presets[canonical], nil
	}
	return Preset{}, fmt.Errorf("%w: %s (available: %s)", ErrUnknownPreset, name, strings.Join(c.PresetNames(), ", "))
}

// PresetNames lists every resolvable preset name, sorted.
func (c *Config) PresetNames() []string {
	seen := make(map[string]bool)
	for name := range Presets {
		seen[name] = true
	}
	for name := range presetAliases {
		seen[name] = true
	}
	for name := range c.Presets {
		seen[name] = true
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
