package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/draftsync/internal/draft"
	"github.com/ivlev/draftsync/internal/timeline"
)

// Plan describes what Synchronize would add to a document.
type Plan struct {
	Version       string     `yaml:"version"`
	MinDuration   int64      `yaml:"min_duration"`
	Anchors       int        `yaml:"anchors"`
	TotalDuration int64      `yaml:"total_duration"`
	Placeholder   bool       `yaml:"placeholder,omitempty"`
	Segments      []PlanItem `yaml:"segments"`
}

// PlanItem is one planned image segment.
type PlanItem struct {
	Index  int             `yaml:"index"`
	Image  string          `yaml:"image"`
	Window timeline.Window `yaml:"window"`
}

// Plan computes the windows and image assignment without touching doc.
func (s *Synchronizer) Plan(doc *draft.Document, imagePaths []string) (*Plan, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	anchors := timeline.ExtractAnchors(doc)
	windows, err := timeline.Allocate(anchors, s.MinDuration)
	if err != nil {
		return nil, err
	}

	images := imagePaths
	placeholder := len(images) == 0
	if placeholder {
		images = []string{PlaceholderName}
	}

	plan := &Plan{
		Version:       "1.0",
		MinDuration:   s.MinDuration,
		Anchors:       len(anchors),
		TotalDuration: timeline.TotalDuration(windows),
		Placeholder:   placeholder,
		Segments:      make([]PlanItem, 0, len(windows)),
	}
	for i, w := range windows {
		plan.Segments = append(plan.Segments, PlanItem{
			Index:  i,
			Image:  images[i%len(images)],
			Window: w,
		})
	}
	return plan, nil
}

// WritePlan writes plan to path as YAML, creating parent directories.
func WritePlan(plan *Plan, path string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create plan directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadPlan reads a plan written by WritePlan.
func ReadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}
