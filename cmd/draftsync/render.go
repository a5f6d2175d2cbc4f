package main

import (
	"github.com/spf13/cobra"

	"github.com/ivlev/draftsync/internal/engine"
	"github.com/ivlev/draftsync/internal/ids"
	"github.com/ivlev/draftsync/internal/project"
)

var (
	renderManifest string
	renderPreset   string
	renderOutput   string
	renderDryRun   string
	renderSeed     int64
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Apply a render manifest to its draft",
	Example: `  draftsync render --manifest job.json
  draftsync render --manifest job.yaml --preset portrait --output ./out
  draftsync render --manifest job.json5 --dry-run plan.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		p := project.New(cfg, logger)
		if cmd.Flags().Changed("seed") {
			p.Entropy = ids.Seeded(renderSeed)
		}

		res, err := p.Render(cmd.Context(), project.RenderOptions{
			ManifestPath: renderManifest,
			Preset:       renderPreset,
			OutputDir:    renderOutput,
			DryRunPath:   renderDryRun,
		})
		if err != nil {
			return err
		}

		if res.Plan != nil {
			plan, err := engine.ReadPlan(res.Document)
			if err != nil {
				return err
			}
			cmd.Printf("plan written: %s (%d segments)\n", res.Document, len(plan.Segments))
			for _, item := range plan.Segments {
				cmd.Printf("  %3d  %10dus  +%dus  %s\n", item.Index, item.Window.Start, item.Window.Duration, item.Image)
			}
			return nil
		}
		if res.Backup != "" {
			cmd.Printf("backup: %s\n", res.Backup)
		}
		cmd.Printf("updated draft: %s\n", res.DraftDir)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderManifest, "manifest", "m", "", "render manifest (JSON, JSON5 or YAML)")
	renderCmd.Flags().StringVar(&renderPreset, "preset", "", "output preset, overrides the manifest")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write the result into this folder instead of editing the draft")
	renderCmd.Flags().StringVar(&renderDryRun, "dry-run", "", "write the planned layout to this YAML file and change nothing")
	renderCmd.Flags().Int64Var(&renderSeed, "seed", 0, "seed ids and random choices for a reproducible result")
	_ = renderCmd.MarkFlagRequired("manifest")
	rootCmd.AddCommand(renderCmd)
}
