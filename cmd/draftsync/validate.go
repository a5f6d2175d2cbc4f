package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ivlev/draftsync/internal/draft"
	"github.com/ivlev/draftsync/internal/manifest"
	"github.com/ivlev/draftsync/internal/validate"
)

var validateManifest bool

var validateCmd = &cobra.Command{
	Use:   "validate PATH",
	Short: "Report likely problems in a draft folder or document",
	Example: `  draftsync validate ~/Movies/CapCut/drafts/episode
  draftsync validate --manifest job.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		var warnings []string
		if validateManifest {
			warnings = manifestWarnings(path)
		} else if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			doc, err := draft.Load(path)
			if err != nil {
				warnings = []string{err.Error()}
			} else {
				warnings = validate.Document(doc)
			}
		} else {
			warnings = validate.Dir(path)
		}

		if len(warnings) == 0 {
			cmd.Println("validation passed")
			return nil
		}
		cmd.Println("validation warnings:")
		for _, w := range warnings {
			cmd.Printf("- %s\n", w)
		}
		return nil
	},
}

// manifestWarnings lists every schema problem in the manifest at path.
func manifestWarnings(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{err.Error()}
	}
	raw, err := manifest.Parse(data, path)
	if err != nil {
		return []string{err.Error()}
	}
	return manifest.Validate(raw)
}

func init() {
	validateCmd.Flags().BoolVar(&validateManifest, "manifest", false, "treat PATH as a render manifest and check it against the schema")
	rootCmd.AddCommand(validateCmd)
}
