package main

import (
	"github.com/spf13/cobra"

	"github.com/ivlev/draftsync/internal/project"
)

var (
	autoImages string
	autoRoot   string
)

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Sync the most recent draft with the default image folder",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := project.New(cfg, logger).Auto(cmd.Context(), project.AutoOptions{
			ImagesDir: autoImages,
			Root:      autoRoot,
		})
		if err != nil {
			return err
		}
		cmd.Printf("updated draft: %s (%d images)\n", res.DraftDir, res.Images)
		return nil
	},
}

func init() {
	autoCmd.Flags().StringVar(&autoImages, "images", "", "image folder (default from config, then ~/Desktop/Youtube/images)")
	autoCmd.Flags().StringVar(&autoRoot, "root", "", "draft root folder (default from config, then the platform default)")
	rootCmd.AddCommand(autoCmd)
}
