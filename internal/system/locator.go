package system

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ivlev/draftsync/internal/draft"
)

// FindDraftContent resolves the timeline document to edit.
//
// draftPath may name the document itself or a folder. For a folder the
// document directly inside it wins, else the newest one anywhere below it.
// When draftPath is empty or yields nothing, the newest document below root
// is used.
func FindDraftContent(draftPath, root string) (string, error) {
	if draftPath != "" {
		abs, err := filepath.Abs(draftPath)
		if err != nil {
			return "", err
		}
		if fi, err := os.Stat(abs); err == nil {
			if fi.IsDir() {
				candidate := filepath.Join(abs, draft.ContentFileName)
				if isFile(candidate) {
					return candidate, nil
				}
				if latest, err := findLatestBelow(abs); err == nil {
					return latest, nil
				}
			} else if filepath.Base(abs) == draft.ContentFileName {
				return abs, nil
			}
		}
	}

	if root == "" {
		return "", fmt.Errorf("%w: no draft path and no draft root", draft.ErrMissingDocument)
	}
	latest, err := findLatestBelow(root)
	if err != nil {
		return "", err
	}
	return latest, nil
}

// FindLatestDraftFolder returns the draft folder directly under root whose
// document was modified last.
func FindLatestDraftFolder(root string) (string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", fmt.Errorf("%w: %v", draft.ErrMissingDocument, err)
	}

	var latestDir string
	var latestTime time.Time

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		info, err := os.Stat(filepath.Join(dir, draft.ContentFileName))
		if err != nil || info.IsDir() {
			continue
		}
		if latestDir == "" || info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestDir = dir
		}
	}

	if latestDir == "" {
		return "", fmt.Errorf("%w: no drafts in %s", draft.ErrMissingDocument, root)
	}
	return latestDir, nil
}

func findLatestBelow(root string) (string, error) {
	var latestFile string
	var latestTime time.Time

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() || d.Name() != draft.ContentFileName {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if latestFile == "" || info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = path
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", draft.ErrMissingDocument, err)
	}
	if latestFile == "" {
		return "", fmt.Errorf("%w: no %s below %s", draft.ErrMissingDocument, draft.ContentFileName, root)
	}
	return latestFile, nil
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
