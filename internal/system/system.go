package system

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Platform is the host facts the default paths depend on.
type Platform struct {
	OS   string // runtime.GOOS value
	Home string
}

// CurrentPlatform describes the running host.
func CurrentPlatform() Platform {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Platform{OS: runtime.GOOS, Home: home}
}

// DefaultDraftRoot is where the editor keeps its drafts on p.
func DefaultDraftRoot(p Platform) string {
	switch p.OS {
	case "windows":
		return filepath.Join(p.Home, "AppData", "Local", "JianyingPro", "User Data", "Projects", "com.lveditor.draft")
	case "darwin":
		return filepath.Join(p.Home, "Movies", "JianyingPro", "User Data", "Projects", "com.lveditor.draft")
	default:
		return filepath.Join(p.Home, "Desktop", "Youtube", "剪映draft", "JianyingPro Drafts")
	}
}

// DefaultImagesDir is the folder the automatic mode takes images from.
func DefaultImagesDir(p Platform) string {
	return filepath.Join(p.Home, "Desktop", "Youtube", "images")
}

// ExpandHome replaces a leading ~ with the home directory of p.
func ExpandHome(path string, p Platform) string {
	if path == "~" {
		return p.Home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(p.Home, path[2:])
	}
	return path
}
