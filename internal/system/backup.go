package system

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/disk"
)

// BackupDraft zips the draft folder src into destDir as
// backup_YYYYMMDD_HHMMSS.zip and returns the archive path. A destination
// with less free space than the folder size is logged, not refused.
func BackupDraft(src, destDir string, now time.Time, logger zerolog.Logger) (string, error) {
	src, err := filepath.Abs(src)
	if err != nil {
		return "", err
	}
	destDir, err = filepath.Abs(destDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	size, err := dirSize(src)
	if err != nil {
		return "", fmt.Errorf("read draft folder: %w", err)
	}
	if usage, err := disk.Usage(destDir); err != nil {
		logger.Debug().Err(err).Str("dir", destDir).Msg("free space unknown")
	} else if usage.Free < uint64(size) {
		logger.Warn().
			Uint64("free", usage.Free).
			Int64("needed", size).
			Str("dir", destDir).
			Msg("low disk space for backup")
	}

	f, path, err := createArchive(destDir, now)
	if err != nil {
		return "", err
	}
	if err := writeZip(f, src, path); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	logger.Info().Str("archive", path).Int64("bytes", size).Msg("draft backed up")
	return path, nil
}

// createArchive opens a new archive file, adding a counter when a backup
// from the same second already exists.
func createArchive(destDir string, now time.Time) (*os.File, string, error) {
	base := "backup_" + now.Format("20060102_150405")
	for i := 0; ; i++ {
		name := base + ".zip"
		if i > 0 {
			name = fmt.Sprintf("%s_%d.zip", base, i)
		}
		path := filepath.Join(destDir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", err
		}
	}
}

// writeZip archives src into w, leaving out the archive file itself when
// it is being written inside src.
func writeZip(w io.Writer, src, archive string) error {
	zw := zip.NewWriter(w)
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == archive {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil || rel == "." {
			return err
		}
		name := filepath.ToSlash(rel)
		info, err := d.Info()
		if err != nil {
			return err
		}
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		if d.IsDir() {
			header.Name = name + "/"
			_, err = zw.CreateHeader(header)
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		header.Name = name
		header.Method = zip.Deflate
		out, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		_, err = io.Copy(out, in)
		return err
	})
	if err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

func dirSize(root string) (int64, error) {
	var size int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		return nil
	})
	return size, err
}
