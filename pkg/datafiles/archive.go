// Package datafiles manages raw dataset files on disk. Downloaded city
// datasets are archived under <base>/<city>/<date>/<name> so every import
// can be traced back to the exact file it read.
package datafiles

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const DefaultBaseDir = "data/raw"

// DatasetDate derives a YYYY-MM-DD date from file modification time.
func DatasetDate(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	return info.ModTime().Format("2006-01-02"), nil
}

// ArchiveDestination returns the canonical location for a raw dataset
// file. An empty dateOverride falls back to the file's own date.
func ArchiveDestination(path, city, baseDir, dateOverride string) (string, error) {
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}
	date := dateOverride
	if date == "" {
		var err error
		date, err = DatasetDate(path)
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(baseDir, city, date, filepath.Base(path)), nil
}

// Archive moves (or with copyFile copies) the source file into place. It
// refuses to overwrite an existing destination.
func Archive(src, dst string, copyFile bool) error {
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("destination already exists: %s", dst)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if copyFile {
		return copyPreservingMode(src, dst)
	}
	return os.Rename(src, dst)
}

func copyPreservingMode(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, info.Mode())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
