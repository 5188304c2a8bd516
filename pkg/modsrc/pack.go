// SPDX-License-Identifier: MPL-2.0

package modsrc

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Pack creates a .modpkg archive from a mod directory. The directory is
// loaded first so broken mods are rejected before anything is written.
// When outputPath is empty the archive is named after the mod directory.
// Returns the absolute path of the created archive.
func Pack(modDir, outputPath string) (_ string, err error) {
	if _, err := (DirSource{}).Load(modDir); err != nil {
		return "", fmt.Errorf("invalid mod: %w", err)
	}

	dirName := filepath.Base(filepath.Clean(modDir))
	if outputPath == "" {
		outputPath = dirName + ArchiveExt
	}
	absOutput, err := filepath.Abs(outputPath)
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}

	zipFile, err := os.Create(absOutput)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}
	defer func() {
		if closeErr := zipFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close archive: %w", closeErr)
		}
		// A half-written archive must not survive a failed pack.
		if err != nil {
			os.Remove(absOutput)
		}
	}()

	if err = writeModArchive(zipFile, modDir, dirName); err != nil {
		return "", fmt.Errorf("pack %s: %w", modDir, err)
	}

	return absOutput, nil
}

// writeModArchive streams the mod directory into w as a ZIP rooted at
// dirName. The zip writer's Close flushes the central directory, so its
// error is promoted rather than discarded.
func writeModArchive(w io.Writer, modDir, dirName string) (err error) {
	zipWriter := zip.NewWriter(w)
	defer func() {
		if closeErr := zipWriter.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return filepath.WalkDir(modDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(modDir, path)
		if err != nil {
			return err
		}
		// The mod directory name becomes the archive root, forward
		// slashes throughout for ZIP compatibility.
		zipPath := filepath.ToSlash(filepath.Join(dirName, rel))

		info, err := d.Info()
		if err != nil {
			return err
		}
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = zipPath
		header.Method = zip.Deflate

		fw, err := zipWriter.CreateHeader(header)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		_, err = fw.Write(data)
		return err
	})
}
