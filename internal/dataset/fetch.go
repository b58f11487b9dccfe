package dataset

import (
	"archive/zip"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// resolveSource turns a dataset source into a local .shp path. The source may
// already be a .shp file, a .zip bundle containing one, or an http(s) URL to
// either.
func resolveSource(ctx context.Context, source, tempDir string) (string, error) {
	log := zap.L().With(zap.String("component", "dataset.fetch"))

	path := source
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if err := os.MkdirAll(tempDir, 0o755); err != nil {
			return "", eris.Wrap(err, "dataset: create temp dir")
		}
		parts := strings.Split(source, "/")
		path = filepath.Join(tempDir, parts[len(parts)-1])

		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			log.Debug("download already exists, skipping", zap.String("path", path))
		} else {
			log.Info("downloading boundary dataset", zap.String("url", source))
			if err := downloadFile(ctx, source, path); err != nil {
				return "", eris.Wrap(err, "dataset: download")
			}
		}
	}

	if !strings.HasSuffix(strings.ToLower(path), ".zip") {
		return path, nil
	}

	extractDir := filepath.Join(tempDir, strings.TrimSuffix(filepath.Base(path), ".zip"))
	if err := os.MkdirAll(extractDir, 0o755); err != nil {
		return "", eris.Wrap(err, "dataset: create extract dir")
	}
	if err := extractZIP(path, extractDir); err != nil {
		return "", eris.Wrap(err, "dataset: extract ZIP")
	}

	shpPath, err := findFileByExt(extractDir, ".shp")
	if err != nil {
		return "", eris.Wrap(err, "dataset: find .shp file")
	}
	return shpPath, nil
}

// downloadFile downloads a URL to a local file.
func downloadFile(ctx context.Context, url, dest string) error {
	client := &http.Client{Timeout: 10 * time.Minute}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return eris.Wrap(err, "build request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return eris.Wrap(err, "download")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("download returned status %d", resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return eris.Wrap(err, "create file")
	}
	defer f.Close() //nolint:errcheck

	if _, err := io.Copy(f, resp.Body); err != nil {
		return eris.Wrap(err, "write file")
	}

	return nil
}

// extractZIP extracts a ZIP archive to the destination directory.
func extractZIP(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return eris.Wrap(err, "open zip")
	}
	defer r.Close() //nolint:errcheck

	var extracted int
	for _, f := range r.File {
		name := filepath.Base(f.Name)
		destPath := filepath.Join(destDir, name)

		if f.FileInfo().IsDir() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return eris.Wrapf(err, "open zip entry %s", f.Name)
		}

		outFile, err := os.Create(destPath)
		if err != nil {
			_ = rc.Close()
			return eris.Wrapf(err, "create %s", destPath)
		}

		if _, err := io.Copy(outFile, rc); err != nil {
			_ = outFile.Close()
			_ = rc.Close()
			return eris.Wrapf(err, "extract %s", f.Name)
		}
		_ = outFile.Close()
		_ = rc.Close()
		extracted++
	}

	if extracted == 0 {
		return eris.Errorf("archive %s contains no files", zipPath)
	}

	return nil
}

// findFileByExt finds the first file with the given extension in a directory.
func findFileByExt(dir, ext string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", eris.Wrap(err, "read directory")
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ext) {
			return filepath.Join(dir, e.Name()), nil
		}
	}
	return "", eris.Errorf("no %s file found in %s", ext, dir)
}
