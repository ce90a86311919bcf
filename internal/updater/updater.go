// Package updater checks GitHub releases for a newer build and swaps the
// running executable in place.
package updater

import (
	"archive/tar"
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/ulikunitz/xz"
	"go.uber.org/zap"

	"github.com/highercomve/billtracker/internal/version"
)

const (
	githubAPIURL   = "https://api.github.com/repos/%s/%s/releases/latest"
	executableBase = "billtracker"
)

// GitHubRelease is the subset of the release payload we need.
type GitHubRelease struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset is one downloadable artifact attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// SelfUpdate replaces the current executable with the latest release build
// when one is newer than the running version. Dev builds never update.
func SelfUpdate(log *zap.SugaredLogger, owner, repo string) error {
	current := version.Version
	if current == "dev" {
		log.Debug("dev build, skipping update check")
		return nil
	}

	latestTag, downloadURL, err := CheckForUpdates(owner, repo)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if latestTag == "" || downloadURL == "" {
		log.Debug("no update available")
		return nil
	}
	if compareVersions(current, latestTag) >= 0 {
		log.Debugw("already up to date", "current", current, "latest", latestTag)
		return nil
	}

	log.Infow("downloading update", "current", current, "latest", latestTag)

	executablePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	if err := downloadAndReplace(downloadURL, executablePath); err != nil {
		return fmt.Errorf("failed to download and replace: %w", err)
	}

	log.Infow("update installed, restart to apply", "version", latestTag)
	return nil
}

// CheckForUpdates fetches the latest release and returns its tag plus the
// download URL of the asset matching this OS and architecture.
func CheckForUpdates(owner, repo string) (string, string, error) {
	url := fmt.Sprintf(githubAPIURL, owner, repo)
	resp, err := http.Get(url)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch release info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("GitHub API returned status %d: %s", resp.StatusCode, resp.Status)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", "", fmt.Errorf("failed to decode release JSON: %w", err)
	}

	platform := fmt.Sprintf("%s-%s", runtime.GOOS, runtime.GOARCH)
	var wantSuffix string
	switch runtime.GOOS {
	case "windows":
		wantSuffix = platform + ".zip"
	case "linux", "darwin":
		wantSuffix = platform + ".tar.xz"
	default:
		return "", "", fmt.Errorf("unsupported platform for self-update: %s", platform)
	}

	for _, asset := range release.Assets {
		if strings.HasSuffix(asset.Name, wantSuffix) && strings.Contains(asset.Name, executableBase) {
			return release.TagName, asset.BrowserDownloadURL, nil
		}
	}
	return "", "", fmt.Errorf("no suitable asset found for %s", platform)
}

func downloadAndReplace(downloadURL, executablePath string) error {
	tmpDir, err := os.MkdirTemp("", executableBase+"-update-")
	if err != nil {
		return fmt.Errorf("failed to create temporary directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	archiveName := filepath.Base(downloadURL)
	archivePath := filepath.Join(tmpDir, archiveName)

	resp, err := http.Get(downloadURL)
	if err != nil {
		return fmt.Errorf("failed to download update archive: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("archive download returned status %d", resp.StatusCode)
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return fmt.Errorf("failed to write archive: %w", err)
	}
	out.Close()

	var extracted string
	switch {
	case strings.HasSuffix(archiveName, ".tar.xz"):
		extracted, err = extractTarXz(archivePath, tmpDir, executablePath)
	case strings.HasSuffix(archiveName, ".zip"):
		extracted, err = extractZip(archivePath, tmpDir, executablePath)
	default:
		return fmt.Errorf("unsupported archive format: %s", archiveName)
	}
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", archiveName, err)
	}
	if extracted == "" {
		return fmt.Errorf("executable not found in archive")
	}

	return replaceExecutable(executablePath, extracted)
}

func extractTarXz(archivePath, destDir, executablePath string) (string, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	xzReader, err := xz.NewReader(file)
	if err != nil {
		return "", err
	}

	want := strings.TrimSuffix(filepath.Base(executablePath), ".exe")
	tarReader := tar.NewReader(xzReader)
	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if header.Typeflag != tar.TypeReg || filepath.Base(header.Name) != want {
			continue
		}
		dest := filepath.Join(destDir, want)
		newFile, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, header.FileInfo().Mode())
		if err != nil {
			return "", err
		}
		if _, err := io.Copy(newFile, tarReader); err != nil {
			newFile.Close()
			return "", err
		}
		newFile.Close()
		return dest, nil
	}
	return "", fmt.Errorf("executable %q not found in archive", want)
}

func extractZip(archivePath, destDir, executablePath string) (string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	want := filepath.Base(executablePath)
	if runtime.GOOS == "windows" && !strings.HasSuffix(want, ".exe") {
		want += ".exe"
	}

	for _, f := range r.File {
		if filepath.Base(f.Name) != want {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		dest := filepath.Join(destDir, want)
		newFile, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, f.Mode())
		if err != nil {
			rc.Close()
			return "", err
		}
		_, err = io.Copy(newFile, rc)
		rc.Close()
		newFile.Close()
		if err != nil {
			return "", err
		}
		return dest, nil
	}
	return "", fmt.Errorf("executable %q not found in archive", want)
}

// replaceExecutable swaps the running binary for the new one. The old binary
// is renamed to .old first; on Windows the rename fails while the app is
// running and the user has to retry after closing it.
func replaceExecutable(oldPath, newPath string) error {
	backupPath := oldPath + ".old"
	if err := os.Rename(oldPath, backupPath); err != nil {
		return fmt.Errorf("failed to back up current executable (close the app and retry if it is locked): %w", err)
	}
	if err := os.Rename(newPath, oldPath); err != nil {
		_ = os.Rename(backupPath, oldPath) // best-effort rollback
		return fmt.Errorf("failed to move new executable into place: %w", err)
	}
	if runtime.GOOS != "windows" {
		if err := os.Chmod(oldPath, 0755); err != nil {
			return fmt.Errorf("failed to set execute permissions: %w", err)
		}
		_ = os.Remove(backupPath)
	}
	// On Windows the .old file stays locked until the process exits and is
	// cleaned up on a later run.
	return nil
}

func compareVersions(a, b string) int {
	aParts := strings.Split(strings.TrimPrefix(a, "v"), ".")
	bParts := strings.Split(strings.TrimPrefix(b, "v"), ".")

	n := len(aParts)
	if len(bParts) > n {
		n = len(bParts)
	}
	for i := 0; i < n; i++ {
		var av, bv int
		if i < len(aParts) {
			av, _ = strconv.Atoi(aParts[i])
		}
		if i < len(bParts) {
			bv, _ = strconv.Atoi(bParts[i])
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}
