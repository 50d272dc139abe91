// Package install turns a resolved download URL into a ready-to-run oc
// binary on the agent.
package install

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"oc-setup-task/pkg/support"
)

// Fetch downloads the release archive behind link into targetDir,
// extracts it and returns the path of the oc executable. The archive is
// cached by file name: a file with the same name in targetDir skips the
// download. An empty link and a missing post-extraction executable both
// return an empty path with no error; a missing targetDir is fatal.
func Fetch(ctx context.Context, link, targetDir, osType, proxy string) (string, error) {
	if link == "" {
		return "", nil
	}

	if info, err := os.Stat(targetDir); err != nil || !info.IsDir() {
		return "", fmt.Errorf("%s does not exist.", targetDir)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return "", err
	}
	archiveName := path.Base(parsed.Path)
	archivePath := filepath.Join(targetDir, archiveName)

	if _, err := os.Stat(archivePath); err == nil {
		logrus.Info("Archive ", archiveName, " already present, skipping download")
	} else {
		logrus.Info("Downloading ", link)
		if err := support.DownloadFile(ctx, link, archivePath, proxy); err != nil {
			return "", err
		}
	}

	if err := support.ExtractArchive(archivePath, targetDir); err != nil {
		return "", err
	}

	execName := "oc"
	if osType == "Windows_NT" {
		execName = "oc.exe"
	}
	execPath := filepath.Join(targetDir, execName)
	if _, err := os.Stat(execPath); err != nil {
		logrus.Error("Extraction did not produce ", execName, " in ", targetDir)
		return "", nil
	}

	if osType != "Windows_NT" {
		if err := os.Chmod(execPath, 0755); err != nil { //nolint:mnd
			return "", err
		}
	}
	return execPath, nil
}
