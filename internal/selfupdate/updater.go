package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// UpdateInput selects the version to install. An empty TargetVersion means
// whatever release is latest.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is reported once per stage. Stages run in a fixed order:
// check, download, verify, extract, apply, done.
type UpdateProgress struct {
	Stage   string
	Message string
}

// Update installs a release build over the running binary: it resolves the
// target tag, downloads the platform archive, verifies it against the
// published checksums, and swaps the executable in place.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}
	step := func(stage, message string) {
		progress(UpdateProgress{Stage: stage, Message: message})
	}

	tag := input.TargetVersion
	if tag == "" {
		step("check", "Checking for latest version...")
		latest, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !latest.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = latest.LatestVersion
	}

	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}
	releaseDir := fmt.Sprintf("%s/%s/%s/releases/download/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag)

	step("download", fmt.Sprintf("Downloading %s...", tag))
	archive, err := c.fetch(ctx, releaseDir+"/"+asset)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	step("verify", "Verifying checksum...")
	manifest, err := c.fetch(ctx, releaseDir+"/checksums.txt")
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(manifest)[asset]
	if !ok {
		return fmt.Errorf("no checksum for %s in checksums.txt", asset)
	}
	if got := sha256Hex(archive); got != want {
		return fmt.Errorf("%w: want %s, got %s", ErrChecksum, want, got)
	}

	step("extract", "Extracting binary...")
	binary, err := extractBinary(archive, asset)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	step("apply", "Applying update...")
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := swapBinary(binary, target); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	step("done", fmt.Sprintf("Updated to %s", tag))
	return nil
}

// releaseArches maps GOARCH values to the architecture labels used in
// release asset names.
var releaseArches = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

func assetNameFor(goos, goarch string) (string, error) {
	// Darwin releases ship one universal binary.
	if goos == "darwin" {
		return repoName + "_Darwin_all.tar.gz", nil
	}

	arch, ok := releaseArches[goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	switch goos {
	case "linux":
		return fmt.Sprintf("%s_Linux_%s.tar.gz", repoName, arch), nil
	case "windows":
		return fmt.Sprintf("%s_Windows_%s.zip", repoName, arch), nil
	}
	return "", fmt.Errorf("unsupported operating system: %s", goos)
}

func (c *Checker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// parseChecksums reads "<hex>  <filename>" lines, skipping anything
// malformed.
func parseChecksums(manifest []byte) map[string]string {
	sums := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(manifest))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 2 {
			sums[fields[1]] = fields[0]
		}
	}
	return sums
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// extractBinary pulls the quizlr executable out of a release archive.
func extractBinary(archive []byte, asset string) ([]byte, error) {
	if strings.HasSuffix(asset, ".zip") {
		return unzipFile(archive, repoName+".exe")
	}
	return untarFile(archive, repoName)
}

func untarFile(archive []byte, binName string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(archive))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("binary %q not found in archive", binName)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == binName {
			return io.ReadAll(tr)
		}
	}
}

func unzipFile(archive []byte, binName string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if filepath.Base(f.Name) != binName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("binary %q not found in archive", binName)
}

// swapBinary stages the new executable in a temp directory on the same
// filesystem, re-reads it to confirm the bytes on disk are the bytes that
// were verified, then renames it over the target keeping the original mode.
func swapBinary(binary []byte, target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	stageDir, err := os.MkdirTemp(filepath.Dir(target), ".quizlr-update-*")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(stageDir) }()

	staged := filepath.Join(stageDir, "quizlr-new")
	if err := os.WriteFile(staged, binary, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	onDisk, err := os.ReadFile(staged)
	if err != nil {
		return fmt.Errorf("re-read temp file: %w", err)
	}
	if sha256.Sum256(onDisk) != sha256.Sum256(binary) {
		return fmt.Errorf("%w: staged file changed after write", ErrChecksum)
	}

	if err := os.Rename(staged, target); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	if err := os.Chmod(target, info.Mode()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	return nil
}
