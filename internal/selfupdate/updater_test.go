package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRelease serves the two GitHub surfaces an update touches: the latest
// release document and the release's downloadable assets.
type fakeRelease struct {
	tag    string
	assets map[string][]byte
}

func (f fakeRelease) serve(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/quizlr/quizlr/releases/latest", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"tag_name":%q,"html_url":"https://example.com/releases/%s"}`, f.tag, f.tag)
	})
	for name, body := range f.assets {
		mux.HandleFunc("/quizlr/quizlr/releases/download/"+f.tag+"/"+name, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(body)
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name          string
		releaseTag    string
		current       string
		wantAvailable bool
	}{
		{"newer release", "v1.2.0", "v1.0.0", true},
		{"same version", "v1.2.0", "v1.2.0", false},
		{"local build ahead of release", "v1.2.0", "v2.0.0", false},
		{"bare tags compare as semver", "1.2.0", "1.0.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeRelease{tag: tt.releaseTag}.serve(t)
			checker := NewChecker(WithBaseURL(srv.URL))

			result, err := checker.Check(context.Background(), &CheckInput{Version: tt.current})
			require.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, result.UpdateAvailable)
			assert.Equal(t, tt.current, result.CurrentVersion)
			assert.Equal(t, tt.releaseTag, result.LatestVersion)
			assert.Equal(t, "https://example.com/releases/"+tt.releaseTag, result.ReleaseURL)
		})
	}

	t.Run("api error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		t.Cleanup(srv.Close)

		_, err := NewChecker(WithBaseURL(srv.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 500")
	})

	t.Run("release without tag name", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		t.Cleanup(srv.Close)

		_, err := NewChecker(WithBaseURL(srv.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no tag_name")
	})
}

func TestAssetNameFor(t *testing.T) {
	tests := []struct {
		goos   string
		goarch string
		want   string
	}{
		{"darwin", "amd64", "quizlr_Darwin_all.tar.gz"},
		{"darwin", "arm64", "quizlr_Darwin_all.tar.gz"},
		{"linux", "amd64", "quizlr_Linux_x86_64.tar.gz"},
		{"linux", "arm64", "quizlr_Linux_arm64.tar.gz"},
		{"linux", "386", "quizlr_Linux_i386.tar.gz"},
		{"windows", "amd64", "quizlr_Windows_x86_64.zip"},
		{"windows", "arm64", "quizlr_Windows_arm64.zip"},
	}
	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			got, err := assetNameFor(tt.goos, tt.goarch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := assetNameFor("freebsd", "amd64")
	assert.Error(t, err, "unsupported OS")
	_, err = assetNameFor("linux", "mips")
	assert.Error(t, err, "unsupported architecture")
}

func TestParseChecksums(t *testing.T) {
	manifest := "abc123  quizlr_Darwin_all.tar.gz\n" +
		"not-a-checksum-line\n" +
		"   \n" +
		"too  many  fields here\n" +
		"def456  quizlr_Linux_x86_64.tar.gz\n"

	sums := parseChecksums([]byte(manifest))
	assert.Equal(t, map[string]string{
		"quizlr_Darwin_all.tar.gz":   "abc123",
		"quizlr_Linux_x86_64.tar.gz": "def456",
	}, sums)

	assert.Empty(t, parseChecksums(nil))
}

func TestExtractBinary(t *testing.T) {
	content := []byte("#!/bin/sh\necho quizlr")

	t.Run("tar.gz", func(t *testing.T) {
		got, err := extractBinary(buildTarGz(t, "quizlr", content), "quizlr_Linux_x86_64.tar.gz")
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("zip", func(t *testing.T) {
		got, err := extractBinary(buildZip(t, "quizlr.exe", content), "quizlr_Windows_x86_64.zip")
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("binary missing from archive", func(t *testing.T) {
		_, err := extractBinary(buildTarGz(t, "README.md", content), "quizlr_Linux_x86_64.tar.gz")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestSwapBinary(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "quizlr")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0o755))

	newBinary := []byte("new-binary-content")
	require.NoError(t, swapBinary(newBinary, target))

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, newBinary, got)

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm(), "original mode survives the swap")
}

func TestUpdate(t *testing.T) {
	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		t.Skipf("no release asset for %s/%s", runtime.GOOS, runtime.GOARCH)
	}
	binary := []byte("new-quizlr-binary")
	archive := releaseArchiveFor(t, asset, binary)

	t.Run("full flow replaces the binary", func(t *testing.T) {
		execPath := filepath.Join(t.TempDir(), "quizlr")
		require.NoError(t, os.WriteFile(execPath, []byte("old"), 0o755))

		srv := fakeRelease{
			tag: "v2.0.0",
			assets: map[string][]byte{
				asset:           archive,
				"checksums.txt": []byte(fmt.Sprintf("%s  %s\n", sha256Hex(archive), asset)),
			},
		}.serve(t)

		checker := NewChecker(
			WithBaseURL(srv.URL),
			WithDownloadBaseURL(srv.URL),
			withExecPath(func() (string, error) { return execPath, nil }),
		)

		var stages []string
		err := checker.Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(p UpdateProgress) {
			stages = append(stages, p.Stage)
		})
		require.NoError(t, err)

		got, err := os.ReadFile(execPath)
		require.NoError(t, err)
		assert.Equal(t, binary, got)
		assert.Equal(t, []string{"check", "download", "verify", "extract", "apply", "done"}, stages)
	})

	t.Run("dev build refuses to update", func(t *testing.T) {
		err := NewChecker().Update(context.Background(), &UpdateInput{CurrentVersion: "(devel)"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrDevBuild)
	})

	t.Run("already latest", func(t *testing.T) {
		srv := fakeRelease{tag: "v1.0.0"}.serve(t)
		err := NewChecker(WithBaseURL(srv.URL)).
			Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrAlreadyLatest)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		srv := fakeRelease{
			tag: "v2.0.0",
			assets: map[string][]byte{
				asset:           archive,
				"checksums.txt": []byte(fmt.Sprintf("%064d  %s\n", 0, asset)),
			},
		}.serve(t)

		err := NewChecker(WithBaseURL(srv.URL), WithDownloadBaseURL(srv.URL)).
			Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("missing release asset", func(t *testing.T) {
		srv := fakeRelease{tag: "v2.0.0"}.serve(t)
		err := NewChecker(WithBaseURL(srv.URL), WithDownloadBaseURL(srv.URL)).
			Update(context.Background(), &UpdateInput{CurrentVersion: "v1.0.0"}, func(UpdateProgress) {})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download archive")
	})
}

// releaseArchiveFor packs the binary the way the named release asset would
// be packed: zip for Windows assets, tar.gz for everything else.
func releaseArchiveFor(t *testing.T, asset string, binary []byte) []byte {
	t.Helper()
	if strings.HasSuffix(asset, ".zip") {
		return buildZip(t, "quizlr.exe", binary)
	}
	return buildTarGz(t, "quizlr", binary)
}

func buildTarGz(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	require.NoError(t, tw.WriteHeader(&tar.Header{Name: name, Size: int64(len(content)), Mode: 0o755}))
	_, err := tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

func buildZip(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	f, err := zw.Create(name)
	require.NoError(t, err)
	_, err = f.Write(content)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
