package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nomadcxx/mkvrenamer/internal/apperr"
	"github.com/Nomadcxx/mkvrenamer/internal/config"
)

type cliEnv struct {
	root       string
	processing string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliEnv {
	t.Helper()
	root := t.TempDir()
	env := &cliEnv{
		root:       root,
		processing: filepath.Join(root, "processing"),
		configPath: filepath.Join(root, "config", "config.toml"),
	}
	if err := os.MkdirAll(env.processing, 0755); err != nil {
		t.Fatal(err)
	}
	return env
}

func (e *cliEnv) write(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(e.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, env *cliEnv, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()

	var stdout, stderr bytes.Buffer
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

const thundercatsJSON = `{
  "metadata": {"name": "Thundercats", "tvdb_id": "70355", "season_number": "1"},
  "episodes": [
    {"number": "S01E01", "name": "Exodus"},
    {"number": "S01E02", "name": "The Unholy Alliance"},
    {"number": "S01E03", "name": "Berbils"}
  ]
}`

func TestSeriesRenameEndToEnd(t *testing.T) {
	env := setupCLITestEnv(t)
	meta := env.write(t, "thundercats.json", thundercatsJSON)
	env.write(t, "processing/Rips/session2/disc1/a.mkv", "a")
	env.write(t, "processing/Rips/session2/disc2/b.mkv", "b")
	env.write(t, "processing/Rips/session2/disc3/c.mkv", "c")

	out, _, err := runCLI(t, env, "y\n", "series", "rename", "-p", env.processing, "-s", "2", "-f", meta)
	if err != nil {
		t.Fatalf("series rename: %v", err)
	}

	requireContains(t, out, "The following renames will be performed:")
	requireContains(t, out, "S01E03 - Berbils.mkv")
	requireContains(t, out, "[OK] Renamed 3 file(s)")

	renames := filepath.Join(env.processing, "Rips", "session2", "renames")
	for _, name := range []string{"S01E01 - Exodus.mkv", "S01E02 - The Unholy Alliance.mkv", "S01E03 - Berbils.mkv"} {
		if _, err := os.Stat(filepath.Join(renames, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	container := filepath.Join(env.processing, "Encodes", "tv", "Thundercats {tvdb-70355} [tvdbid-70355]", "Season 01")
	marker, err := os.ReadFile(filepath.Join(renames, "encode_dir.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(marker) != container {
		t.Errorf("marker = %q, want %q", marker, container)
	}
}

func TestMovieRenameEndToEnd(t *testing.T) {
	env := setupCLITestEnv(t)
	meta := env.write(t, "movie.json", `{"name":"The Big Lebowski","tvdb_id":"659"}`)
	env.write(t, "processing/Rips/session1/disc1/title_t00.mkv", "movie")

	_, _, err := runCLI(t, env, "y\n", "movie", "rename", "-p", env.processing, "-s", "1", "-f", meta)
	if err != nil {
		t.Fatalf("movie rename: %v", err)
	}

	renamed := filepath.Join(env.processing, "Rips", "session1", "renames", "The Big Lebowski - {tvdb-659} [tvdbid-659].mkv")
	if _, err := os.Stat(renamed); err != nil {
		t.Errorf("renamed movie missing: %v", err)
	}
	container := filepath.Join(env.processing, "Encodes", "movies", "The Big Lebowski - {tvdb-659} [tvdbid-659]")
	if _, err := os.Stat(container); err != nil {
		t.Errorf("container missing: %v", err)
	}
}

func TestRenameDeclined(t *testing.T) {
	env := setupCLITestEnv(t)
	meta := env.write(t, "thundercats.json", thundercatsJSON)
	src := env.write(t, "processing/Rips/session1/disc1/a.mkv", "a")

	out, _, err := runCLI(t, env, "Y\n", "series", "rename", "-p", env.processing, "-s", "1", "-f", meta)
	if err != nil {
		t.Fatalf("declined rename should not fail: %v", err)
	}
	requireContains(t, out, "User canceled rename")

	if _, err := os.Stat(src); err != nil {
		t.Errorf("source moved after decline: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.processing, "Encodes")); !os.IsNotExist(err) {
		t.Errorf("Encodes created after decline: %v", err)
	}
}

func TestRenameNotEnoughMetadata(t *testing.T) {
	env := setupCLITestEnv(t)
	meta := env.write(t, "movie.json", `{"name":"The Big Lebowski","tvdb_id":"659"}`)
	env.write(t, "processing/Rips/session1/disc1/a.mkv", "a")
	env.write(t, "processing/Rips/session1/disc2/b.mkv", "b")

	_, _, err := runCLI(t, env, "y\n", "movie", "rename", "-p", env.processing, "-s", "1", "-f", meta)
	if !apperr.Is(err, apperr.NotEnoughMetadataForFiles) {
		t.Fatalf("error kind = %v, want %v (err %v)", apperr.KindOf(err), apperr.NotEnoughMetadataForFiles, err)
	}
}

func TestRenameFlagValidation(t *testing.T) {
	env := setupCLITestEnv(t)
	meta := env.write(t, "thundercats.json", thundercatsJSON)

	tests := []struct {
		name string
		args []string
	}{
		{"missing session", []string{"series", "rename", "-p", env.processing, "-f", meta}},
		{"missing metadata", []string{"series", "rename", "-p", env.processing, "-s", "1"}},
		{"url and file", []string{"series", "rename", "-p", env.processing, "-s", "1", "-f", meta, "-u", "http://x"}},
		{"no processing dir", []string{"series", "rename", "-s", "1", "-f", meta}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCLI(t, env, "y\n", tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRenameUsesConfiguredProcessingDir(t *testing.T) {
	env := setupCLITestEnv(t)
	meta := env.write(t, "thundercats.json", thundercatsJSON)
	env.write(t, "processing/Rips/session1/disc1/a.mkv", "a")

	cfg := config.DefaultConfig()
	cfg.Paths.ProcessingDir = env.processing
	cfg.Layout.SplitEncodes = false
	if err := config.Save(cfg, env.configPath); err != nil {
		t.Fatal(err)
	}

	if _, _, err := runCLI(t, env, "y\n", "series", "rename", "-s", "1", "-f", meta, "--skip-files"); err != nil {
		t.Fatalf("series rename: %v", err)
	}

	container := filepath.Join(env.processing, "Encodes", "Thundercats {tvdb-70355} [tvdbid-70355]", "Season 01")
	if _, err := os.Stat(container); err != nil {
		t.Errorf("flat container missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.processing, "Rips", "session1", "disc1", "a.mkv")); err != nil {
		t.Errorf("--skip-files moved a ripped file: %v", err)
	}
}

func TestExportCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>The Big Lebowski - TheTVDB.com</title></head>
<body><div class="btn-group" data-permission="movie-659-artwork"></div></body></html>`))
	}))
	defer srv.Close()

	target := filepath.Join(env.root, "lebowski.json")
	out, _, err := runCLI(t, env, "", "movie", "export", "-u", srv.URL, "-o", target)
	if err != nil {
		t.Fatalf("movie export: %v", err)
	}
	requireContains(t, out, "Exported 1 name(s) for The Big Lebowski")

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	requireContains(t, string(data), `"tvdb_id": "659"`)

	// a second export refuses to overwrite
	_, _, err = runCLI(t, env, "", "movie", "export", "-u", srv.URL, "-o", target)
	if !apperr.Is(err, apperr.MetadataExport) {
		t.Errorf("second export kind = %v, want %v", apperr.KindOf(err), apperr.MetadataExport)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	requireContains(t, out, "does not exist")

	out, _, err = runCLI(t, env, "", "config", "init", "-p", env.processing)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote configuration")

	if _, _, err := runCLI(t, env, "", "config", "init"); err == nil {
		t.Error("config init should refuse to overwrite without --force")
	}

	out, _, err = runCLI(t, env, "", "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	requireContains(t, out, env.processing)
	requireContains(t, out, "Split encodes:  true")
}

func TestVersionCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, "mkvrenamer dev")
}
