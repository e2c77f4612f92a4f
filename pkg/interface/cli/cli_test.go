package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseArgs_Defaults(t *testing.T) {
	cfg, err := ParseArgs([]string{"preset.txt", "websites.txt"})
	require.NoError(t, err)

	assert.Equal(t, "preset.txt", cfg.Args.PresetList)
	assert.Equal(t, "websites.txt", cfg.Args.WebsitesFile)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, 1, cfg.Concurrency)
	assert.Equal(t, ".env", cfg.EnvFile)
	assert.Zero(t, cfg.TimeoutDuration)
	assert.Empty(t, cfg.Output)
}

func TestParseArgs_InlineWebsites(t *testing.T) {
	cfg, err := ParseArgs([]string{"-w", "a.com", "--website", "b.com", "-o", "out.txt", "-v", "--timeout", "3", "preset.txt"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.com", "b.com"}, cfg.Websites)
	assert.Equal(t, "out.txt", cfg.Output)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 3*time.Second, cfg.TimeoutDuration)
}

func TestParseArgs_InlineWebsiteList(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"list after flag", []string{"preset.txt", "-w", "a.com", "b.com"}, []string{"a.com", "b.com"}},
		{"long list", []string{"preset.txt", "--website", "a.com", "b.com", "c.com"}, []string{"a.com", "b.com", "c.com"}},
		{"repeated flag", []string{"-w", "a.com", "-w", "b.com", "preset.txt"}, []string{"a.com", "b.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, "preset.txt", cfg.Args.PresetList)
			assert.Empty(t, cfg.Args.WebsitesFile)
			assert.Equal(t, tt.want, cfg.Websites)
		})
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no preset list", []string{"-w", "a.com"}, ErrNoPresetList},
		{"no source", []string{"preset.txt"}, ErrNoSource},
		{"both sources", []string{"preset.txt", "websites.txt", "-w", "a.com"}, ErrConflictingSources},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.args)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseArgs_Invalid(t *testing.T) {
	for _, args := range [][]string{
		{"--format", "xml", "preset.txt", "websites.txt"},
		{"--concurrency", "0", "preset.txt", "websites.txt"},
		{"--timeout", "-1", "preset.txt", "websites.txt"},
		{"preset.txt", "websites.txt", "extra.txt"},
		{"--unknown", "preset.txt", "websites.txt"},
	} {
		_, err := ParseArgs(args)
		assert.Error(t, err, "%v", args)
	}
}

func TestParseArgs_VersionAndHelp(t *testing.T) {
	cfg, err := ParseArgs([]string{"--version"})
	require.NoError(t, err)
	assert.True(t, cfg.Version)

	_, err = ParseArgs([]string{"--help"})
	require.Error(t, err)
	assert.True(t, flags.WroteHelp(err))
	assert.Contains(t, err.Error(), "preset_list")
}

// fakeProviders serves all three vendor APIs on one server
func fakeProviders(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/apivoid/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "apivoid-key", r.URL.Query().Get("key"))
		assert.Equal(t, "good.com", r.URL.Query().Get("domain"))
		w.Write([]byte(`{"data":{"reputation":{"score":90},"blacklists":{"detections":0}}}`))
	})
	mux.HandleFunc("/ipvoid/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "/ipvoid/good.com/", r.URL.Path)
		w.Write([]byte(`{"Blacklists":0,"Details":"clean"}`))
	})
	mux.HandleFunc("/mx/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		assert.Equal(t, "Bearer mx-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"Health":"Healthy"}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func endpointConfig(t *testing.T, dir, base string) string {
	return writeFile(t, dir, "config.yaml", `
timeout: 2s
providers:
  apivoid:
    endpoint: `+base+`/apivoid/
  ipvoid:
    endpoint: `+base+`/ipvoid/{domain}/
  mxtoolbox:
    endpoint: `+base+`/mx/{domain}
`)
}

func setKeys(t *testing.T) {
	t.Setenv("APIVOID_API_KEY", "apivoid-key")
	t.Setenv("IPVOID_API_KEY", "ipvoid-key")
	t.Setenv("IPVVOID_API_KEY", "")
	t.Setenv("MXTOOLBOX_API_KEY", "mx-key")
}

func TestRun_EndToEnd(t *testing.T) {
	var calls int32
	server := fakeProviders(t, &calls)
	setKeys(t)

	dir := t.TempDir()
	preset := writeFile(t, dir, "preset.txt", "evil.com\n")
	websites := writeFile(t, dir, "websites.txt", "evil.com\n\ngood.com\nGOOD.com\n")
	output := filepath.Join(dir, "report.txt")
	metricsFile := filepath.Join(dir, "checker.prom")

	cfg, err := ParseArgs([]string{
		"--config", endpointConfig(t, dir, server.URL),
		"--env-file", filepath.Join(dir, "missing.env"),
		"--metrics-file", metricsFile,
		"-o", output,
		preset, websites,
	})
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	require.NoError(t, Run(context.Background(), cfg, discardLogger(), &stdout, &stderr))
	assert.Empty(t, stdout.String())

	// evil.com is a preset hit; good.com hits each provider once
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	report := string(data)

	assert.True(t, strings.HasPrefix(report, "Report Generated on "))
	assert.Contains(t, report, "\nWebsite: evil.com\n  Preset List Status: Unsafe\n")
	assert.Contains(t, report, `
Website: good.com
  APIVoid Reputation:
    reputation_score: 90
    blacklist_status: {"detections":0}
  IPVoid Reputation:
    blacklist_count: 0
    details: clean
  MXToolbox Reputation:
    health_status: Healthy
    details: N/A
`)
	assert.NotContains(t, report, "GOOD.com")

	metrics, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `domain_checks_total{outcome="preset"} 1`)
}

func TestRun_JSONToStdoutWithMissingKeys(t *testing.T) {
	var calls int32
	server := fakeProviders(t, &calls)
	t.Setenv("APIVOID_API_KEY", "")
	t.Setenv("IPVOID_API_KEY", "")
	t.Setenv("IPVVOID_API_KEY", "")
	t.Setenv("MXTOOLBOX_API_KEY", "")

	dir := t.TempDir()
	preset := writeFile(t, dir, "preset.txt", "")

	cfg, err := ParseArgs([]string{
		"--config", endpointConfig(t, dir, server.URL),
		"--env-file", filepath.Join(dir, "missing.env"),
		"--format", "json",
		"-w", "good.com",
		preset,
	})
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, Run(context.Background(), cfg, discardLogger(), &stdout, io.Discard))
	assert.Zero(t, atomic.LoadInt32(&calls))

	var decoded struct {
		Domains []struct {
			Domain    string                       `json:"domain"`
			Providers map[string]map[string]string `json:"providers"`
		} `json:"domains"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
	require.Len(t, decoded.Domains, 1)
	for _, name := range []string{"APIVoid", "IPVoid", "MXToolbox"} {
		assert.Equal(t, "API key not provided", decoded.Domains[0].Providers[name]["error"], name)
	}
}

func TestRun_EnvFileKeys(t *testing.T) {
	var calls int32
	server := fakeProviders(t, &calls)
	t.Setenv("APIVOID_API_KEY", "")
	t.Setenv("IPVOID_API_KEY", "")
	t.Setenv("IPVVOID_API_KEY", "")
	t.Setenv("MXTOOLBOX_API_KEY", "")
	os.Unsetenv("APIVOID_API_KEY")
	os.Unsetenv("IPVOID_API_KEY")
	os.Unsetenv("IPVVOID_API_KEY")
	os.Unsetenv("MXTOOLBOX_API_KEY")

	dir := t.TempDir()
	preset := writeFile(t, dir, "preset.txt", "")
	envFile := writeFile(t, dir, ".env", "APIVOID_API_KEY=apivoid-key\nIPVVOID_API_KEY=ipvoid-key\nMXTOOLBOX_API_KEY=mx-key\n")

	cfg, err := ParseArgs([]string{
		"--config", endpointConfig(t, dir, server.URL),
		"--env-file", envFile,
		"-w", "good.com",
		preset,
	})
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, Run(context.Background(), cfg, discardLogger(), &stdout, io.Discard))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.NotContains(t, stdout.String(), "error:")
}

func TestRun_DebugLogsDomains(t *testing.T) {
	dir := t.TempDir()
	preset := writeFile(t, dir, "preset.txt", "evil.com\n")
	websites := writeFile(t, dir, "websites.txt", "evil.com\nEVIL.com\nexample1.com\n")

	cfg, err := ParseArgs([]string{"--env-file", filepath.Join(dir, "missing.env"), "-v", preset, websites})
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	require.NoError(t, Run(context.Background(), cfg, logger, io.Discard, io.Discard))

	out := logs.String()
	assert.Contains(t, out, "websites loaded from file")
	assert.Contains(t, out, `domains="[evil.com EVIL.com example1.com]"`)
	assert.Contains(t, out, "combined list of unique websites")
	assert.Contains(t, out, `domains="[evil.com example1.com]"`)
}

func TestRun_MissingPresetList(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "report.txt")

	cfg, err := ParseArgs([]string{"--env-file", filepath.Join(dir, "missing.env"), "-o", output, "-w", "good.com", filepath.Join(dir, "missing.txt")})
	require.NoError(t, err)

	err = Run(context.Background(), cfg, discardLogger(), io.Discard, io.Discard)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Contains(t, err.Error(), "failed to load preset list")

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_MissingWebsitesFile(t *testing.T) {
	dir := t.TempDir()
	preset := writeFile(t, dir, "preset.txt", "evil.com\n")

	cfg, err := ParseArgs([]string{"--env-file", filepath.Join(dir, "missing.env"), preset, filepath.Join(dir, "missing.txt")})
	require.NoError(t, err)

	err = Run(context.Background(), cfg, discardLogger(), io.Discard, io.Discard)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_NoDomains(t *testing.T) {
	dir := t.TempDir()
	preset := writeFile(t, dir, "preset.txt", "evil.com\n")
	websites := writeFile(t, dir, "websites.txt", "\n   \n\n")
	output := filepath.Join(dir, "report.txt")

	cfg, err := ParseArgs([]string{"--env-file", filepath.Join(dir, "missing.env"), "-o", output, preset, websites})
	require.NoError(t, err)

	var stdout bytes.Buffer
	err = Run(context.Background(), cfg, discardLogger(), &stdout, io.Discard)
	assert.ErrorIs(t, err, ErrNoDomains)
	assert.Empty(t, stdout.String())

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	preset := writeFile(t, dir, "preset.txt", "")
	bad := writeFile(t, dir, "config.yaml", "timeout: 0s\n")

	cfg, err := ParseArgs([]string{"--config", bad, "--env-file", filepath.Join(dir, "missing.env"), "-w", "good.com", preset})
	require.NoError(t, err)

	err = Run(context.Background(), cfg, discardLogger(), io.Discard, io.Discard)
	assert.ErrorContains(t, err, "timeout must be > 0")
}

func TestRun_ExtraPresetDomains(t *testing.T) {
	dir := t.TempDir()
	preset := writeFile(t, dir, "preset.txt", "")

	cfg, err := ParseArgs([]string{"--env-file", filepath.Join(dir, "missing.env"), "--progress", "-w", "Example2.com", preset})
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	require.NoError(t, Run(context.Background(), cfg, discardLogger(), &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Website: Example2.com\n  Preset List Status: Unsafe\n")
	assert.Contains(t, stderr.String(), "Reputation Check Complete")
}

func TestRun_Cancelled(t *testing.T) {
	dir := t.TempDir()
	preset := writeFile(t, dir, "preset.txt", "")
	output := filepath.Join(dir, "report.txt")

	cfg, err := ParseArgs([]string{"--env-file", filepath.Join(dir, "missing.env"), "-o", output, "-w", "example1.com", preset})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = Run(ctx, cfg, discardLogger(), io.Discard, io.Discard)
	assert.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}
