package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/clipsmith/clipsmith-go/internal/adapter"
	"github.com/clipsmith/clipsmith-go/internal/app"
	"github.com/clipsmith/clipsmith-go/internal/domain"
	"github.com/clipsmith/clipsmith-go/internal/service"
	"github.com/clipsmith/clipsmith-go/internal/service/ai"
	"go.uber.org/zap"
)

type fakeGenerator struct {
	response    string
	delay       time.Duration
	inflight    int32
	maxInflight int32
}

func (f *fakeGenerator) Generate(_ context.Context, _ ai.GenerateRequest) (string, error) {
	n := atomic.AddInt32(&f.inflight, 1)
	for {
		max := atomic.LoadInt32(&f.maxInflight)
		if n <= max || atomic.CompareAndSwapInt32(&f.maxInflight, max, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	atomic.AddInt32(&f.inflight, -1)
	return f.response, nil
}

func (f *fakeGenerator) Provider() string { return "Fake" }
func (f *fakeGenerator) Model() string    { return "fake-model" }

func testContainer(gen ai.Generator) *app.Container {
	return &app.Container{
		Logger:    zap.NewNop(),
		Analyzer:  service.NewAnalyzerService(gen, map[domain.Platform]string{}, zap.NewNop()),
		Formatter: adapter.NewResultFormatter(),
	}
}

func TestAnalyzeToleratesUnresolvableSourceURL(t *testing.T) {
	source, err := service.NewSourceService("test-key", nil, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to build source service: %v", err)
	}

	gen := &fakeGenerator{response: `{"summary": "ok", "clips": []}`}
	container := testContainer(gen)
	container.Source = source

	settings := domain.DefaultSettings()
	settings.SourceURL = "https://example.com/v"

	var out bytes.Buffer
	if err := analyze(context.Background(), container, settings, cliOptions{}, "a transcript", "", &out); err != nil {
		t.Fatalf("expected no error for unresolvable source URL, got %v", err)
	}

	if strings.Contains(out.String(), "Source:") {
		t.Fatalf("no source line expected when lookup resolves nothing:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "No viral clip candidates found.") {
		t.Fatalf("analysis output missing:\n%s", out.String())
	}
}

func TestAnalyzeRejectsBlankTranscript(t *testing.T) {
	container := testContainer(&fakeGenerator{response: `{"summary": "ok", "clips": []}`})

	var out bytes.Buffer
	if err := analyze(context.Background(), container, domain.DefaultSettings(), cliOptions{}, "   ", "", &out); err == nil {
		t.Fatalf("expected error for blank transcript")
	}
}

func writeBatchFixtures(t *testing.T, n int) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, "transcript"+string(rune('a'+i))+".txt")
		if err := os.WriteFile(path, []byte("a transcript"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
		paths = append(paths, path)
	}
	return paths
}

func TestRunBatchOverlapsGenerationCalls(t *testing.T) {
	gen := &fakeGenerator{
		response: `{"summary": "ok", "clips": []}`,
		delay:    100 * time.Millisecond,
	}
	container := testContainer(gen)
	paths := writeBatchFixtures(t, 3)

	var out bytes.Buffer
	if failed := runBatch(context.Background(), container, domain.DefaultSettings(), cliOptions{}, paths, &out); failed != 0 {
		t.Fatalf("expected no failures, got %d", failed)
	}

	if max := atomic.LoadInt32(&gen.maxInflight); max < 2 {
		t.Fatalf("expected batch generation calls to overlap, max in-flight was %d", max)
	}

	for _, path := range paths {
		if !strings.Contains(out.String(), "==> "+path) {
			t.Fatalf("missing output for %s:\n%s", path, out.String())
		}
	}
}

func TestRunBatchCountsFailedItems(t *testing.T) {
	gen := &fakeGenerator{response: `{"summary": "ok", "clips": []}`}
	container := testContainer(gen)
	paths := writeBatchFixtures(t, 2)
	paths = append(paths, filepath.Join(t.TempDir(), "missing.txt"))

	var out bytes.Buffer
	failed := runBatch(context.Background(), container, domain.DefaultSettings(), cliOptions{}, paths, &out)
	if failed != 1 {
		t.Fatalf("expected 1 failed item, got %d", failed)
	}
	if strings.Contains(out.String(), "missing.txt") {
		t.Fatalf("failed item must not print a result header:\n%s", out.String())
	}
}
