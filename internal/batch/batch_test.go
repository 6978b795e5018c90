package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"workbook/internal/driver"
	"workbook/internal/marker"
)

const undefinedStderr = "error[E0425]: cannot find value `x` in this scope\n --> src/main.rs:3:5\n  |\n3 |     x\n  |     ^ not found in this scope\n"

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestExpand(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a/one.json":     "{}",
		"a/b/two.json":   "{}",
		"a/b/notes.txt":  "",
		"three.json":     "{}",
		"dir.json/x.txt": "",
	})

	got, err := Expand(dir, []string{"**/*.json", "three.json"})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a", "b", "two.json"),
		filepath.Join(dir, "a", "one.json"),
		filepath.Join(dir, "three.json"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Expand (-want +got):\n%s", diff)
	}

	if _, err := Expand(dir, []string{"*.missing"}); !errors.Is(err, ErrNoFiles) {
		t.Fatalf("expected ErrNoFiles, got %v", err)
	}
	if _, err := Expand(dir, []string{"[bad"}); err == nil {
		t.Fatalf("expected error for malformed pattern")
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events map[string][]Status
}

func (s *recordingSink) OnEvent(evt Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.events == nil {
		s.events = make(map[string][]Status)
	}
	s.events[filepath.Base(evt.File)] = append(s.events[filepath.Base(evt.File)], evt.Status)
}

func TestRun(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"ok.json":     `{"success":true,"output":"hi\n","stderr":"","exitCode":0}`,
		"fail.json":   `{"success":false,"output":"","stderr":` + jsonString(undefinedStderr) + `,"exitCode":1}`,
		"broken.json": `{"success":`,
		"raw.txt":     undefinedStderr,
	})
	sink := &recordingSink{}
	board := marker.NewBoard()

	results, err := Run(context.Background(), Request{
		Patterns: []string{"*.json", "*.txt"},
		BaseDir:  dir,
		Jobs:     2,
		Input:    driver.InputAuto,
		Options:  driver.DefaultOptions(),
		Progress: sink,
		Board:    board,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var names []string
	for _, r := range results {
		names = append(names, filepath.Base(r.Path))
	}
	if diff := cmp.Diff([]string{"broken.json", "fail.json", "ok.json", "raw.txt"}, names); diff != "" {
		t.Fatalf("result order (-want +got):\n%s", diff)
	}

	// broken.json is not JSON with a stderr key, so auto mode reads it as raw text.
	broken, fail, ok, raw := results[0], results[1], results[2], results[3]
	if broken.Err != nil || !broken.Failed() {
		t.Fatalf("broken.json: err=%v records=%d", broken.Err, len(broken.Result.Records))
	}
	if fail.Err != nil || len(fail.Result.Records) != 1 || len(fail.Result.Markers) != 1 {
		t.Fatalf("fail.json: %+v", fail)
	}
	if ok.Failed() || len(ok.Result.Records) != 0 || ok.Result.Output != "hi\n" {
		t.Fatalf("ok.json: %+v", ok)
	}
	if raw.Result.Records[0].Code != "E0425" {
		t.Fatalf("raw.txt: %+v", raw.Result.Records)
	}

	if diff := cmp.Diff([]string{fail.Path, raw.Path}, board.Namespaces()); diff != "" {
		t.Fatalf("board namespaces (-want +got):\n%s", diff)
	}

	want := map[string][]Status{
		"broken.json": {StatusQueued, StatusWorking, StatusWorking, StatusProblems},
		"fail.json":   {StatusQueued, StatusWorking, StatusWorking, StatusProblems},
		"ok.json":     {StatusQueued, StatusWorking, StatusWorking, StatusDone},
		"raw.txt":     {StatusQueued, StatusWorking, StatusWorking, StatusProblems},
	}
	if diff := cmp.Diff(want, sink.events); diff != "" {
		t.Fatalf("events (-want +got):\n%s", diff)
	}
}

func TestRunRecordsDecodeErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"bad.json":  `{"success":`,
		"good.json": `{"success":true,"output":"","stderr":"","exitCode":0}`,
	})
	results, err := Run(context.Background(), Request{
		Patterns: []string{"*.json"},
		BaseDir:  dir,
		Input:    driver.InputResult,
		Options:  driver.DefaultOptions(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if results[0].Err == nil || !results[0].Failed() {
		t.Fatalf("expected decode error for bad.json")
	}
	if results[1].Err != nil || results[1].Failed() {
		t.Fatalf("good.json must succeed: %+v", results[1])
	}
}

func TestRunCancelled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.txt": "x", "b.txt": "y"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Request{Patterns: []string{"*.txt"}, BaseDir: dir, Jobs: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{File: "a", Status: StatusDone})
	if got := <-ch; got.File != "a" || !got.Status.Terminal() {
		t.Fatalf("unexpected event: %+v", got)
	}
	ChannelSink{}.OnEvent(Event{})
	if StatusWorking.Terminal() {
		t.Fatalf("working must not be terminal")
	}
}

func jsonString(s string) string {
	out := []byte{'"'}
	for _, r := range s {
		switch r {
		case '"', '\\':
			out = append(out, '\\', byte(r))
		case '\n':
			out = append(out, '\\', 'n')
		default:
			out = append(out, string(r)...)
		}
	}
	return string(append(out, '"'))
}
