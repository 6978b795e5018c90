package ui

import (
	"strings"
	"testing"

	"workbook/internal/batch"
)

func TestProgressModelTracksEvents(t *testing.T) {
	m := NewProgressModel("diagnosing", []string{"a.json", "b.json"}, nil).(*progressModel)

	m.applyEvent(batch.Event{File: "a.json", Stage: batch.StageRead, Status: batch.StatusWorking})
	if m.items[0].status != "reading" || m.items[0].final {
		t.Fatalf("unexpected item: %+v", m.items[0])
	}
	if got := m.percent(); got != 0.1 {
		t.Fatalf("percent = %v, want 0.1", got)
	}

	m.applyEvent(batch.Event{File: "a.json", Stage: batch.StageDiagnose, Status: batch.StatusProblems})
	m.applyEvent(batch.Event{File: "b.json", Stage: batch.StageRead, Status: batch.StatusError})
	m.applyEvent(batch.Event{File: "unknown.json", Status: batch.StatusDone})
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v, want 1", got)
	}

	view := m.View()
	for _, want := range []string{"(2/2)", "problems", "error", "a.json", "b.json"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestProgressModelQuitsWhenEventsClose(t *testing.T) {
	ch := make(chan batch.Event)
	close(ch)
	m := NewProgressModel("x", []string{"a"}, ch).(*progressModel)
	if _, ok := m.listenForEvent()().(doneMsg); !ok {
		t.Fatalf("expected doneMsg after channel close")
	}
	if _, cmd := m.Update(doneMsg{}); cmd == nil || !m.done {
		t.Fatalf("expected quit command and done state")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 0); got != "abc" {
		t.Fatalf("truncate = %q", got)
	}
}
