package tuitest

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestScreenBufferMatchesPlainText(t *testing.T) {
	var screen screenBuffer
	screen.Write([]byte("\x1b[1mRefine\x1b[0m"))
	screen.Write([]byte(" Prompt"))
	if !screen.containsPlain("Refine Prompt") {
		t.Fatal("expected styled chunks to match as plain text")
	}
	if screen.containsPlain("Refining") {
		t.Fatal("unexpected match")
	}
}

func TestPlayStepWaitForHonoursContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := playStep(ctx, nil, &screenBuffer{}, Step{WaitFor: "never painted"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestWithDefaults(t *testing.T) {
	cfg := withDefaults(Config{Width: 80})
	if cfg.Width != 80 || cfg.Height != defaultHeight || cfg.Timeout != defaultTimeout {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
}

func TestBuildEnvKeepsExplicitTerm(t *testing.T) {
	t.Setenv("TERM", "")
	env := buildEnv([]string{"TERM=dumb"})
	last := ""
	for _, entry := range env {
		if len(entry) > 5 && entry[:5] == "TERM=" {
			last = entry
		}
	}
	if last != "TERM=dumb" {
		t.Fatalf("expected explicit TERM to win, got %q", last)
	}
}
