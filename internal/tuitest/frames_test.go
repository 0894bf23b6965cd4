package tuitest

import "testing"

func TestParseFramesStripsANSIAndSplitsOnClear(t *testing.T) {
	raw := []byte("\x1b[2J\x1b[H\x1b[1mCore Intent\x1b[0m   \r\n\x1b[2Jsecond frame\r\n\r\n")
	frames := parseFrames(raw)
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d: %#v", len(frames), frames)
	}
	if frames[0].Plain != "Core Intent" {
		t.Fatalf("unexpected first frame %q", frames[0].Plain)
	}
	rec := &Recording{Frames: frames}
	if !rec.Contains("second frame") {
		t.Fatal("Contains should search every frame")
	}
	if last, ok := rec.FinalFrame(); !ok || last.Index != 1 {
		t.Fatalf("unexpected final frame %#v", last)
	}
}
