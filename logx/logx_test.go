package logx

import "testing"

func TestSetDebugTogglesEnabled(t *testing.T) {
	SetDebug(false)
	if Enabled() {
		t.Fatalf("expected Enabled() to be false after SetDebug(false)")
	}

	SetDebug(true)
	if !Enabled() {
		t.Fatalf("expected Enabled() to be true after SetDebug(true)")
	}
	SetDebug(false)
}

func TestGetReturnsAUsableLogger(t *testing.T) {
	l := Get("test")
	// Tracef is a no-op with debug off, and Warningf always runs;
	// neither should panic.
	l.Tracef("hidden %d", 1)
	l.Warningf("visible %d", 2)
}
