package core

import (
	"bytes"
	"strings"
	"testing"
)

type fakeScreen struct {
	finalized int
}

func (f *fakeScreen) Fini() { f.finalized++ }

func captureCrash(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	var out bytes.Buffer
	code := -1
	prevOut, prevExit := crashOut, crashExit
	crashOut = &out
	crashExit = func(c int) { code = c }
	t.Cleanup(func() {
		crashOut, crashExit = prevOut, prevExit
		RegisterScreen(nil)
	})
	return &out, &code
}

func TestHandleCrashFinalizesScreen(t *testing.T) {
	out, code := captureCrash(t)
	s := &fakeScreen{}
	RegisterScreen(s)

	HandleCrash("boom")

	if s.finalized != 1 {
		t.Errorf("screen finalized %d times, want 1", s.finalized)
	}
	if *code != 1 {
		t.Errorf("exit code = %d, want 1", *code)
	}
	if !strings.Contains(out.String(), "CRASH DETECTED: boom") || !strings.Contains(out.String(), "Stack Trace:") {
		t.Errorf("unexpected report:\n%s", out.String())
	}

	// A second crash must not finalize twice
	HandleCrash("again")
	if s.finalized != 1 {
		t.Errorf("screen finalized again after release")
	}
}

func TestHandleCrashNil(t *testing.T) {
	out, code := captureCrash(t)
	HandleCrash(nil)
	if out.Len() != 0 || *code != -1 {
		t.Errorf("nil panic value produced output or exit")
	}
}

func TestGoRecovers(t *testing.T) {
	_, code := captureCrash(t)
	done := make(chan struct{})
	crashExit = func(c int) {
		*code = c
		close(done)
	}

	Go(func() { panic("worker") })
	<-done
	if *code != 1 {
		t.Errorf("exit code = %d, want 1", *code)
	}
}
