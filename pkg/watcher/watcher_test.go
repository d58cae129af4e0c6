package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func startWatcher(t *testing.T, paths []string, opts ...Option) *Watcher {
	t.Helper()
	w, err := New(paths, opts...)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestDebouncer_CoalescesRapidTriggers(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var callCount atomic.Int32
	for i := 0; i < 10; i++ {
		d.Trigger(func() { callCount.Add(1) })
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(150 * time.Millisecond)

	if count := callCount.Load(); count != 1 {
		t.Errorf("expected 1 callback invocation, got %d", count)
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var called atomic.Bool
	d.Trigger(func() { called.Store(true) })
	d.Cancel()
	time.Sleep(100 * time.Millisecond)

	if called.Load() {
		t.Error("callback should not have been invoked after cancel")
	}
}

func TestDebouncer_DefaultDuration(t *testing.T) {
	if d := NewDebouncer(0); d.Duration() != DefaultDebounceDuration {
		t.Errorf("expected default duration %v, got %v", DefaultDebounceDuration, d.Duration())
	}
}

func TestNew_NoPaths(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoPaths) {
		t.Fatalf("expected ErrNoPaths, got %v", err)
	}
}

func TestNew_DeduplicatesPaths(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	w, err := New([]string{a, a, filepath.Join(dir, ".", "a.json")})
	if err != nil {
		t.Fatal(err)
	}
	if got := w.Paths(); len(got) != 1 {
		t.Fatalf("expected one path, got %v", got)
	}
}

func TestWatcher_DetectsFileChange(t *testing.T) {
	tmpFile := writeTemp(t, t.TempDir(), "records.json", "[]")

	changes := make(chan []string, 4)
	startWatcher(t, []string{tmpFile},
		WithDebounceDuration(50*time.Millisecond),
		WithOnChange(func(p []string) { changes <- p }),
	)

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(tmpFile, []byte(`[{"project_name":"P"}]`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-changes:
		abs, _ := filepath.Abs(tmpFile)
		if len(paths) != 1 || paths[0] != abs {
			t.Errorf("unexpected changed paths %v", paths)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected change to be detected")
	}
}

func TestWatcher_PollingCoalescesSeveralFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeTemp(t, dir, "a.json", "[]")
	b := writeTemp(t, dir, "b.jsonl", "")

	w := startWatcher(t, []string{a, b},
		WithDebounceDuration(100*time.Millisecond),
		WithPollInterval(20*time.Millisecond),
		WithForcePoll(true),
	)
	if !w.IsPolling() {
		t.Fatal("expected watcher to be in polling mode")
	}

	time.Sleep(40 * time.Millisecond)
	writeTemp(t, dir, "a.json", "[ ]")
	writeTemp(t, dir, "b.jsonl", "{}\n")

	select {
	case paths := <-w.Changed():
		if len(paths) != 2 {
			t.Errorf("expected both files in one report, got %v", paths)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change notification")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	target := writeTemp(t, dir, "records.json", "[]")

	var calls atomic.Int32
	startWatcher(t, []string{target},
		WithDebounceDuration(20*time.Millisecond),
		WithOnChange(func([]string) { calls.Add(1) }),
	)

	time.Sleep(50 * time.Millisecond)
	writeTemp(t, dir, "other.json", "[]")
	time.Sleep(200 * time.Millisecond)

	if n := calls.Load(); n != 0 {
		t.Errorf("sibling write triggered %d reports", n)
	}
}

func TestWatcher_FileCreatedLater(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "later.json")

	w := startWatcher(t, []string{path},
		WithDebounceDuration(20*time.Millisecond),
		WithPollInterval(20*time.Millisecond),
		WithForcePoll(true),
	)

	time.Sleep(40 * time.Millisecond)
	writeTemp(t, dir, "later.json", "[]")

	select {
	case <-w.Changed():
	case <-time.After(2 * time.Second):
		t.Fatal("creation of a missing file should be reported")
	}
}

func TestWatcher_EnvForcePoll(t *testing.T) {
	t.Setenv(EnvForcePoll, "1")
	tmpFile := writeTemp(t, t.TempDir(), "records.json", "[]")

	w := startWatcher(t, []string{tmpFile}, WithPollInterval(25*time.Millisecond))
	if !w.IsPolling() {
		t.Fatalf("expected polling mode when %s is set", EnvForcePoll)
	}
}

func TestWatcher_RemoteFilesystem_UsesPolling(t *testing.T) {
	tmpFile := writeTemp(t, t.TempDir(), "records.json", "[]")

	orig := detectFilesystemTypeFunc
	detectFilesystemTypeFunc = func(string) FilesystemType { return FSTypeNFS }
	t.Cleanup(func() { detectFilesystemTypeFunc = orig })

	w := startWatcher(t, []string{tmpFile}, WithPollInterval(25*time.Millisecond))
	if !w.IsPolling() {
		t.Fatal("expected watcher to use polling on remote filesystem")
	}
	if got := w.FilesystemType(); got != FSTypeNFS {
		t.Fatalf("expected filesystem type %v, got %v", FSTypeNFS, got)
	}
}

func TestWatcher_FileRemoved(t *testing.T) {
	tmpFile := writeTemp(t, t.TempDir(), "records.json", "[]")

	var (
		errMu    sync.Mutex
		gotError error
	)
	startWatcher(t, []string{tmpFile},
		WithDebounceDuration(20*time.Millisecond),
		WithPollInterval(30*time.Millisecond),
		WithForcePoll(true),
		WithOnError(func(err error) {
			errMu.Lock()
			gotError = err
			errMu.Unlock()
		}),
	)

	time.Sleep(50 * time.Millisecond)
	if err := os.Remove(tmpFile); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)

	errMu.Lock()
	defer errMu.Unlock()
	if !errors.Is(gotError, ErrFileRemoved) {
		t.Errorf("expected ErrFileRemoved, got %v", gotError)
	}
}

func TestWatcher_StartStop(t *testing.T) {
	tmpFile := writeTemp(t, t.TempDir(), "records.json", "[]")

	w, err := New([]string{tmpFile})
	if err != nil {
		t.Fatal(err)
	}
	if w.IsStarted() {
		t.Error("watcher should not be started initially")
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !w.IsStarted() {
		t.Error("watcher should be started after Start()")
	}
	if err := w.Start(context.Background()); err != ErrAlreadyStarted {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}

	w.Stop()
	if w.IsStarted() {
		t.Error("watcher should not be started after Stop()")
	}
	w.Stop()
}

func TestWatcher_PollInterval(t *testing.T) {
	w, err := New([]string{"x.json"}, WithPollInterval(500*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	if got := w.PollInterval(); got != 500*time.Millisecond {
		t.Errorf("expected poll interval 500ms, got %v", got)
	}
}

func TestFilesystemType_String(t *testing.T) {
	tests := []struct {
		fsType   FilesystemType
		expected string
	}{
		{FSTypeUnknown, "unknown"},
		{FSTypeLocal, "local"},
		{FSTypeNFS, "nfs"},
		{FSTypeSMB, "smb"},
		{FSTypeSSHFS, "sshfs"},
		{FSTypeFUSE, "fuse"},
		{FilesystemType(99), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.fsType.String(); got != tc.expected {
			t.Errorf("FilesystemType(%d).String() = %q, expected %q", tc.fsType, got, tc.expected)
		}
	}
}

func TestEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"1", true},
		{"true", true},
		{"YES", true},
		{"y", true},
		{"On", true},
		{"0", false},
		{"false", false},
		{"", false},
		{"invalid", false},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("SUNBURST_TEST_ENV_BOOL", tc.value)
			if got := envBool("SUNBURST_TEST_ENV_BOOL"); got != tc.expected {
				t.Errorf("envBool(%q) = %v, expected %v", tc.value, got, tc.expected)
			}
		})
	}
}

func TestDetectFilesystemType(t *testing.T) {
	if got := DetectFilesystemType(""); got != FSTypeUnknown {
		t.Errorf("DetectFilesystemType(\"\") = %v, expected FSTypeUnknown", got)
	}

	var seen string
	orig := detectFilesystemTypeFunc
	detectFilesystemTypeFunc = func(p string) FilesystemType { seen = p; return FSTypeLocal }
	t.Cleanup(func() { detectFilesystemTypeFunc = orig })

	dir := t.TempDir()
	if got := DetectFilesystemType(filepath.Join(dir, "missing", "deeper.json")); got != FSTypeLocal {
		t.Errorf("unexpected type %v", got)
	}
	if seen != dir {
		t.Errorf("expected detection on nearest existing parent %s, got %s", dir, seen)
	}
}
