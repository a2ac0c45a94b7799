package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_DetectsFileChange(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Foo.kt"), []byte("class Foo\n"), 0o644))

	w, err := New(dir, 30*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	var calls int32
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		w.Run(ctx, func(context.Context) { atomic.AddInt32(&calls, 1) })
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Foo.kt"), []byte("class Foo { fun bar() {} }\n"), 0o644))

	time.Sleep(500 * time.Millisecond)
	cancel()
	<-done

	assert.NotZero(t, atomic.LoadInt32(&calls), "expected onChange to fire at least once after a watched file changed")
}

func TestWatcher_IgnoresExcludedDirs(t *testing.T) {
	dir := t.TempDir()
	buildDir := filepath.Join(dir, "build")
	require.NoError(t, os.MkdirAll(buildDir, 0o755))

	w, err := New(dir, 30*time.Millisecond, nil)
	require.NoError(t, err)
	defer w.Close()

	var calls int32
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		w.Run(ctx, func(context.Context) { atomic.AddInt32(&calls, 1) })
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(buildDir, "Gen.kt"), []byte("class Gen\n"), 0o644))

	time.Sleep(300 * time.Millisecond)
	cancel()
	<-done

	assert.Zero(t, atomic.LoadInt32(&calls), "expected no onChange for a file under an excluded directory")
}
