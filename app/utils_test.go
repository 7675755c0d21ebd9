package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
)

type testApp struct {
	*App
	fs             vfs.FileSystem
	stdout, stderr *safeBuffer
}

func newTestApp(ctx context.Context, opts ...Option) (*testApp, error) {
	var (
		fs             = memoryfs.New()
		stdout, stderr = newSafeBuffer(), newSafeBuffer()
	)

	opts = append([]Option{
		WithContext(ctx),
		WithFDs(bytes.NewReader(nil), stdout, stderr),
		WithFS(fs),
		WithLogger(false),
	}, opts...)
	app, err := New("banyan", "/config.json", opts...)
	if err != nil {
		return nil, err
	}

	return &testApp{App: app, fs: fs, stdout: stdout, stderr: stderr}, nil
}

func (ta *testApp) Run(args ...string) error {
	return ta.App.Run(args)
}

// writeFiles creates files with the given contents, and any missing parent
// directories.
func (ta *testApp) writeFiles(files map[string]string) error {
	for name, data := range files {
		if err := ta.fs.MkdirAll(path.Dir(name), 0o755); err != nil {
			return err
		}
		if err := vfs.WriteFile(ta.fs, name, []byte(data), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// waitFor polls buf until the regex pattern matches its contents, and returns
// the submatch at matchIdx. It fails if ctx is done or timeout is reached first.
func waitFor(ctx context.Context, buf *safeBuffer, rxPat string, matchIdx int, timeout time.Duration) (string, error) {
	rx := regexp.MustCompile(rxPat)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	for {
		if match := rx.FindStringSubmatch(buf.String()); len(match)-1 >= matchIdx {
			return match[matchIdx], nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return "", errors.New("timed out waiting for output matching " + rxPat)
		}
	}
}

// newTestContext returns a context that times out after timeout, and an
// assertion handling function that cancels the context prematurely and fails
// the test if the assertion fails. This is done to avoid waiting for the
// context timeout to be reached.
func newTestContext(t *testing.T, timeout time.Duration) (
	ctx context.Context, cancelCtx func(), assertHandler func(bool),
) {
	ctx, cancelCtx = context.WithTimeout(t.Context(), timeout)
	assertHandler = func(success bool) {
		if !success {
			cancelCtx()
			t.FailNow()
		}
	}

	return
}

// safeBuffer is a thread-safe buffer.
type safeBuffer struct {
	mx  sync.RWMutex
	buf *bytes.Buffer
}

var _ io.Writer = (*safeBuffer)(nil)

func newSafeBuffer() *safeBuffer {
	return &safeBuffer{buf: &bytes.Buffer{}}
}

func (b *safeBuffer) Write(p []byte) (n int, err error) {
	b.mx.Lock()
	defer b.mx.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mx.RLock()
	defer b.mx.RUnlock()
	return b.buf.String()
}
