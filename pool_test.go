package mdpdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"
)

// Compile-time interface check.
var _ interface {
	Acquire(context.Context) (*Converter, error)
	Release(*Converter)
	Size() int
	Close() error
} = (*ConverterPool)(nil)

// syncPDFConverter is a mockPDFConverter safe to share between converters.
type syncPDFConverter struct {
	mu     sync.Mutex
	calls  int
	closes int
}

func (m *syncPDFConverter) ToPDF(context.Context, string, *pdfOptions) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return []byte("%PDF-1.7 mock"), nil
}

func (m *syncPDFConverter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	return nil
}

func newTestPool(t *testing.T, n int) (*ConverterPool, *syncPDFConverter) {
	t.Helper()

	mock := &syncPDFConverter{}
	pool, err := NewConverterPool(n, withPDFConverter(mock))
	if err != nil {
		t.Fatalf("NewConverterPool() error = %v", err)
	}
	t.Cleanup(func() { _ = pool.Close() })
	return pool, mock
}

// ---------------------------------------------------------------------------
// TestResolvePoolSize
// ---------------------------------------------------------------------------

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit takes priority", 4, 4},
		{"explicit=1 for sequential", 1, 1},
		{"explicit is capped", 64, MaxPoolSize},
		{"zero uses auto calculation", 0, min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize)},
		{"negative uses auto calculation", -3, min(max(gomaxprocs/cpuDivisor, MinPoolSize), MaxPoolSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolvePoolSize(tt.workers); got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConverterPool
// ---------------------------------------------------------------------------

func TestNewConverterPool_InvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := NewConverterPool(2, withPDFConverter(&syncPDFConverter{}), WithTheme("nope"))
	if !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("NewConverterPool() error = %v, want ErrUnknownTheme", err)
	}
}

func TestConverterPool_SizeFloor(t *testing.T) {
	t.Parallel()

	pool, _ := newTestPool(t, 0)
	if pool.Size() != 1 {
		t.Errorf("Size() = %d, want 1", pool.Size())
	}
}

func TestConverterPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool, _ := newTestPool(t, 2)
	ctx := context.Background()

	a, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatal(err)
	}
	b, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two acquisitions returned the same converter")
	}

	// Pool exhausted: acquisition waits until the deadline.
	short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if _, err := pool.Acquire(short); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire() on exhausted pool error = %v, want DeadlineExceeded", err)
	}

	pool.Release(a)
	c, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if c != a {
		t.Error("released converter should be reused")
	}
	pool.Release(b)
	pool.Release(c)
}

func TestConverterPool_Close(t *testing.T) {
	t.Parallel()

	mock := &syncPDFConverter{}
	pool, err := NewConverterPool(3, withPDFConverter(mock))
	if err != nil {
		t.Fatal(err)
	}

	conv, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	extra, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	pool.Release(conv)

	if err := pool.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if mock.closes != 2 {
		t.Errorf("closed %d converters, want 2", mock.closes)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	// Releasing after close must not panic.
	pool.Release(extra)

	if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Acquire() after Close error = %v, want ErrPoolClosed", err)
	}
}

func TestConverterPool_ConvertBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	const n = 12
	for i := range n {
		writeFile(t, filepath.Join(dir, fmt.Sprintf("doc%02d.md", i)), fmt.Sprintf("# Doc %d", i))
	}

	pool, mock := newTestPool(t, 4)
	results, err := pool.ConvertBatch(context.Background(), BatchJob{Dir: dir})
	if err != nil {
		t.Fatalf("ConvertBatch() error = %v", err)
	}
	if len(results) != n {
		t.Fatalf("got %d results, want %d", len(results), n)
	}
	for i, r := range results {
		want := filepath.Join(dir, fmt.Sprintf("doc%02d.md", i))
		if r.Source != want {
			t.Errorf("results[%d].Source = %s, want %s", i, r.Source, want)
		}
		if r.Err != nil {
			t.Errorf("%s: %v", r.Source, r.Err)
		}
		if _, err := os.Stat(r.Output); err != nil {
			t.Errorf("%s not written", r.Output)
		}
	}
	if mock.calls != n {
		t.Errorf("ToPDF called %d times, want %d", mock.calls, n)
	}
}

func TestConverterPool_ConvertFiles_UsesGivenList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a.md", "b.md"} {
		writeFile(t, filepath.Join(dir, name), "# "+name)
	}
	files, err := Discover(BatchJob{Dir: dir})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	// Changes after discovery are not picked up.
	writeFile(t, filepath.Join(dir, "c.md"), "# late")
	if err := os.Remove(files[1].Source); err != nil {
		t.Fatal(err)
	}

	pool, _ := newTestPool(t, 2)
	results := pool.ConvertFiles(context.Background(), BatchJob{Dir: dir}, files)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Err != nil {
		t.Errorf("%s: %v", results[0].Source, results[0].Err)
	}
	if !errors.Is(results[1].Err, ErrSourceNotFound) {
		t.Errorf("%s error = %v, want ErrSourceNotFound", results[1].Source, results[1].Err)
	}
	if got := pool.ConvertFiles(context.Background(), BatchJob{}, nil); len(got) != 0 {
		t.Errorf("ConvertFiles(nil) = %v, want empty", got)
	}
}

func TestConverterPool_ConvertBatch_BadJob(t *testing.T) {
	t.Parallel()

	pool, _ := newTestPool(t, 2)
	_, err := pool.ConvertBatch(context.Background(), BatchJob{Dir: filepath.Join(t.TempDir(), "missing")})
	if !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("ConvertBatch() error = %v, want ErrSourceNotFound", err)
	}
}
