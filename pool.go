package mdpdf

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("converter pool is closed")

// ConverterPool manages Converters for parallel processing.
// Each converter has its own browser instance. Converters after the first
// are created lazily on acquire.
type ConverterPool struct {
	size       int
	opts       []Option
	converters []*Converter
	sem        chan *Converter
	mu         sync.Mutex
	created    int
	closed     bool
}

// NewConverterPool creates a pool with capacity for n converters, all built
// with opts. The first converter is created immediately so that invalid
// options fail here.
func NewConverterPool(n int, opts ...Option) (*ConverterPool, error) {
	if n < 1 {
		n = 1
	}

	first, err := NewConverter(opts...)
	if err != nil {
		return nil, err
	}

	p := &ConverterPool{
		size:       n,
		opts:       opts,
		converters: make([]*Converter, 0, n),
		sem:        make(chan *Converter, n),
	}
	p.converters = append(p.converters, first)
	p.created = 1
	p.sem <- first
	return p, nil
}

// Acquire gets a converter from the pool, creating one if capacity allows.
// Blocks until one is released or ctx is done.
func (p *ConverterPool) Acquire(ctx context.Context) (*Converter, error) {
	select {
	case conv, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return conv, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		conv, err := NewConverter(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}

		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			_ = conv.Close()
			return nil, ErrPoolClosed
		}
		p.converters = append(p.converters, conv)
		p.mu.Unlock()
		return conv, nil
	}
	p.mu.Unlock()

	select {
	case conv, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return conv, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a converter to the pool.
// The lock is held while sending so Close cannot close the channel underneath;
// the channel has room for every converter, so the send never blocks.
func (p *ConverterPool) Release(conv *Converter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- conv
}

// Close releases all browser resources.
// Returns an aggregated error if multiple converters fail to close.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	// Drain idle converters so later receives see the closed channel.
	for len(p.sem) > 0 {
		<-p.sem
	}
	close(p.sem)
	converters := p.converters
	p.mu.Unlock()

	var errs []error
	for _, conv := range converters {
		if err := conv.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// ConvertBatch converts the job's files in parallel, one worker per pooled
// converter. Results come back in the same order as Converter.ConvertBatch
// and failures stay isolated per file.
func (p *ConverterPool) ConvertBatch(ctx context.Context, job BatchJob) ([]BatchResult, error) {
	files, err := Discover(job)
	if err != nil {
		return nil, err
	}
	return p.ConvertFiles(ctx, job, files), nil
}

// ConvertFiles converts files already listed by Discover in parallel.
// Results keep the order of files.
func (p *ConverterPool) ConvertFiles(ctx context.Context, job BatchJob, files []BatchFile) []BatchResult {
	results := make([]BatchResult, len(files))
	if len(files) == 0 {
		return results
	}

	workers := min(p.size, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := p.Acquire(ctx)
			if err != nil {
				for i := range jobs {
					results[i] = BatchResult{Source: files[i].Source, Output: files[i].Output, Err: err}
				}
				return
			}
			defer p.Release(conv)

			for i := range jobs {
				results[i] = conv.convertBatchFile(ctx, job, files[i])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return min(workers, MaxPoolSize)
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers.
	n := runtime.GOMAXPROCS(0) / cpuDivisor
	return max(MinPoolSize, min(n, MaxPoolSize))
}
