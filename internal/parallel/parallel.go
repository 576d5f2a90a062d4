// Package parallel provides the bounded worker pool used for per-sample
// gradient computation. The work is CPU-bound and side-effect free per index,
// so the pool offers no cancellation, only a full join before returning.
package parallel

import (
	"errors"
	"runtime"
	"sync"
)

// Config controls how work is spread across goroutines.
type Config struct {
	Workers int // Upper bound on concurrent goroutines. <=1 means sequential.
}

// DefaultConfig sizes the pool to the CPU count.
func DefaultConfig() Config {
	return Config{Workers: runtime.NumCPU()}
}

// For executes f(i) for every i in [0, n) and returns after all calls have
// completed. Each index is handled by exactly one goroutine; f must not
// depend on ordering between indices.
func For(n int, f func(i int), cfg Config) {
	if cfg.Workers <= 1 || n < 2 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	workers := min(cfg.Workers, n)
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForErr is For with an error per index. Every index runs to completion even
// when earlier indices fail; each error lands in its own slot so no lock is
// needed. The joined error (nil when all succeeded) is returned after the
// full barrier.
func ForErr(n int, f func(i int) error, cfg Config) error {
	errs := make([]error, n)
	For(n, func(i int) {
		errs[i] = f(i)
	}, cfg)
	return errors.Join(errs...)
}
