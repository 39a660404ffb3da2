package gini

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

// LoadOptions controls parallel loading behavior and error handling.
type LoadOptions struct {
	// Parallel enables concurrent product loading.
	// When true, products are loaded using multiple worker goroutines.
	Parallel bool

	// Workers specifies the number of parallel loader goroutines.
	// If 0, defaults to runtime.NumCPU().
	// Only used when Parallel is true.
	Workers int

	// SkipErrors causes loading to continue even when individual files fail.
	// Failed files are skipped and errors are collected.
	// When false, the first error stops loading and is returned immediately.
	SkipErrors bool

	// Progress is an optional callback for tracking loading progress.
	// Called after each file is loaded (successfully or with error).
	// Parameters: (loaded, total) where loaded is count of files processed so far.
	Progress func(loaded, total int)

	// Logger receives one warning per failed file. Optional.
	Logger logrus.FieldLogger
}

// DefaultLoadOptions returns load options with sensible defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
		Progress:   nil,
		Logger:     nil,
	}
}

// LoadProductsParallel loads multiple GINI files in parallel with progress
// reporting.
//
// Files are parsed by a pool of workers. The returned set keeps the order
// of paths, minus the files that failed.
//
// Example:
//
//	parser := gini.NewParser()
//	set, errs := gini.LoadProductsParallel(paths, parser, gini.LoadOptions{
//	    Parallel:   true,
//	    Workers:    8,
//	    SkipErrors: true,
//	    Progress: func(loaded, total int) {
//	        fmt.Printf("\rLoading: %d/%d", loaded, total)
//	    },
//	})
//	if len(errs) > 0 {
//	    fmt.Printf("\nSkipped %d files due to errors\n", len(errs))
//	}
func LoadProductsParallel(paths []string, parser Parser, opts LoadOptions) (*ProductSet, []error) {
	// Handle empty input
	if len(paths) == 0 {
		return &ProductSet{Products: []*Product{}}, nil
	}

	// If parallel loading disabled, fall back to serial
	if !opts.Parallel {
		return loadProductsSerial(paths, parser, opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	type loaded struct {
		index   int
		product *Product
		err     error
	}

	jobs := make(chan int)
	done := make(chan loaded)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				p, err := LoadProduct(paths[i], parser)
				done <- loaded{index: i, product: p, err: err}
			}
		}()
	}
	go func() {
		for i := range paths {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
		close(done)
	}()

	// Slots keep input order; nil marks a failed file.
	slots := make([]*Product, len(paths))
	var errs []error
	var fatal error
	n := 0
	for r := range done {
		n++
		if opts.Progress != nil {
			opts.Progress(n, len(paths))
		}
		if r.err == nil {
			slots[r.index] = r.product
			continue
		}

		path := paths[r.index]
		logLoadError(opts.Logger, path, r.err)
		err := fmt.Errorf("%s: %w", path, r.err)
		switch {
		case opts.SkipErrors:
			errs = append(errs, err)
		case fatal == nil:
			fatal = err
		}
	}

	// Every result has been received, so no worker is left blocked.
	if fatal != nil {
		for _, p := range slots {
			if p != nil {
				p.Close()
			}
		}
		return nil, []error{fatal}
	}

	products := slots[:0]
	for _, p := range slots {
		if p != nil {
			products = append(products, p)
		}
	}
	return &ProductSet{Products: products}, errs
}

// loadProductsSerial loads files one at a time (fallback when Parallel=false).
func loadProductsSerial(paths []string, parser Parser, opts LoadOptions) (*ProductSet, []error) {
	products := make([]*Product, 0, len(paths))
	var errs []error

	for i, path := range paths {
		if opts.Progress != nil {
			opts.Progress(i, len(paths))
		}

		product, err := LoadProduct(path, parser)
		if err != nil {
			logLoadError(opts.Logger, path, err)
			err = fmt.Errorf("%s: %w", path, err)
			if !opts.SkipErrors {
				for _, p := range products {
					p.Close()
				}
				return nil, []error{err}
			}
			errs = append(errs, err)
			continue
		}

		products = append(products, product)
	}

	if opts.Progress != nil {
		opts.Progress(len(paths), len(paths))
	}
	return &ProductSet{Products: products}, errs
}

func logLoadError(log logrus.FieldLogger, path string, err error) {
	if log == nil {
		return
	}
	log.WithError(err).WithField("path", path).Warn("error loading product")
}
