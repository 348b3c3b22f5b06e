package kmz

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
)

// BatchOptions controls parallel batch conversion and error handling.
type BatchOptions struct {
	// Parallel enables concurrent conversion.
	// When true, archives are converted using multiple worker goroutines.
	Parallel bool

	// Workers specifies the number of conversion goroutines.
	// If 0, defaults to runtime.NumCPU().
	// Only used when Parallel is true.
	Workers int

	// SkipErrors causes the batch to continue even when individual archives
	// fail. Failed archives are skipped and their errors collected.
	// When false, the first error stops the batch and is returned immediately.
	SkipErrors bool

	// Progress is an optional callback for tracking batch progress.
	// Called after each archive is converted (successfully or with error).
	Progress func(done, total int)

	// ErrorLog is an optional writer for detailed error reporting.
	ErrorLog io.Writer
}

// DefaultBatchOptions returns batch options with sensible defaults.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		Parallel:   true,
		Workers:    runtime.NumCPU(),
		SkipErrors: true,
	}
}

// BatchOutput pairs an input path with its conversion result.
type BatchOutput struct {
	Input  string
	Result *ExportResult
}

// ConvertFile reads one KMZ archive from disk and converts it.
func ConvertFile(path string, opts ConvertOptions) (*BatchOutput, error) {
	archive, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}

	result, err := Convert(archive, opts)
	if err != nil {
		return nil, err
	}
	return &BatchOutput{Input: path, Result: result}, nil
}

// ConvertFilesParallel converts multiple KMZ archives with a worker pool.
//
// Each worker owns its inputs and staging buffers, so runs share no mutable
// state. Outputs are returned in input order regardless of completion order;
// failed inputs are absent from the output slice and reported in the error
// list when SkipErrors is set.
//
// Example:
//
//	outputs, errs := kmz.ConvertFilesParallel(paths, kmz.DefaultConvertOptions(), kmz.BatchOptions{
//	    Parallel:   true,
//	    Workers:    8,
//	    SkipErrors: true,
//	    Progress: func(done, total int) {
//	        fmt.Printf("\rConverting: %d/%d", done, total)
//	    },
//	})
func ConvertFilesParallel(paths []string, convertOpts ConvertOptions, opts BatchOptions) ([]*BatchOutput, []error) {
	if len(paths) == 0 {
		return []*BatchOutput{}, nil
	}

	if !opts.Parallel {
		return convertFilesSerial(paths, convertOpts, opts)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	type convertResult struct {
		index  int
		output *BatchOutput
		err    error
	}

	jobs := make(chan int, len(paths))
	results := make(chan convertResult, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				output, err := ConvertFile(paths[index], convertOpts)
				results <- convertResult{index: index, output: output, err: err}
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	outputByIndex := make(map[int]*BatchOutput)
	var errs []error
	done := 0

	for result := range results {
		done++

		if opts.Progress != nil {
			opts.Progress(done, len(paths))
		}

		if result.err != nil {
			err := fmt.Errorf("%s: %w", paths[result.index], result.err)

			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error converting archive: %v\n", err)
			}

			if opts.SkipErrors {
				errs = append(errs, err)
				continue
			}
			return nil, []error{err}
		}

		outputByIndex[result.index] = result.output
	}

	// Rebuild input order.
	outputs := make([]*BatchOutput, 0, len(outputByIndex))
	for i := range paths {
		if output, ok := outputByIndex[i]; ok {
			outputs = append(outputs, output)
		}
	}

	return outputs, errs
}

// convertFilesSerial converts archives one at a time (fallback when Parallel=false).
func convertFilesSerial(paths []string, convertOpts ConvertOptions, opts BatchOptions) ([]*BatchOutput, []error) {
	outputs := make([]*BatchOutput, 0, len(paths))
	var errs []error

	for i, path := range paths {
		output, err := ConvertFile(path, convertOpts)

		if opts.Progress != nil {
			opts.Progress(i+1, len(paths))
		}

		if err != nil {
			err := fmt.Errorf("%s: %w", path, err)

			if opts.ErrorLog != nil {
				fmt.Fprintf(opts.ErrorLog, "Error converting archive: %v\n", err)
			}

			if opts.SkipErrors {
				errs = append(errs, err)
				continue
			}
			return nil, []error{err}
		}

		outputs = append(outputs, output)
	}

	return outputs, errs
}
