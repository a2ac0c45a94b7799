package sourceparse

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/c360studio/deadcode/internal/model"
)

// FileTask is one file queued for parsing.
type FileTask struct {
	Path     string
	Language Language
	Content  []byte
	ModTime  int64
}

// ParseResult pairs a parsed file with its parse error, mirroring the
// teacher's ParserPool result shape: a partial ParsedFile survives a parse
// error so the pipeline can still index whatever tree-sitter recovered.
type ParseResult struct {
	File  *ParsedFile
	Error error
}

// ProgressLogger tracks pool progress, grounded on the teacher's
// ParserPool.ProgressLogger interface.
type ProgressLogger interface {
	LogProgress(current, total int, file string)
	LogError(file string, err error)
}

// Pool distributes Kotlin/Java parsing across a fixed worker count. Each
// worker owns its own TreeSitterParser instance because tree-sitter parsers
// are not safe for concurrent use (§4.2, §5 concurrency model).
type Pool struct {
	workers int
	cache   *Cache
	verbose bool
	logger  ProgressLogger
}

// NewPool creates a parser pool. workers <= 0 defaults to NumCPU, capped at
// 16 to bound context-switch overhead on large trees, matching the
// teacher's NewParserPool sizing.
func NewPool(workers int, cache *Cache) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > 16 {
		workers = 16
	}
	return &Pool{workers: workers, cache: cache}
}

// SetVerbose toggles progress logging.
func (p *Pool) SetVerbose(v bool) { p.verbose = v }

// SetProgressLogger installs a custom progress logger.
func (p *Pool) SetProgressLogger(l ProgressLogger) { p.logger = l }

// Process parses every task, using the incremental cache when available,
// and returns the parsed files plus any parse errors encountered. Order of
// the returned slice is not guaranteed; callers that need determinism (the
// registry does) sort by Path afterward.
func (p *Pool) Process(tasks []FileTask) ([]*ParsedFile, []error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	jobs := make(chan FileTask, len(tasks))
	results := make(chan ParseResult, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go p.worker(i, jobs, results, &wg)
	}

	for _, t := range tasks {
		jobs <- t
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var parsed []*ParsedFile
	var errs []error
	processed, total := 0, len(tasks)
	for r := range results {
		processed++
		if r.Error != nil {
			errs = append(errs, r.Error)
			if p.logger != nil {
				path := "unknown"
				if r.File != nil {
					path = r.File.Path
				}
				p.logger.LogError(path, r.Error)
			}
		}
		if r.File != nil {
			parsed = append(parsed, r.File)
		}
		if p.verbose && p.logger != nil {
			path := "unknown"
			if r.File != nil {
				path = r.File.Path
			}
			p.logger.LogProgress(processed, total, path)
		}
	}
	return parsed, errs
}

func (p *Pool) worker(id int, jobs <-chan FileTask, results chan<- ParseResult, wg *sync.WaitGroup) {
	defer wg.Done()

	ts, err := NewTreeSitterParser()
	if err != nil {
		for range jobs {
			results <- ParseResult{Error: fmt.Errorf("worker %d: failed to create tree-sitter parser: %w", id, err)}
		}
		return
	}
	kotlinParser := NewKotlinParser(ts)
	javaParser := NewJavaParser(ts)

	for task := range jobs {
		if p.cache != nil {
			if cached, ok := p.cache.Lookup(task.Path, task.Content, task.ModTime); ok {
				results <- ParseResult{File: cached}
				continue
			}
		}

		var pf *ParsedFile
		var parseErr error
		switch task.Language {
		case LangKotlin:
			pf, parseErr = kotlinParser.Parse(task.Path, task.Content)
		case LangJava:
			pf, parseErr = javaParser.Parse(task.Path, task.Content)
		default:
			parseErr = fmt.Errorf("unsupported language: %s", task.Language)
		}
		if parseErr != nil {
			parseErr = model.NewParseError(task.Path, "syntax error past recovery", parseErr)
		}

		if pf != nil && p.cache != nil {
			p.cache.Store(task.Path, task.Content, task.ModTime, pf)
		}
		results <- ParseResult{File: pf, Error: parseErr}
	}
}
