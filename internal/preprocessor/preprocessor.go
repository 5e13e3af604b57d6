// Package preprocessor rewrites a tree of memory-layout source files so
// downstream consumers see a template-free dialect. Starting from a root
// file it follows import directives, hands each file to the rewriter and
// writes the processed copies under a temporary directory, preserving
// relative paths.
package preprocessor

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"

	"cursey/gennypp/internal/preprocessor/rewriter"
)

// tempDirPattern names the per-invocation output directory under the OS
// temp root. The random suffix avoids collisions between concurrent
// invocations.
const tempDirPattern = "regenny_tmpl_"

// Preprocessor transforms a file tree rooted at a single file.
type Preprocessor interface {
	// ProcessTree processes the tree reachable from rootPath. It returns
	// (nil, nil) when the root path is empty or when no file contained a
	// generic declaration; in the latter case no temp directory is left
	// behind. A non-nil error is returned only when the temporary output
	// directory cannot be created.
	ProcessTree(rootPath string) (*Result, error)

	// Cleanup removes the result's temporary directory. It is idempotent
	// and swallows filesystem errors.
	Cleanup(result *Result)
}

// TemplatePreprocessor is the concrete Preprocessor. It memoizes path
// canonicalization: the same path recurs whenever several files import a
// shared dependency.
type TemplatePreprocessor struct {
	canonical *lru.Cache[string, string]
}

// New creates a TemplatePreprocessor.
func New() *TemplatePreprocessor {
	cache, _ := lru.New[string, string](256)
	return &TemplatePreprocessor{canonical: cache}
}

// ProcessTree implements Preprocessor.
func (p *TemplatePreprocessor) ProcessTree(rootPath string) (*Result, error) {
	if rootPath == "" {
		return nil, nil
	}

	result := newResult()
	canonicalRoot := p.canonicalize(rootPath)
	result.OriginalRoot = canonicalRoot

	tempDir := filepath.Join(os.TempDir(), fmt.Sprintf("%s%016x", tempDirPattern, rand.Uint64()))
	if err := os.Mkdir(tempDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}

	result.TempDirectory = tempDir

	visited := make(map[string]bool)
	queue := []string{canonicalRoot}
	baseDir := filepath.Dir(canonicalRoot)

	for len(queue) > 0 {
		current := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		canonicalCurrent := p.canonicalize(current)

		if visited[canonicalCurrent] {
			continue
		}
		visited[canonicalCurrent] = true

		content, err := os.ReadFile(canonicalCurrent)
		if err != nil {
			continue
		}

		processed := rewriter.Rewrite(canonicalCurrent, string(content))

		if processed.HadTemplates {
			result.HadTemplates = true
		}

		relative, err := filepath.Rel(baseDir, canonicalCurrent)
		if err != nil {
			relative = filepath.Base(canonicalCurrent)
		}

		processedPath := filepath.Join(tempDir, relative)

		if err := os.MkdirAll(filepath.Dir(processedPath), 0o755); err != nil {
			continue
		}

		if err := os.WriteFile(processedPath, []byte(processed.Content), 0o644); err != nil {
			continue
		}

		result.record(canonicalCurrent, processedPath)

		for _, imported := range processed.Imports {
			queue = append(queue, p.canonicalize(imported))
		}
	}

	if !result.HadTemplates {
		removeTempDirectory(tempDir)
		return nil, nil
	}

	if processedRoot, ok := result.OriginalToProcessed[canonicalRoot]; ok {
		result.ProcessedRoot = processedRoot
	} else {
		result.ProcessedRoot = canonicalRoot
	}

	return result, nil
}

// Cleanup implements Preprocessor.
func (p *TemplatePreprocessor) Cleanup(result *Result) {
	if result == nil {
		return
	}

	removeTempDirectory(result.TempDirectory)
}

// canonicalize resolves a path to an absolute, symlink-free form,
// best-effort: a path that does not exist is still made absolute and
// cleaned. Results are memoized; the cache is a pure memo and never
// affects the outcome.
func (p *TemplatePreprocessor) canonicalize(path string) string {
	if cached, ok := p.canonical.Get(path); ok {
		return cached
	}

	canonical := path

	if abs, err := filepath.Abs(path); err == nil {
		canonical = abs
	}

	if resolved, err := filepath.EvalSymlinks(canonical); err == nil {
		canonical = resolved
	}

	p.canonical.Add(path, canonical)
	return canonical
}

func removeTempDirectory(tempDirectory string) {
	if tempDirectory == "" {
		return
	}

	_ = os.RemoveAll(tempDirectory)
}
