package crawler

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"foldspan/internal/document"
	"foldspan/internal/folding"
)

// FileFolds is one scanned file together with its computed fold ranges.
type FileFolds struct {
	Path     string
	Language string
	Ranges   []folding.FoldRange
}

// Crawler scans a directory tree for foldable documents.
type Crawler struct {
	engines   map[string]*folding.Engine
	ignored   []string
	overrides map[string]string
	log       zerolog.Logger

	// Skip, when set, is consulted before folding a supported file.
	// Returning true short-circuits the file, letting callers serve
	// unchanged files from a cache.
	Skip func(path, language string) bool
}

// NewCrawler creates a new crawler instance. overrides maps file
// extensions (".ext") to language ids on top of the built-in detection.
func NewCrawler(log zerolog.Logger, ignored []string, overrides map[string]string) *Crawler {
	if len(ignored) == 0 {
		ignored = []string{".git", "vendor", "node_modules", "testdata"}
	}
	return &Crawler{
		engines:   make(map[string]*folding.Engine),
		ignored:   ignored,
		overrides: overrides,
		log:       log,
	}
}

// ScanTree walks the root directory and folds every supported file.
// Results stream through the callback so large trees never buffer fully.
func (c *Crawler) ScanTree(root string, onFile func(*FileFolds)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip ignored directories
		if d.IsDir() {
			for _, ign := range c.ignored {
				if d.Name() == ign {
					return filepath.SkipDir
				}
			}
			return nil
		}

		c.foldOne(path, onFile)
		return nil
	})
}

// FoldPaths folds an explicit file list, used for incremental rescans
// where the caller already knows which files changed.
func (c *Crawler) FoldPaths(paths []string, onFile func(*FileFolds)) {
	for _, path := range paths {
		c.foldOne(path, onFile)
	}
}

func (c *Crawler) foldOne(path string, onFile func(*FileFolds)) {
	lang := c.detect(path)
	if lang == "" || !folding.Supported(lang) {
		return
	}

	if c.Skip != nil && c.Skip(path, lang) {
		return
	}

	engine, err := c.engineFor(lang)
	if err != nil {
		return
	}

	ranges, err := engine.FoldFile(path)
	if err != nil {
		// Log and continue instead of failing the whole scan.
		c.log.Warn().Err(err).Str("path", path).Msg("skipping unreadable file")
		return
	}

	onFile(&FileFolds{Path: path, Language: lang, Ranges: ranges})
}

func (c *Crawler) detect(path string) string {
	if lang, ok := c.overrides[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return document.DetectLanguage(path)
}

func (c *Crawler) engineFor(lang string) (*folding.Engine, error) {
	if engine, ok := c.engines[lang]; ok {
		return engine, nil
	}
	engine, err := folding.NewEngine(lang)
	if err != nil {
		return nil, err
	}
	c.engines[lang] = engine
	return engine, nil
}
