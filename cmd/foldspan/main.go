package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"foldspan/internal/config"
	"foldspan/internal/crawler"
	"foldspan/internal/document"
	"foldspan/internal/folding"
	"foldspan/internal/git"
	"foldspan/internal/report"
	"foldspan/internal/storage"
)

var (
	rootCmd = &cobra.Command{
		Use:   "foldspan",
		Short: "Fold-region scanner for commit messages, markdown, and Go sources",
	}
	dbPath   string
	asJSON   bool
	sinceRef string
	noCache  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the fold cache database (SQLite); defaults to config")

	scanCmd.Flags().BoolVar(&asJSON, "json", false, "Emit a machine-readable fold report on stdout")
	scanCmd.Flags().StringVar(&sinceRef, "since", "", "Only rescan files changed since this git ref")
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "Fold every file even when the cache is fresh")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(outlineCmd)
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// initStore opens the SQLite fold cache, preferring the --db flag over
// the configured path.
func initStore(cfg *config.Config) (*storage.SQLiteStore, error) {
	path := dbPath
	if path == "" {
		path = cfg.Cache.Path
	}
	return storage.NewSQLiteStore(path)
}

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Fold every supported file under a directory and cache the results",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()

		root := "."
		if len(args) > 0 {
			root = args[0]
		}

		cfg, err := config.LoadConfig("foldspan.yaml")
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load config")
		}

		store, err := initStore(cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open fold cache")
		}
		defer store.Close()

		ctx := context.Background()
		rep := report.NewFoldReport(root)
		cr := crawler.NewCrawler(logger, cfg.Scan.Ignored, cfg.Scan.Languages)

		cached := 0
		if !noCache {
			cr.Skip = func(path, language string) bool {
				data, err := os.ReadFile(path)
				if err != nil {
					return false
				}
				doc, err := store.GetDocument(ctx, path)
				if err != nil || doc == nil {
					return false
				}
				if doc.ContentHash != storage.HashContent(data) {
					return false
				}
				rep.AddFile(path, doc.Language, doc.Ranges)
				cached++
				return true
			}
		}

		onFile := func(ff *crawler.FileFolds) {
			rep.AddFile(ff.Path, ff.Language, ff.Ranges)
			if err := saveFolds(ctx, store, ff); err != nil {
				logger.Warn().Err(err).Str("path", ff.Path).Msg("failed to cache folds")
			}
		}

		start := time.Now()
		if sinceRef != "" {
			// Incremental: only revisit what git says changed.
			changed, err := git.ChangedFiles(sinceRef)
			if err != nil {
				logger.Fatal().Err(err).Msg("failed to list changed files")
			}
			var existing []string
			for _, path := range changed {
				if _, err := os.Stat(path); err != nil {
					if err := store.RemoveDocument(ctx, path); err != nil {
						logger.Warn().Err(err).Str("path", path).Msg("failed to evict deleted file")
					}
					continue
				}
				existing = append(existing, path)
			}
			cr.FoldPaths(existing, onFile)
		} else {
			if err := cr.ScanTree(root, onFile); err != nil {
				logger.Fatal().Err(err).Msg("scan failed")
			}
		}

		if asJSON {
			if err := rep.WriteJSON(os.Stdout); err != nil {
				logger.Fatal().Err(err).Msg("failed to write report")
			}
			return
		}

		fmt.Printf("📂 Scanned %s in %v\n", root, time.Since(start))
		fmt.Printf("✅ %d files, %d fold ranges (%d served from cache)\n",
			rep.Summary.FileCount, rep.Summary.RangeCount, cached)
		for kind, n := range rep.Summary.RangesByKind {
			fmt.Printf("   %-8s %d\n", kind, n)
		}
	},
}

var outlineCmd = &cobra.Command{
	Use:   "outline <file>",
	Short: "Print the fold outline of a single document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()

		doc, err := document.FromFile(args[0])
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load document")
		}
		if doc.LanguageID() == "" {
			logger.Fatal().Str("path", args[0]).Msg("cannot detect document language")
		}

		engine, err := folding.NewEngine(doc.LanguageID())
		if err != nil {
			logger.Fatal().Err(err).Msg("no provider for document")
		}

		ranges := engine.Fold(doc)
		if len(ranges) == 0 {
			fmt.Println("no foldable regions")
			return
		}
		fmt.Print(report.Outline(doc, ranges))
	},
}

func saveFolds(ctx context.Context, store storage.Store, ff *crawler.FileFolds) error {
	data, err := os.ReadFile(ff.Path)
	if err != nil {
		return err
	}
	return store.SaveDocument(ctx, &storage.DocumentFolds{
		Path:        ff.Path,
		Language:    ff.Language,
		ContentHash: storage.HashContent(data),
		Ranges:      ff.Ranges,
	})
}
