package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"pylens/internal/annotate"
	"pylens/internal/cache"
	"pylens/internal/config"
	"pylens/internal/detect"
	"pylens/internal/export"
	"pylens/internal/index"
	"pylens/internal/provider"
	"pylens/internal/storage"
)

var (
	rootCmd = &cobra.Command{
		Use:   "pylens",
		Short: "Inline inheritance lens for Python codebases",
	}
	cfgPath  string
	dbPath   string
	maxDepth int
	noColor  bool
	outPath  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "pylens.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "pylens.db", "Path to the local findings database (SQLite)")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "depth", -1, "Max inheritance depth (0 = unlimited, -1 = use config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	exportCmd.Flags().StringVarP(&outPath, "out", "o", "findings.json", "Output file")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(annotateCmd)
	rootCmd.AddCommand(exportCmd)
}

// setup loads config, builds the workspace index and wires the detector.
func setup(ctx context.Context, rootArg string) (*config.Config, *index.Index, *detect.Detector, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if rootArg != "" {
		cfg.Workspace.Root = rootArg
	}
	if maxDepth >= 0 {
		cfg.Detection.MaxDepth = maxDepth
	}

	root, err := filepath.Abs(cfg.Workspace.Root)
	if err != nil {
		return nil, nil, nil, err
	}

	idx, err := index.Build(ctx, root, index.Options{
		LibraryDirs: cfg.Workspace.LibraryDirs,
		Ignore:      cfg.Workspace.Ignore,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to index %s: %w", root, err)
	}

	det := detect.New(idx, cache.New(), detect.Options{
		MaxDepth:   cfg.Detection.MaxDepth,
		MaxRetries: cfg.Detection.MaxRetries,
		RetryDelay: time.Duration(cfg.Detection.RetryDelayMS) * time.Millisecond,
	})
	return cfg, idx, det, nil
}

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Detect inheritance relationships across the workspace and store them",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootArg := ""
		if len(args) > 0 {
			rootArg = args[0]
		}

		ctx := context.Background()
		_, idx, det, err := setup(ctx, rootArg)
		if err != nil {
			log.Fatalf("%v", err)
		}

		store, err := storage.NewSQLiteStore(dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer store.Close()

		start := time.Now()
		var total int
		for _, doc := range idx.Documents() {
			findings, err := det.Run(ctx, doc)
			if err != nil {
				log.Printf("detect %s: %v", doc, err)
				continue
			}
			if len(findings) == 0 {
				continue
			}
			if err := store.SaveFindings(ctx, doc, findings); err != nil {
				log.Fatalf("Failed to save findings for %s: %v", doc, err)
			}
			total += len(findings)
		}

		fmt.Printf("Scanned %d documents in %v, %d findings. Database: %s\n",
			len(idx.Documents()), time.Since(start).Round(time.Millisecond), total, dbPath)
	},
}

var annotateCmd = &cobra.Command{
	Use:   "annotate <file>",
	Short: "Print a source file with inline inheritance markers",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file, err := filepath.Abs(args[0])
		if err != nil {
			log.Fatalf("%v", err)
		}

		ctx := context.Background()
		_, idx, det, err := setup(ctx, filepath.Dir(file))
		if err != nil {
			log.Fatalf("%v", err)
		}

		docID := provider.DocumentID(file)
		findings, err := det.Run(ctx, docID)
		if err != nil {
			log.Fatalf("Detection failed: %v", err)
		}
		doc, err := idx.OpenDocument(ctx, docID)
		if err != nil {
			log.Fatalf("%v", err)
		}

		r := &annotate.Renderer{Color: !noColor}
		if err := r.Render(os.Stdout, doc, findings); err != nil {
			log.Fatalf("Render failed: %v", err)
		}
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export workspace findings as validated JSON",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootArg := ""
		if len(args) > 0 {
			rootArg = args[0]
		}

		ctx := context.Background()
		cfg, idx, det, err := setup(ctx, rootArg)
		if err != nil {
			log.Fatalf("%v", err)
		}

		report := &export.Report{
			Workspace: cfg.Workspace.Root,
			Documents: []export.DocumentFindings{},
		}
		for _, doc := range idx.Documents() {
			findings, err := det.Run(ctx, doc)
			if err != nil {
				log.Printf("detect %s: %v", doc, err)
				continue
			}
			if len(findings) == 0 {
				continue
			}
			report.Documents = append(report.Documents, export.DocumentFindings{
				Doc:      doc,
				Findings: findings,
			})
		}

		if err := export.WriteFile(outPath, report); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		fmt.Printf("Exported %d documents to %s\n", len(report.Documents), outPath)
	},
}
