// Command sgfcheck loads every .sgf file under a directory, reports moves
// that could not be resolved and can rewrite each file in normalized form.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"goban/internal/domain/sgf"
)

const normalizedSuffix = ".norm.sgf"

type summary struct {
	Files       int
	Failed      int
	Diagnostics int
}

func main() {
	root := flag.String("dir", ".", "Directory to scan for .sgf files")
	normalize := flag.Bool("normalize", false, "Write a normalized copy next to every file that loads")
	appID := flag.String("app", sgf.DefaultAppID, "AP value written to normalized files")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	log := logger.Sugar()

	sum, err := checkDir(log, *root, *normalize, sgf.Generator{AppID: *appID})
	if err != nil {
		log.Errorw("scan failed", "dir", *root, "error", err)
		os.Exit(1)
	}
	log.Infow("scan finished", "files", sum.Files, "failed", sum.Failed, "diagnostics", sum.Diagnostics)
	if sum.Failed > 0 {
		os.Exit(1)
	}
}

func checkDir(log *zap.SugaredLogger, root string, normalize bool, gen sgf.Generator) (summary, error) {
	var sum summary
	parser := sgf.NewParser(log)

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.EqualFold(filepath.Ext(path), ".sgf") || strings.HasSuffix(path, normalizedSuffix) {
			return nil
		}
		sum.Files++

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		g, err := parser.Parse(string(content))
		if err != nil {
			sum.Failed++
			log.Warnw("cannot load file", "file", path, "error", err)
			return nil
		}
		for _, d := range g.Diagnostics {
			log.Warnw("diagnostic", "file", path, "node", d.NodeID, "message", d.Message)
		}
		sum.Diagnostics += len(g.Diagnostics)

		if normalize {
			out := strings.TrimSuffix(path, filepath.Ext(path)) + normalizedSuffix
			if err := os.WriteFile(out, []byte(gen.Generate(g)), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
		}
		return nil
	})
	return sum, err
}
