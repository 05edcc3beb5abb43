// objtool is a CLI utility for importing and inspecting OBJ meshes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/objmesh/internal/assets"
	"github.com/Faultbox/objmesh/internal/config"
	"github.com/Faultbox/objmesh/internal/importer"
	"github.com/Faultbox/objmesh/internal/logger"
	"github.com/Faultbox/objmesh/internal/watch"
	"github.com/Faultbox/objmesh/pkg/bundle"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	am := assets.NewManager()
	defer am.Close()
	im := importer.New(cfg, am)

	command, rest := args[0], args[1:]
	switch command {
	case "info":
		err = cmdInfo(ctx, im, rest)
	case "dump":
		err = cmdDump(ctx, im, rest)
	case "batch":
		err = cmdBatch(ctx, im, rest)
	case "watch":
		err = cmdWatch(ctx, im, cfg, rest)
	case "extract", "x":
		err = cmdExtract(cfg, rest)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`objtool - Wavefront OBJ import utility

Usage:
  objtool [flags] <command> [options]

Commands:
  info <source>...                  Show meshes, triangle counts and bounds
  dump [-o out.yaml] [-fit] <source> Write the imported meshes as YAML
  batch <source>...                 Import many sources in parallel
  watch <dir>                       Re-import .obj/.zip files as they change
  extract <bundle.zip> [entry] [dir] Extract the OBJ entry from a bundle

A source is a file.obj, a bundle.zip, or bundle.zip:entry.obj.

Flags:
  -config <path>   Config file (.yaml or .toml)
  -strict          Reject faces that appear before any group
  -charset <name>  Source text charset (default utf-8)
  -entry <name>    Bundle entry to import (default result.obj)
  -workers <n>     Parallel parses for batch
  -debug           Enable debug logging
  -log-file <path> Also write JSON logs to a rotating file

Examples:
  objtool info ship.obj
  objtool -charset euc-kr dump -fit -o house.yaml scene.zip:models/house.obj
  objtool -workers 8 batch models/*.obj
  objtool watch ./models`)
}

func cmdInfo(ctx context.Context, im *importer.Importer, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: objtool info <source>...")
	}
	for i, arg := range args {
		res := im.Import(ctx, arg)
		if res.Err != nil {
			return res.Err
		}
		if i > 0 {
			fmt.Println()
		}
		printSummary(os.Stdout, res)
	}
	return nil
}

func cmdDump(ctx context.Context, im *importer.Importer, args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	out := fs.String("o", "", "Output file (default stdout)")
	fit := fs.Bool("fit", false, "Centre and scale the meshes into a unit box")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return errors.New("usage: objtool dump [-o out.yaml] [-fit] <source>")
	}

	res := im.Import(ctx, fs.Arg(0))
	if res.Err != nil {
		return res.Err
	}
	if *fit {
		fitMeshes(res.Meshes)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return writeYAML(w, res.Meshes)
}

func cmdBatch(ctx context.Context, im *importer.Importer, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: objtool batch <source>...")
	}

	results, err := im.ImportAll(ctx, args)
	for _, res := range results {
		switch {
		case res.Err == nil && res.Meshes != nil:
			fmt.Printf("ok    %-40s %3d meshes %8d triangles  %v\n",
				res.Source, len(res.Meshes), triangleCount(res.Meshes), res.Duration)
		case res.Err != nil && !errors.Is(res.Err, context.Canceled):
			fmt.Printf("fail  %-40s %v\n", res.Source, res.Err)
		default:
			fmt.Printf("skip  %s\n", res.Source)
		}
	}
	return err
}

func cmdWatch(ctx context.Context, im *importer.Importer, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: objtool watch <dir>")
	}

	log := logger.For("objtool")
	w := watch.New(im, cfg.Watch, func(res importer.Result) {
		if res.Err != nil {
			log.Error("re-import failed", zap.Stringer(logger.KeySource, res.Source), zap.Error(res.Err))
			return
		}
		printSummary(os.Stdout, res)
	})
	return w.Run(ctx, args[0])
}

func cmdExtract(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: objtool extract <bundle.zip> [entry] [output_dir]")
	}

	archive, err := bundle.Open(args[0])
	if err != nil {
		return err
	}
	defer archive.Close()

	// Only the implicit default entry falls back to the first .obj; a named
	// entry that is missing is an error.
	entry := cfg.Bundle.Entry
	if len(args) > 1 {
		entry = args[1]
	} else if entry == "" || (entry == bundle.DefaultEntry && !archive.Contains(entry)) {
		if entry, err = archive.FindOBJ(); err != nil {
			return err
		}
	}
	outputDir := "."
	if len(args) > 2 {
		outputDir = args[2]
	}

	data, err := archive.Read(entry)
	if err != nil {
		return fmt.Errorf("reading %s: %w", entry, err)
	}

	outputPath := filepath.Join(outputDir, filepath.Base(entry))
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	fmt.Printf("Extracted: %s (%d bytes)\n", outputPath, len(data))
	return nil
}
