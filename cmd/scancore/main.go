package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	diskimg "github.com/disintegration/imaging"

	"github.com/fieldscan/scancore/internal/imaging"
	"github.com/fieldscan/scancore/internal/scanner"
	"github.com/fieldscan/scancore/internal/tracker"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("scancore %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		}
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	logLevel := os.Getenv("SCANCORE_LOG_LEVEL")
	debug := logLevel == "debug"
	if debug {
		log.Printf("scancore %s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if len(os.Args) < 3 {
		printUsage()
		os.Exit(1)
	}

	inputDir := os.Args[1]
	outputDir := os.Args[2]

	if err := run(inputDir, outputDir, debug); err != nil {
		log.Fatalf("scancore: %v", err)
	}
}

func printUsage() {
	fmt.Println("scancore - replay a directory of frames through the document scanner core")
	fmt.Println()
	fmt.Println("Usage: scancore <input-dir> <output-dir> [options]")
	fmt.Println()
	fmt.Println("Reads image files from input-dir in sorted filename order, feeds them")
	fmt.Println("through one scanner session as if they were successive camera frames,")
	fmt.Println("and writes every captured (rectified) document to output-dir.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  SCANCORE_LOG_LEVEL=debug    Enable debug logging")
}

func run(inputDir, outputDir string, debug bool) error {
	files, err := sortedImageFiles(inputDir)
	if err != nil {
		return fmt.Errorf("listing input frames: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no image files found in %s", inputDir)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	session := scanner.NewSession(tracker.DefaultConfig())
	captureCount := 0

	for i, path := range files {
		img, err := diskimg.Open(path)
		if err != nil {
			log.Printf("scancore: skipping %s: %v", path, err)
			continue
		}

		frame := imaging.FromImage(img)
		doc, err := session.ProcessFrameSmooth(frame)
		if err != nil {
			log.Printf("scancore: frame %d (%s): %v", i, filepath.Base(path), err)
			continue
		}

		if debug {
			if doc != nil {
				log.Printf("frame %d (%s): detected quad, frame %dx%d", i, filepath.Base(path), doc.FrameWidth, doc.FrameHeight)
			} else {
				log.Printf("frame %d (%s): no detection", i, filepath.Base(path))
			}
		}

		if captured, ok := session.TakeCapture(); ok {
			captureCount++
			outPath := filepath.Join(outputDir, fmt.Sprintf("capture_%03d.png", captureCount))
			if err := diskimg.Save(captured.ToImage(), outPath); err != nil {
				log.Printf("scancore: saving %s: %v", outPath, err)
				continue
			}
			log.Printf("captured document %d -> %s", captureCount, outPath)
		}
	}

	stats := session.Stats()
	log.Printf("done: %d frames processed, %d with no candidate, %d captures",
		stats.FramesProcessed, stats.FramesNoCandidate, stats.Captures)
	return nil
}

func sortedImageFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".jpg", ".jpeg", ".png":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
