// Command minify builds the production dist/ tree from templates/ and
// static/, or minifies a single file.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// mediaTypes maps file extensions to the minifier media type.
var mediaTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
}

func main() {
	var (
		inputFile  = flag.String("input", "", "Input file path")
		outputFile = flag.String("output", "", "Output file path")
		outDir     = flag.String("dist", "", "Build every asset under templates/ and static/ into this directory")
	)
	flag.Parse()

	m := newMinifier()
	switch {
	case *outDir != "":
		if err := buildDist(m, []string{"templates", "static"}, *outDir); err != nil {
			log.Fatalf("Failed to build %s: %v", *outDir, err)
		}
		fmt.Printf("Minified assets written to %s\n", *outDir)
	case *inputFile != "" && *outputFile != "":
		if _, err := minifyFile(m, *inputFile, *outputFile); err != nil {
			log.Fatalf("Failed to minify %s: %v", *inputFile, err)
		}
		fmt.Printf("Successfully minified %s -> %s\n", *inputFile, *outputFile)
	default:
		log.Fatal("Usage: go run ./cmd/minify -dist=dist | -input=<file> -output=<file>")
	}
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
		TemplateDelims:   html.GoTemplateDelims,
	})
	m.AddFunc("application/javascript", js.Minify)
	return m
}

// buildDist minifies every known asset below each source directory into
// outDir, keeping relative paths. Other files are copied unchanged.
func buildDist(m *minify.M, sources []string, outDir string) error {
	for _, src := range sources {
		err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			dst := filepath.Join(outDir, path)
			if _, ok := mediaTypes[strings.ToLower(filepath.Ext(path))]; !ok {
				return copyFile(path, dst)
			}
			ratio, err := minifyFile(m, path, dst)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %.1f%% reduction\n", path, ratio)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// minifyFile minifies srcPath into dstPath based on its extension and returns
// the size reduction in percent.
func minifyFile(m *minify.M, srcPath, dstPath string) (float64, error) {
	mediaType, ok := mediaTypes[strings.ToLower(filepath.Ext(srcPath))]
	if !ok {
		return 0, fmt.Errorf("unsupported file type: %s", srcPath)
	}
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return 0, err
	}
	minified, err := m.Bytes(mediaType, src)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(dstPath, minified, 0644); err != nil {
		return 0, err
	}
	if len(src) == 0 {
		return 0, nil
	}
	return float64(len(src)-len(minified)) / float64(len(src)) * 100, nil
}

func copyFile(srcPath, dstPath string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(dstPath, data, 0644)
}
