// Command contactsheet tiles exported frames into one image.
package main

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/png" // register PNG format with image.Decode
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "golang.org/x/image/tiff" // register TIFF format with image.Decode

	"github.com/echoflaresat/ribbons/render"
)

var errLayout = errors.New("invalid layout")

func main() {
	if len(os.Args) < 4 {
		fmt.Fprintf(os.Stderr, "Usage: %s <cols>x<rows> <output.png|.tif> <frame1> <frame2> ...\n", os.Args[0])
		os.Exit(1)
	}

	cols, rows, err := parseLayout(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	output := os.Args[2]
	inputFiles := os.Args[3:]
	if len(inputFiles) > cols*rows {
		log.Fatalf("Expected at most %d input files, got %d", cols*rows, len(inputFiles))
	}

	canvas, err := sheet(cols, rows, inputFiles)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("-> creating %s\n", output)
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	if err := render.WriteFile(output, canvas, format); err != nil {
		log.Fatalf("Could not write %s: %v", output, err)
	}
}

func parseLayout(s string) (cols, rows int, err error) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %s (expected NxM)", errLayout, s)
	}
	cols, err = strconv.Atoi(parts[0])
	if err != nil || cols < 1 {
		return 0, 0, fmt.Errorf("%w: cols %q", errLayout, parts[0])
	}
	rows, err = strconv.Atoi(parts[1])
	if err != nil || rows < 1 {
		return 0, 0, fmt.Errorf("%w: rows %q", errLayout, parts[1])
	}
	return cols, rows, nil
}

// sheet draws the frames left to right, top to bottom. All frames must
// share the size of the first one.
func sheet(cols, rows int, paths []string) (*image.NRGBA, error) {
	var canvas *image.NRGBA
	var tileW, tileH int
	for idx, path := range paths {
		tile, err := loadFrame(path)
		if err != nil {
			return nil, fmt.Errorf("could not load %q: %w", path, err)
		}

		if canvas == nil {
			tileW = tile.Bounds().Dx()
			tileH = tile.Bounds().Dy()
			canvas = image.NewNRGBA(image.Rect(0, 0, cols*tileW, rows*tileH))
		} else if tileW != tile.Bounds().Dx() || tileH != tile.Bounds().Dy() {
			return nil, fmt.Errorf("frame size mismatch for %q: expected %dx%d, got %dx%d",
				path, tileW, tileH, tile.Bounds().Dx(), tile.Bounds().Dy())
		}

		x := (idx % cols) * tileW
		y := (idx / cols) * tileH
		draw.Draw(canvas, image.Rect(x, y, x+tileW, y+tileH), tile, tile.Bounds().Min, draw.Src)
	}
	if canvas == nil {
		return nil, errors.New("no frames")
	}
	return canvas, nil
}

func loadFrame(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}
