// Command mceval encodes a reference image at several qualities, decodes
// each back, and emits a CSV of quality/size/RMSE/PSNR metrics plus
// reconstruction and error-map PGMs. Argument parsing is
// grounded on original_source/src/evaluate.cpp's parse_cli: --quality
// takes a run of integers rather than a single value, which the standard
// library flag package cannot express, so arguments are walked by hand as
// the original does, keeping the same "at least 3 values, first three
// used" rule.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cocosip/mcodec/dicomio"
	"github.com/cocosip/mcodec/eval"
	"github.com/cocosip/mcodec/image"
	"github.com/cocosip/mcodec/pgm"
)

type cli struct {
	ref       string
	qualities []int
	tmpDir    string
	outCSV    string
	figDir    string
}

func parseCLI(args []string) (*cli, error) {
	c := &cli{}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--ref":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--ref requires a value")
			}
			i++
			c.ref = args[i]
		case "--tmp_dir":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--tmp_dir requires a value")
			}
			i++
			c.tmpDir = args[i]
		case "--out":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--out requires a value")
			}
			i++
			c.outCSV = args[i]
		case "--fig_dir":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("--fig_dir requires a value")
			}
			i++
			c.figDir = args[i]
		case "--quality":
			for i+1 < len(args) && !strings.HasPrefix(args[i+1], "--") {
				i++
				q, err := strconv.Atoi(args[i])
				if err != nil {
					return nil, fmt.Errorf("quality must be an integer: %w", err)
				}
				c.qualities = append(c.qualities, q)
			}
		default:
			return nil, fmt.Errorf("unrecognized argument %q", args[i])
		}
	}

	if c.ref == "" || c.tmpDir == "" || c.outCSV == "" || c.figDir == "" {
		return nil, fmt.Errorf("usage: mceval --ref <path> --quality q1 q2 q3 --tmp_dir <dir> --out <metrics.csv> --fig_dir <dir>")
	}
	if len(c.qualities) < 3 {
		return nil, fmt.Errorf("need at least 3 quality values")
	}
	c.qualities = c.qualities[:3]
	return c, nil
}

func main() {
	c, err := parseCLI(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	ref, err := loadImage(c.ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cant load reference %s: %s\n", c.ref, err)
		os.Exit(2)
	}

	stem := strings.TrimSuffix(filepath.Base(c.ref), filepath.Ext(c.ref))

	records, err := eval.Run(ref, stem, c.qualities, c.tmpDir, c.figDir, c.outCSV)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cant run evaluation: %s\n", err)
		os.Exit(2)
	}

	for _, r := range records {
		fmt.Printf("quality=%d compressed_bytes=%d bpp=%.4f cr=%.2f rmse=%.4f psnr=%.4f\n",
			r.Quality, r.CompressedBytes, r.Bpp, r.CompressionRatio, r.RMSE, r.PSNR)
	}
}

func loadImage(path string) (*image.Image, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return dicomio.LoadSeries(path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pgm":
		return pgm.Load(path)
	default:
		return dicomio.Load(path)
	}
}
