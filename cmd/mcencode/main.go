// Command mcencode loads a PGM or DICOM image and encodes it into a
// .mcodec container at the given quality. Flag parsing
// and the exit-code split (1 for bad arguments, 2 for pipeline failures)
// follow dlecorfec/progjpeg/cmd/progjpeg/main.go's pattern, generalized
// per original_source's cli_parser.cpp/encode_main.cpp convention of
// treating all encode-time failures as exit 2.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cocosip/mcodec/dicomio"
	"github.com/cocosip/mcodec/image"
	"github.com/cocosip/mcodec/mcodec"
	"github.com/cocosip/mcodec/pgm"
)

func main() {
	var in, out string
	var quality int
	flag.StringVar(&in, "in", "", "Input image path (.pgm, .dcm, or a directory of DICOM files)")
	flag.StringVar(&out, "out", "", "Output .mcodec path")
	flag.IntVar(&quality, "quality", 0, "Quality in 1..100")
	flag.Parse()

	if in == "" || out == "" || quality < 1 || quality > 100 {
		fmt.Fprintf(os.Stderr, "usage: mcencode --in <path> --out <path.mcodec> --quality <1..100>\n")
		os.Exit(1)
	}

	im, err := loadImage(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cant load input %s: %s\n", in, err)
		os.Exit(2)
	}

	encoded, err := mcodec.Encode(im, quality)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cant encode %s: %s\n", in, err)
		os.Exit(2)
	}

	if err := os.WriteFile(out, encoded, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "cant write output %s: %s\n", out, err)
		os.Exit(2)
	}

	fmt.Printf("wrote %s (%d bytes)\n", out, len(encoded))
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
