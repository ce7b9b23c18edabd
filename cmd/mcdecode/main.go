// Command mcdecode parses a .mcodec container and writes the reconstructed
// image out as a PGM file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cocosip/mcodec/mcodec"
	"github.com/cocosip/mcodec/pgm"
)

func main() {
	var in, out string
	flag.StringVar(&in, "in", "", "Input .mcodec path")
	flag.StringVar(&out, "out", "", "Output PGM path")
	flag.Parse()

	if in == "" || out == "" {
		fmt.Fprintf(os.Stderr, "usage: mcdecode --in <path.mcodec> --out <path.pgm>\n")
		os.Exit(1)
	}

	data, err := os.ReadFile(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cant read input %s: %s\n", in, err)
		os.Exit(2)
	}

	im, err := mcodec.Decode(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cant decode %s: %s\n", in, err)
		os.Exit(2)
	}

	if err := pgm.Save(out, im); err != nil {
		fmt.Fprintf(os.Stderr, "cant write output %s: %s\n", out, err)
		os.Exit(2)
	}

	fmt.Printf("wrote %s (%dx%d)\n", out, im.Width, im.Height)
}
