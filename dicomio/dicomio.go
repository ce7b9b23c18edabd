// Package dicomio loads a single-frame, single-channel, uncompressed
// monochrome DICOM object into an image.Image. Grounded on
// examples/extract_pixels/extract_pixels.go's parser.ParseFile +
// imaging.CreatePixelData + pd.GetFrame(0) call sequence, and on
// examples/export_png/main.go's PixelRepresentation-driven sign handling.
// The uncompressed/single-frame/single-sample/MONOCHROME2 checks mirror
// original_source/src/io/medical_loader.cpp's load_dicom_file_uncompressed.
package dicomio

import (
	"encoding/binary"
	"os"
	"sort"
	"strconv"

	"github.com/cocosip/go-dicom/pkg/dicom/parser"
	"github.com/cocosip/go-dicom/pkg/dicom/tag"
	"github.com/cocosip/go-dicom/pkg/imaging"

	"github.com/cocosip/mcodec/image"
)

// Load parses path and returns its pixel data as an image.Image, rejecting
// anything that is not single-frame, single-sample, MONOCHROME2, and
// uncompressed.
func Load(path string) (*image.Image, error) {
	res, err := parser.ParseFile(path, parser.WithReadOption(parser.ReadAll))
	if err != nil {
		return nil, err
	}
	ds := res.Dataset

	pd, err := imaging.CreatePixelData(ds)
	if err != nil {
		return nil, err
	}
	if pd.IsEncapsulated() {
		return nil, ErrEncapsulated
	}
	if pd.FrameCount() != 1 {
		return nil, ErrMultiFrame
	}

	info := pd.Info
	if int(info.SamplesPerPixel) != 1 {
		return nil, ErrUnsupportedSamplesPerPixel
	}
	if pi, ok := ds.GetString(tag.PhotometricInterpretation); !ok || pi != "MONOCHROME2" {
		return nil, ErrUnsupportedPhotometricInterpretation
	}

	frame, err := pd.GetFrame(0)
	if err != nil {
		return nil, err
	}

	width := int(info.Width)
	height := int(info.Height)
	bitsAllocated := int(info.BitsAllocated)
	bitsStored := int(info.BitsStored)
	isSigned := info.PixelRepresentation != 0

	if bitsAllocated != 8 && bitsAllocated != 16 {
		return nil, ErrUnsupportedPixelDataType
	}

	pixels := make([]int32, width*height)
	if bitsAllocated == 8 {
		for i := 0; i < width*height && i < len(frame); i++ {
			if isSigned {
				pixels[i] = int32(int8(frame[i]))
			} else {
				pixels[i] = int32(frame[i])
			}
		}
	} else {
		for i := 0; i < width*height && 2*i+1 < len(frame); i++ {
			u := binary.LittleEndian.Uint16(frame[2*i : 2*i+2])
			if isSigned {
				pixels[i] = int32(int16(u))
			} else {
				pixels[i] = int32(u)
			}
		}
	}

	return image.New(width, height, bitsAllocated, bitsStored, isSigned, pixels)
}

// LoadSeries scans dir for regular files, sorts the ones that parse as a
// supported single-frame monochrome DICOM object by ascending
// InstanceNumber, and loads the first. Files that fail to parse, or that
// Load rejects, are skipped rather than treated as fatal, mirroring
// original_source's load_medical directory scan.
func LoadSeries(dir string) (*image.Image, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		path           string
		instanceNumber int
	}
	var candidates []candidate

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := dir + string(os.PathSeparator) + e.Name()
		res, err := parser.ParseFile(path, parser.WithReadOption(parser.ReadAll))
		if err != nil {
			continue
		}
		instanceNumber := 0
		if s, ok := res.Dataset.GetString(tag.InstanceNumber); ok {
			if n, err := strconv.Atoi(s); err == nil {
				instanceNumber = n
			}
		}
		candidates = append(candidates, candidate{path: path, instanceNumber: instanceNumber})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].instanceNumber < candidates[j].instanceNumber
	})

	for _, c := range candidates {
		im, err := Load(c.path)
		if err == nil {
			return im, nil
		}
	}
	return nil, ErrNoReadableSeries
}
