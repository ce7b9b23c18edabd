// Package eval implements the encode-decode-then-measure evaluation
// harness described below ("An evaluation tool that encodes-then-
// decodes at several qualities and emits a CSV... plus reconstruction and
// error-map images"). Grounded on original_source/src/evaluate.cpp:
// same unsigned-domain RMSE/PSNR computation, same p99-scaled absolute
// error map, same CSV column order.
package eval

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/cocosip/mcodec/image"
	"github.com/cocosip/mcodec/mcodec"
	"github.com/cocosip/mcodec/pgm"
)

// blockSize is fixed by the pipeline; recorded in every CSV row for
// forward compatibility, mirroring evaluate.cpp's hard-coded column.
const blockSize = 8

// Record is one CSV row: the outcome of encoding ref at Quality and
// decoding it back.
type Record struct {
	Quality          int
	BlockSize        int
	CompressedBytes  int64
	Bpp              float64
	RawBytes         int64
	CompressionRatio float64
	RMSE             float64
	PSNR             float64
}

// ToUnsigned maps an image's signed-or-unsigned samples into the
// [0, maxv] unsigned domain used for error metrics: signed samples are
// re-centered by 2^(bits_stored-1), unsigned samples are clamped as-is.
func ToUnsigned(im *image.Image, maxv uint32) []uint32 {
	out := make([]uint32, len(im.Pixels))
	if im.IsSigned {
		offset := int32(1) << (im.BitsStored - 1)
		for i, p := range im.Pixels {
			u := p + offset
			out[i] = clampU32(u, maxv)
		}
	} else {
		for i, p := range im.Pixels {
			out[i] = clampU32(p, maxv)
		}
	}
	return out
}

func clampU32(v int32, maxv uint32) uint32 {
	if v < 0 {
		return 0
	}
	if uint32(v) > maxv {
		return maxv
	}
	return uint32(v)
}

// RMSEPSNR computes root-mean-square error and peak signal-to-noise ratio
// between two equal-length unsigned sample slices against a peak value of
// maxv. PSNR is +Inf when the samples are identical.
func RMSEPSNR(ref, rec []uint32, maxv uint32) (rmse, psnr float64, err error) {
	if len(ref) != len(rec) {
		return 0, 0, ErrSizeMismatch
	}
	var sumSq float64
	for i := range ref {
		d := float64(rec[i]) - float64(ref[i])
		sumSq += d * d
	}
	mse := sumSq / float64(len(ref))
	rmse = math.Sqrt(mse)
	if mse == 0 {
		psnr = math.Inf(1)
	} else {
		psnr = 20*math.Log10(float64(maxv)) - 10*math.Log10(mse)
	}
	return rmse, psnr, nil
}

// Percentile99 returns the 99th-percentile value of v, or 0 for an empty
// slice, matching evaluate.cpp's percentile_p99: the element at index
// floor(0.99*(len(v)-1)) of a sorted copy (a full sort rather than
// nth_element, since v is small enough here not to need the partial-sort
// optimization).
func Percentile99(v []uint32) uint32 {
	if len(v) == 0 {
		return 0
	}
	sorted := make([]uint32, len(v))
	copy(sorted, v)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	idx := int(math.Floor(0.99 * float64(len(sorted)-1)))
	return sorted[idx]
}

// ErrorMap builds an 8-bit grayscale absolute-difference image between
// two equal-length unsigned sample slices, clamped to the 99th-percentile
// error (floored at 1) and linearly rescaled to [0,255].
func ErrorMap(ref, rec []uint32, width, height int) (*image.Image, error) {
	if len(ref) != len(rec) {
		return nil, ErrSizeMismatch
	}
	diff := make([]uint32, len(ref))
	for i := range ref {
		if rec[i] > ref[i] {
			diff[i] = rec[i] - ref[i]
		} else {
			diff[i] = ref[i] - rec[i]
		}
	}
	scale := Percentile99(diff)
	if scale == 0 {
		scale = 1
	}

	pixels := make([]int32, len(diff))
	for i, d := range diff {
		if d > scale {
			d = scale
		}
		v := 255.0 * float64(d) / float64(scale)
		pixels[i] = int32(math.Round(v))
	}
	return image.New(width, height, 8, 8, false, pixels)
}

// Run encodes ref at each quality in qualities, decodes it back, measures
// RMSE/PSNR/compression ratio, and writes the reference image, every
// reconstruction, and every p99-scaled error map into figDir as
// "<stem>_ref.pgm", "<stem>_q<N>_recon.pgm" and "<stem>_q<N>_err.pgm".
// Every encoded .mcodec file is also written into tmpDir as
// "<stem>_q<N>.mcodec". Results are both returned and written to outCSV.
func Run(ref *image.Image, stem string, qualities []int, tmpDir, figDir, outCSV string) ([]Record, error) {
	if ref.BitsStored < 1 || ref.BitsStored > 16 {
		return nil, ErrInvalidBitsStored
	}
	maxv := uint32(1)<<uint(ref.BitsStored) - 1
	rawBytes := int64(ref.Width) * int64(ref.Height) * int64(ref.Channels) * int64(ref.BitsAllocated/8)

	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(figDir, 0o755); err != nil {
		return nil, err
	}

	if err := pgm.Save(filepath.Join(figDir, stem+"_ref.pgm"), ref); err != nil {
		return nil, err
	}

	csvFile, err := os.Create(outCSV)
	if err != nil {
		return nil, err
	}
	defer csvFile.Close()
	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"quality", "block_size", "compressed_bytes", "bpp", "raw_bytes", "compression_ratio", "rmse", "psnr"}); err != nil {
		return nil, err
	}

	refU := ToUnsigned(ref, maxv)

	var records []Record
	for _, q := range qualities {
		encoded, err := mcodec.Encode(ref, q)
		if err != nil {
			return nil, err
		}
		mcodecPath := filepath.Join(tmpDir, fmt.Sprintf("%s_q%d.mcodec", stem, q))
		if err := os.WriteFile(mcodecPath, encoded, 0o644); err != nil {
			return nil, err
		}
		compressedBytes := int64(len(encoded))

		bpp := 8 * float64(compressedBytes) / float64(ref.Width*ref.Height)
		cr := 0.0
		if rawBytes > 0 {
			cr = float64(rawBytes) / float64(compressedBytes)
		}

		rec, err := mcodec.Decode(encoded)
		if err != nil {
			return nil, err
		}
		if rec.Width != ref.Width || rec.Height != ref.Height || rec.Channels != ref.Channels ||
			rec.BitsStored != ref.BitsStored || rec.IsSigned != ref.IsSigned {
			return nil, ErrDimensionMismatch
		}

		recU := ToUnsigned(rec, maxv)
		rmse, psnr, err := RMSEPSNR(refU, recU, maxv)
		if err != nil {
			return nil, err
		}

		reconPath := filepath.Join(figDir, fmt.Sprintf("%s_q%d_recon.pgm", stem, q))
		if err := pgm.Save(reconPath, rec); err != nil {
			return nil, err
		}

		errImg, err := ErrorMap(refU, recU, ref.Width, ref.Height)
		if err != nil {
			return nil, err
		}
		errPath := filepath.Join(figDir, fmt.Sprintf("%s_q%d_err.pgm", stem, q))
		if err := pgm.Save(errPath, errImg); err != nil {
			return nil, err
		}

		record := Record{
			Quality:          q,
			BlockSize:        blockSize,
			CompressedBytes:  compressedBytes,
			Bpp:              bpp,
			RawBytes:         rawBytes,
			CompressionRatio: cr,
			RMSE:             rmse,
			PSNR:             psnr,
		}
		records = append(records, record)

		if err := w.Write([]string{
			strconv.Itoa(record.Quality),
			strconv.Itoa(record.BlockSize),
			strconv.FormatInt(record.CompressedBytes, 10),
			strconv.FormatFloat(record.Bpp, 'f', -1, 64),
			strconv.FormatInt(record.RawBytes, 10),
			strconv.FormatFloat(record.CompressionRatio, 'f', -1, 64),
			strconv.FormatFloat(record.RMSE, 'f', -1, 64),
			formatPSNR(record.PSNR),
		}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return records, nil
}

func formatPSNR(psnr float64) string {
	if math.IsInf(psnr, 1) {
		return "inf"
	}
	return strconv.FormatFloat(psnr, 'f', -1, 64)
}
