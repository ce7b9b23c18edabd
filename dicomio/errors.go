package dicomio

import "errors"

var (
	// ErrEncapsulated is returned for compressed/encapsulated pixel data;
	// this loader only accepts uncompressed native pixel data.
	ErrEncapsulated = errors.New("dicomio: encapsulated (compressed) pixel data is not supported")
	// ErrMultiFrame is returned when the dataset carries more than one frame.
	ErrMultiFrame = errors.New("dicomio: multi-frame DICOM objects are not supported")
	// ErrUnsupportedSamplesPerPixel is returned when SamplesPerPixel != 1.
	ErrUnsupportedSamplesPerPixel = errors.New("dicomio: only single-sample (grayscale) pixel data is supported")
	// ErrUnsupportedPhotometricInterpretation is returned for anything but MONOCHROME2.
	ErrUnsupportedPhotometricInterpretation = errors.New("dicomio: only MONOCHROME2 photometric interpretation is supported")
	// ErrUnsupportedPixelDataType is returned when BitsAllocated is
	// neither 8 nor 16.
	ErrUnsupportedPixelDataType = errors.New("dicomio: unsupported bits allocated, only 8 and 16 are supported")
	// ErrNoReadableSeries is returned when LoadSeries finds no file in a
	// directory that parses as a supported single-frame monochrome image.
	ErrNoReadableSeries = errors.New("dicomio: no readable single-frame monochrome DICOM file found in directory")
)
