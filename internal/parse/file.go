package parse

import (
	"github.com/charmbracelet/log"
	"github.com/suyashkumar/dicom"
)

// ParseFile reads a single DICOM file from disk and extracts its
// record. Pixel processing is skipped: collation only needs the raw
// payload bytes for digesting, never decoded frames.
//
// When skipBroken is set, any failure is logged and swallowed, and an
// empty record is returned so the caller can drop the file from the
// collation. Otherwise the failure is returned as a ParsingError.
func ParseFile(path string, skipBroken bool, logger *log.Logger) (Record, error) {
	ds, err := dicom.ParseFile(path, nil, dicom.SkipProcessingPixelDataValue())
	if err != nil {
		return handleBroken(path, err, skipBroken, logger)
	}

	rec, err := ParseDataset(&ds, path)
	if err != nil {
		return handleBroken(path, err, skipBroken, logger)
	}
	return rec, nil
}

func handleBroken(path string, err error, skipBroken bool, logger *log.Logger) (Record, error) {
	if skipBroken {
		if logger != nil {
			logger.Warn("skipping broken DICOM file", "path", path, "err", err)
		}
		return NewRecord(), nil
	}
	return Record{}, &ParsingError{Path: path, Err: err}
}
