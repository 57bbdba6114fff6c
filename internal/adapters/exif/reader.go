// Package exif implements ports.MetadataReader on top of goexif.
package exif

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"

	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	"go.trai.ch/darkmagic/internal/adapters/exif/ifd"
	"go.trai.ch/darkmagic/internal/core/domain"
	"go.trai.ch/darkmagic/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.MetadataReader = (*Reader)(nil)

// Reader extracts capture metadata from TIFF-based raw files and JPEG images.
type Reader struct {
	logger ports.Logger
}

// NewReader creates a new Reader.
func NewReader(logger ports.Logger) *Reader {
	return &Reader{logger: logger}
}

// Read decodes the EXIF block of the image at path.
func (r *Reader) Read(ctx context.Context, path string) (*domain.ImageMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // Path is provided by the user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read image"), "path", path)
	}

	md, err := r.decode(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return md, nil
}

func (r *Reader) decode(data []byte) (*domain.ImageMetadata, error) {
	x, err := goexif.Decode(bytes.NewReader(data))
	if err != nil {
		if x == nil || goexif.IsCriticalError(err) {
			return nil, zerr.Wrap(err, "failed to decode exif")
		}
		r.logger.Warn(fmt.Sprintf("ignoring non-critical exif error: %v", err))
	}

	raw := x.Raw
	if len(raw) == 0 && isTIFF(data) {
		raw = data
	}

	f, err := r.primaryFields(x, raw)
	if err != nil {
		return nil, err
	}
	return extract(f)
}

func isTIFF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*"))
}

// primaryFields merges IFD0 with the Exif sub-IFD. goexif drops tags it has no
// name for, which includes the EXIF 2.3 sensitivity tags, so the sub-IFD is
// decoded again from the raw TIFF bytes.
func (r *Reader) primaryFields(x *goexif.Exif, raw []byte) (fields, error) {
	if x.Tiff == nil || len(x.Tiff.Dirs) == 0 {
		return fields{}, invalidData("image has no primary IFD")
	}
	order := x.Tiff.Order

	entries := make(ifd.Entries, 0, len(x.Tiff.Dirs[0].Tags))
	for _, tag := range x.Tiff.Dirs[0].Tags {
		entries = append(entries, fromTiffTag(tag, order))
	}

	ptrTag, err := x.Get(goexif.ExifIFDPointer)
	if err != nil {
		return fields{}, invalidData("missing Exif IFD pointer")
	}
	ptr, err := ptrTag.Int64(0)
	if err != nil {
		return fields{}, invalidData("malformed Exif IFD pointer")
	}

	sub, err := ifd.Decode(raw, order, int(ptr), 0)
	if err != nil {
		return fields{}, zerr.Wrap(err, "failed to decode Exif IFD")
	}
	r.logger.Debug(fmt.Sprintf("decoded Exif IFD at offset %d with %d entries", ptr, len(sub)))
	entries = append(entries, sub...)
	for _, e := range entries {
		r.logger.Trace(fmt.Sprintf("tag 0x%04x %s[%d]", e.Tag, e.Type, e.Count))
	}

	return fields{entries: entries, order: order}, nil
}

func fromTiffTag(tag *tiff.Tag, order binary.ByteOrder) ifd.Entry {
	return ifd.NewEntry(tag.Id, ifd.Type(tag.Type), tag.Count, tag.Val, tag.ValOffset, order)
}

// extract evaluates every field of the record, stopping at the first failure.
func extract(f fields) (*domain.ImageMetadata, error) {
	sensitivity, sensitivityType, err := f.sensitivity()
	if err != nil {
		return nil, err
	}
	model, err := f.model()
	if err != nil {
		return nil, err
	}
	serial, err := f.serialNumber()
	if err != nil {
		return nil, err
	}
	exposure, err := f.exposureTime()
	if err != nil {
		return nil, err
	}
	temperature, err := f.temperature()
	if err != nil {
		return nil, err
	}

	return &domain.ImageMetadata{
		CameraModel:        model,
		CameraSerialNumber: serial,
		SensorSensitivity:  sensitivity,
		SensitivityType:    sensitivityType,
		ExposureTime:       exposure,
		Temperature:        temperature,
	}, nil
}
