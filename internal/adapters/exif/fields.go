package exif

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"go.trai.ch/darkmagic/internal/adapters/exif/ifd"
	"go.trai.ch/darkmagic/internal/core/domain"
	"go.trai.ch/zerr"
)

// EXIF and TIFF tags read from the primary image.
const (
	tagMake             uint16 = 0x010f
	tagModel            uint16 = 0x0110
	tagExifIFDPointer   uint16 = 0x8769
	tagExposureTime     uint16 = 0x829a
	tagSensitivityType  uint16 = 0x8830
	tagExifVersion      uint16 = 0x9000
	tagMakerNote        uint16 = 0x927c
	tagBodySerialNumber uint16 = 0xa431
)

const canonMake = "Canon"

// fields is the merged set of IFD0 and Exif IFD entries of the primary image.
type fields struct {
	entries ifd.Entries
	order   binary.ByteOrder
}

func (f fields) lookup(tag uint16, name string) (ifd.Entry, error) {
	e, ok := f.entries.Find(tag)
	if !ok {
		return ifd.Entry{}, zerr.With(invalidData(fmt.Sprintf("missing %s field", name)), "field", name)
	}
	return e, nil
}

func (f fields) str(tag uint16, name string) (string, error) {
	e, err := f.lookup(tag, name)
	if err != nil {
		return "", err
	}
	values, err := e.ASCII()
	if err != nil {
		return "", invalidData(fmt.Sprintf("expected ASCII data for %s field", name))
	}
	if len(values) != 1 {
		return "", invalidData(fmt.Sprintf("expected single %s value", name))
	}
	return values[0], nil
}

func (f fields) u16(tag uint16, name string) (uint16, error) {
	e, err := f.lookup(tag, name)
	if err != nil {
		return 0, err
	}
	values, err := e.Shorts()
	if err != nil {
		return 0, invalidData(fmt.Sprintf("expected u16 data for %s field", name))
	}
	if len(values) != 1 {
		return 0, invalidData(fmt.Sprintf("expected single %s value", name))
	}
	return values[0], nil
}

func (f fields) u32(tag uint16, name string) (uint32, error) {
	e, err := f.lookup(tag, name)
	if err != nil {
		return 0, err
	}
	values, err := e.Longs()
	if err != nil {
		return 0, invalidData(fmt.Sprintf("expected u32 data for %s field", name))
	}
	if len(values) != 1 {
		return 0, invalidData(fmt.Sprintf("expected single %s value", name))
	}
	return values[0], nil
}

func (f fields) rational(tag uint16, name string) (ifd.Rational, error) {
	e, err := f.lookup(tag, name)
	if err != nil {
		return ifd.Rational{}, err
	}
	values, err := e.Rationals()
	if err != nil {
		return ifd.Rational{}, invalidData(fmt.Sprintf("expected Rational data for %s field", name))
	}
	if len(values) != 1 {
		return ifd.Rational{}, invalidData(fmt.Sprintf("expected single %s value", name))
	}
	return values[0], nil
}

func (f fields) undefined(tag uint16, name string) (ifd.Entry, error) {
	e, err := f.lookup(tag, name)
	if err != nil {
		return ifd.Entry{}, err
	}
	if e.Type != ifd.TypeUndefined {
		return ifd.Entry{}, invalidData(fmt.Sprintf("expected 'undefined' type data for %s", name))
	}
	return e, nil
}

func (f fields) exifVersion() (domain.ExifVersion, error) {
	e, err := f.undefined(tagExifVersion, "ExifVersion")
	if err != nil {
		return domain.ExifVersion{}, err
	}
	if len(e.Data) != 4 {
		return domain.ExifVersion{}, invalidData("expected 4 bytes for ExifVersion field")
	}

	major, err := asciiDigits(e.Data[:2])
	if err != nil {
		return domain.ExifVersion{}, err
	}
	minor, err := asciiDigits(e.Data[2:])
	if err != nil {
		return domain.ExifVersion{}, err
	}
	return domain.ExifVersion{Major: major, Minor: minor}, nil
}

func asciiDigits(data []byte) (uint8, error) {
	for _, b := range data {
		if b < '0' || b > '9' {
			return 0, invalidData("expected numeric ascii digits in ExifVersion field")
		}
	}
	v, err := strconv.ParseUint(string(data), 10, 8)
	if err != nil {
		return 0, invalidData("expected numeric ascii digits in ExifVersion field")
	}
	return uint8(v), nil
}

func (f fields) sensitivity() (uint32, domain.SensitivityType, error) {
	version, err := f.exifVersion()
	if err != nil {
		return 0, 0, err
	}
	if version.Less(domain.MinSupportedExifVersion) {
		return 0, 0, zerr.With(
			zerr.Wrap(domain.ErrUnsupported, "exif version < 2.3 is not supported"),
			"exif_version", version.String(),
		)
	}

	raw, err := f.u16(tagSensitivityType, "SensitivityType")
	if err != nil {
		return 0, 0, err
	}
	typ := domain.SensitivityType(raw)

	tag, name, ok := typ.SensitivityTag()
	if !ok {
		return 0, 0, zerr.With(zerr.Wrap(domain.ErrUnsupported, "unknown SensitivityType"), "sensitivity_type", raw)
	}

	value, err := f.u32(tag, name)
	if err != nil {
		return 0, 0, err
	}
	return value, typ, nil
}

func (f fields) cameraMake() (string, error) {
	return f.str(tagMake, "Make")
}

func (f fields) model() (string, error) {
	mk, err := f.cameraMake()
	if err != nil {
		return "", err
	}
	model, err := f.str(tagModel, "Model")
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(model, mk) {
		return model, nil
	}
	if strings.HasSuffix(mk, " ") {
		return mk + model, nil
	}
	return mk + " " + model, nil
}

func (f fields) serialNumber() (string, error) {
	return f.str(tagBodySerialNumber, "BodySerialNumber")
}

func (f fields) exposureTime() (float64, error) {
	r, err := f.rational(tagExposureTime, "ExposureTime")
	if err != nil {
		return 0, err
	}
	if r.Denom == 0 {
		return 0, invalidData("ExposureTime has a zero denominator")
	}
	return r.Float(), nil
}

func (f fields) temperature() (float64, error) {
	mk, err := f.cameraMake()
	if err != nil {
		return 0, err
	}
	if mk != canonMake {
		return 0, zerr.With(zerr.Wrap(domain.ErrUnsupported, "only Canon cameras are supported"), "make", mk)
	}

	note, err := f.undefined(tagMakerNote, "MakerNote")
	if err != nil {
		return 0, err
	}

	entries, err := ParseCanonMakerNote(note.Data, f.order, note.Offset)
	if err != nil {
		return 0, zerr.Wrap(err, "failed to parse canon maker note")
	}
	return canonTemperature(entries)
}

func invalidData(msg string) error {
	return zerr.Wrap(domain.ErrInvalidData, msg)
}
