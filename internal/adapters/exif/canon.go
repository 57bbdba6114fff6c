package exif

import (
	"encoding/binary"

	"go.trai.ch/darkmagic/internal/adapters/exif/ifd"
	"go.trai.ch/darkmagic/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	canonFooterSize = 8
	tiffMagic       = 42

	orderMarkLittle = 0x4949 // "II"
	orderMarkBig    = 0x4d4d // "MM"

	tagCanonShotInfo          uint16 = 4
	shotInfoCameraTemperature        = 12
	shotInfoTemperatureOffset        = 128
)

// ParseCanonMakerNote decodes a Canon maker note into its directory entries.
//
// Canon appends an 8 byte footer holding the byte order, the TIFF magic and the
// offset the maker note originally had in the TIFF stream. All value pointers in
// the note are relative to that stream, so they are shifted back by the original
// offset. When the footer is absent or damaged, streamOffset (the maker note's
// position in the stream it was read from) is used instead; pass 0 if unknown.
func ParseCanonMakerNote(data []byte, order binary.ByteOrder, streamOffset uint32) (ifd.Entries, error) {
	if len(data) < canonFooterSize {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidData, "maker note too short"), "length", len(data))
	}

	footer := data[len(data)-canonFooterSize:]
	if footerOrder, ok := footerByteOrder(footer); ok && footerOrder.Uint16(footer[2:]) == tiffMagic {
		original := footerOrder.Uint32(footer[4:])
		return ifd.Decode(data, footerOrder, 0, -int(original))
	}

	if streamOffset == 0 {
		return nil, zerr.Wrap(domain.ErrInvalidData, "maker note footer missing")
	}
	return ifd.Decode(data, order, 0, -int(streamOffset))
}

func footerByteOrder(footer []byte) (binary.ByteOrder, bool) {
	switch binary.BigEndian.Uint16(footer) {
	case orderMarkLittle:
		return binary.LittleEndian, true
	case orderMarkBig:
		return binary.BigEndian, true
	default:
		return nil, false
	}
}

// canonTemperature returns the camera temperature in °C recorded in the ShotInfo
// entry of a Canon maker note.
func canonTemperature(entries ifd.Entries) (float64, error) {
	shotInfo, ok := entries.Find(tagCanonShotInfo)
	if !ok {
		return 0, zerr.Wrap(domain.ErrInvalidData, "canon ShotInfo maker note not found")
	}

	values, err := shotInfo.Shorts()
	if err != nil {
		return 0, zerr.Wrap(domain.ErrInvalidData, "ShotInfo field is not a short array")
	}
	if len(values) <= shotInfoCameraTemperature {
		return 0, zerr.Wrap(domain.ErrInvalidData, "missing camera temperature field")
	}

	return float64(int(values[shotInfoCameraTemperature]) - shotInfoTemperatureOffset), nil
}
