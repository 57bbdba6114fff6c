// Package exiftest builds small synthetic TIFF and JPEG images for tests.
package exiftest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

const (
	typeASCII     = 2
	typeShort     = 3
	typeLong      = 4
	typeRational  = 5
	typeUndefined = 7
)

// tagDef describes one directory entry of a synthetic image.
// valueAt, when set, builds the value from the offset it will be written at.
type tagDef struct {
	tag     uint16
	typ     uint16
	count   uint32
	value   []byte
	valueAt func(offset uint32) []byte
}

func typeWidth(typ uint16) uint32 {
	switch typ {
	case typeShort:
		return 2
	case typeLong:
		return 4
	case typeRational:
		return 8
	default:
		return 1
	}
}

// appendIFD writes a directory at the end of buf followed by its out-of-line values.
func appendIFD(buf []byte, order binary.ByteOrder, defs []tagDef) ([]byte, uint32) {
	dirOffset := uint32(len(buf))
	dir := make([]byte, 2+12*len(defs)+4)
	order.PutUint16(dir, uint16(len(defs)))

	valuesStart := dirOffset + uint32(len(dir))
	var values []byte

	for i, s := range defs {
		pos := 2 + 12*i
		v := s.value
		if s.valueAt != nil {
			v = s.valueAt(valuesStart + uint32(len(values)))
		}
		count := s.count
		if count == 0 {
			count = uint32(len(v)) / typeWidth(s.typ)
		}

		order.PutUint16(dir[pos:], s.tag)
		order.PutUint16(dir[pos+2:], s.typ)
		order.PutUint32(dir[pos+4:], count)
		if len(v) <= 4 {
			copy(dir[pos+8:], v)
			continue
		}
		order.PutUint32(dir[pos+8:], valuesStart+uint32(len(values)))
		values = append(values, v...)
		if len(values)%2 == 1 {
			values = append(values, 0)
		}
	}

	buf = append(buf, dir...)
	buf = append(buf, values...)
	return buf, dirOffset
}

// buildTIFF lays out a little TIFF stream: header, Exif IFD, then IFD0 pointing at it.
func buildTIFF(order binary.ByteOrder, ifd0, exifIFD []tagDef) []byte {
	buf := make([]byte, 8)
	copy(buf, byteOrderMark(order))
	order.PutUint16(buf[2:], 42)

	buf, exifOffset := appendIFD(buf, order, exifIFD)
	ifd0 = append(ifd0, tagDef{tag: 0x8769, typ: typeLong, count: 1, value: u32(order, exifOffset)})
	buf, ifd0Offset := appendIFD(buf, order, ifd0)
	order.PutUint32(buf[4:], ifd0Offset)
	return buf
}

func byteOrderMark(order binary.ByteOrder) string {
	if order == binary.LittleEndian {
		return "II"
	}
	return "MM"
}

// WrapJPEG embeds a TIFF stream into the APP1 segment of a minimal JPEG.
func WrapJPEG(tiffData []byte) []byte {
	payload := append([]byte("Exif\x00\x00"), tiffData...)
	out := []byte{0xFF, 0xD8, 0xFF, 0xE1, 0, 0}
	binary.BigEndian.PutUint16(out[4:], uint16(len(payload)+2))
	out = append(out, payload...)
	return append(out, 0xFF, 0xD9)
}

func ascii(s string) []byte {
	return append([]byte(s), 0)
}

func u16(order binary.ByteOrder, vs ...uint16) []byte {
	out := make([]byte, 2*len(vs))
	for i, v := range vs {
		order.PutUint16(out[2*i:], v)
	}
	return out
}

func u32(order binary.ByteOrder, v uint32) []byte {
	out := make([]byte, 4)
	order.PutUint32(out, v)
	return out
}

func rational(order binary.ByteOrder, num, denom uint32) []byte {
	out := make([]byte, 8)
	order.PutUint32(out, num)
	order.PutUint32(out[4:], denom)
	return out
}

// ShotInfo returns a ShotInfo array whose camera temperature element is raw.
func ShotInfo(raw uint16) []uint16 {
	values := make([]uint16, 20)
	values[12] = raw
	return values
}

// CanonMakerNote builds a Canon maker note placed at offset in the TIFF stream.
// Its ShotInfo pointer is TIFF-relative and, when footer is set, the note ends
// with the II/MM footer recording that offset.
func CanonMakerNote(order binary.ByteOrder, shot []uint16, footer bool) func(uint32) []byte {
	return func(offset uint32) []byte {
		var note []byte
		note, _ = appendIFD(note, order, []tagDef{
			{tag: 0x0001, typ: typeShort, count: 1, value: u16(order, 7)},
			{tag: 0x0004, typ: typeShort, value: u16(order, shot...)},
		})
		// appendIFD wrote pointers relative to the note; shift them into the stream.
		shiftPointers(note, order, offset)
		if footer {
			tail := make([]byte, 8)
			copy(tail, byteOrderMark(order))
			order.PutUint16(tail[2:], 42)
			order.PutUint32(tail[4:], offset)
			note = append(note, tail...)
		}
		return note
	}
}

// shiftPointers adds delta to every out-of-line value pointer of the directory at the start of note.
func shiftPointers(note []byte, order binary.ByteOrder, delta uint32) {
	count := int(order.Uint16(note))
	for i := range count {
		pos := 2 + 12*i
		typ := order.Uint16(note[pos+2:])
		n := order.Uint32(note[pos+4:])
		if typeWidth(typ)*n <= 4 {
			continue
		}
		order.PutUint32(note[pos+8:], order.Uint32(note[pos+8:])+delta)
	}
}

// Image describes the tags of a synthetic Canon image.
type Image struct {
	Order             binary.ByteOrder
	Make              string
	Model             string
	ExifVersion       string
	Sensitivity       uint16
	SensitivityValues map[uint16]uint32
	Serial            string
	Exposure          [2]uint32
	ShotInfo          []uint16
	Footer            bool
	OmitMaker         bool
	OmitSerial        bool
}

// Default returns a little endian Canon EOS 6D frame: REI 1600, 30s, 21°C.
func Default() Image {
	return Image{
		Order:       binary.LittleEndian,
		Make:        "Canon",
		Model:       "Canon EOS 6D",
		ExifVersion: "0230",
		Sensitivity: 2,
		SensitivityValues: map[uint16]uint32{
			0x8832: 1600,
		},
		Serial:   "012345678901",
		Exposure: [2]uint32{30, 1},
		ShotInfo: ShotInfo(149),
		Footer:   true,
	}
}

// Build encodes the image as a bare TIFF stream, the layout of a CR2 file.
func (o Image) Build() []byte {
	order := o.Order
	ifd0 := []tagDef{
		{tag: 0x010f, typ: typeASCII, value: ascii(o.Make)},
		{tag: 0x0110, typ: typeASCII, value: ascii(o.Model)},
	}

	exifIFD := []tagDef{
		{tag: 0x829a, typ: typeRational, value: rational(order, o.Exposure[0], o.Exposure[1])},
		{tag: 0x8830, typ: typeShort, count: 1, value: u16(order, o.Sensitivity)},
	}
	for _, tag := range []uint16{0x8831, 0x8832, 0x8833} {
		if v, ok := o.SensitivityValues[tag]; ok {
			exifIFD = append(exifIFD, tagDef{tag: tag, typ: typeLong, count: 1, value: u32(order, v)})
		}
	}
	exifIFD = append(exifIFD, tagDef{tag: 0x9000, typ: typeUndefined, count: 4, value: []byte(o.ExifVersion)})
	if !o.OmitMaker {
		exifIFD = append(exifIFD, tagDef{tag: 0x927c, typ: typeUndefined, valueAt: CanonMakerNote(order, o.ShotInfo, o.Footer)})
	}
	if !o.OmitSerial {
		exifIFD = append(exifIFD, tagDef{tag: 0xa431, typ: typeASCII, value: ascii(o.Serial)})
	}

	return buildTIFF(order, ifd0, exifIFD)
}

// Write stores data as name in a fresh temporary directory and returns its path.
func Write(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
