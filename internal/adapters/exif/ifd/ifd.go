// Package ifd decodes TIFF Image File Directories.
//
// See https://www.media.mit.edu/pia/Research/deepview/exif.html#DataForm for the
// layout of a directory entry and the data formats.
package ifd

import (
	"encoding/binary"
	"fmt"
	"math"

	"go.trai.ch/darkmagic/internal/core/domain"
	"go.trai.ch/zerr"
)

// Type is the data format of a directory entry.
type Type uint16

// TIFF data formats.
const (
	TypeUByte     Type = 1
	TypeASCII     Type = 2
	TypeUShort    Type = 3
	TypeULong     Type = 4
	TypeURational Type = 5
	TypeByte      Type = 6
	TypeUndefined Type = 7
	TypeShort     Type = 8
	TypeLong      Type = 9
	TypeRational  Type = 10
	TypeFloat     Type = 11
	TypeDouble    Type = 12
)

const (
	entrySize   = 12
	inlineBytes = 4
)

// Width returns the size in bytes of a single element of the type.
func (t Type) Width() (int, error) {
	switch t {
	case TypeByte, TypeUByte, TypeASCII, TypeUndefined:
		return 1, nil
	case TypeShort, TypeUShort:
		return 2, nil
	case TypeLong, TypeULong, TypeFloat:
		return 4, nil
	case TypeRational, TypeURational, TypeDouble:
		return 8, nil
	default:
		return 0, zerr.With(zerr.Wrap(domain.ErrInvalidData, fmt.Sprintf("unknown IFD data type %d", t)), "type", uint16(t))
	}
}

func (t Type) String() string {
	switch t {
	case TypeUByte:
		return "BYTE"
	case TypeASCII:
		return "ASCII"
	case TypeUShort:
		return "SHORT"
	case TypeULong:
		return "LONG"
	case TypeURational:
		return "RATIONAL"
	case TypeByte:
		return "SBYTE"
	case TypeUndefined:
		return "UNDEFINED"
	case TypeShort:
		return "SSHORT"
	case TypeLong:
		return "SLONG"
	case TypeRational:
		return "SRATIONAL"
	case TypeFloat:
		return "FLOAT"
	case TypeDouble:
		return "DOUBLE"
	default:
		return fmt.Sprintf("Type(%d)", uint16(t))
	}
}

// Entry is one decoded directory entry.
type Entry struct {
	Tag   uint16
	Type  Type
	Count uint32
	// Data holds Count elements of Type in the directory's byte order.
	Data []byte
	// Offset is the position of Data in the buffer the directory was decoded from,
	// before any pointer fixup. Zero when the value was stored inline.
	Offset uint32

	order binary.ByteOrder
}

// NewEntry builds an entry from already extracted value bytes.
func NewEntry(tag uint16, typ Type, count uint32, data []byte, offset uint32, order binary.ByteOrder) Entry {
	return Entry{Tag: tag, Type: typ, Count: count, Data: data, Offset: offset, order: order}
}

// Entries is a decoded directory.
type Entries []Entry

// Find returns the first entry with the given tag.
func (es Entries) Find(tag uint16) (Entry, bool) {
	for _, e := range es {
		if e.Tag == tag {
			return e, true
		}
	}
	return Entry{}, false
}

// Decode reads the directory that starts at offset in data.
//
// Pointers to out-of-line values are adjusted by fixup before being resolved
// against data. This lets a directory that was cut out of a larger TIFF stream,
// such as a maker note, be decoded with its original pointers.
func Decode(data []byte, order binary.ByteOrder, offset, fixup int) (Entries, error) {
	if offset < 0 || offset+2 > len(data) {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidData, "IFD offset out of range"), "offset", offset)
	}

	count := int(order.Uint16(data[offset:]))
	pos := offset + 2
	if pos+count*entrySize > len(data) {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidData, "IFD truncated"), "entries", count)
	}

	entries := make(Entries, 0, count)
	for range count {
		raw := data[pos : pos+entrySize]
		pos += entrySize

		tag := order.Uint16(raw[0:])
		typ := Type(order.Uint16(raw[2:]))
		elements := order.Uint32(raw[4:])

		width, err := typ.Width()
		if err != nil {
			return nil, zerr.With(err, "tag", tag)
		}

		size := uint64(width) * uint64(elements)
		if size > math.MaxInt32 {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidData, "IFD value size overflows"), "tag", tag)
		}

		entry := Entry{Tag: tag, Type: typ, Count: elements, order: order}
		if size <= inlineBytes {
			entry.Data = append([]byte(nil), raw[8:8+size]...)
		} else {
			ptr := order.Uint32(raw[8:])
			start := int64(ptr) + int64(fixup)
			if start < 0 || start+int64(size) > int64(len(data)) {
				return nil, zerr.With(
					zerr.Wrap(domain.ErrInvalidData, "IFD value pointer out of range"),
					"tag", tag,
				)
			}
			entry.Data = append([]byte(nil), data[start:start+int64(size)]...)
			entry.Offset = ptr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
