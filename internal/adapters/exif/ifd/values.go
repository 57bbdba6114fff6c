package ifd

import (
	"bytes"
	"fmt"
	"math"

	"go.trai.ch/darkmagic/internal/core/domain"
	"go.trai.ch/zerr"
)

// Rational is an unsigned fraction.
type Rational struct {
	Num   uint32
	Denom uint32
}

// Float returns the value of the fraction. A zero denominator yields +Inf or NaN.
func (r Rational) Float() float64 {
	return float64(r.Num) / float64(r.Denom)
}

// SRational is a signed fraction.
type SRational struct {
	Num   int32
	Denom int32
}

// Float returns the value of the fraction.
func (r SRational) Float() float64 {
	return float64(r.Num) / float64(r.Denom)
}

func (e Entry) expect(t Type) error {
	if e.Type != t {
		return zerr.With(
			zerr.Wrap(domain.ErrInvalidData, fmt.Sprintf("tag 0x%04x is %s, not %s", e.Tag, e.Type, t)),
			"tag", e.Tag,
		)
	}
	return nil
}

// Bytes returns the raw value of a BYTE or UNDEFINED entry.
func (e Entry) Bytes() ([]byte, error) {
	if e.Type != TypeUByte && e.Type != TypeUndefined {
		return nil, e.expect(TypeUndefined)
	}
	return e.Data, nil
}

// SBytes returns the value of an SBYTE entry.
func (e Entry) SBytes() ([]int8, error) {
	if err := e.expect(TypeByte); err != nil {
		return nil, err
	}
	out := make([]int8, len(e.Data))
	for i, b := range e.Data {
		out[i] = int8(b)
	}
	return out, nil
}

// ASCII returns the NUL separated strings of an ASCII entry.
// The terminating NUL does not produce a trailing empty string.
func (e Entry) ASCII() ([]string, error) {
	if err := e.expect(TypeASCII); err != nil {
		return nil, err
	}
	return SplitASCII(e.Data), nil
}

// SplitASCII splits NUL separated strings, dropping the empty tail left by a final NUL.
func SplitASCII(data []byte) []string {
	parts := bytes.Split(data, []byte{0})
	if len(parts) > 0 && len(parts[len(parts)-1]) == 0 {
		parts = parts[:len(parts)-1]
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}
	return out
}

// Shorts returns the value of a SHORT entry.
func (e Entry) Shorts() ([]uint16, error) {
	if err := e.expect(TypeUShort); err != nil {
		return nil, err
	}
	out := make([]uint16, len(e.Data)/2)
	for i := range out {
		out[i] = e.order.Uint16(e.Data[2*i:])
	}
	return out, nil
}

// SShorts returns the value of an SSHORT entry.
func (e Entry) SShorts() ([]int16, error) {
	if err := e.expect(TypeShort); err != nil {
		return nil, err
	}
	out := make([]int16, len(e.Data)/2)
	for i := range out {
		out[i] = int16(e.order.Uint16(e.Data[2*i:]))
	}
	return out, nil
}

// Longs returns the value of a LONG entry.
func (e Entry) Longs() ([]uint32, error) {
	if err := e.expect(TypeULong); err != nil {
		return nil, err
	}
	out := make([]uint32, len(e.Data)/4)
	for i := range out {
		out[i] = e.order.Uint32(e.Data[4*i:])
	}
	return out, nil
}

// SLongs returns the value of an SLONG entry.
func (e Entry) SLongs() ([]int32, error) {
	if err := e.expect(TypeLong); err != nil {
		return nil, err
	}
	out := make([]int32, len(e.Data)/4)
	for i := range out {
		out[i] = int32(e.order.Uint32(e.Data[4*i:]))
	}
	return out, nil
}

// Rationals returns the value of a RATIONAL entry.
func (e Entry) Rationals() ([]Rational, error) {
	if err := e.expect(TypeURational); err != nil {
		return nil, err
	}
	out := make([]Rational, len(e.Data)/8)
	for i := range out {
		out[i] = Rational{
			Num:   e.order.Uint32(e.Data[8*i:]),
			Denom: e.order.Uint32(e.Data[8*i+4:]),
		}
	}
	return out, nil
}

// SRationals returns the value of an SRATIONAL entry.
func (e Entry) SRationals() ([]SRational, error) {
	if err := e.expect(TypeRational); err != nil {
		return nil, err
	}
	out := make([]SRational, len(e.Data)/8)
	for i := range out {
		out[i] = SRational{
			Num:   int32(e.order.Uint32(e.Data[8*i:])),
			Denom: int32(e.order.Uint32(e.Data[8*i+4:])),
		}
	}
	return out, nil
}

// Floats returns the value of a FLOAT entry.
func (e Entry) Floats() ([]float32, error) {
	if err := e.expect(TypeFloat); err != nil {
		return nil, err
	}
	out := make([]float32, len(e.Data)/4)
	for i := range out {
		out[i] = math.Float32frombits(e.order.Uint32(e.Data[4*i:]))
	}
	return out, nil
}

// Doubles returns the value of a DOUBLE entry.
func (e Entry) Doubles() ([]float64, error) {
	if err := e.expect(TypeDouble); err != nil {
		return nil, err
	}
	out := make([]float64, len(e.Data)/8)
	for i := range out {
		out[i] = math.Float64frombits(e.order.Uint64(e.Data[8*i:]))
	}
	return out, nil
}
