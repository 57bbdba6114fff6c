// Package domain contains the core domain models for image capture metadata.
package domain

import "fmt"

// SensitivityType identifies which kind of sensitivity value the camera recorded,
// using the values defined for EXIF tag 0x8830.
type SensitivityType uint16

const (
	// SensitivityUnknown is the zero value and never a valid recorded type.
	SensitivityUnknown SensitivityType = 0
	// SensitivitySOS is Standard Output Sensitivity.
	SensitivitySOS SensitivityType = 1
	// SensitivityREI is Recommended Exposure Index.
	SensitivityREI SensitivityType = 2
	// SensitivityISO is ISO speed.
	SensitivityISO SensitivityType = 3
	// SensitivitySOSAndREI records both SOS and REI.
	SensitivitySOSAndREI SensitivityType = 4
	// SensitivitySOSAndISO records both SOS and ISO speed.
	SensitivitySOSAndISO SensitivityType = 5
	// SensitivityREIAndISO records both REI and ISO speed.
	SensitivityREIAndISO SensitivityType = 6
	// SensitivitySOSAndREIAndISO records SOS, REI and ISO speed.
	SensitivitySOSAndREIAndISO SensitivityType = 7
)

// EXIF tags holding the individual sensitivity values.
const (
	TagStandardOutputSensitivity uint16 = 0x8831
	TagRecommendedExposureIndex  uint16 = 0x8832
	TagISOSpeed                  uint16 = 0x8833
)

// String returns the short name of the sensitivity type.
func (s SensitivityType) String() string {
	switch s {
	case SensitivitySOS:
		return "SOS"
	case SensitivityREI:
		return "REI"
	case SensitivityISO:
		return "ISO"
	case SensitivitySOSAndREI:
		return "SOS+REI"
	case SensitivitySOSAndISO:
		return "SOS+ISO"
	case SensitivityREIAndISO:
		return "REI+ISO"
	case SensitivitySOSAndREIAndISO:
		return "SOS+REI+ISO"
	default:
		return fmt.Sprintf("Unknown(%d)", uint16(s))
	}
}

// SensitivityTag returns the EXIF tag that carries the sensitivity value for this type.
// ISO speed wins whenever it is recorded, then SOS, then REI.
func (s SensitivityType) SensitivityTag() (tag uint16, name string, ok bool) {
	switch s {
	case SensitivityISO, SensitivitySOSAndISO, SensitivityREIAndISO, SensitivitySOSAndREIAndISO:
		return TagISOSpeed, "ISOSpeed", true
	case SensitivitySOS, SensitivitySOSAndREI:
		return TagStandardOutputSensitivity, "StandardOutputSensitivity", true
	case SensitivityREI:
		return TagRecommendedExposureIndex, "RecommendedExposureIndex", true
	default:
		return 0, "", false
	}
}

// ImageMetadata holds the capture conditions extracted from a single image.
type ImageMetadata struct {
	CameraModel        string `json:"camera_model" yaml:"camera_model"`
	CameraSerialNumber string `json:"camera_serial_number" yaml:"camera_serial_number"`
	// Generally ISO, but may also be REI or SOS.
	SensorSensitivity uint32          `json:"sensor_sensitivity" yaml:"sensor_sensitivity"`
	SensitivityType   SensitivityType `json:"sensitivity_type" yaml:"sensitivity_type"`
	// Seconds.
	ExposureTime float64 `json:"exposure_time" yaml:"exposure_time"`
	// Degrees Celsius.
	Temperature float64 `json:"temperature" yaml:"temperature"`
}

// Result is the outcome of reading one file.
type Result struct {
	Path string
	// Name is the path as given on the command line. Empty means Path.
	Name     string
	Metadata *ImageMetadata
	Cached   bool
	Err      error
}

// DisplayName returns the path to show the user.
func (r Result) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Path
}
