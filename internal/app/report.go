package app

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"go.trai.ch/darkmagic/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// record is the printed form of one successfully read file.
type record struct {
	Path     string       `json:"path" yaml:"path"`
	Metadata metadataView `json:"metadata" yaml:"metadata"`
}

type metadataView struct {
	CameraModel        string  `json:"camera_model" yaml:"camera_model"`
	CameraSerialNumber string  `json:"camera_serial_number" yaml:"camera_serial_number"`
	SensorSensitivity  uint32  `json:"sensor_sensitivity" yaml:"sensor_sensitivity"`
	SensitivityType    string  `json:"sensitivity_type" yaml:"sensitivity_type"`
	ExposureTime       float64 `json:"exposure_time" yaml:"exposure_time"`
	Temperature        float64 `json:"temperature" yaml:"temperature"`
}

func records(results []domain.Result) []record {
	out := make([]record, 0, len(results))
	for _, r := range results {
		if r.Err != nil || r.Metadata == nil {
			continue
		}
		md := r.Metadata
		out = append(out, record{
			Path: r.DisplayName(),
			Metadata: metadataView{
				CameraModel:        md.CameraModel,
				CameraSerialNumber: md.CameraSerialNumber,
				SensorSensitivity:  md.SensorSensitivity,
				SensitivityType:    md.SensitivityType.String(),
				ExposureTime:       md.ExposureTime,
				Temperature:        md.Temperature,
			},
		})
	}
	return out
}

// WriteResults prints the successful results in the given format, in order.
func WriteResults(w io.Writer, format domain.OutputFormat, results []domain.Result) error {
	recs := records(results)

	switch format {
	case domain.OutputText, "":
		return writeText(w, recs)
	case domain.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	case domain.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(recs); err != nil {
			return err
		}
		return enc.Close()
	default:
		return zerr.With(domain.ErrUnknownFormat, "format", string(format))
	}
}

func writeText(w io.Writer, recs []record) error {
	for i, r := range recs {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		md := r.Metadata
		lines := [][2]string{
			{"camera_model:", md.CameraModel},
			{"camera_serial_number:", md.CameraSerialNumber},
			{"sensor_sensitivity:", fmt.Sprintf("%d (%s)", md.SensorSensitivity, md.SensitivityType)},
			{"exposure_time:", FormatExposure(md.ExposureTime)},
			{"temperature:", strconv.FormatFloat(md.Temperature, 'f', -1, 64) + "°C"},
		}
		if _, err := fmt.Fprintln(w, r.Path); err != nil {
			return err
		}
		for _, l := range lines {
			if _, err := fmt.Fprintf(w, "  %-21s %s\n", l[0], l[1]); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatExposure renders an exposure time in seconds the way cameras show it:
// whole or decimal seconds from one second up, a unit fraction below.
func FormatExposure(seconds float64) string {
	if seconds >= 1 || seconds <= 0 {
		return strconv.FormatFloat(seconds, 'f', -1, 64) + "s"
	}
	inv := 1 / seconds
	if r := math.Round(inv); math.Abs(inv-r) < 1e-6*r {
		return fmt.Sprintf("1/%.0fs", r)
	}
	return strconv.FormatFloat(seconds, 'f', -1, 64) + "s"
}
