package app_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/darkmagic/internal/app"
	"go.trai.ch/darkmagic/internal/core/domain"
)

func sampleResults() []domain.Result {
	return []domain.Result{
		{
			Path: "/img/IMG_0001.CR2",
			Metadata: &domain.ImageMetadata{
				CameraModel:        "Canon EOS 6D",
				CameraSerialNumber: "012345678901",
				SensorSensitivity:  1600,
				SensitivityType:    domain.SensitivityREI,
				ExposureTime:       30,
				Temperature:        21,
			},
		},
		{
			Path: "/img/broken.cr2",
			Err:  errors.New("missing MakerNote field"),
		},
		{
			Path:   "/img/IMG_0002.CR2",
			Cached: true,
			Metadata: &domain.ImageMetadata{
				CameraModel:        "Canon EOS R5",
				CameraSerialNumber: "987654321",
				SensorSensitivity:  3200,
				SensitivityType:    domain.SensitivityISO,
				ExposureTime:       0.004,
				Temperature:        -5,
			},
		},
	}
}

func TestWriteResults(t *testing.T) {
	tests := []struct {
		name   string
		format domain.OutputFormat
	}{
		{name: "results_text", format: domain.OutputText},
		{name: "results_json", format: domain.OutputJSON},
		{name: "results_yaml", format: domain.OutputYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, app.WriteResults(&buf, tt.format, sampleResults()))

			g := goldie.New(t)
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestWriteResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, app.WriteResults(&buf, domain.OutputText, nil))
	assert.Empty(t, buf.String())

	buf.Reset()
	require.NoError(t, app.WriteResults(&buf, domain.OutputJSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteResults_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := app.WriteResults(&buf, domain.OutputFormat("xml"), sampleResults())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownFormat.Error())
}

func TestFormatExposure(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{seconds: 30, want: "30s"},
		{seconds: 1, want: "1s"},
		{seconds: 2.5, want: "2.5s"},
		{seconds: 0.004, want: "1/250s"},
		{seconds: 0.5, want: "1/2s"},
		{seconds: 1.0 / 3, want: "1/3s"},
		{seconds: 0.3, want: "0.3s"},
		{seconds: 0, want: "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, app.FormatExposure(tt.seconds))
		})
	}
}
