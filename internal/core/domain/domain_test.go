package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/darkmagic/internal/core/domain"
)

func TestSensitivityType_SensitivityTag(t *testing.T) {
	tests := []struct {
		typ     domain.SensitivityType
		tag     uint16
		name    string
		handled bool
	}{
		{domain.SensitivitySOS, domain.TagStandardOutputSensitivity, "StandardOutputSensitivity", true},
		{domain.SensitivityREI, domain.TagRecommendedExposureIndex, "RecommendedExposureIndex", true},
		{domain.SensitivityISO, domain.TagISOSpeed, "ISOSpeed", true},
		{domain.SensitivitySOSAndREI, domain.TagStandardOutputSensitivity, "StandardOutputSensitivity", true},
		{domain.SensitivitySOSAndISO, domain.TagISOSpeed, "ISOSpeed", true},
		{domain.SensitivityREIAndISO, domain.TagISOSpeed, "ISOSpeed", true},
		{domain.SensitivitySOSAndREIAndISO, domain.TagISOSpeed, "ISOSpeed", true},
		{domain.SensitivityUnknown, 0, "", false},
		{domain.SensitivityType(8), 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			tag, name, ok := tt.typ.SensitivityTag()
			assert.Equal(t, tt.handled, ok)
			assert.Equal(t, tt.tag, tag)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestSensitivityType_String(t *testing.T) {
	assert.Equal(t, "ISO", domain.SensitivityISO.String())
	assert.Equal(t, "SOS+REI+ISO", domain.SensitivitySOSAndREIAndISO.String())
	assert.Equal(t, "Unknown(9)", domain.SensitivityType(9).String())
}

func TestExifVersion_Less(t *testing.T) {
	assert.True(t, domain.ExifVersion{Major: 2, Minor: 21}.Less(domain.MinSupportedExifVersion))
	assert.True(t, domain.ExifVersion{Major: 1, Minor: 99}.Less(domain.MinSupportedExifVersion))
	assert.False(t, domain.ExifVersion{Major: 2, Minor: 30}.Less(domain.MinSupportedExifVersion))
	assert.False(t, domain.ExifVersion{Major: 2, Minor: 32}.Less(domain.MinSupportedExifVersion))
	assert.False(t, domain.ExifVersion{Major: 3, Minor: 0}.Less(domain.MinSupportedExifVersion))
	assert.Equal(t, "2.30", domain.ExifVersion{Major: 2, Minor: 30}.String())
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		count    int
		expected domain.LogLevel
	}{
		{0, domain.LogLevelError},
		{1, domain.LogLevelWarn},
		{2, domain.LogLevelInfo},
		{3, domain.LogLevelDebug},
		{4, domain.LogLevelTrace},
		{10, domain.LogLevelTrace},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, domain.LevelFromVerbosity(tt.count), "verbosity %d", tt.count)
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.OutputFormat
		ok       bool
	}{
		{"", domain.OutputText, true},
		{"text", domain.OutputText, true},
		{"JSON", domain.OutputJSON, true},
		{"yml", domain.OutputYAML, true},
		{"yaml", domain.OutputYAML, true},
		{"xml", "", false},
	}

	for _, tt := range tests {
		got, ok := domain.ParseOutputFormat(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.expected, got, tt.input)
	}
}
