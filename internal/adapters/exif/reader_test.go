package exif_test

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/darkmagic/internal/adapters/exif"
	"go.trai.ch/darkmagic/internal/adapters/exif/exiftest"
	"go.trai.ch/darkmagic/internal/core/domain"
	"go.trai.ch/darkmagic/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newReader(t *testing.T) *exif.Reader {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Trace(gomock.Any()).AnyTimes()
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return exif.NewReader(logger)
}

func TestReader_Read_TracesEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	var traced []string
	logger.EXPECT().Trace(gomock.Any()).Do(func(msg string) {
		traced = append(traced, msg)
	}).MinTimes(1)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	path := exiftest.Write(t, "IMG_0001.CR2", exiftest.Default().Build())
	_, err := exif.NewReader(logger).Read(context.Background(), path)
	require.NoError(t, err)

	assert.Contains(t, traced, "tag 0x8830 SHORT[1]")
}

func TestReader_Read(t *testing.T) {
	want := &domain.ImageMetadata{
		CameraModel:        "Canon EOS 6D",
		CameraSerialNumber: "012345678901",
		SensorSensitivity:  1600,
		SensitivityType:    domain.SensitivityREI,
		ExposureTime:       30,
		Temperature:        21,
	}

	t.Run("tiff little endian", func(t *testing.T) {
		path := exiftest.Write(t, "IMG_0001.CR2", exiftest.Default().Build())

		got, err := newReader(t).Read(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("tiff big endian", func(t *testing.T) {
		img := exiftest.Default()
		img.Order = binary.BigEndian
		path := exiftest.Write(t, "IMG_0002.CR2", img.Build())

		got, err := newReader(t).Read(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("jpeg", func(t *testing.T) {
		path := exiftest.Write(t, "IMG_0003.JPG", exiftest.WrapJPEG(exiftest.Default().Build()))

		got, err := newReader(t).Read(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("maker note without footer", func(t *testing.T) {
		img := exiftest.Default()
		img.Footer = false
		path := exiftest.Write(t, "IMG_0004.CR2", img.Build())

		got, err := newReader(t).Read(context.Background(), path)
		require.NoError(t, err)
		assert.InDelta(t, 21.0, got.Temperature, 1e-9)
	})
}

func TestReader_Read_Fields(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*exiftest.Image)
		check  func(*testing.T, *domain.ImageMetadata)
	}{
		{
			name: "model without make prefix",
			modify: func(o *exiftest.Image) {
				o.Model = "EOS R5"
			},
			check: func(t *testing.T, md *domain.ImageMetadata) {
				t.Helper()
				assert.Equal(t, "Canon EOS R5", md.CameraModel)
			},
		},
		{
			name: "fractional exposure",
			modify: func(o *exiftest.Image) {
				o.Exposure = [2]uint32{1, 250}
			},
			check: func(t *testing.T, md *domain.ImageMetadata) {
				t.Helper()
				assert.InDelta(t, 0.004, md.ExposureTime, 1e-9)
			},
		},
		{
			name: "below freezing",
			modify: func(o *exiftest.Image) {
				o.ShotInfo = exiftest.ShotInfo(123)
			},
			check: func(t *testing.T, md *domain.ImageMetadata) {
				t.Helper()
				assert.InDelta(t, -5.0, md.Temperature, 1e-9)
			},
		},
		{
			name: "standard output sensitivity",
			modify: func(o *exiftest.Image) {
				o.Sensitivity = 1
				o.SensitivityValues = map[uint16]uint32{0x8831: 400}
			},
			check: func(t *testing.T, md *domain.ImageMetadata) {
				t.Helper()
				assert.Equal(t, uint32(400), md.SensorSensitivity)
				assert.Equal(t, domain.SensitivitySOS, md.SensitivityType)
			},
		},
		{
			name: "iso speed",
			modify: func(o *exiftest.Image) {
				o.Sensitivity = 3
				o.SensitivityValues = map[uint16]uint32{0x8833: 3200, 0x8831: 1}
			},
			check: func(t *testing.T, md *domain.ImageMetadata) {
				t.Helper()
				assert.Equal(t, uint32(3200), md.SensorSensitivity)
				assert.Equal(t, domain.SensitivityISO, md.SensitivityType)
			},
		},
		{
			name: "sos and rei",
			modify: func(o *exiftest.Image) {
				o.Sensitivity = 4
				o.SensitivityValues = map[uint16]uint32{0x8831: 800, 0x8832: 1000}
			},
			check: func(t *testing.T, md *domain.ImageMetadata) {
				t.Helper()
				assert.Equal(t, uint32(800), md.SensorSensitivity)
			},
		},
		{
			name: "newer exif version",
			modify: func(o *exiftest.Image) {
				o.ExifVersion = "0231"
			},
			check: func(t *testing.T, md *domain.ImageMetadata) {
				t.Helper()
				assert.Equal(t, uint32(1600), md.SensorSensitivity)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := exiftest.Default()
			tt.modify(&img)
			path := exiftest.Write(t, "image.cr2", img.Build())

			md, err := newReader(t).Read(context.Background(), path)
			require.NoError(t, err)
			tt.check(t, md)
		})
	}
}

func TestReader_Read_Errors(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*exiftest.Image)
		target   error
		contains string
	}{
		{
			name: "exif version too old",
			modify: func(o *exiftest.Image) {
				o.ExifVersion = "0221"
			},
			target:   domain.ErrUnsupported,
			contains: "exif version < 2.3 is not supported",
		},
		{
			name: "non numeric exif version",
			modify: func(o *exiftest.Image) {
				o.ExifVersion = "02x0"
			},
			target:   domain.ErrInvalidData,
			contains: "expected numeric ascii digits",
		},
		{
			name: "unknown sensitivity type",
			modify: func(o *exiftest.Image) {
				o.Sensitivity = 0
			},
			target:   domain.ErrUnsupported,
			contains: "unknown SensitivityType",
		},
		{
			name: "sensitivity value missing",
			modify: func(o *exiftest.Image) {
				o.SensitivityValues = nil
			},
			target:   domain.ErrInvalidData,
			contains: "missing RecommendedExposureIndex field",
		},
		{
			name: "serial number missing",
			modify: func(o *exiftest.Image) {
				o.OmitSerial = true
			},
			target:   domain.ErrInvalidData,
			contains: "missing BodySerialNumber field",
		},
		{
			name: "zero exposure denominator",
			modify: func(o *exiftest.Image) {
				o.Exposure = [2]uint32{1, 0}
			},
			target:   domain.ErrInvalidData,
			contains: "zero denominator",
		},
		{
			name: "not a canon",
			modify: func(o *exiftest.Image) {
				o.Make = "NIKON CORPORATION"
				o.Model = "NIKON D850"
			},
			target:   domain.ErrUnsupported,
			contains: "only Canon cameras are supported",
		},
		{
			name: "maker note missing",
			modify: func(o *exiftest.Image) {
				o.OmitMaker = true
			},
			target:   domain.ErrInvalidData,
			contains: "missing MakerNote field",
		},
		{
			name: "short ShotInfo",
			modify: func(o *exiftest.Image) {
				o.ShotInfo = []uint16{1, 2, 3}
			},
			target:   domain.ErrInvalidData,
			contains: "missing camera temperature field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := exiftest.Default()
			tt.modify(&img)
			path := exiftest.Write(t, "image.cr2", img.Build())

			md, err := newReader(t).Read(context.Background(), path)
			require.Error(t, err)
			assert.Nil(t, md)
			require.ErrorIs(t, err, tt.target)
			assert.ErrorContains(t, err, tt.contains)
		})
	}
}

func TestReader_Read_InputErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := newReader(t).Read(context.Background(), "/nonexistent/IMG_0001.CR2")
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to read image")
	})

	t.Run("not an image", func(t *testing.T) {
		path := exiftest.Write(t, "notes.txt", []byte("definitely not a raw file"))
		_, err := newReader(t).Read(context.Background(), path)
		require.Error(t, err)
		assert.ErrorContains(t, err, "failed to decode exif")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		path := exiftest.Write(t, "image.cr2", exiftest.Default().Build())

		_, err := newReader(t).Read(ctx, path)
		require.ErrorIs(t, err, context.Canceled)
	})
}
