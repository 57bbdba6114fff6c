package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidData is returned when an image carries malformed or missing EXIF data.
	ErrInvalidData = zerr.New("invalid data")

	// ErrUnsupported is returned when an image is well formed but cannot be handled,
	// e.g. an old EXIF version or a camera vendor without maker note support.
	ErrUnsupported = zerr.New("unsupported")

	// ErrNoInputFiles is returned when no files are given to read.
	ErrNoInputFiles = zerr.New("no input files specified")

	// ErrInputNotFound is returned when a glob argument matches no file.
	ErrInputNotFound = zerr.New("input not found")

	// ErrExtractionFailed is returned when at least one file could not be read.
	ErrExtractionFailed = zerr.New("metadata extraction failed")

	// ErrUnknownFormat is returned for an output format other than text, json or yaml.
	ErrUnknownFormat = zerr.New("unknown output format")

	// ErrInvalidConfig is returned when a config file holds an out of range value.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = zerr.New("config file not found")
)
