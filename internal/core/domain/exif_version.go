package domain

import "fmt"

// ExifVersion is the decoded value of the ExifVersion tag, e.g. "0230" is 2.30.
type ExifVersion struct {
	Major uint8
	Minor uint8
}

// MinSupportedExifVersion is the first version that defines SensitivityType.
var MinSupportedExifVersion = ExifVersion{Major: 2, Minor: 30}

// Less reports whether v is an older version than other.
func (v ExifVersion) Less(other ExifVersion) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	return v.Minor < other.Minor
}

func (v ExifVersion) String() string {
	return fmt.Sprintf("%d.%02d", v.Major, v.Minor)
}
