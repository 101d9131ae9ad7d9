package geoio

import "errors"

// Sentinel errors returned by geoio readers, wrapped with field/line
// context via github.com/pkg/errors at the call site.
var (
	// ErrMalformedInput indicates a required property is missing or a
	// coordinate is non-numeric. Corresponds to spec.md's MalformedInput
	// error kind.
	ErrMalformedInput = errors.New("geoio: malformed input")
	// ErrUnknownNodeRef indicates an edge or line-occurrence property
	// refers to a node id that was never declared as a Point feature.
	ErrUnknownNodeRef = errors.New("geoio: reference to unknown node id")
	// ErrUnsupportedGeometry indicates a GeoJSON feature's geometry type
	// is neither Point nor LineString where one of those was required.
	ErrUnsupportedGeometry = errors.New("geoio: unsupported geometry type")
)
