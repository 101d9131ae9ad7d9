// Package geoio is the set of external collaborators spec.md keeps out of
// the embedder core: reading GeoJSON/DOT input into a LineGraph, loading
// obstacle polygons against a built GridGraph, and writing the embedded
// result back out as GeoJSON plus a JSON score dictionary.
//
// Grounded on github.com/LdDl/osm2ch's converter_geojson.go/geo.go/geomath.go
// (geojson encode/decode via paulmach/go.geojson, segment geometry via
// paulmach/orb), with errors wrapped via github.com/pkg/errors at every I/O
// boundary per that repo's style.
package geoio
