// Package imaging provides the raster I/O layer: a cache of decoded
// screenshots plus PNG encoding helpers.
//
// Screenshots are decoded once and reused across preview, batch crop,
// and page detection calls. Images are keyed by the exact path string
// they were loaded with.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The encoding helpers
// are stateless.
//
// # Error Handling
//
// Functions return wrapped errors for file I/O failures and for data
// that does not decode as PNG.
package imaging
