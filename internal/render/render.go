// Package render defines the data contract between the engine core and the
// external rendering backend. The core produces per-chunk instance buckets
// and dynamic single meshes; the backend consumes them and never calls back.
package render

import "mc-lite/internal/registry"

// Instance is one rendered block of an instanced bucket. Positions are block
// coordinates; the backend offsets by +0.5 per axis to center geometry.
// AOLow/AOHigh pack 24 two-bit per-vertex ambient occlusion values in
// vertex-index order (faces: top, north, south, west, east, bottom; four
// corners each; corners 0..15 in AOLow, 16..23 in AOHigh).
type Instance struct {
	X, Y, Z int32
	AOLow   uint32
	AOHigh  uint32
}

// Buckets groups the instances of one chunk by block type.
type Buckets map[registry.BlockID][]Instance

// Sink is the renderer-facing surface of the engine. Implementations own GPU
// resources; the engine only hands over values.
type Sink interface {
	// UploadChunk replaces the instanced buckets of a chunk.
	UploadChunk(cx, cz int, buckets Buckets)
	// DisposeChunk releases all resources of a chunk on stream-out.
	DisposeChunk(cx, cz int)
	// HideInstance zeroes a single instance of a bucket after a mutation.
	HideInstance(cx, cz int, id registry.BlockID, index int)
	// AddDynamic creates a single mesh for a block placed or revealed after
	// generation.
	AddDynamic(pos [3]int, id registry.BlockID)
	// RemoveDynamic drops a dynamic single mesh.
	RemoveDynamic(pos [3]int)
}

// NopSink discards everything. Used headless and in tests.
type NopSink struct{}

func (NopSink) UploadChunk(int, int, Buckets)                 {}
func (NopSink) DisposeChunk(int, int)                         {}
func (NopSink) HideInstance(int, int, registry.BlockID, int)  {}
func (NopSink) AddDynamic([3]int, registry.BlockID)           {}
func (NopSink) RemoveDynamic([3]int)                          {}
