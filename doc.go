// Package flat2d batches 2D sprites and images into instanced quad draws.
//
// A frame goes through four steps on a [Batch]:
//
//   - collect: [Batch.AddSprite] and [Batch.AddImage] record one [Quad] per
//     visible 2D object. Objects whose sprite sheet or texture is not loaded
//     are logged and skipped; objects without a [Transform] are skipped
//     silently.
//   - sort: [Batch.Sort] orders the collected quads by texture so that quads
//     sharing a texture are adjacent. Quads added after Sort form the ordered
//     part of the frame and keep their insertion order.
//   - encode: [Quad.Encode] turns a quad into an [Instance] of 15 floats
//     (basis vectors, position, texture rectangle, depth, color).
//   - emit: [Batch.Encode] cuts the instances into runs of one texture and
//     issues one [DrawCall] per run on a [Device], 6 vertices instanced
//     Slice.Instances times.
//
// [Batch.Reset] clears everything between frames.
//
// [EbitenDevice] implements Device on [Ebitengine], expanding each instance to
// two triangles. Textures and sprite sheets live in a [Storage]; sheets can be
// loaded from YAML ([LoadSpriteSheetYAML]) or TexturePacker JSON
// ([LoadTexturePackerSheet]).
//
// The flat2d/ecs package wires all of this to a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package flat2d
