// Package skyline represents and combines 2D skylines: piecewise-linear
// upper envelopes of line segments, oriented along one of four directions.
//
// A skyline answers two questions that drive silhouette packing:
//
//  1. What is the combined outline of several shapes projected along an
//     axis? ([Skyline.Merge] unions two envelopes.)
//  2. How far apart are two shapes when pushed together along an axis
//     without overlapping? ([Overlap] computes the worst-case contact
//     distance between complementary-direction skylines.)
//
// Skylines are built from raw segments with [Single], combined with
// [Skyline.Merge], and translated with [Skyline.Slide] and [Skyline.Bump].
// The direction is a type parameter ([Up], [Down], [Left], [Right]), so
// merging skylines of different orientations, or overlapping skylines
// that are not complementary, does not compile.
//
// # Example
//
//	floor := skyline.Empty[skyline.Up]()
//	floor.Merge(skyline.Single[skyline.Up](0, 0, 10, 0))
//
//	part := skyline.Single[skyline.Down](2, 0, 5, 0)
//	rest := skyline.Overlap(floor, part) // height at which part rests on floor
package skyline
