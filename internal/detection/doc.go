// Package detection locates the label region within a slide thumbnail.
//
// Scanner thumbnails place the label at the left edge of the frame, often
// separated from the tissue area by a dark vertical bar. The detector
// exploits that layout with a column-darkness heuristic rather than general
// computer vision: it is fast, dependency-free, and fails safely.
//
// # Algorithm
//
//  1. Compute the mean luminance of each pixel column, restricted to the
//     middle vertical band of the image so top/bottom borders do not vote.
//  2. Within a horizontal window covering the plausible bar positions, find
//     runs of consecutive dark columns and pick the widest run as the
//     separator bar.
//  3. Place the crop's right edge just past the bar, clamped to a minimum
//     fraction of the image width.
//
// When no convincing run exists, the detector falls back to a fixed-ratio
// crop of the left portion of the frame. The result is therefore always a
// valid, non-empty region.
//
// # Coordinate System
//
// Boxes follow the standard image convention: origin at the top-left,
// inclusive left/top edges and exclusive right/bottom edges.
package detection
