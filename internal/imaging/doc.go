// Package imaging provides the pixel-level operations behind label
// recognition: the OCR preprocessing chain, geometric transforms, and
// background color estimation.
//
// The package name intentionally shadows github.com/disintegration/imaging,
// which supplies most of the underlying resampling and rotation primitives;
// callers outside this package only see the wrappers here.
//
// # Preprocessing
//
// Preprocess turns a small, noisy label thumbnail into something an OCR
// engine can read:
//
//  1. Grayscale conversion
//  2. Integer upscaling with Lanczos resampling
//  3. Autocontrast (linear stretch of the observed intensity range)
//  4. Fixed contrast boost
//  5. Optional binarization at a configured cutoff
//  6. Optional unsharp mask
//
// The chain is deterministic: the same input and configuration always yield
// the same output, which keeps candidate scoring reproducible.
//
// # Transforms
//
// Rotations are counterclockwise, matching the convention of the scanning
// software that produced the source images. Right-angle rotations are exact
// pixel shuffles; arbitrary angles resample against a background color,
// which BackgroundFill estimates from the image's border ring.
package imaging
