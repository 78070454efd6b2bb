// Package numeric provides utility functions for numerical computations,
// particularly focused on handling floating-point precision issues in
// geometric code.
//
// # Overview
//
// The numeric package contains the epsilon-tolerant comparison helpers used
// by every other package in the polyarc library. Positional comparisons use
// absolute epsilon thresholds; angular comparisons are expected to be scaled
// by the radius at the call site so the tolerance stays dimensionally
// consistent.
//
// # Features
//
//   - Absolute Value Calculation: The Abs function computes the absolute
//     value of any signed number, supporting both integer and floating-point
//     types.
//
//   - Floating-Point Comparisons: Functions such as FloatEquals,
//     FloatGreaterThan, FloatLessThan, and their variants provide robust
//     comparisons between floating-point numbers using an epsilon threshold
//     to mitigate precision errors.
//
//   - Range Checks: FloatInRange reports whether a value lies within a
//     closed interval expanded by the epsilon on both sides.
//
// # Usage
//
// This package is particularly useful in scenarios where direct equality
// checks for floating-point numbers are unreliable due to the inherent
// imprecision of floating-point arithmetic.
package numeric
