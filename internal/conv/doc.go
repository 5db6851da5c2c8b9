// Package conv provides overflow-checked integer conversions.
//
// Sizes and offsets that cross the native/managed boundary originate from
// catalog metadata and foreign array lengths, neither of which is trusted.
// Every narrowing conversion goes through this package so an out-of-range
// value surfaces as an error instead of silent truncation.
package conv
