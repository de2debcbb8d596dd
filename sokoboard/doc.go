// Package sokoboard defines the small, shared value types that every
// other package in this module builds on: board dimensions, the four
// push/pull directions, and the Solution record returned by the
// optimizer.
//
// Nothing here performs search or I/O. Level parsing, rendering, and
// persistence are external collaborators left to the caller.
package sokoboard
