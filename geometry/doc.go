// Package geometry precomputes the dense coordinate spaces and
// neighbor tables every other package in this module searches over.
//
// A sokoboard.Board addresses cells by their full row-major index.
// Most cells are irrelevant to the search (walls, or squares no box
// can ever occupy), so geometry.Tables derives two smaller, densely
// packed index spaces once per level:
//
//   - player positions: every cell the player may ever stand on.
//   - box positions: every cell a box may ever occupy (a subset of
//     player positions).
//
// All other packages (boxcfg, boardstore, generator, vicinity,
// reconstruct) operate purely in these dense spaces; geometry.Tables
// is the only place that ever looks at full-board coordinates.
//
// This mirrors gridgraph.NewGridGraph's single precomputed
// neighbor-offset table, generalized to two coordinate spaces and to
// the player<->box correspondence Sokoban needs.
package geometry
