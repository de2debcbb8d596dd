// Package optimizer is the vicinity-search engine's public entry
// point. Given one or more known solutions to a puzzle, Optimize
// drives generator, vicinity and reconstruct over the bounded universe
// of box configurations near those solutions and returns whichever
// solution comes out ahead under the chosen OptimizationMethod.
//
// Finding a solution from scratch, optimizing all five metrics at
// once, and incremental re-optimization of a partial solution are all
// out of scope: this package only ever improves on solutions it is
// handed.
package optimizer
