// Package reconstruct recovers a concrete move sequence from the
// board-position metrics left behind by a vicinity search. Given a set
// of recorded rendezvous points, it walks backward-stored and
// forward-stored metrics in parallel — one goroutine per rendezvous —
// to assemble the (box_cfg, player_pos) chain spanning start to end,
// then fills in concrete player moves between consecutive chain
// entries with a fresh per-pair BFS, racing every candidate result
// into a single best-solution slot with atomic.Pointer CAS.
package reconstruct
