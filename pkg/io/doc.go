// Package io reads puzzle batches and writes solver results.
//
// # Batch files
//
// A batch is a TOML file with one [[puzzle]] table per query:
//
//	[[puzzle]]
//	name  = "warmup"
//	start = [3, 1, 2]
//
//	[[puzzle]]
//	name  = "burnt"
//	start = [-2, 1, -3]
//	burnt = true
//	goal  = [1, 2, 3]   # optional, defaults to the sorted stack
//
// Use [ImportPuzzles] to read a file or [ReadPuzzles] for any io.Reader.
// Unknown keys, a missing start and duplicate names are rejected with an
// INVALID_BATCH error. Whether a start is a valid stack is left to the
// solver, so one bad puzzle does not hide the others.
//
// # JSON export
//
// [WriteJSON] and [WriteBatchJSON] encode results in the same document
// shape the HTTP API answers with:
//
//	{
//	  "start": [3, 1, 2],
//	  "goal": [1, 2, 3],
//	  "mode": "regular",
//	  "fewest_moves": 2,
//	  "path": [[3, 1, 2], [2, 1, 3], [1, 2, 3]],
//	  "moves": [2, 1],
//	  "admitted": true,
//	  "upper_bound": 3,
//	  "bound_exact": true,
//	  "explored": 6,
//	  "elapsed_ms": 0.02
//	}
//
// fewest_moves is null when the search was declined or the goal is
// unreachable.
package io
