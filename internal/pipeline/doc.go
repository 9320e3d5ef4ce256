// Package pipeline orchestrates file discovery, the per-file analysis
// passes, and batch aggregation. Processing is strictly sequential: one
// file is probed, analyzed, and classified before the next begins, and no
// per-file failure ever aborts the batch.
package pipeline
