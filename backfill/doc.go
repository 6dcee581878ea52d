// Package backfill computes bio embeddings for stored profiles so the
// re-ranker can reuse them instead of embedding every bio per request.
//
// Profiles are scanned in ID order in fixed-size batches. Each batch is
// embedded with exponential-backoff retry, normalized to unit length and
// written back together with the digest of the bio it was computed from.
// Profiles whose stored vector is already current are skipped unless
// Config.Force is set.
package backfill
