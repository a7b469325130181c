// Package store provides the DynamoDB persistence layer for song records.
//
// Records live in a single table whose partition key is the song id.
// The package implements [github.com/jacentio/songbook/songs.Store], so
// the service layer never sees an SDK type.
//
// # Semantics
//
//   - Get returns songs.ErrNotFound for missing ids
//   - Put overwrites the full record unconditionally
//   - Update and Delete guard on attribute_exists(id), mapping a failed
//     condition to songs.ErrNotFound without a prior read
//   - Update returns the merged record (ALL_NEW); Delete returns the
//     removed record (ALL_OLD)
//   - ListAll follows scan pagination until the table is exhausted
//
// # Errors
//
// Transport and environment failures (missing table, network errors,
// exceeded deadlines) wrap songs.ErrUnavailable:
//
//	song, err := st.Get(ctx, id)
//	if errors.Is(err, songs.ErrUnavailable) {
//	    // store unreachable, not a data problem
//	}
//
// # Provisioning
//
// [Store.EnsureTable] creates the table with on-demand billing and
// waits for it to become ACTIVE. [Store.EnablePointInTimeRecovery] and
// [Store.DescribeStatus] back the operator tooling.
package store
