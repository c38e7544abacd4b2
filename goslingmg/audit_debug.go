//go:build boardaudit

package goslingmg

// Built with -tags boardaudit, every make/undo re-derives the whole board
// state and panics on divergence, printing the offending position. The
// search is far too hot for this in normal builds.
const auditEnabled = true
