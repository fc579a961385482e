// meta/meta.go
package meta

// DEPTH defines the default search depth in plies.
const DEPTH = 3

// LIMIT defines the default number of candidates kept per node (-1 keeps all).
const LIMIT = -1

// JITTER defines the default width of the random tie-breaking jitter.
const JITTER = 1.0

// MAX_MOVES defines the number of plies after which a game is stopped.
const MAX_MOVES = 300
