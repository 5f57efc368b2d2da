// Package engine implements the card recommendation core: reward
// computation, category prediction from transaction descriptions, and an
// online personalization scorer that adapts per-user card affinities.
//
// Nothing in this package locks. Classifier and Scorer are mutable and the
// caller must serialize access to each of them; a Recommend call that
// personalizes performs a score-then-update sequence that should run as one
// unit per user.
//
// Absence of training data degrades quality, never availability: an
// untrained classifier predicts CategoryOther and unknown users or cards get
// freshly initialized embeddings.
package engine
