// Package pipeline provides a builder, a composer and utilities for aggregation pipelines.
//
// An aggregation pipeline is an ordered sequence of stages. Each stage is a document with a single
// operator key, such as $match or $group, mapping to the argument of that operator. The package does
// not run pipelines: it assembles them and hands the resulting sequence to an external executor.
//
// The Builder accumulates stages through chained calls. The first invalid call is recorded and stops
// the chain, so a whole chain can be checked once with Build. The Composer validates sequences that
// were built independently and merges them into one. Validation happens before anything is merged,
// which means a failed composition never leaves a partially merged sequence behind.
//
// Validation is purely structural. It checks the shape of every stage, the length of the sequence and
// the operator names, never whether the arguments make sense for the engine that will run them.
//
// The remaining functions are stateless helpers over sequences: JSON and YAML codecs, deep copies,
// statistics, filtering, positional edits and structural comparison.
package pipeline
