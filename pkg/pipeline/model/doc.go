// Package model provides the data structures shared by the pipeline package.
// It defines the Value tagged union used for stage payloads, the Sequence of stages,
// ordered document literals and the JSON and YAML codecs for all of them.
package model
