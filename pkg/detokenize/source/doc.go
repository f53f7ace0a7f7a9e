// Package source loads and stores detokenize definitions.
//
// An Entry is the serializable form of one definition. Entries come from
// value files (YAML or JSON, see Parse) or from a Store of named value sets,
// and are turned into a detokenize.List with Definitions.
package source
