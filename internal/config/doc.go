// Package config loads the YAML process configuration shared by the
// gatherer and deduplicator binaries.
//
// Values of the form ${VAR} are expanded from the environment before
// parsing. LoadAndValidate is the usual entry point: it applies defaults
// for every optional field and then validates the result.
package config
