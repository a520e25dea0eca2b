// Package config defines the format-agnostic configuration model for the
// simulated node tree, along with the Loader interface implemented by the
// concrete document formats.
//
// The model is the single source of truth for the builder. Concrete loaders,
// such as JSON/YAML and HCL, are provided in separate packages and must
// return a model that already carries the documented defaults.
package config
