// Package config defines the format-agnostic run configuration, along with
// the Loader interface that format-specific packages implement.
//
// A config.Model holds every run found in the configuration files. Concrete
// loaders, such as the HCL and YAML ones, live in separate packages and only
// translate their syntax into this model.
package config
