// Package hcl is the HCL-specific implementation of the config.Loader
// interface. It discovers scenario files, parses them with hclparse,
// decodes the block structure with gohcl, and translates the result into
// the format-agnostic config model.
package hcl
