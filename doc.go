// Package btcfg loads and normalizes hierarchical backtest configuration.
//
// A configuration file may be JSON, YAML, HCL, or a JavaScript script whose
// top-level bindings become the configuration mapping. Files can declare a
// `_base_` key naming one or more parent configurations that are resolved
// relative to the including file and deep-merged beneath it. The assembled
// result is a plain nested mapping; sections tagged with a dotted `type` key
// can be normalized into instantiation descriptors consumed by a generic
// object constructor elsewhere in the system.
package btcfg
