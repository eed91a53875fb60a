// Package config loads optionbook.yaml: the module catalog or explicit module
// list, the package set exposed to modules, rendering toggles, the external
// book builder and the output directory.
package config
