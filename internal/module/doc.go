// Package module evaluates HCL module definitions against a synthetic context.
//
// Only a module's `options` attribute is ever evaluated. Every other attribute
// (config, imports, ...) stays an unevaluated expression, so a module may reference
// the empty placeholder fields anywhere outside its options without failing.
package module
