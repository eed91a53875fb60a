// Package options extracts a flat, ordered option schema from an evaluated module option tree.
//
// The evaluated tree is a generic nested cty object. Classify walks it once and turns every
// node into either an OptionNode (the node carries `_type = "option"`) or a CategoryNode;
// Flatten then emits the option records depth-first with children in lexical key order.
package options
