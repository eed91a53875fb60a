// Package errors provides foundational, type-safe error primitives used across optionbook.
//
// Domain packages return typed errors (module.EvaluationError, tree.CollisionError, ...).
// The generator wraps them into a ClassifiedError so the CLI can pick an exit code and a
// exit code without string matching.
//
// Example usage:
//
//	err := errors.ModuleError("module evaluation failed").
//		WithCause(cause).
//		WithContext("module", path).
//		Build()
package errors
