// Package generator runs the optionbook pipeline:
//
//	resolve → evaluate → build_tree → render → assemble → run_builder → finalize
//
// Evaluation and rendering fan out over a bounded worker pool; the tree build is
// a barrier between them. Any failure aborts the run, removes the staging
// directory and leaves the previous output untouched.
package generator
