// Package book lays out the mdBook source tree in a staging directory, runs the
// external book builder against it and promotes the result to the output
// directory only when every step succeeded.
//
// Layout:
//
//	book.toml
//	src/SUMMARY.md
//	src/<module>-docs.md
//	src/<category>.md
//	book/            (written by the builder)
package book
