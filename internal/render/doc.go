// Package render turns an evaluated module into its markdown document: a title,
// the module file's leading comment block and an options table.
//
// Rendering never evaluates modules; output depends only on the extracted
// records and the header comment.
package render
