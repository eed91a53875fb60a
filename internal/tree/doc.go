// Package tree merges module paths into the navigation hierarchy of categories and module
// leaves, and renders it as the book's SUMMARY document.
package tree
