// Package project reads pgm project directories: the functions,
// triggers, and views object directories plus the ordered migrations
// and seeds directories.
package project
