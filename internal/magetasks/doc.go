// Package magetasks holds the build, test and lint tasks behind the
// Magefile.
package magetasks
