// Package magetasks provides the build, test and lint tasks used by the
// Magefile. Tasks shell out through mage's sh package so output streams
// straight to the terminal.
package magetasks
