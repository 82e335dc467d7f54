// Package ui renders command lifecycle events as console sentences.
//
// It is wired into the shell executor when the console log format is selected,
// so that users see which git commands and editors workon runs on their behalf.
package ui
