// Package testutil holds helpers shared by the setpart tests.
package testutil

import "regexp"

// csiPattern matches CSI escape sequences (ESC '[' params final-letter),
// which is all the themes emit. The spinner's carriage returns and
// backspaces are left alone.
var csiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

// StripAnsiCodes returns s without colour and cursor escape sequences, so
// that CLI output can be compared as plain text.
func StripAnsiCodes(s string) string {
	return csiPattern.ReplaceAllString(s, "")
}
