// Package keymap maps terminal key tokens to calculator input events.
//
// A keymap is a table from the string a terminal feeds ("7", "+",
// "enter", "esc") to the event the engine processes. The builtin
// Default() table covers the standard layout; user profiles written in
// CUE can rebind any token on top of it.
package keymap
