// Package helpers contains the built-in view helpers: the switch/case
// control-flow pair, a tag-based link helper and raw/sanitize formatters.
//
// Switch and Case coordinate through the "Switch" namespace of the view
// helper variable container; no other helper reads or writes it.
package helpers
