// Package syntaxtree provides a minimal template syntax tree and the walker
// that drives view helpers through the invocation protocol. Trees are built
// programmatically (or by a front-end such as the pongo2 bridge) and are safe
// to evaluate from concurrent render passes; each pass brings its own
// rendering context.
//
// Output of object accessors is HTML-escaped unless the closest enclosing
// helper disables its escaping interceptor. Helper arguments are never
// escaped.
package syntaxtree
