// Package template defines the template renderer contract view helpers are
// exposed through. The gotemplate subpackage implements it on pongo2 and adds
// the {% helper %} tag.
package template
