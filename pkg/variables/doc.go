// Package variables holds the two variable scopes shared across one render
// pass: the flat template variable scope resolved by object accessors, and the
// namespaced view helper container that lets helper nodes without a direct
// reference to each other (Switch and Case, for example) coordinate.
//
// Neither container is safe for concurrent use. A render pass is a single
// synchronous tree walk and owns its containers for its whole duration.
package variables
