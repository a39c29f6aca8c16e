// Package viewhelper implements the invocation protocol every view helper node
// of a template syntax tree follows.
//
// A helper is a struct embedding Base (or TagBased for helpers that emit one
// markup tag) and implementing Render. Helpers declare their render
// parameters through RenderParameters and any extra arguments through
// InitializeArguments; the resolved definitions are cached per helper type in
// the Registry's DefinitionCache and shared by every later instance.
//
// The tree walker drives an instance through a fixed sequence:
//
//	SetArguments → SetRenderingContext → [SetRenderChildrenClosure] →
//	InitializeArgumentsAndRender (ValidateArguments → Initialize → CallRenderMethod)
//
// Render failures of kind *Exception (and type mismatches raised from inside
// Render) are mapped through the registry's RecoveryPolicy; declaration errors
// and validation failures always propagate.
package viewhelper
