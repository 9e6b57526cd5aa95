// Package render groups the renderers for layout trees.
//
// [diagram] converts a container tree to Graphviz DOT and renders it to
// SVG or PNG, or draws it as a text tree for terminals. The JSON layout
// format lives in package form.
package render
