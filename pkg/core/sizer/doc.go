// Package sizer holds the container tree produced by dialog layout.
//
// A [Tree] is an arena: containers live in one slice and refer to each other
// by [Handle]. Leaves are [Child] slots that point either at a control (by
// its index in the form's control slice), at another container, or at an
// empty spacer cell used to keep grids rectangular.
package sizer
