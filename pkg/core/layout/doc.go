// Package layout reconstructs a container tree from absolutely positioned
// dialog controls.
//
// # Overview
//
// Legacy dialog resources place every control at fixed coordinates. This
// package infers the nested rows, columns, grids and group boxes that
// reproduce the same arrangement in a sizer-based toolkit. The result is a
// [sizer.Tree] whose leaves index the form's (sorted) control slice.
//
// # Passes
//
// [Build] runs these steps on one form:
//
//  1. [SortControls] orders controls by top then left, repairing labels that
//     were nudged down to center them against a taller field.
//  2. Standard OK/Cancel style buttons of a dialog are pulled into a single
//     standard button container (see [StdButtonFlag]).
//  3. The remaining controls are scanned once. A control that shares its top
//     with the next one starts a row, or a grid when several aligned rows
//     follow ([GridNeeded]). Otherwise it starts a column that swallows the
//     left-aligned controls below it. Group boxes collect the controls they
//     enclose and lay them out recursively with looser row matching
//     ([GroupGridNeeded]); controls beside a box share a row with it.
//  4. The standard button container is appended last and duplicate
//     container names get numeric suffixes.
//
// The tree is not minimal. Single-child rows and columns are common and
// harmless.
//
// # Tolerances
//
// Rows match on exact tops at the top level and within two dialog units
// inside group boxes. Column membership compares pixel left edges within
// [dialog.Fudge]. These values reproduce the long-standing importer and
// should not be tuned.
//
// # Concurrency
//
// Build mutates its form and is not safe for concurrent use on the same
// form. Distinct forms can be laid out in parallel.
package layout
