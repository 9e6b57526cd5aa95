// Package dialog models the controls of a legacy dialog resource.
//
// Every control carries its rectangle twice: in dialog units as read from the
// resource script, and in pixels derived for the reference font. The
// comparators in this package decide row and column membership with the
// same tolerances the resource importer has always used; they are
// deliberately asymmetric in places and must not be "fixed":
//
//   - [SameTop] lets a static label sit one or two units lower than its
//     sibling, but not the other way round.
//   - [IsInRange] compares pixel values within [Fudge].
//
// A [Form] owns its controls. Layout code reorders them in place and may
// snap a control's top with [Control.SetTop]; nothing else mutates them.
package dialog
