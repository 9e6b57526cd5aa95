// Package form provides serialization types for dialog forms and layouts.
//
// This package defines the wire format between resource parsers and the
// layout engine, and the format of the engine's results as written to
// files, caches, the layout store and HTTP responses.
//
// # Architecture
//
//   - [Document], [Form], [Control]: parser output (this package)
//   - pkg/core/dialog.Form: the engine's input model
//   - [Layout], [Node]: serialized container trees
//   - pkg/core/sizer.Tree: the engine's output model
//
// Use [Form.ToDialog] and [FromTree]/[Layout.Tree] to convert between them.
//
// # Form Documents
//
// Documents can be JSON, TOML or YAML; [ReadFile] picks the decoder from
// the file extension. Every document is checked against the same JSON
// schema, so the three encodings accept exactly the same content:
//
//	{
//	  "forms": [{
//	    "id": "IDD_ABOUT",
//	    "rect": {"left": 0, "top": 0, "width": 200, "height": 100},
//	    "controls": [
//	      {"id": "IDOK", "kind": "button", "label": "OK",
//	       "rect": {"left": 140, "top": 80, "width": 50, "height": 14}}
//	    ]
//	  }]
//	}
//
// Control kinds accept the engine names (button, static, edit, ...) and the
// usual resource keywords (PUSHBUTTON, LTEXT, EDITTEXT, ...).
//
// # Layouts
//
// A [Layout] nests containers the way the engine built them. Leaves refer
// to controls by index into [Layout.Controls]:
//
//	{"type": "row", "name": "box_sizer_2", "children": [
//	  {"type": "control", "name": "IDC_NAME_LABEL", "control": 0},
//	  {"type": "control", "name": "IDC_NAME", "control": 1}
//	]}
package form
