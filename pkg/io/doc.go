// Package io provides JSON import and export for nesting layouts.
//
// # JSON Format
//
// A layout is a JSON object with the sheet dimensions and an array of
// placements:
//
//	{
//	  "sheet_width": 100,
//	  "height": 42.5,
//	  "placements": [
//	    {"name": "bracket", "dx": 0, "dy": 0, "poly": [{"x": 0, "y": 0}, ...]}
//	  ]
//	}
//
// Placement polygons are stored in sheet coordinates, already translated by
// dx/dy, so consumers can draw them without re-running the packer.
//
// # Import and Export
//
// Use [ExportJSON] / [ImportJSON] for file paths, or [WriteJSON] /
// [ReadJSON] for any io.Writer / io.Reader:
//
//	layout, err := io.ImportJSON("layout.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Export and re-import round-trip exactly; this is what the render command
// relies on to redraw a cached layout in a different format.
package io
