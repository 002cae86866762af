// Package drawio renders a class model as a draw.io (mxGraph) diagram.
//
// Rendering happens in three steps, each usable on its own:
//
//  1. [ComputeLayout] sizes one box per class from its text and places the
//     boxes left to right on a single row.
//  2. [Resolve] turns the model's name-based relations into edges between
//     cell ids, reporting the ones it cannot place as [Diagnostic] values.
//  3. [Render] runs both and serializes the draw.io document.
//
// # Box Geometry
//
// A box is a title band followed by one row per attribute, a separator line
// and one row per method:
//
//	height = cell + cell*attributes + separator + cell*methods
//	width  = max(minWidth, ceil(longestLabel * letterSize * letterFactor))
//
// Label length is counted in characters, not bytes.
//
// # Edges
//
// Aggregation edges are dashed and start at the owning class box.
// Composition edges are solid and start at the attribute row that holds the
// reference. Both end at the top middle of the target class.
//
// # Example
//
//	res, err := drawio.Render(model)
//	if err != nil {
//	    return err
//	}
//	for _, d := range res.Diagnostics {
//	    log.Warn(d.String())
//	}
//	os.WriteFile("output.drawio", res.Data, 0o644)
package drawio
