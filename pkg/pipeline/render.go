package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/umldraw/pkg/errors"
	umlio "github.com/matzehuels/umldraw/pkg/io"
	"github.com/matzehuels/umldraw/pkg/render/drawio"
	"github.com/matzehuels/umldraw/pkg/render/nodelink"
	"github.com/matzehuels/umldraw/pkg/uml"
)

// Render generates the output artifact for opts.Format.
// The draw.io format is encoded from plan; the others read the model.
func Render(ctx context.Context, m *uml.Model, plan Plan, opts Options) ([]byte, error) {
	switch opts.Format {
	case FormatDrawio:
		return drawio.Encode(plan.Layout, plan.Edges, opts.Document)
	case FormatJSON:
		var buf bytes.Buffer
		if err := umlio.WriteJSON(m, &buf); err != nil {
			return nil, fmt.Errorf("render json: %w", err)
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(ToDOT(m)), nil
	case FormatSVG:
		data, err := nodelink.RenderSVG(ctx, ToDOT(m))
		if err != nil {
			return nil, fmt.Errorf("render svg: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", opts.Format)
	}
}

// ToDOT renders the Graphviz preview with members and inheritance shown.
func ToDOT(m *uml.Model) string {
	return nodelink.ToDOT(m, nodelink.Options{Members: true, Inheritance: true})
}
