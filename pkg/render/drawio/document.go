package drawio

import (
	"encoding/xml"
	"strconv"

	"github.com/matzehuels/umldraw/pkg/uml"
)

// Header is the XML declaration written before the document, in the form
// draw.io itself accepts.
const Header = "<?xml version='1.0' encoding='utf-8'?>\n"

const (
	classStyle = "swimlane;fontStyle=1;align=center;verticalAlign=top;childLayout=stackLayout;horizontal=1;startSize=26;horizontalStack=0;resizeParent=1;resizeParentMax=0;resizeLast=0;collapsible=1;marginBottom=0;whiteSpace=wrap;html=1;"
	rowStyle   = "text;strokeColor=none;fillColor=none;align=left;verticalAlign=top;spacingLeft=4;spacingRight=4;overflow=hidden;rotatable=0;points=[[0,0.5],[1,0.5]];portConstraint=eastwest;whiteSpace=wrap;html=1;"
	lineStyle  = "line;strokeColor=#000000;strokeWidth=1;"

	aggregationStyle = "edgeStyle=orthogonalEdgeStyle;rounded=0;dashed=1;orthogonalLoop=1;jettySize=auto;html=1;exitX=1;exitY=0.5;exitDx=0;exitDy=0;entryX=0.5;entryY=0;entryDx=0;entryDy=0;"
	compositionStyle = "edgeStyle=orthogonalEdgeStyle;rounded=0;orthogonalLoop=1;jettySize=auto;html=1;exitX=1;exitY=0.5;exitDx=0;exitDy=0;entryX=0.5;entryY=0;entryDx=0;entryDy=0;"
)

// Ids of the two bookkeeping cells every draw.io page starts with.
const (
	rootCellID  = "0"
	layerCellID = "1"
)

// DocumentOptions fills the <mxfile> header. The defaults are the values of a
// draw.io desktop save, which the application opens without prompting.
type DocumentOptions struct {
	Host     string `toml:"host" json:"host"`
	Modified string `toml:"modified" json:"modified"`
	Agent    string `toml:"agent" json:"agent"`
	Etag     string `toml:"etag" json:"etag"`
	Version  string `toml:"version" json:"version"`
	PageName string `toml:"page_name" json:"page_name"`
}

// DefaultDocumentOptions returns the stock header values.
func DefaultDocumentOptions() DocumentOptions {
	return DocumentOptions{
		Host:     "Electron",
		Modified: "2024-07-29T16:06:34.368Z",
		Agent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) draw.io/24.6.4 Chrome/124.0.6367.207 Electron/30.0.6 Safari/537.36",
		Etag:     "U2siYsB3k-YUB959YpKu",
		Version:  "24.6.4",
		PageName: "Page-1",
	}
}

type mxFile struct {
	XMLName  xml.Name `xml:"mxfile"`
	Host     string   `xml:"host,attr"`
	Modified string   `xml:"modified,attr"`
	Agent    string   `xml:"agent,attr"`
	Etag     string   `xml:"etag,attr"`
	Version  string   `xml:"version,attr"`
	Type     string   `xml:"type,attr"`
	Diagram  diagram  `xml:"diagram"`
}

type diagram struct {
	Name  string     `xml:"name,attr"`
	ID    string     `xml:"id,attr"`
	Model graphModel `xml:"mxGraphModel"`
}

type graphModel struct {
	Dx         string `xml:"dx,attr"`
	Dy         string `xml:"dy,attr"`
	Grid       string `xml:"grid,attr"`
	GridSize   string `xml:"gridSize,attr"`
	Guides     string `xml:"guides,attr"`
	Tooltips   string `xml:"tooltips,attr"`
	Connect    string `xml:"connect,attr"`
	Arrows     string `xml:"arrows,attr"`
	Fold       string `xml:"fold,attr"`
	Page       string `xml:"page,attr"`
	PageScale  string `xml:"pageScale,attr"`
	PageWidth  string `xml:"pageWidth,attr"`
	PageHeight string `xml:"pageHeight,attr"`
	Math       string `xml:"math,attr"`
	Shadow     string `xml:"shadow,attr"`
	Root       root   `xml:"root"`
}

type root struct {
	Cells []cell `xml:"mxCell"`
}

type cell struct {
	ID       string    `xml:"id,attr"`
	Value    *string   `xml:"value,attr"`
	Style    string    `xml:"style,attr,omitempty"`
	Vertex   string    `xml:"vertex,attr,omitempty"`
	Edge     string    `xml:"edge,attr,omitempty"`
	Parent   string    `xml:"parent,attr,omitempty"`
	Source   string    `xml:"source,attr,omitempty"`
	Target   string    `xml:"target,attr,omitempty"`
	Geometry *geometry `xml:"mxGeometry"`
}

type geometry struct {
	X      string `xml:"x,attr,omitempty"`
	Y      string `xml:"y,attr,omitempty"`
	Width  string `xml:"width,attr,omitempty"`
	Height string `xml:"height,attr,omitempty"`
	As     string `xml:"as,attr"`
}

func newGraphModel() graphModel {
	return graphModel{
		Dx: "1194", Dy: "814", Grid: "0", GridSize: "10", Guides: "0",
		Tooltips: "1", Connect: "1", Arrows: "1", Fold: "1", Page: "1",
		PageScale: "1", PageWidth: "827", PageHeight: "1169", Math: "0", Shadow: "0",
	}
}

// buildDocument assembles the cell tree: bookkeeping cells, then per class
// its container, attribute rows, separator and method rows, then all edges.
func buildDocument(l Layout, edges []Edge, opts DocumentOptions) mxFile {
	cells := []cell{
		{ID: rootCellID},
		{ID: layerCellID, Parent: rootCellID},
	}

	for _, b := range l.Boxes {
		cells = append(cells, cell{
			ID:     b.ClassID,
			Value:  ptr(b.Name),
			Style:  classStyle,
			Vertex: "1",
			Parent: layerCellID,
			Geometry: &geometry{
				X: num(b.X), Y: num(b.Y), Width: num(b.Width), Height: num(b.Height),
				As: "geometry",
			},
		})
		for _, r := range b.Attributes {
			cells = append(cells, rowCell(b, r))
		}
		cells = append(cells, cell{
			ID:       b.Separator.ID,
			Style:    lineStyle,
			Vertex:   "1",
			Parent:   b.ClassID,
			Geometry: &geometry{Y: num(b.Separator.Y), Width: num(b.Width), Height: num(b.Separator.Height), As: "geometry"},
		})
		for _, r := range b.Methods {
			cells = append(cells, rowCell(b, r))
		}
	}

	for _, e := range edges {
		style := compositionStyle
		if e.Kind == uml.Aggregation {
			style = aggregationStyle
		}
		cells = append(cells, cell{
			ID:       e.ID,
			Value:    ptr(""),
			Style:    style,
			Edge:     "1",
			Parent:   layerCellID,
			Source:   e.Source,
			Target:   e.Target,
			Geometry: &geometry{As: "geometry"},
		})
	}

	model := newGraphModel()
	model.Root.Cells = cells

	return mxFile{
		Host:     opts.Host,
		Modified: opts.Modified,
		Agent:    opts.Agent,
		Etag:     opts.Etag,
		Version:  opts.Version,
		Type:     "device",
		Diagram: diagram{
			Name:  opts.PageName,
			ID:    "page-1",
			Model: model,
		},
	}
}

func rowCell(b Box, r Row) cell {
	return cell{
		ID:       r.ID,
		Value:    ptr(r.Label),
		Style:    rowStyle,
		Vertex:   "1",
		Parent:   b.ClassID,
		Geometry: &geometry{Y: num(r.Y), Width: num(b.Width), Height: num(r.Height), As: "geometry"},
	}
}

func ptr(s string) *string { return &s }

// num formats a coordinate without a trailing ".0" for whole numbers.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
