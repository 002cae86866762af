package drawio

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/matzehuels/umldraw/pkg/uml"
)

func decode(t *testing.T, data []byte) mxFile {
	t.Helper()
	var f mxFile
	if err := xml.Unmarshal(data, &f); err != nil {
		t.Fatalf("output is not valid XML: %v", err)
	}
	return f
}

func TestRenderHeader(t *testing.T) {
	res, err := Render(newModel())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !bytes.HasPrefix(res.Data, []byte(Header+"<mxfile ")) {
		t.Errorf("output starts with %q", res.Data[:min(len(res.Data), 60)])
	}

	f := decode(t, res.Data)
	def := DefaultDocumentOptions()
	if f.Host != def.Host || f.Version != def.Version || f.Type != "device" {
		t.Errorf("header = %+v", f)
	}
	if f.Diagram.Name != "Page-1" {
		t.Errorf("page name = %q", f.Diagram.Name)
	}
}

func TestRenderCellOrder(t *testing.T) {
	res, err := Render(newModel())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var ids []string
	for _, c := range decode(t, res.Data).Diagram.Model.Root.Cells {
		ids = append(ids, c.ID)
	}
	want := []string{
		"0", "1",
		"Class_1", "Class_1_2", "Class_1_separator", "Class_1_3",
		"Class_4", "Class_4_5", "Class_4_separator",
		"Class_4_6", "Class_4_7",
	}
	if strings.Join(ids, " ") != strings.Join(want, " ") {
		t.Errorf("cells = %v\nwant  %v", ids, want)
	}
}

func TestRenderCells(t *testing.T) {
	res, err := Render(newModel())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	cells := make(map[string]cell)
	for _, c := range decode(t, res.Data).Diagram.Model.Root.Cells {
		cells[c.ID] = c
	}

	person := cells["Class_1"]
	if person.Style != classStyle || person.Parent != "1" || person.Vertex != "1" {
		t.Errorf("class cell = %+v", person)
	}
	if g := person.Geometry; g == nil || g.X != "20" || g.Y != "20" || g.Width != "160" || g.Height != "86" {
		t.Errorf("class geometry = %+v", person.Geometry)
	}

	row := cells["Class_1_2"]
	if row.Value == nil || *row.Value != "name : Constant, str" || row.Parent != "Class_1" || row.Style != rowStyle {
		t.Errorf("attribute row = %+v", row)
	}
	if sep := cells["Class_1_separator"]; sep.Style != lineStyle || sep.Geometry.Y != "52" {
		t.Errorf("separator = %+v", sep)
	}

	comp := cells["Class_4_6"]
	if comp.Style != compositionStyle || comp.Source != "Class_4_5" || comp.Target != "Class_1" || comp.Edge != "1" {
		t.Errorf("composition edge = %+v", comp)
	}
	agg := cells["Class_4_7"]
	if agg.Style != aggregationStyle || agg.Source != "Class_4" {
		t.Errorf("aggregation edge = %+v", agg)
	}
	if !strings.Contains(aggregationStyle, "dashed=1") || strings.Contains(compositionStyle, "dashed") {
		t.Error("only aggregation edges are dashed")
	}
}

func TestRenderSkipsUnresolved(t *testing.T) {
	m := newModel()
	team := m.Classes[1]
	bad := team.AddRelation(uml.Composition, "Ghost", "lead")
	odd := team.AddRelation(uml.RelationKind("inheritance"), "Person", "")

	res, err := Render(m)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if len(res.Diagnostics) != 2 {
		t.Fatalf("diagnostics = %v", res.Diagnostics)
	}
	for _, id := range []string{bad.ID, odd.ID} {
		if bytes.Contains(res.Data, []byte(`id="`+id+`"`)) {
			t.Errorf("unresolved relation %s was written", id)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	a, err := Render(newModel())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(newModel())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Data, b.Data) {
		t.Error("rendering the same model twice gave different output")
	}
}

func TestRenderOptions(t *testing.T) {
	layout := DefaultOptions()
	layout.OriginX = 100
	doc := DefaultDocumentOptions()
	doc.PageName = "Classes"

	res, err := Render(newModel(), WithLayout(layout), WithDocument(doc))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if res.Layout.Boxes[0].X != 100 {
		t.Errorf("first box x = %v, want 100", res.Layout.Boxes[0].X)
	}
	if f := decode(t, res.Data); f.Diagram.Name != "Classes" {
		t.Errorf("page name = %q", f.Diagram.Name)
	}
}

func TestRenderEmptyModel(t *testing.T) {
	res, err := Render(&uml.Model{})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if cells := decode(t, res.Data).Diagram.Model.Root.Cells; len(cells) != 2 {
		t.Errorf("empty model cells = %d, want 2", len(cells))
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{0: "0", 20: "20", 165: "165", 12.5: "12.5"}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %q, want %q", in, got, want)
		}
	}
}
