package drawio

import (
	"math"
	"unicode/utf8"

	"github.com/matzehuels/umldraw/pkg/uml"
)

// Default layout metrics, matching draw.io's stock UML class shape.
const (
	DefaultCellHeight      = 26.0
	DefaultSeparatorHeight = 8.0
	DefaultLetterSize      = 12.0
	DefaultLetterFactor    = 0.55
	DefaultMinWidth        = 160.0
	DefaultOriginX         = 20.0
	DefaultOriginY         = 20.0
	DefaultGap             = 40.0
)

// Options holds the metrics used to size and place class boxes.
type Options struct {
	// CellHeight is the height of the title band and of every row.
	CellHeight float64 `toml:"cell_height" json:"cell_height"`
	// SeparatorHeight is the height of the line between attributes and methods.
	SeparatorHeight float64 `toml:"separator_height" json:"separator_height"`
	// LetterSize and LetterFactor estimate the pixel width of one character
	// as LetterSize*LetterFactor.
	LetterSize   float64 `toml:"letter_size" json:"letter_size"`
	LetterFactor float64 `toml:"letter_factor" json:"letter_factor"`
	// MinWidth is the narrowest a box may be.
	MinWidth float64 `toml:"min_width" json:"min_width"`
	// OriginX and OriginY place the first box.
	OriginX float64 `toml:"origin_x" json:"origin_x"`
	OriginY float64 `toml:"origin_y" json:"origin_y"`
	// Gap is the horizontal space between neighbouring boxes.
	Gap float64 `toml:"gap" json:"gap"`
}

// DefaultOptions returns the stock metrics.
func DefaultOptions() Options {
	return Options{
		CellHeight:      DefaultCellHeight,
		SeparatorHeight: DefaultSeparatorHeight,
		LetterSize:      DefaultLetterSize,
		LetterFactor:    DefaultLetterFactor,
		MinWidth:        DefaultMinWidth,
		OriginX:         DefaultOriginX,
		OriginY:         DefaultOriginY,
		Gap:             DefaultGap,
	}
}

// Row is one line inside a box. Y is relative to the top of the box.
type Row struct {
	ID     string
	Label  string
	Y      float64
	Height float64
}

// Box is the rectangle for one class.
type Box struct {
	ClassID    string
	Name       string
	X, Y       float64
	Width      float64
	Height     float64
	Attributes []Row
	Separator  Row
	Methods    []Row
}

// Right returns the x coordinate of the box's right edge.
func (b Box) Right() float64 { return b.X + b.Width }

// Layout is the computed placement of every class box, in model order.
type Layout struct {
	Boxes []Box
	// Width and Height bound all boxes including the origin offset.
	Width, Height float64
}

// ComputeLayout places the classes of m left to right on a single row. Boxes
// are sized from their content; nothing is cached between calls.
func ComputeLayout(m *uml.Model, opts Options) Layout {
	var l Layout
	x := opts.OriginX
	for _, c := range m.Classes {
		b := layoutClass(c, x, opts.OriginY, opts)
		l.Boxes = append(l.Boxes, b)
		l.Width = b.Right()
		l.Height = max(l.Height, b.Y+b.Height)
		x += b.Width + opts.Gap
	}
	return l
}

func layoutClass(c *uml.Class, x, y float64, opts Options) Box {
	attrs := c.Attributes.All()
	b := Box{
		ClassID: c.ID,
		Name:    c.Name,
		X:       x,
		Y:       y,
		Width:   BoxWidth(c, opts),
		Height:  BoxHeight(len(attrs), len(c.Methods), opts),
	}

	offset := opts.CellHeight
	for _, a := range attrs {
		b.Attributes = append(b.Attributes, Row{ID: a.ID, Label: a.Label(), Y: offset, Height: opts.CellHeight})
		offset += opts.CellHeight
	}
	b.Separator = Row{ID: c.ID + "_separator", Y: offset, Height: opts.SeparatorHeight}
	offset += opts.SeparatorHeight
	for _, m := range c.Methods {
		b.Methods = append(b.Methods, Row{ID: m.ID, Label: m.Label(), Y: offset, Height: opts.CellHeight})
		offset += opts.CellHeight
	}
	return b
}

// BoxHeight returns title band + attribute rows + separator + method rows.
func BoxHeight(attributes, methods int, opts Options) float64 {
	return opts.CellHeight +
		opts.CellHeight*float64(attributes) +
		opts.SeparatorHeight +
		opts.CellHeight*float64(methods)
}

// BoxWidth estimates the width needed for the longest of the class name and
// its attribute and method labels, never less than opts.MinWidth.
func BoxWidth(c *uml.Class, opts Options) float64 {
	longest := utf8.RuneCountInString(c.Name)
	for _, a := range c.Attributes.All() {
		longest = max(longest, utf8.RuneCountInString(a.Label()))
	}
	for _, m := range c.Methods {
		longest = max(longest, utf8.RuneCountInString(m.Label()))
	}
	return TextWidth(longest, opts)
}

// TextWidth converts a character count to a box width.
func TextWidth(chars int, opts Options) float64 {
	return max(opts.MinWidth, math.Ceil(float64(chars)*opts.LetterSize*opts.LetterFactor))
}
