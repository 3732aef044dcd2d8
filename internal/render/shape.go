package render

import (
	"image/color"

	"github.com/yeqown/go-qrcode/writer/standard"
	"github.com/yeqown/go-qrcode/writer/standard/shapes"
)

// Shape is how each dark module is drawn.
type Shape string

const (
	ShapeRectangle Shape = "rectangle"
	ShapeCircle    Shape = "circle"
	ShapeLiquid    Shape = "liquid"
	ShapeChain     Shape = "chain"
	ShapeHStripe   Shape = "hstripe"
	ShapeVStripe   Shape = "vstripe"
)

// Shapes lists the supported module shapes, default first.
func Shapes() []Shape {
	return []Shape{ShapeRectangle, ShapeCircle, ShapeLiquid, ShapeChain, ShapeHStripe, ShapeVStripe}
}

func (s Shape) option() (standard.ImageOption, bool) {
	switch s {
	case ShapeCircle:
		return standard.WithCircleShape(), true
	case ShapeLiquid:
		return standard.WithCustomShape(shapes.Assemble(shapes.RoundedFinder(), shapes.LiquidBlock())), true
	case ShapeChain:
		return standard.WithCustomShape(shapes.Assemble(shapes.RoundedFinder(), shapes.ChainBlock())), true
	case ShapeHStripe:
		return standard.WithCustomShape(shapes.Assemble(shapes.SquareFinder(), shapes.HStripeBlock(0.85))), true
	case ShapeVStripe:
		return standard.WithCustomShape(shapes.Assemble(shapes.SquareFinder(), shapes.VStripeBlock(0.85))), true
	}
	return nil, false
}

// Gradient colours the dark modules with a three stop linear gradient at
// 45 degrees.
type Gradient struct {
	Start  color.RGBA
	Middle color.RGBA
	End    color.RGBA
}

// DefaultGradient runs from black through grey to red.
func DefaultGradient() Gradient {
	return Gradient{
		Start:  color.RGBA{0, 0, 0, 255},
		Middle: color.RGBA{128, 128, 128, 255},
		End:    color.RGBA{255, 0, 0, 255},
	}
}

func (g *Gradient) option() standard.ImageOption {
	return standard.WithFgGradient(standard.NewGradient(45,
		standard.ColorStop{T: 0, Color: g.Start},
		standard.ColorStop{T: 0.5, Color: g.Middle},
		standard.ColorStop{T: 1, Color: g.End},
	))
}
