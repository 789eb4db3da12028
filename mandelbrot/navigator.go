package mandelbrot

import "math"

const (
	DefaultPanSpeed = 1.0
	DefaultZoomRate = 1.05

	// scrollDivisor is how many wheel notches it takes to shrink the view to nothing.
	scrollDivisor = 10.0
)

// Navigator owns a viewport and the zoom state behind it. Every user action is an explicit
// call; nothing here polls input or renders.
//
// zoomAmount is a continuous exponent: the view is magnified 2^zoomAmount times relative to the
// initial framing and never less than that.
type Navigator struct {
	heightInitial float64
	viewport      Viewport
	widthInitial  float64
	zoomAmount    float64

	PanSpeed float64
	ZoomRate float64
}

// NewNavigator frames a plane region height tall, centered on the origin, with the width
// following the pixel grid's aspect ratio.
func NewNavigator(height float64, widthPx int, heightPx int) *Navigator {
	n := &Navigator{
		heightInitial: height,
		widthInitial:  height * float64(widthPx) / float64(heightPx),
		viewport: Viewport{
			WidthPx:  widthPx,
			HeightPx: heightPx,
		},
		PanSpeed: DefaultPanSpeed,
		ZoomRate: DefaultZoomRate,
	}
	n.Reset()
	return n
}

// Viewport returns a snapshot of the current viewport.
func (n *Navigator) Viewport() Viewport {
	return n.viewport
}

func (n *Navigator) ZoomAmount() float64 {
	return n.zoomAmount
}

func (n *Navigator) magnification() float64 {
	return math.Pow(2.0, n.zoomAmount)
}

// Pan moves the origin by direction*PanSpeed per unit of elapsed time. The step shrinks as the
// view is zoomed in so panning covers the same share of the screen at every zoom level.
func (n *Navigator) Pan(dirX float64, dirY float64, elapsed float64) {
	scale := n.PanSpeed / n.magnification() * elapsed
	n.viewport.RStart += dirX * scale
	n.viewport.IStart += dirY * scale
}

func (n *Navigator) ZoomIn(elapsed float64) {
	n.Zoom(n.ZoomRate * elapsed)
}

func (n *Navigator) ZoomOut(elapsed float64) {
	n.Zoom(-n.ZoomRate * elapsed)
}

// Zoom adds delta to the zoom exponent, keeping the view centered where it is. The exponent
// never drops below 0.
func (n *Navigator) Zoom(delta float64) {
	n.zoomAmount += delta
	if n.zoomAmount < 0.0 {
		n.zoomAmount = 0.0
	}
	n.updateZoom()
}

// Scroll zooms by mouse wheel notches. Each notch shrinks the visible width by a tenth of its
// current size; negative notches grow it back.
func (n *Navigator) Scroll(delta float64) {
	factor := 1.0 - delta/scrollDivisor
	if factor <= 0 {
		// A single scroll cannot zoom past a view of zero width.
		factor = 1.0 / scrollDivisor
	}
	n.Zoom(-math.Log2(factor))
}

// Reset returns to the initial framing, centered on the origin.
func (n *Navigator) Reset() {
	n.viewport.Height = n.heightInitial
	n.viewport.IStart = -(n.viewport.Height / 2)

	n.viewport.Width = n.widthInitial
	n.viewport.RStart = -(n.viewport.Width / 2)

	n.zoomAmount = 0.0
	n.updateZoom()
}

// CenterOn moves the view so that pixel (px, py) becomes its center. Zoom is unchanged.
func (n *Navigator) CenterOn(px float64, py float64) {
	v := &n.viewport
	v.RStart += (px - float64(v.WidthPx)/2.0) / float64(v.WidthPx) * v.Width
	v.IStart += (py - float64(v.HeightPx)/2.0) / float64(v.HeightPx) * v.Height
}

// Resize switches to a new pixel grid. The center, the zoom and the plane height are kept and
// the width follows the new aspect ratio. An empty grid is ignored and a grid larger than
// MaxPixels is rejected, leaving the viewport as it was.
func (n *Navigator) Resize(widthPx int, heightPx int) error {
	if widthPx <= 0 || heightPx <= 0 {
		return nil
	}
	if err := CheckPixels(widthPx, heightPx); err != nil {
		return err
	}
	n.widthInitial = n.heightInitial * float64(widthPx) / float64(heightPx)
	n.viewport.WidthPx = widthPx
	n.viewport.HeightPx = heightPx
	n.updateZoom()
	return nil
}

func (n *Navigator) updateZoom() {
	xCenter, yCenter := n.viewport.Center()

	n.viewport.Width = n.widthInitial / n.magnification()
	n.viewport.Height = n.heightInitial / n.magnification()

	n.viewport.RStart = xCenter - n.viewport.Width/2.0
	n.viewport.IStart = yCenter - n.viewport.Height/2.0
}
