package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/lguibr/pongai/game"
	"github.com/lguibr/pongai/utils"
)

// Pixel is one RGB cell of a rasterized frame.
type Pixel struct {
	R, G, B uint8
}

var (
	colorBackground = Pixel{0, 0, 0}
	colorWall       = Pixel{128, 128, 128}
	colorPaddle     = Pixel{255, 255, 255}
	colorBall       = Pixel{255, 255, 255}
	colorFootprint  = Pixel{96, 96, 96}
	colorPrediction = Pixel{255, 64, 64}
	colorExact      = Pixel{64, 255, 64}
)

// ASCII characters for grayscale, from lighter to darker
const asciiChars = " .,:;i1tfLCG08@"

// Dividing factor to convert grayscale to an index into asciiChars
const grayFactor = 255.0 / float64(len(asciiChars)-1)

// Luminosity weights for RGB components
const (
	RFactor = 0.299
	GFactor = 0.587
	BFactor = 0.114
)

// rgbToGray converts an RGB pixel to grayscale using the luminosity method
func rgbToGray(pixel Pixel) uint8 {
	r := RFactor * float64(pixel.R)
	g := GFactor * float64(pixel.G)
	b := BFactor * float64(pixel.B)
	return uint8(math.Min(255, math.Round(r+g+b)))
}

// grayToASCII maps a grayscale value to an ASCII character
func grayToASCII(gray uint8) byte {
	index := int(math.Round(float64(gray) / grayFactor))
	return asciiChars[index]
}

// rgbToAnsi converts an RGB pixel to an ANSI escape code for that color
func rgbToAnsi(pixel Pixel) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", pixel.R, pixel.G, pixel.B)
}

// Rasterize draws the court into a cols x rows grid. Later layers win:
// walls, trail, prediction boxes, paddles, ball.
func Rasterize(state game.MatchState, cols, rows int) [][]Pixel {
	if cols <= 0 || rows <= 0 || state.Width <= 0 || state.Height <= 0 {
		return nil
	}
	pixels := make([][]Pixel, rows)
	for y := range pixels {
		pixels[y] = make([]Pixel, cols)
		for x := range pixels[y] {
			pixels[y][x] = colorBackground
		}
	}

	r := raster{pixels: pixels, sx: float64(cols) / state.Width, sy: float64(rows) / state.Height}

	r.fill(utils.Rect{Left: 0, Top: 0, Right: state.Width, Bottom: state.WallWidth}, colorWall)
	r.fill(utils.Rect{Left: 0, Top: state.Height - state.WallWidth, Right: state.Width, Bottom: state.Height}, colorWall)

	if state.Ball != nil {
		for _, fp := range state.Ball.Footprints {
			r.dot(fp, colorFootprint)
		}
	}

	for _, p := range state.Paddles {
		if p.Exact != nil {
			r.outline(*p.Exact, colorExact)
		}
		if p.Prediction != nil {
			r.outline(*p.Prediction, colorPrediction)
		}
	}

	for _, p := range state.Paddles {
		r.fill(utils.Rect{Left: p.X, Top: p.Y, Right: p.X + p.Width, Bottom: p.Y + p.Height}, colorPaddle)
	}

	if b := state.Ball; b != nil {
		r.fill(utils.Rect{Left: b.X - b.Radius, Top: b.Y - b.Radius, Right: b.X + b.Radius, Bottom: b.Y + b.Radius}, colorBall)
	}

	return pixels
}

// raster maps court coordinates onto a pixel grid.
type raster struct {
	pixels [][]Pixel
	sx, sy float64
}

// cells returns the inclusive cell range covered by rect. Every non empty
// rect covers at least one cell.
func (r raster) cells(rect utils.Rect) (x0, y0, x1, y1 int) {
	rows, cols := len(r.pixels), len(r.pixels[0])
	x0 = clampInt(int(math.Floor(rect.Left*r.sx)), 0, cols-1)
	y0 = clampInt(int(math.Floor(rect.Top*r.sy)), 0, rows-1)
	x1 = clampInt(int(math.Ceil(rect.Right*r.sx))-1, x0, cols-1)
	y1 = clampInt(int(math.Ceil(rect.Bottom*r.sy))-1, y0, rows-1)
	return x0, y0, x1, y1
}

func (r raster) visible(rect utils.Rect) bool {
	w := float64(len(r.pixels[0])) / r.sx
	h := float64(len(r.pixels)) / r.sy
	return rect.Right > 0 && rect.Bottom > 0 && rect.Left < w && rect.Top < h
}

func (r raster) fill(rect utils.Rect, color Pixel) {
	if !r.visible(rect) {
		return
	}
	x0, y0, x1, y1 := r.cells(rect)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.pixels[y][x] = color
		}
	}
}

func (r raster) outline(rect utils.Rect, color Pixel) {
	if !r.visible(rect) {
		return
	}
	x0, y0, x1, y1 := r.cells(rect)
	for x := x0; x <= x1; x++ {
		r.pixels[y0][x] = color
		r.pixels[y1][x] = color
	}
	for y := y0; y <= y1; y++ {
		r.pixels[y][x0] = color
		r.pixels[y][x1] = color
	}
}

func (r raster) dot(v utils.Vector, color Pixel) {
	r.fill(utils.Rect{Left: v.X, Top: v.Y, Right: v.X, Bottom: v.Y}, color)
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Header is the score line shown above the court.
func Header(state game.MatchState) string {
	header := fmt.Sprintf("%d : %d", state.Scores[0], state.Scores[1])
	if state.Winner != utils.NoPlayer {
		header += fmt.Sprintf("  player %d wins", state.Winner+1)
	} else if state.Phase == game.PhaseIdle {
		header += "  press 0, 1 or 2 to start"
	}
	return header
}

// RenderASCII renders the state as colored ASCII art, one line per row,
// below the score header.
func RenderASCII(state game.MatchState, cols, rows int) string {
	return render(state, cols, rows, true)
}

// RenderText is RenderASCII without ANSI color codes.
func RenderText(state game.MatchState, cols, rows int) string {
	return render(state, cols, rows, false)
}

func render(state game.MatchState, cols, rows int, color bool) string {
	var ascii strings.Builder
	ascii.WriteString(Header(state))
	ascii.WriteString("\n")
	for _, row := range Rasterize(state, cols, rows) {
		for _, pixel := range row {
			ch := grayToASCII(rgbToGray(pixel))
			if color && pixel != colorBackground {
				ascii.WriteString(rgbToAnsi(pixel))
				ascii.WriteByte(ch)
				ascii.WriteString("\033[0m") // Reset color after each character
			} else {
				ascii.WriteByte(ch)
			}
		}
		ascii.WriteString("\n")
	}
	return ascii.String()
}
