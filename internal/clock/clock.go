// Package clock draws the decorative analog and digital clocks.
package clock

import (
	"math"
	"strings"
	"time"
)

// Runes used on the analog face.
const (
	TickRune   = '·'
	HourRune   = '#'
	MinuteRune = '+'
	SecondRune = '.'
	PinRune    = 'o'
)

// Hand lengths as a fraction of the radius.
const (
	hourLength   = 0.5
	minuteLength = 0.8
	secondLength = 0.9
)

// Angles are hand positions in radians, clockwise from twelve o'clock.
type Angles struct {
	Hour   float64
	Minute float64
	Second float64
}

// HandAngles computes where the hands point at t.
func HandAngles(t time.Time) Angles {
	h, m, s := float64(t.Hour()%12), float64(t.Minute()), float64(t.Second())
	return Angles{
		Hour:   h*math.Pi/6 + m*math.Pi/360,
		Minute: m*math.Pi/30 + s*math.Pi/1800,
		Second: s * math.Pi / 30,
	}
}

// Digital renders t as HH:MM:SS.
func Digital(t time.Time) string {
	return t.Format("15:04:05")
}

// face is a character grid. Terminal cells are about twice as tall as they
// are wide, so x coordinates are stretched by two.
type face struct {
	radius int
	cells  [][]rune
}

func newFace(radius int) *face {
	h := 2*radius + 1
	w := 4*radius + 1
	cells := make([][]rune, h)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", w))
	}
	return &face{radius: radius, cells: cells}
}

// point maps polar coordinates (angle clockwise from 12, distance in radius
// units) to a grid cell.
func (f *face) point(angle, dist float64) (x, y int) {
	r := float64(f.radius)
	x = 2*f.radius + int(math.Round(2*r*dist*math.Sin(angle)))
	y = f.radius - int(math.Round(r*dist*math.Cos(angle)))
	return x, y
}

func (f *face) set(x, y int, ch rune) {
	if y < 0 || y >= len(f.cells) || x < 0 || x >= len(f.cells[y]) {
		return
	}
	f.cells[y][x] = ch
}

func (f *face) text(x, y int, s string) {
	for i, ch := range []rune(s) {
		f.set(x+i, y, ch)
	}
}

func (f *face) hand(angle, length float64, ch rune) {
	steps := 4 * f.radius
	for i := 1; i <= steps; i++ {
		x, y := f.point(angle, length*float64(i)/float64(steps))
		f.set(x, y, ch)
	}
}

func (f *face) String() string {
	lines := make([]string, len(f.cells))
	for i, row := range f.cells {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

// Analog draws a clock face of the given radius (in rows) showing t: twelve
// hour ticks, the 12/3/6/9 numerals, three hands and a centre pin.
// Radii below 3 are raised to 3.
func Analog(t time.Time, radius int) string {
	if radius < 3 {
		radius = 3
	}
	f := newFace(radius)

	for i := 0; i < 12; i++ {
		x, y := f.point(float64(i)*math.Pi/6, 1)
		f.set(x, y, TickRune)
	}

	// Numerals replace their ticks.
	x, y := f.point(0, 1)
	f.text(x-1, y, "12")
	x, y = f.point(math.Pi/2, 1)
	f.text(x, y, "3")
	x, y = f.point(math.Pi, 1)
	f.text(x, y, "6")
	x, y = f.point(3*math.Pi/2, 1)
	f.text(x, y, "9")

	a := HandAngles(t)
	f.hand(a.Second, secondLength, SecondRune)
	f.hand(a.Minute, minuteLength, MinuteRune)
	f.hand(a.Hour, hourLength, HourRune)

	f.set(2*radius, radius, PinRune)
	return f.String()
}
