// Package slideshow cycles through a fixed list of captions.
package slideshow

import "time"

// Interval is how long each slide stays up.
const Interval = 5 * time.Second

// DefaultSlides are shown when no slides are configured.
var DefaultSlides = []string{
	"Jagalah solat, nescaya solat akan menjagamu.",
	"Solat itu tiang agama.",
	"Sebaik-baik amalan ialah solat pada awal waktunya.",
	"Perbanyakkan selawat ke atas Nabi pada hari Jumaat.",
}

// Slideshow is an immutable position within a list of slides.
type Slideshow struct {
	slides []string
	index  int
}

// New starts at the first slide. An empty list falls back to DefaultSlides.
func New(slides []string) Slideshow {
	if len(slides) == 0 {
		slides = DefaultSlides
	}
	return Slideshow{slides: slides}
}

// Current returns the slide on display.
func (s Slideshow) Current() string {
	if len(s.slides) == 0 {
		return ""
	}
	return s.slides[s.index]
}

// Index returns the zero-based position of the current slide.
func (s Slideshow) Index() int {
	return s.index
}

// Len returns the number of slides.
func (s Slideshow) Len() int {
	return len(s.slides)
}

// Advance moves to the next slide, wrapping after the last.
func (s Slideshow) Advance() Slideshow {
	if len(s.slides) == 0 {
		return s
	}
	s.index = (s.index + 1) % len(s.slides)
	return s
}
