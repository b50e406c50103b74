package headless

import (
	"github.com/richinsley/goimagefilter/graphics"
)

// Context is a scripted graphics.Context with no window. Its clock advances a
// fixed interval per presented frame, so every run is reproducible.
type Context struct {
	width         int
	height        int
	now           float64
	frameInterval float64
	frames        int
	frameLimit    int
	escapeAt      map[int]bool
	closed        bool
}

var _ graphics.Context = (*Context)(nil)

// NewContext creates a context whose clock starts at zero and advances by
// 1/60 s per frame.
func NewContext(width, height int) *Context {
	return &Context{
		width:         width,
		height:        height,
		frameInterval: 1.0 / 60.0,
		escapeAt:      make(map[int]bool),
	}
}

// SetFrameInterval changes how far the clock moves per presented frame.
func (c *Context) SetFrameInterval(seconds float64) {
	c.frameInterval = seconds
}

// SetFrameLimit closes the context after n frames have been presented.
func (c *Context) SetFrameLimit(n int) {
	c.frameLimit = n
}

// ScheduleEscape delivers an escape key press while the events of the given
// frame (1-based) are processed.
func (c *Context) ScheduleEscape(frame int) {
	c.escapeAt[frame] = true
}

// Frames returns how many frames have been presented.
func (c *Context) Frames() int {
	return c.frames
}

func (c *Context) MakeCurrent() {}

func (c *Context) Shutdown() {
	c.closed = true
}

func (c *Context) ShouldClose() bool {
	return c.closed
}

func (c *Context) RequestClose() {
	c.closed = true
}

// EndFrame presents the frame, advances the clock and processes events.
func (c *Context) EndFrame() {
	c.frames++
	c.now += c.frameInterval
	if c.escapeAt[c.frames] {
		c.closed = true
	}
	if c.frameLimit > 0 && c.frames >= c.frameLimit {
		c.closed = true
	}
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.width, c.height
}

func (c *Context) Time() float64 {
	return c.now
}
