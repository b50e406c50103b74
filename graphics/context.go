package graphics

// Clock supplies monotonic seconds. The frame driver samples it once per
// frame to animate effect parameters.
type Clock interface {
	Time() float64
}

// Context defines the interface for a window and its OpenGL context.
type Context interface {
	Clock
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// RequestClose asks the frame loop to stop at its next iteration boundary.
	RequestClose()
	// EndFrame presents the back buffer and processes pending window events.
	EndFrame()
	GetFramebufferSize() (int, int)
}
