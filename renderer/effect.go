package renderer

import (
	"fmt"
	"math"

	"github.com/richinsley/goimagefilter/graphics"
	"github.com/richinsley/goimagefilter/shader"
)

// UniformSetter pushes per-frame uniform values to a program that is in use.
type UniformSetter func(device graphics.Device, program uint32, elapsed float64)

// Effect is a linked shader program plus the uniforms it animates. It is
// created once and immutable until Destroy.
type Effect struct {
	name        string
	program     uint32
	setUniforms UniformSetter
	device      graphics.Device
}

// NewEffect compiles src on device. A compile or link failure is returned as
// an error; there is no usable fallback program.
func NewEffect(device graphics.Device, src shader.Source, setUniforms UniformSetter) (*Effect, error) {
	program, err := device.NewProgram(src)
	if err != nil {
		return nil, fmt.Errorf("effect %s: %w", src.Name, err)
	}
	return &Effect{
		name:        src.Name,
		program:     program,
		setUniforms: setUniforms,
		device:      device,
	}, nil
}

func (e *Effect) Name() string {
	return e.name
}

func (e *Effect) Program() uint32 {
	return e.program
}

// Use makes the program current and updates its uniforms for elapsed seconds.
func (e *Effect) Use(elapsed float64) {
	e.device.UseProgram(e.program)
	if e.setUniforms != nil {
		e.setUniforms(e.device, e.program, elapsed)
	}
}

func (e *Effect) Destroy() {
	e.device.DeleteProgram(e.program)
}

// HueShiftAt oscillates smoothly over the whole color wheel with a period of
// 2π seconds. The result is always in [0, 1].
func HueShiftAt(elapsed float64) float32 {
	return float32(0.5 * (math.Sin(elapsed) + 1))
}

func animateHueShift(device graphics.Device, program uint32, elapsed float64) {
	device.SetUniform1f(program, shader.HueShiftUniform, HueShiftAt(elapsed))
}
