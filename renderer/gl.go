package renderer

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/richinsley/goimagefilter/graphics"
	"github.com/richinsley/goimagefilter/shader"
	xlate "github.com/richinsley/goimagefilter/translator"
)

// Ensure gl.Init() is called only once per process.
var glInitOnce sync.Once

type glProgram struct {
	uniforms map[string]int32
}

type glQuad struct {
	vao uint32
	vbo uint32
}

// GLDevice implements graphics.Device on an OpenGL 3.3 core context.
type GLDevice struct {
	programs map[uint32]*glProgram
	quads    map[uint32]glQuad
}

var _ graphics.Device = (*GLDevice)(nil)

// NewGLDevice makes ctx current and loads the OpenGL function pointers.
func NewGLDevice(ctx graphics.Context) (*GLDevice, error) {
	// Make the context current BEFORE initializing OpenGL.
	ctx.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL Version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	return &GLDevice{
		programs: make(map[uint32]*glProgram),
		quads:    make(map[uint32]glQuad),
	}, nil
}

func glFormat(format graphics.PixelFormat) (internalFormat int32, pixelFormat uint32) {
	if format == graphics.FormatRGB {
		return gl.RGB8, gl.RGB
	}
	return gl.RGBA8, gl.RGBA
}

func (d *GLDevice) NewTexture(width, height int, format graphics.PixelFormat, pixels []byte) (uint32, error) {
	internalFormat, pixelFormat := glFormat(format)

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// RGB rows are not 4-byte aligned for most widths.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	var data unsafe.Pointer
	if len(pixels) > 0 {
		data = gl.Ptr(pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, int32(width), int32(height), 0, pixelFormat, gl.UNSIGNED_BYTE, data)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		gl.DeleteTextures(1, &textureID)
		return 0, fmt.Errorf("failed to allocate %dx%d %s texture (gl error 0x%x)", width, height, format, errCode)
	}
	return textureID, nil
}

func (d *GLDevice) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

func (d *GLDevice) NewFramebuffer(attachments ...uint32) (uint32, error) {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	for i, texture := range attachments {
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0+uint32(i), gl.TEXTURE_2D, texture, 0)
	}
	gl.DrawBuffer(gl.COLOR_ATTACHMENT0)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteFramebuffers(1, &fbo)
		return 0, fmt.Errorf("framebuffer is not complete (status 0x%x)", status)
	}
	return fbo, nil
}

func (d *GLDevice) DeleteFramebuffer(fbo uint32) {
	gl.DeleteFramebuffers(1, &fbo)
}

func (d *GLDevice) BindFramebuffer(fbo uint32, attachment int) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	if fbo != graphics.DefaultFramebuffer {
		gl.DrawBuffer(gl.COLOR_ATTACHMENT0 + uint32(attachment))
	}
}

// NewProgram translates both stages to desktop GLSL, compiles and links them,
// and resolves the sampler and scalar uniforms through the translated names.
func (d *GLDevice) NewProgram(src shader.Source) (uint32, error) {
	vs, err := xlate.ToDesktopGL(src.Vertex, "vertex")
	if err != nil {
		return 0, err
	}
	fs, err := xlate.ToDesktopGL(src.Fragment, "fragment")
	if err != nil {
		return 0, err
	}

	program, err := newProgram(vs.Code, fs.Code, func(program uint32) {
		gl.BindAttribLocation(program, shader.PositionLocation, gl.Str(vs.MappedName(shader.PositionAttribute)+"\x00"))
		gl.BindAttribLocation(program, shader.TexCoordLocation, gl.Str(vs.MappedName(shader.TexCoordAttribute)+"\x00"))
	})
	if err != nil {
		return 0, err
	}

	p := &glProgram{uniforms: make(map[string]int32, len(src.Uniforms))}
	gl.UseProgram(program)
	samplerLoc := gl.GetUniformLocation(program, gl.Str(fs.MappedName(shader.SamplerUniform)+"\x00"))
	if samplerLoc != -1 {
		gl.Uniform1i(samplerLoc, 0)
	}
	for _, name := range src.Uniforms {
		p.uniforms[name] = gl.GetUniformLocation(program, gl.Str(fs.MappedName(name)+"\x00"))
		if p.uniforms[name] == -1 {
			log.Printf("Warning: uniform %s of %s is not active", name, src.Name)
		}
	}
	gl.UseProgram(0)

	d.programs[program] = p
	return program, nil
}

func (d *GLDevice) DeleteProgram(program uint32) {
	delete(d.programs, program)
	gl.DeleteProgram(program)
}

func (d *GLDevice) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *GLDevice) SetUniform1f(program uint32, name string, value float32) {
	p, ok := d.programs[program]
	if !ok {
		return
	}
	if loc, ok := p.uniforms[name]; ok && loc != -1 {
		gl.Uniform1f(loc, value)
	}
}

func (d *GLDevice) NewQuad(vertices []float32) (uint32, error) {
	if len(vertices) == 0 {
		return 0, fmt.Errorf("quad has no vertices")
	}
	var q glQuad
	gl.GenVertexArrays(1, &q.vao)
	gl.GenBuffers(1, &q.vbo)
	gl.BindVertexArray(q.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	const stride = quadStride * 4
	gl.VertexAttribPointer(shader.PositionLocation, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(shader.PositionLocation)
	gl.VertexAttribPointer(shader.TexCoordLocation, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(shader.TexCoordLocation)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	d.quads[q.vao] = q
	return q.vao, nil
}

func (d *GLDevice) DeleteQuad(quad uint32) {
	q, ok := d.quads[quad]
	if !ok {
		return
	}
	delete(d.quads, quad)
	gl.DeleteVertexArrays(1, &q.vao)
	gl.DeleteBuffers(1, &q.vbo)
}

func (d *GLDevice) BindTexture(texture uint32) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (d *GLDevice) Viewport(r graphics.Rect) {
	gl.Viewport(int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height))
}

func (d *GLDevice) Clear(color [4]float32) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *GLDevice) DrawQuad(quad uint32) {
	gl.BindVertexArray(quad)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)
}

// newProgram compiles both stages and links them. The stage objects are
// released whether or not linking succeeds.
func newProgram(vertexShaderSource, fragmentShaderSource string, beforeLink func(program uint32)) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex stage: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment stage: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	if beforeLink != nil {
		beforeLink(program)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		logText := programInfoLog(program)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", logText)
	}

	// Validation depends on the state bound at the time, so a failure here
	// is only reported.
	gl.ValidateProgram(program)
	gl.GetProgramiv(program, gl.VALIDATE_STATUS, &status)
	if status == gl.FALSE {
		log.Printf("Warning: program validation: %s", programInfoLog(program))
	}

	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	return program, nil
}

func programInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	handle := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(logText))
		gl.DeleteShader(handle)
		return 0, fmt.Errorf("failed to compile shader: %v", strings.TrimRight(logText, "\x00"))
	}
	return handle, nil
}
