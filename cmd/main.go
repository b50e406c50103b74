package main

import (
	"log"
	"runtime"

	glfwcontext "github.com/richinsley/goimagefilter/glfwcontext"
	inputs "github.com/richinsley/goimagefilter/inputs"
	options "github.com/richinsley/goimagefilter/options"
	renderer "github.com/richinsley/goimagefilter/renderer"
)

func runViewer(opts *options.Options) {
	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(opts)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer ctx.Shutdown()

	device, err := renderer.NewGLDevice(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize OpenGL: %v", err)
	}

	img, err := inputs.LoadImage(opts.ImagePath, opts.FlipImage)
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}

	r, err := renderer.NewRenderer(ctx, device, opts)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Shutdown()

	if _, err := r.LoadScene(img); err != nil {
		log.Fatalf("Failed to initialize scene: %v", err)
	}

	log.Println("Starting render loop...")
	r.Run()
}

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := options.Default()
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}
	runViewer(opts)
}
