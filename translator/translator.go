package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator *gst.ShaderTranslator
	initErr    error
	once       sync.Once
)

// GetTranslator returns the process-wide shader translator, creating it on
// first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		ctx := context.Background()
		translator, initErr = gst.NewShaderTranslator(ctx)
		if initErr != nil {
			initErr = fmt.Errorf("failed to create shader translator: %w", initErr)
		}
	})
	return translator, initErr
}

// Stage holds one translated shader stage.
type Stage struct {
	Code string
	// Names maps each declared variable to its name in Code.
	Names map[string]string
}

// MappedName returns the translated name of a declared variable, or the
// original name if the translator did not rename it.
func (s *Stage) MappedName(name string) string {
	if mapped, ok := s.Names[name]; ok && mapped != "" {
		return mapped
	}
	return name
}

// ToDesktopGL translates a WebGL2 stage ("vertex" or "fragment") to desktop
// GLSL 3.30.
func ToDesktopGL(source, stage string) (*Stage, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, err
	}
	out, err := t.TranslateShader(source, stage, gst.ShaderSpecWebGL2, gst.OutputFormatGLSL330)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	names := make(map[string]string, len(out.Variables))
	for name, v := range out.Variables {
		names[name] = v.MappedName
	}
	return &Stage{Code: out.Code, Names: names}, nil
}
