package renderer

const quadStride = 5 // x, y, z, u, v

// Full clip-space square, drawn as a triangle strip.
var quadVertices = []float32{
	// positions      // texture coords
	-1.0, 1.0, 0.0, 0.0, 1.0,  // top-left
	-1.0, -1.0, 0.0, 0.0, 0.0, // bottom-left
	1.0, 1.0, 0.0, 1.0, 1.0,   // top-right
	1.0, -1.0, 0.0, 1.0, 0.0,  // bottom-right
}

// QuadVertices returns a copy of the interleaved quad every draw uses.
func QuadVertices() []float32 {
	return append([]float32(nil), quadVertices...)
}
