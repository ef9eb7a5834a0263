package pipeline

import (
	"strings"
	"testing"

	"github.com/gogpu/naga"
)

func TestShaderSourcesEmbedded(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"texture2d", texture2DShaderSource},
		{"line", lineShaderSource},
		{"model", modelShaderSource},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.source == "" {
				t.Fatal("shader source is empty")
			}
			for _, entry := range []string{"vs_main", "fs_main"} {
				if !strings.Contains(tt.source, entry) {
					t.Errorf("missing entry point %q", entry)
				}
			}
			if !strings.Contains(tt.source, "@group(0) @binding(0) var<uniform> camera") {
				t.Error("missing shared camera binding at group 0 binding 0")
			}
		})
	}
}

func TestShaderBindingSlots(t *testing.T) {
	// TexturedQuad: texture pair at group 1.
	if !strings.Contains(texture2DShaderSource, "@group(1) @binding(0) var tex") {
		t.Error("texture2d: texture not at group 1 binding 0")
	}
	if !strings.Contains(texture2DShaderSource, "@group(1) @binding(1) var tex_sampler") {
		t.Error("texture2d: sampler not at group 1 binding 1")
	}

	// LitMesh: lighting at group 1, texture pair at group 2.
	if !strings.Contains(modelShaderSource, "@group(1) @binding(0) var<uniform> global_lighting") {
		t.Error("model: global lighting not at group 1 binding 0")
	}
	if !strings.Contains(modelShaderSource, "@group(1) @binding(1) var<storage, read> lights") {
		t.Error("model: light list not at group 1 binding 1")
	}
	if !strings.Contains(modelShaderSource, "@group(2) @binding(0) var tex") {
		t.Error("model: texture not at group 2 binding 0")
	}

	// LineSegment: camera only, and the projection multiply is present.
	if strings.Contains(lineShaderSource, "@group(1)") {
		t.Error("line: unexpected group 1 binding")
	}
	if !strings.Contains(lineShaderSource, "camera.view_projection *") {
		t.Error("line: vertex stage must project to clip space")
	}
}

func compileShader(t *testing.T, name, source string) []byte {
	t.Helper()

	spirvBytes, err := naga.Compile(source)
	if err != nil {
		// Check for known naga limitations and skip gracefully.
		errStr := err.Error()
		if strings.Contains(errStr, "runtime-sized arrays not yet implemented") {
			t.Skip("Skipping: naga doesn't yet support runtime-sized arrays (needed for storage buffers)")
		}
		if strings.Contains(errStr, "not yet implemented") || strings.Contains(errStr, "not supported") {
			t.Skipf("Skipping: naga feature not yet implemented: %v", err)
		}
		t.Fatalf("failed to compile %s shader: %v", name, err)
	}

	if len(spirvBytes) < 4 {
		t.Fatal("SPIR-V too short")
	}
	magic := uint32(spirvBytes[0]) |
		uint32(spirvBytes[1])<<8 |
		uint32(spirvBytes[2])<<16 |
		uint32(spirvBytes[3])<<24
	if magic != 0x07230203 {
		t.Errorf("invalid SPIR-V magic: 0x%08X, want 0x07230203", magic)
	}

	t.Logf("%s shader compiled to %d bytes of SPIR-V", name, len(spirvBytes))
	return spirvBytes
}

func TestTexture2DShaderCompiles(t *testing.T) {
	compileShader(t, "texture2d", texture2DShaderSource)
}

func TestLineShaderCompiles(t *testing.T) {
	compileShader(t, "line", lineShaderSource)
}

func TestModelShaderCompiles(t *testing.T) {
	compileShader(t, "model", modelShaderSource)
}
