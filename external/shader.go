package external

import (
	"path/filepath"
	"strings"
)

// ShaderStage identifies which pipeline stage a Shader compiles for.
type ShaderStage int

const (
	ShaderStageUnknown ShaderStage = iota
	ShaderStageVertex
	ShaderStageGeometry
	ShaderStageFragment
	ShaderStageCompute
)

func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageGeometry:
		return "geometry"
	case ShaderStageFragment:
		return "fragment"
	case ShaderStageCompute:
		return "compute"
	default:
		return "unknown"
	}
}

// ShaderStageFromPath infers a shader stage from its file extension, the
// convention used by the original source's shaders: .vert, .geom, .frag,
// .comp.
func ShaderStageFromPath(path string) ShaderStage {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vert":
		return ShaderStageVertex
	case ".geom":
		return ShaderStageGeometry
	case ".frag":
		return ShaderStageFragment
	case ".comp":
		return ShaderStageCompute
	default:
		return ShaderStageUnknown
	}
}

// Shader is a compiled shader module together with the metadata the
// render task builder needs to bind it: its stage and entry point.
// Compiling source text to SPIR-V and creating the VkShaderModule is an
// external build step; the framegraph only ever consumes the result.
type Shader interface {
	Stage() ShaderStage
	EntryPoint() string
	Module() ShaderModuleHandle
}
