package libgl

import (
	"fmt"
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var shaderMetaPattern = regexp.MustCompile(`(?m)^\/\/meta:(\w+)(.+)$`)
var shaderVersionPattern = regexp.MustCompile(`(?m)^\s*#version.+$`)

type shaderPipeline struct {
	glId      uint32
	vertStage ShaderProgram
	geomStage ShaderProgram
	fragStage ShaderProgram
}

type UnboundShaderPipeline interface {
	LabeledGlObject
	Bind() BoundShaderPipeline
	Attach(program ShaderProgram, stages int)
	Get(stage int) ShaderProgram
	Id() uint32
	Delete()
}

type BoundShaderPipeline interface {
	UnboundShaderPipeline
}

func NewPipeline() UnboundShaderPipeline {
	var id uint32
	gl.CreateProgramPipelines(1, &id)
	return &shaderPipeline{
		glId: id,
	}
}

// NewPipelineFromSource compiles a vertex and a fragment program and attaches both.
func NewPipelineFromSource(vertSrc, fragSrc string, defs map[string]string) (UnboundShaderPipeline, error) {
	vert := NewShader(vertSrc, gl.VERTEX_SHADER)
	if err := vert.CompileWith(defs); err != nil {
		return nil, err
	}
	frag := NewShader(fragSrc, gl.FRAGMENT_SHADER)
	if err := frag.CompileWith(defs); err != nil {
		vert.Delete()
		return nil, err
	}
	pipeline := NewPipeline()
	pipeline.Attach(vert, gl.VERTEX_SHADER_BIT)
	pipeline.Attach(frag, gl.FRAGMENT_SHADER_BIT)
	pipeline.SetDebugLabel(vert.Name() + "+" + frag.Name())
	return pipeline, nil
}

func (p *shaderPipeline) SetDebugLabel(label string) {
	setObjectLabel(gl.PROGRAM_PIPELINE, p.glId, label)
}

func (p *shaderPipeline) Attach(program ShaderProgram, stages int) {
	gl.UseProgramStages(p.glId, uint32(stages), program.Id())
	if stages&gl.VERTEX_SHADER_BIT != 0 {
		p.vertStage = program
	}
	if stages&gl.GEOMETRY_SHADER_BIT != 0 {
		p.geomStage = program
	}
	if stages&gl.FRAGMENT_SHADER_BIT != 0 {
		p.fragStage = program
	}
}

func (p *shaderPipeline) Get(stage int) ShaderProgram {
	switch stage {
	case gl.VERTEX_SHADER:
		return p.vertStage
	case gl.GEOMETRY_SHADER:
		return p.geomStage
	case gl.FRAGMENT_SHADER:
		return p.fragStage
	}
	log.Panicf("%d is not a supported shader stage\n", stage)
	return nil
}

func (p *shaderPipeline) Bind() BoundShaderPipeline {
	State.BindProgramPipeline(p.glId)
	return BoundShaderPipeline(p)
}

func (p *shaderPipeline) Id() uint32 {
	return p.glId
}

// Delete deletes the pipeline and every attached program.
func (p *shaderPipeline) Delete() {
	for _, prog := range []ShaderProgram{p.vertStage, p.geomStage, p.fragStage} {
		if prog != nil {
			prog.Delete()
		}
	}
	gl.DeleteProgramPipelines(1, &p.glId)
	p.glId = 0
}

type program struct {
	uniformLocations map[string]int32
	glId             uint32
	name             string
	source           string
	stage            int
}

type ShaderProgram interface {
	Id() uint32
	Name() string
	Compile() error
	CompileWith(defs map[string]string) error
	Delete()
	GetUniformLocation(name string) int32
	SetUniform(name string, value any)
}

// NewShader prepares a separable program for a single stage. The program is named by a
// `//meta:name <name>` line in the source.
func NewShader(source string, stage int) ShaderProgram {
	return &program{
		name:   shaderName(source),
		stage:  stage,
		source: source,
	}
}

func shaderName(source string) string {
	for _, match := range shaderMetaPattern.FindAllStringSubmatch(source, -1) {
		if strings.EqualFold(match[1], "name") {
			return strings.TrimSpace(match[2])
		}
	}
	return "untitled"
}

// injectDefines inserts one #define per entry right after the #version directive,
// sorted by name.
func injectDefines(source string, defs map[string]string) (string, error) {
	if len(defs) == 0 {
		return source, nil
	}
	loc := shaderVersionPattern.FindStringIndex(source)
	if loc == nil {
		return "", fmt.Errorf("shader has no #version directive")
	}

	names := maps.Keys(defs)
	slices.Sort(names)

	sb := strings.Builder{}
	sb.WriteString(source[:loc[1]])
	for _, n := range names {
		sb.WriteString("\n#define ")
		sb.WriteString(n)
		if v := defs[n]; v != "" {
			sb.WriteString(" ")
			sb.WriteString(v)
		}
	}
	sb.WriteString(source[loc[1]:])
	return sb.String(), nil
}

func (prog *program) Name() string {
	return prog.name
}

func (prog *program) Compile() error {
	return prog.CompileWith(nil)
}

func (prog *program) CompileWith(defs map[string]string) error {
	source, err := injectDefines(prog.source, defs)
	if err != nil {
		return fmt.Errorf("%v shader: %w", prog.name, err)
	}

	cStrs, free := gl.Strs(source + "\x00")
	id := gl.CreateShaderProgramv(uint32(prog.stage), 1, cStrs)
	free()

	var ok int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		defer gl.DeleteProgram(id)
		return fmt.Errorf("failed to link %v shader, log: %v", prog.name, readProgramInfoLog(id))
	}

	if prog.glId != 0 {
		gl.DeleteProgram(prog.glId)
	}
	prog.glId = id
	prog.uniformLocations = map[string]int32{}
	setObjectLabel(gl.PROGRAM, id, prog.name)

	return nil
}

func (prog *program) Id() uint32 {
	return prog.glId
}

func (prog *program) Delete() {
	gl.DeleteProgram(prog.glId)
	prog.glId = 0
}

func readProgramInfoLog(id uint32) string {
	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	buf := make([]byte, logLength)
	gl.GetProgramInfoLog(id, logLength, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

func (prog *program) GetUniformLocation(name string) int32 {
	if location, ok := prog.uniformLocations[name]; ok {
		return location
	}

	location := gl.GetUniformLocation(prog.glId, gl.Str(name+"\x00"))
	prog.uniformLocations[name] = location

	if location == -1 {
		log.Printf("%v shader: could not get location of %q\n", prog.name, name)
	}

	return location
}

func (prog *program) SetUniform(name string, value any) {
	location := prog.GetUniformLocation(name)
	if location == -1 {
		return
	}
	setProgramUniformAny(prog.glId, location, value)
}

func setProgramUniformAny(prog uint32, location int32, value any) {
	if v := reflect.ValueOf(value); v.Kind() == reflect.Ptr {
		value = v.Elem().Interface()
	}

	switch v := value.(type) {
	case float32:
		gl.ProgramUniform1f(prog, location, v)
	case int:
		gl.ProgramUniform1i(prog, location, int32(v))
	case int32:
		gl.ProgramUniform1i(prog, location, v)
	case uint32:
		gl.ProgramUniform1ui(prog, location, v)
	case bool:
		var i int32
		if v {
			i = 1
		}
		gl.ProgramUniform1i(prog, location, i)
	case mgl32.Vec2:
		gl.ProgramUniform2f(prog, location, v.X(), v.Y())
	case mgl32.Vec3:
		gl.ProgramUniform3f(prog, location, v.X(), v.Y(), v.Z())
	case mgl32.Vec4:
		gl.ProgramUniform4f(prog, location, v.X(), v.Y(), v.Z(), v.W())
	case mgl32.Mat3:
		gl.ProgramUniformMatrix3fv(prog, location, 1, false, &v[0])
	case mgl32.Mat4:
		gl.ProgramUniformMatrix4fv(prog, location, 1, false, &v[0])
	default:
		log.Panicf("unsupported uniform type %T", value)
	}
}
