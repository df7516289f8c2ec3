package libgl

import (
	"fmt"
	"log"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type LabeledGlObject interface {
	SetDebugLabel(string)
}

func setObjectLabel(namespace, id uint32, label string) {
	if label == "" {
		return
	}
	bytes := []byte(label)
	gl.ObjectLabel(namespace, id, int32(len(bytes)), &bytes[0])
}

// PushDebugGroup names the following commands in debug output and graphics debuggers.
// Every push must be matched by PopDebugGroup.
func PushDebugGroup(name string) {
	gl.PushDebugGroup(gl.DEBUG_SOURCE_APPLICATION, 0, -1, gl.Str(name+"\x00"))
}

func PopDebugGroup() {
	gl.PopDebugGroup()
}

// InitDebugOutput routes driver messages to the log.
// High severity messages panic and include the stack of debug groups.
func InitDebugOutput() {
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	groupStack := []string{"top"}
	gl.DebugMessageCallback(
		func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
			switch gltype {
			case gl.DEBUG_TYPE_PUSH_GROUP:
				groupStack = append(groupStack, message)
				return
			case gl.DEBUG_TYPE_POP_GROUP:
				groupStack = groupStack[:len(groupStack)-1]
				return
			}

			msg := formatDebugMessage(source, gltype, id, severity, message)
			if severity == gl.DEBUG_SEVERITY_HIGH {
				log.Panicf("%v\ndebug stack: %v", msg, strings.Join(groupStack, " > "))
			}
			log.Println(msg)
		}, nil)
	// notifications are mostly buffer placement hints
	gl.DebugMessageControl(gl.DONT_CARE, gl.DONT_CARE, gl.DEBUG_SEVERITY_NOTIFICATION, 0, nil, false)
}

func formatDebugMessage(source, gltype, id, severity uint32, message string) string {
	return fmt.Sprintf("[%v] %v #%v from %v: %v", debugSeverityName(severity), debugTypeName(gltype), id, debugSourceName(source), message)
}

func debugSeverityName(severity uint32) string {
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		return "CRITICAL_ERROR"
	case gl.DEBUG_SEVERITY_MEDIUM:
		return "ERROR"
	case gl.DEBUG_SEVERITY_LOW:
		return "WARNING"
	case gl.DEBUG_SEVERITY_NOTIFICATION:
		return "INFO"
	}
	return "UNKNOWN"
}

func debugTypeName(gltype uint32) string {
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		return "ERROR"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		return "DEPRECATED_BEHAVIOR"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		return "UNDEFINED_BEHAVIOR"
	case gl.DEBUG_TYPE_PERFORMANCE:
		return "PERFORMANCE"
	case gl.DEBUG_TYPE_PORTABILITY:
		return "PORTABILITY"
	case gl.DEBUG_TYPE_MARKER:
		return "MARKER"
	case gl.DEBUG_TYPE_PUSH_GROUP:
		return "PUSH_GROUP"
	case gl.DEBUG_TYPE_POP_GROUP:
		return "POP_GROUP"
	}
	return "OTHER"
}

func debugSourceName(source uint32) string {
	switch source {
	case gl.DEBUG_SOURCE_API:
		return "GRAPHICS_LIBRARY"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		return "SHADER_COMPILER"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		return "WINDOW_SYSTEM"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		return "THIRD_PARTY"
	case gl.DEBUG_SOURCE_APPLICATION:
		return "APPLICATION"
	}
	return "OTHER"
}
