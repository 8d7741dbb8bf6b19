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
	gl.ObjectLabel(namespace, id, int32(len(bytes)), (*uint8)(unsafe.Pointer(&bytes[0])))
}

// PushDebugGroup names the following commands in debuggers and in debug messages.
func PushDebugGroup(name string) {
	gl.PushDebugGroup(gl.DEBUG_SOURCE_APPLICATION, 0, -1, gl.Str(name+"\x00"))
}

func PopDebugGroup() {
	gl.PopDebugGroup()
}

var debugSeverities = map[uint32]string{
	gl.DEBUG_SEVERITY_HIGH:         "CRITICAL_ERROR",
	gl.DEBUG_SEVERITY_MEDIUM:       "ERROR",
	gl.DEBUG_SEVERITY_LOW:          "WARNING",
	gl.DEBUG_SEVERITY_NOTIFICATION: "INFO",
}

var debugTypes = map[uint32]string{
	gl.DEBUG_TYPE_ERROR:               "ERROR",
	gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR: "DEPRECATED_BEHAVIOR",
	gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:  "UNDEFINED_BEHAVIOR",
	gl.DEBUG_TYPE_PERFORMANCE:         "PERFORMANCE",
	gl.DEBUG_TYPE_PORTABILITY:         "PORTABILITY",
	gl.DEBUG_TYPE_OTHER:               "OTHER",
	gl.DEBUG_TYPE_MARKER:              "MARKER",
}

var debugSources = map[uint32]string{
	gl.DEBUG_SOURCE_API:             "GRAPHICS_LIBRARY",
	gl.DEBUG_SOURCE_SHADER_COMPILER: "SHADER_COMPILER",
	gl.DEBUG_SOURCE_WINDOW_SYSTEM:   "WINDOW_SYSTEM",
	gl.DEBUG_SOURCE_THIRD_PARTY:     "THIRD_PARTY",
	gl.DEBUG_SOURCE_APPLICATION:     "APPLICATION",
	gl.DEBUG_SOURCE_OTHER:           "OTHER",
}

// EnableDebugOutput logs gl debug messages. High severity messages panic and report the open debug groups.
// Notifications are dropped unless verbose is set.
func EnableDebugOutput(verbose bool) {
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	groupStack := []string{"top"}
	gl.DebugMessageCallback(
		func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
			if gltype == gl.DEBUG_TYPE_PUSH_GROUP {
				groupStack = append(groupStack, message)
				return
			} else if gltype == gl.DEBUG_TYPE_POP_GROUP {
				if len(groupStack) > 1 {
					groupStack = groupStack[:len(groupStack)-1]
				}
				return
			}
			if severity == gl.DEBUG_SEVERITY_NOTIFICATION && !verbose {
				return
			}
			msg := fmt.Sprintf("[%v] %v #%v from %v: %v", debugSeverities[severity], debugTypes[gltype], id, debugSources[source], message)
			if severity == gl.DEBUG_SEVERITY_HIGH {
				stack := strings.Join(groupStack, " > ")
				log.Panicf("%v\ndebug stack: %v", msg, stack)
			}
			log.Println(msg)
		}, nil)
}
