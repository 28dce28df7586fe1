package introspect

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ErrIntrospection is the sentinel wrapped by every serialization failure.
var ErrIntrospection = errors.New("introspection error")

// Error describes a node whose capabilities cannot be serialized.
type Error struct {
	Path     string // location in the tree, e.g. "$.args[2].expression"
	NodeType string
	Message  string
}

func (e *Error) Error() string {
	if e.NodeType != "" {
		return fmt.Sprintf("introspection error at %s (%s): %s", e.Path, e.NodeType, e.Message)
	}
	return fmt.Sprintf("introspection error at %s: %s", e.Path, e.Message)
}

// Unwrap lets errors.Is match ErrIntrospection.
func (e *Error) Unwrap() error {
	return ErrIntrospection
}

func newError(path string, n Node, format string, args ...any) *Error {
	return &Error{Path: shortenPath(path), NodeType: n.Type(), Message: fmt.Sprintf(format, args...)}
}

// maxPathLen caps Error.Path; longer paths keep their head and tail.
const maxPathLen = 200

func shortenPath(path string) string {
	if len(path) <= maxPathLen {
		return path
	}
	head := path[:maxPathLen/2]
	if i := strings.LastIndexByte(head, '.'); i > 0 {
		head = head[:i]
	}
	tail := path[len(path)-maxPathLen/2:]
	if i := strings.IndexByte(tail, '.'); i >= 0 {
		tail = tail[i:]
	}
	return head + "…" + tail
}

// isNil catches both untyped nil and typed nil pointers stored in a Node.
func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return v.IsNil()
	}
	return false
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
