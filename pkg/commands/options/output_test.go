package options

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestHandleErrorPlainPassesThrough(t *testing.T) {
	o := &OutputOptions{}
	want := errors.New("engine unreachable")
	if got := o.HandleError(want); got != want {
		t.Fatalf("plain mode must return the error unchanged, got %v", got)
	}
	if got := o.HandleError(nil); got != nil {
		t.Fatalf("nil error must stay nil, got %v", got)
	}
}

func TestHandleErrorJSONPrintsAndSwallows(t *testing.T) {
	var buf bytes.Buffer
	prev := color.Output
	color.Output = &buf
	defer func() { color.Output = prev }()

	o := &OutputOptions{JSON: true}
	if got := o.HandleError(errors.New("engine unreachable")); got != nil {
		t.Fatalf("json mode must swallow the error after printing, got %v", got)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"error":"engine unreachable"}` {
		t.Fatalf("unexpected envelope %q", got)
	}

	buf.Reset()
	if got := o.HandleError(nil); got != nil {
		t.Fatalf("nil error must stay nil, got %v", got)
	}
	if buf.Len() != 0 {
		t.Fatalf("nil error must print nothing, got %q", buf.String())
	}
}
