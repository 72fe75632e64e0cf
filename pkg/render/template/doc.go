// Package template defines the renderer-agnostic template seam the
// presentation adapter builds its summary and field markup on. The interface
// mirrors the github.com/goliatone/go-template engine contract so engines can
// be swapped without touching presenter code.
package template
