// Package rendering turns templ components and gomponents nodes into HTML.
package rendering

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Renderer is echo's renderer plus a buffered variant for callers outside a
// request, such as tests and the CLI.
type Renderer interface {
	echo.Renderer
	RenderComponent(ctx context.Context, component any) ([]byte, error)
}

var _ Renderer = (*UniversalRenderer)(nil)

// UniversalRenderer accepts either a templ.Component or a gomponents node.
// Through c.Render the component is passed as data and the name is unused.
type UniversalRenderer struct{}

func NewUniversalRenderer() *UniversalRenderer {
	return &UniversalRenderer{}
}

// nodeRenderer matches gomponents.Node without importing it here.
type nodeRenderer interface {
	Render(w io.Writer) error
}

func (r *UniversalRenderer) write(ctx context.Context, w io.Writer, component any) error {
	switch comp := component.(type) {
	case templ.Component:
		return comp.Render(ctx, w)
	case nodeRenderer:
		return comp.Render(w)
	case nil:
		return fmt.Errorf("nothing to render")
	default:
		return fmt.Errorf("unsupported component type: %T", component)
	}
}

func (r *UniversalRenderer) RenderComponent(ctx context.Context, component any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.write(ctx, &buf, component); err != nil {
		return nil, fmt.Errorf("render component: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *UniversalRenderer) Render(w io.Writer, _ string, data any, c echo.Context) error {
	header := c.Response().Header()
	if header.Get(echo.HeaderContentType) == "" {
		header.Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	}
	return r.write(c.Request().Context(), w, data)
}
