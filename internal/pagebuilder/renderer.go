package pagebuilder

import (
	"context"
	"io"

	"github.com/3-lines-studio/jamb/internal/core"
)

// Env carries the shared services a section needs besides its own payload.
type Env struct {
	Images   core.ImageURLBuilder
	RichText *RichText
}

type Input struct {
	Document core.DocumentRef
	Block    core.Block
	Position core.Position
	Spacing  core.Spacing
	Env      Env
}

// Renderer turns one block into markup. Returning an error, or panicking,
// replaces the block with a placeholder; the rest of the page still renders.
type Renderer interface {
	Render(ctx context.Context, w io.Writer, in Input) error
}

type RendererFunc func(ctx context.Context, w io.Writer, in Input) error

func (f RendererFunc) Render(ctx context.Context, w io.Writer, in Input) error {
	return f(ctx, w, in)
}
