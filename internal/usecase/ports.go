package usecase

import (
	"context"
	"encoding/json"
	"html/template"
	"io"

	"github.com/3-lines-studio/jamb/internal/adapters/fs"
	"github.com/3-lines-studio/jamb/internal/core"
	"github.com/3-lines-studio/jamb/internal/pagebuilder"
)

// ContentSource fetches raw documents. A missing document is reported as
// core.ErrNotFound.
type ContentSource interface {
	Fetch(ctx context.Context, q core.Query) (json.RawMessage, error)
	Slugs(ctx context.Context, docType string, perspective core.Perspective) ([]string, error)
}

// Overrides is the live edit state consulted while previewing.
type Overrides interface {
	Observe(ref core.DocumentRef, fetched core.Blocks, rev string)
	Resolve(ref core.DocumentRef, fetched core.Blocks) core.Blocks
}

type BlockRenderer interface {
	RenderHTML(ctx context.Context, doc core.DocumentRef, blocks core.Blocks) template.HTML
}

type Layout interface {
	RenderBody(w io.Writer, page pagebuilder.Page) error
}

type CLIOutput interface {
	PrintHeader(msg string)
	PrintStep(emoji, msg string, args ...any)
	PrintSuccess(msg string, args ...any)
	PrintWarning(msg string, args ...any)
	PrintError(msg string, args ...any)
	PrintFile(path string)
	PrintDone(msg string)
}

type FileSystem = fs.FileSystem
