package initcmd

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"

	"github.com/3-lines-studio/jamb/internal/adapters/cli"
	"github.com/3-lines-studio/jamb/internal/adapters/fs"
	"github.com/3-lines-studio/jamb/internal/templates"
)

// ContentDir is the directory, relative to the project, holding the
// starter documents.
const ContentDir = "content"

var ErrContentExists = errors.New("jamb: content directory already exists")

type Options struct {
	SiteTitle string
	Output    *cli.Output
	FS        fs.FileSystem
}

// Run writes a starter local dataset and a .env.example into projectDir.
// An existing content directory is never overwritten.
func Run(projectDir string, opts Options) error {
	out := opts.Output
	if out == nil {
		out = cli.NewOutput()
	}
	fsys := opts.FS
	if fsys == nil {
		fsys = fs.NewOSFileSystem()
	}

	out.PrintHeader("Jamb Init")

	if fsys.FileExists(filepath.Join(projectDir, ContentDir)) {
		return fmt.Errorf("%w: %s", ErrContentExists, filepath.Join(projectDir, ContentDir))
	}

	data := templates.TemplateData{
		SiteTitle:  opts.SiteTitle,
		ContentDir: ContentDir,
	}
	if data.SiteTitle == "" {
		data.SiteTitle = templates.DeriveSiteTitle(projectDir)
	}

	starter := templates.Starter()
	createdCount := 0

	err := iofs.WalkDir(starter, ".", func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		content, err := iofs.ReadFile(starter, path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		targetPath, isTemplate := templates.ProcessFilename(path)
		targetPath = filepath.Join(projectDir, filepath.FromSlash(targetPath))

		if err := fsys.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(targetPath), err)
		}
		if err := fsys.WriteFile(targetPath, templates.ProcessContent(content, isTemplate, data), 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", targetPath, err)
		}

		if isTemplate {
			out.PrintFile(targetPath + " (generated)")
		} else {
			out.PrintFile(targetPath)
		}
		createdCount++
		return nil
	})
	if err != nil {
		return err
	}

	out.PrintSuccess("Created %d files for %q", createdCount, data.SiteTitle)
	out.PrintStep("", "Next steps:")
	out.PrintStep("", "  cd %s", projectDir)
	out.PrintStep("", "  cp .env.example .env")
	out.PrintStep("", "  jamb serve --dev")
	return nil
}
