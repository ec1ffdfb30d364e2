package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	iofs "io/fs"
	"path"
	"path/filepath"
	"sort"

	"github.com/3-lines-studio/jamb/internal/core"
)

type ExportInput struct {
	OutDir string
	// Assets are written under dist/ with hashed names.
	Assets iofs.FS
	// Public files are copied to the export root as they are.
	Public iofs.FS
	// Clean removes OutDir before writing.
	Clean bool
}

type ExportOutput struct {
	Pages    []string
	Manifest *core.AssetManifest
	Error    error
}

type ExportService struct {
	pages   *PageService
	content ContentSource
	fs      FileSystem
	output  CLIOutput
}

func NewExportService(pages *PageService, content ContentSource, fs FileSystem, output CLIOutput) *ExportService {
	return &ExportService{
		pages:   pages,
		content: content,
		fs:      fs,
		output:  output,
	}
}

// ExportStatic renders the home page and every published page to
// <out>/<slug>/index.html.
func (s *ExportService) ExportStatic(ctx context.Context, input ExportInput) ExportOutput {
	if input.OutDir == "" {
		return ExportOutput{Error: errors.New("export: no output directory")}
	}

	s.output.PrintHeader("Exporting static site")

	if input.Clean && s.fs.FileExists(input.OutDir) {
		if err := s.fs.RemoveAll(input.OutDir); err != nil {
			return ExportOutput{Error: fmt.Errorf("clean %s: %w", input.OutDir, err)}
		}
		s.output.PrintStep("", "Removed %s", input.OutDir)
	}

	manifest, err := s.writeAssets(input)
	if err != nil {
		return ExportOutput{Error: err}
	}

	slugs, err := s.content.Slugs(ctx, core.DocPage, core.PerspectivePublished)
	if err != nil {
		return ExportOutput{Error: fmt.Errorf("list pages: %w", err)}
	}
	sort.Strings(slugs)
	paths := []string{"/"}
	for _, slug := range slugs {
		if p := core.SlugPath(slug); p != "" && p != "/" {
			paths = append(paths, p)
		}
	}

	var written []string
	for _, p := range paths {
		out := s.pages.ServePage(ctx, ServePageInput{
			RequestPath: p,
			Perspective: core.PerspectivePublished,
			Assets:      manifest,
		})
		if out.Action == core.ActionNotFound {
			s.output.PrintWarning("skipped %s: not found", p)
			continue
		}
		if out.Error != nil {
			return ExportOutput{Error: fmt.Errorf("render %s: %w", p, out.Error)}
		}

		file := filepath.Join(input.OutDir, filepath.FromSlash(core.ExportPath(core.SlugFromPath(p))))
		if err := s.write(file, []byte(out.HTML)); err != nil {
			return ExportOutput{Error: err}
		}
		s.output.PrintFile(file)
		written = append(written, p)
	}

	s.output.PrintSuccess("Exported %d pages", len(written))
	return ExportOutput{Pages: written, Manifest: manifest}
}

func (s *ExportService) writeAssets(input ExportInput) (*core.AssetManifest, error) {
	manifest := &core.AssetManifest{Assets: map[string]string{}}

	if input.Assets != nil {
		err := iofs.WalkDir(input.Assets, ".", func(name string, d iofs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			data, err := iofs.ReadFile(input.Assets, name)
			if err != nil {
				return err
			}
			hashed := core.HashedName(name, data)
			manifest.Assets[name] = hashed
			return s.write(filepath.Join(input.OutDir, "dist", filepath.FromSlash(hashed)), data)
		})
		if err != nil {
			return nil, fmt.Errorf("export assets: %w", err)
		}
	}

	if input.Public != nil {
		err := iofs.WalkDir(input.Public, ".", func(name string, d iofs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			data, err := iofs.ReadFile(input.Public, name)
			if err != nil {
				return err
			}
			return s.write(filepath.Join(input.OutDir, filepath.FromSlash(path.Clean(name))), data)
		})
		if err != nil {
			return nil, fmt.Errorf("export public files: %w", err)
		}
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := s.write(filepath.Join(input.OutDir, "dist", "manifest.json"), data); err != nil {
		return nil, err
	}
	s.output.PrintStep("", "Wrote %d assets", len(manifest.Assets))
	return manifest, nil
}

func (s *ExportService) write(file string, data []byte) error {
	if err := s.fs.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(file), err)
	}
	if err := s.fs.WriteFile(file, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", file, err)
	}
	return nil
}
