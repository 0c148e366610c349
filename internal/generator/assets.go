package generator

import (
	"os"
	"path/filepath"
)

// copyStaticAssets mirrors the static directory into the output under
// static/. A missing static directory is not an error.
func (g *Generator) copyStaticAssets() ([]string, error) {
	if _, err := os.Stat(g.opts.StaticDir); os.IsNotExist(err) {
		return nil, nil
	}

	var copied []string
	err := filepath.Walk(g.opts.StaticDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(g.opts.StaticDir, path)
		if err != nil {
			return err
		}
		destRel := filepath.Join("static", relPath)
		destPath := filepath.Join(g.opts.OutputDir, destRel)

		if info.IsDir() {
			return os.MkdirAll(destPath, 0755)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(destPath, data, 0644); err != nil {
			return err
		}
		copied = append(copied, destRel)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return copied, nil
}
