package scaffold

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dyluth/slate/internal/config"
	"github.com/dyluth/slate/pkg/edgeconfig"
)

//go:embed templates/*
var templatesFS embed.FS

// Files written by Initialize.
const (
	ConfigFile     = "slate.yml"
	EdgeConfigFile = "edge-config.yml"
)

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	Path        string
	Content     []byte
	Permissions os.FileMode
}

// Initialize writes a starter slate.yml and edge-config.yml into dir.
// If force is true, existing files are overwritten.
func Initialize(dir string, force bool) error {
	if !force {
		if err := CheckExisting(dir); err != nil {
			return err
		}
	}

	files, err := getTemplateFiles(dir)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := writeFiles(files); err != nil {
		return err
	}

	return validateCreatedFiles(dir)
}

// getTemplateFiles reads all template files
func getTemplateFiles(dir string) ([]FileInfo, error) {
	templates := []struct{ name, path string }{
		{"templates/slate.yml.tmpl", ConfigFile},
		{"templates/edge-config.yml.tmpl", EdgeConfigFile},
	}

	files := make([]FileInfo, 0, len(templates))
	for _, tmpl := range templates {
		content, err := templatesFS.ReadFile(tmpl.name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s template: %w", tmpl.path, err)
		}
		files = append(files, FileInfo{
			Path:        filepath.Join(dir, tmpl.path),
			Content:     content,
			Permissions: 0644,
		})
	}

	return files, nil
}

// writeFiles writes all template files to disk
func writeFiles(files []FileInfo) error {
	for _, file := range files {
		if err := os.WriteFile(file.Path, file.Content, file.Permissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
	}

	return nil
}

// validateCreatedFiles checks that both files parse. The config template
// references env vars that may be unset, so only its YAML shape is checked.
func validateCreatedFiles(dir string) error {
	content, err := os.ReadFile(filepath.Join(dir, ConfigFile))
	if err != nil {
		return fmt.Errorf("failed to read created %s: %w", ConfigFile, err)
	}
	if err := config.CheckSyntax(content); err != nil {
		return fmt.Errorf("created %s is not valid YAML: %w", ConfigFile, err)
	}

	if _, err := edgeconfig.LoadStaticSource(filepath.Join(dir, EdgeConfigFile)); err != nil {
		return fmt.Errorf("created %s is invalid: %w", EdgeConfigFile, err)
	}

	return nil
}

// PrintSuccess prints the success message with created files
func PrintSuccess(w io.Writer) {
	fmt.Fprintln(w, "\n✅ Successfully initialized slate workspace!")
	fmt.Fprintln(w, "\nCreated:")
	fmt.Fprintf(w, "  ✓ %s\n", ConfigFile)
	fmt.Fprintf(w, "  ✓ %s\n", EdgeConfigFile)
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintln(w, "  1. Set REDIS_URL and SLATE_PASSWORD, or edit slate.yml")
	fmt.Fprintln(w, "  2. Run 'slate serve' and open http://localhost:8080")
}
