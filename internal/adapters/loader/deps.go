package loader

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.trai.ch/revive/internal/core/domain"
)

// recordDeps scans the import graph of the entry file and records every
// source file it pulls in into the registry, with the importer as the
// parent (cause) edge. Scanning is best-effort: a file that fails to parse
// is recorded but not descended into, so a later edit to it still
// classifies as relevant.
func (l *Loader) recordDeps(entry string, reg *domain.Registry) {
	reg.Put(entry, "")

	visited := map[string]bool{entry: true}
	queue := []string{entry}

	for len(queue) > 0 {
		file := queue[0]
		queue = queue[1:]

		imports, err := parseImports(file)
		if err != nil {
			if l.logger != nil {
				l.logger.Debug("dependency scan skipped " + file + ": " + err.Error())
			}
			continue
		}

		for _, imp := range imports {
			dir, ok := l.resolveImportDir(filepath.Dir(file), imp)
			if !ok {
				// Standard library or unfetchable package: nothing on disk
				// to watch or invalidate.
				continue
			}
			for _, dep := range sourceFiles(dir) {
				if visited[dep] {
					continue
				}
				visited[dep] = true
				reg.Put(dep, file)
				queue = append(queue, dep)
			}
		}
	}
}

// parseImports returns the import paths of a single Go source file.
func parseImports(file string) ([]string, error) {
	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
	if err != nil {
		return nil, err
	}

	imports := make([]string, 0, len(parsed.Imports))
	for _, spec := range parsed.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		imports = append(imports, path)
	}
	return imports, nil
}

// packageName returns the declared package of a source file.
func packageName(file string) (string, error) {
	fset := token.NewFileSet()
	parsed, err := parser.ParseFile(fset, file, nil, parser.PackageClauseOnly)
	if err != nil {
		return "", err
	}
	return parsed.Name.Name, nil
}

// resolveImportDir maps an import path to a directory on disk. Imports are
// tried relative to the importing file, then relative to the project root,
// then under a vendor directory at the root. Anything else (typically the
// standard library) does not resolve.
func (l *Loader) resolveImportDir(importerDir, imp string) (string, bool) {
	candidates := []string{
		filepath.Join(importerDir, imp),
		filepath.Join(l.root, imp),
		filepath.Join(l.root, "vendor", imp),
	}
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, true
		}
	}
	return "", false
}

// sourceFiles lists the non-test Go source files of a directory.
func sourceFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files
}
