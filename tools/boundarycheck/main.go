// Command boundarycheck enforces the layering of bounded-context modules under
// contexts/: domain code stays pure, application code talks to the outside
// only through ports, and modules never import each other.
package main

import (
	"flag"
	"fmt"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"
)

type violation struct {
	File   string
	Line   int
	Import string
	Rule   string
}

// layerRule lists the in-repo import prefixes a layer may use, relative to the
// module root ("{module}" is the owning bounded-context module). Third-party
// imports are checked separately through allowExternal.
type layerRule struct {
	allowed       []string
	allowExternal bool
}

var layerRules = map[string]layerRule{
	"domain":      {allowed: []string{"{module}/domain"}},
	"application": {allowed: []string{"{module}/application", "{module}/domain", "{module}/ports"}},
	"ports":       {allowed: []string{"{module}/domain", "internal/shared"}},
	"transport":   {allowed: []string{"{module}/transport"}},
	"adapters":    {allowed: []string{"{module}"}, allowExternal: true},
}

func main() {
	root := flag.String("root", ".", "repository root containing go.mod")
	flag.Parse()

	modulePath, err := readModulePath(filepath.Join(*root, "go.mod"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	violations, err := collectViolations(*root, modulePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if len(violations) == 0 {
		fmt.Println("boundary checks passed")
		return
	}

	fmt.Println("boundary violations found:")
	for _, v := range violations {
		fmt.Printf("- %s:%d imports %q (%s)\n", v.File, v.Line, v.Import, v.Rule)
	}
	os.Exit(1)
}

func readModulePath(goModPath string) (string, error) {
	raw, err := os.ReadFile(goModPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", goModPath, err)
	}
	modulePath := modfile.ModulePath(raw)
	if modulePath == "" {
		return "", fmt.Errorf("%s has no module directive", goModPath)
	}
	return modulePath, nil
}

func collectViolations(root string, modulePath string) ([]violation, error) {
	var violations []violation

	err := filepath.WalkDir(filepath.Join(root, "contexts"), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		normalized := filepath.ToSlash(rel)
		parts := strings.Split(normalized, "/")
		if len(parts) < 4 {
			return nil
		}

		moduleDir := strings.Join(parts[:3], "/")
		fileViolations, err := validateFile(path, normalized, parts[3], modulePath, moduleDir)
		if err != nil {
			return err
		}
		violations = append(violations, fileViolations...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].File != violations[j].File {
			return violations[i].File < violations[j].File
		}
		if violations[i].Line != violations[j].Line {
			return violations[i].Line < violations[j].Line
		}
		return violations[i].Import < violations[j].Import
	})
	return violations, nil
}

func validateFile(path string, normalized string, layer string, modulePath string, moduleDir string) ([]violation, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
	if err != nil {
		return []violation{{File: normalized, Line: 1, Rule: "file must parse"}}, nil
	}

	rule, ruled := layerRules[layer]
	var violations []violation
	for _, imp := range file.Imports {
		importPath := strings.Trim(imp.Path.Value, "\"")
		line := fset.Position(imp.Pos()).Line
		report := func(reason string) {
			violations = append(violations, violation{File: normalized, Line: line, Import: importPath, Rule: reason})
		}

		if isStdlib(importPath, modulePath) {
			continue
		}
		inRepo := hasPrefix(importPath, modulePath)
		if inRepo && hasPrefix(importPath, modulePath+"/contexts") && !hasPrefix(importPath, modulePath+"/"+moduleDir) {
			report("cross-module imports are forbidden")
			continue
		}
		if !ruled {
			continue
		}
		if !inRepo {
			if !rule.allowExternal {
				report(layer + " must not import third-party packages")
			}
			continue
		}
		if !isAllowed(importPath, expand(rule.allowed, modulePath, moduleDir)) {
			report(layer + " import is outside explicit allowlist")
		}
	}
	return violations, nil
}

func expand(prefixes []string, modulePath string, moduleDir string) []string {
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		out = append(out, modulePath+"/"+strings.ReplaceAll(p, "{module}", moduleDir))
	}
	return out
}

func hasPrefix(path string, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func isAllowed(importPath string, allowedPrefixes []string) bool {
	for _, p := range allowedPrefixes {
		if hasPrefix(importPath, p) {
			return true
		}
	}
	return false
}

func isStdlib(importPath string, modulePath string) bool {
	if hasPrefix(importPath, modulePath) {
		return false
	}
	first := importPath
	if idx := strings.Index(first, "/"); idx != -1 {
		first = first[:idx]
	}
	return !strings.Contains(first, ".")
}
