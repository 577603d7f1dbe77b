package utils

import (
	"errors"
	"fmt"
	"go/ast"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/pablor21/gondoc/annotations"
)

// Ptr returns a pointer to the given value
func Ptr[T any](v T) *T {
	return &v
}

// DerefPtr returns the value pointed to by ptr, or defaultValue if ptr is nil
func DerefPtr[T any](ptr *T, defaultValue T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultValue
}

// EnsureDir makes sure a directory exists
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ExpandGlobs expands file glob patterns with negations.
// Example:
//
//	"./models/*.go", "!./models/skip.go"
func ExpandGlobs(patterns ...string) ([]string, error) {
	include := []string{}
	exclude := []string{}

	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if strings.HasPrefix(p, "!") {
			exclude = append(exclude, strings.TrimPrefix(p, "!"))
		} else {
			include = append(include, p)
		}
	}

	results := map[string]struct{}{}

	for _, pattern := range include {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			results[m] = struct{}{}
		}
	}

	for _, pattern := range exclude {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			delete(results, m)
		}
	}

	out := make([]string, 0, len(results))
	for r := range results {
		out = append(out, r)
	}
	return out, nil
}

// UniqueDirs converts file paths to unique directories
func UniqueDirs(files []string) []string {
	dirs := map[string]struct{}{}
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		dir := f
		if !info.IsDir() {
			dir = filepath.Dir(f)
		}
		dirs[dir] = struct{}{}
	}

	out := make([]string, 0, len(dirs))
	for d := range dirs {
		out = append(out, d)
	}
	return out
}

// LoadMode is what the resolver needs from go/packages: syntax with comments
// plus type information for enum constant values.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedModule

// LoadPackages loads packages from go list patterns (./..., import paths,
// directories) and file globs. Patterns prefixed with '!' exclude packages
// whose directory matches them.
func LoadPackages(patterns ...string) ([]*packages.Package, error) {
	var listPatterns, globPatterns, excludes []string
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		switch {
		case p == "":
		case strings.HasPrefix(p, "!"):
			excludes = append(excludes, strings.TrimPrefix(p, "!"))
		case isFilePattern(p):
			globPatterns = append(globPatterns, p)
		default:
			listPatterns = append(listPatterns, p)
		}
	}

	if len(globPatterns) > 0 {
		files, err := ExpandGlobs(globPatterns...)
		if err != nil {
			return nil, err
		}
		dirs := UniqueDirs(files)
		if len(dirs) == 0 && len(listPatterns) == 0 {
			return nil, fmt.Errorf("no directories found from patterns")
		}
		for _, d := range dirs {
			listPatterns = append(listPatterns, absDir(d))
		}
	}
	if len(listPatterns) == 0 {
		return nil, errors.New("no package patterns given")
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  wd,
	}
	pkgs, err := packages.Load(cfg, listPatterns...)
	if err != nil {
		return nil, err
	}
	return excludePackages(pkgs, excludes), nil
}

func isFilePattern(p string) bool {
	return strings.HasSuffix(p, ".go") || strings.ContainsAny(p, "*?[")
}

func absDir(d string) string {
	if abs, err := filepath.Abs(d); err == nil {
		return abs
	}
	return d
}

func excludePackages(pkgs []*packages.Package, excludes []string) []*packages.Package {
	if len(excludes) == 0 {
		return pkgs
	}
	out := pkgs[:0]
	for _, pkg := range pkgs {
		dir := PackageDir(pkg)
		skip := false
		for _, ex := range excludes {
			ex = strings.TrimSuffix(ex, "/...")
			exAbs := absDir(ex)
			if ok, _ := filepath.Match(exAbs, dir); ok || dir == exAbs || strings.HasPrefix(dir, exAbs+string(os.PathSeparator)) {
				skip = true
				break
			}
			if pkg.PkgPath == ex || strings.HasPrefix(pkg.PkgPath, ex+"/") {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, pkg)
		}
	}
	return out
}

// PackageDir returns the directory holding the package's Go files.
func PackageDir(pkg *packages.Package) string {
	for _, f := range pkg.GoFiles {
		return filepath.Dir(f)
	}
	for _, f := range pkg.CompiledGoFiles {
		return filepath.Dir(f)
	}
	return ""
}

// GetPackageFullPath attempts to get the full import path for a package
// If pkg.PkgPath is empty or just the package name, it tries to construct it
func GetPackageFullPath(pkg *packages.Package) string {
	if pkg.PkgPath != "" && pkg.PkgPath != pkg.Name {
		return pkg.PkgPath
	}

	// If we have module information, try to construct the path
	if pkg.Module != nil {
		for _, file := range pkg.GoFiles {
			relPath, err := filepath.Rel(pkg.Module.Dir, filepath.Dir(file))
			if err == nil && relPath != "." {
				return pkg.Module.Path + "/" + filepath.ToSlash(relPath)
			}
		}
		return pkg.Module.Path
	}

	return pkg.Name
}

// CommentFragments returns the raw text of every non-directive comment in the
// group, with only the comment markers removed.
func CommentFragments(group *ast.CommentGroup) []string {
	if group == nil {
		return nil
	}
	var parts []string
	for _, comment := range group.List {
		text := comment.Text
		switch {
		case strings.HasPrefix(text, "//"):
			if annotations.IsDirective(text) {
				continue
			}
			parts = append(parts, strings.TrimSuffix(text[2:], "\r"))
		case strings.HasPrefix(text, "/*") && strings.HasSuffix(text, "*/"):
			parts = append(parts, text[2:len(text)-2])
		}
	}
	return parts
}
