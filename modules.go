// modules.go — default filesystem ModuleLoader (spec §4.11, §6 "Module
// loader").
//
// Grounded on the teacher's mindscript/modules.go resolution rules: a
// spec names a file stem, the `.saf` extension is appended when absent,
// and relative specs are searched across an ordered list of base
// directories before failing with ErrNotFound. Simplified relative to the
// teacher's own loader by dropping its HTTP(S) module resolution (no
// example repo in the pack wires net/http into a language runtime's module
// loader, so that stays out-of-scope per DESIGN.md) and its
// ambiguous-file-vs-directory probing, since spec.md's `req` grammar only
// ever names a bare module identifier or an explicit source string, never a
// directory.
package safulate

import (
	"fmt"
	"os"
	"path/filepath"
)

const sourceExt = ".saf"

// FSModuleLoader resolves `req` targets against the filesystem: each entry
// of SearchPaths is tried in order, then the current working directory.
type FSModuleLoader struct {
	SearchPaths []string
	parseCache  map[string]*Program
}

// NewFSModuleLoader builds a loader that searches the given directories, in
// order, before falling back to the process's working directory.
func NewFSModuleLoader(searchPaths ...string) *FSModuleLoader {
	return &FSModuleLoader{SearchPaths: searchPaths, parseCache: map[string]*Program{}}
}

// Load implements ModuleLoader by locating a `.saf` file for name, reading
// and parsing it, and caches the parsed Program by resolved path. The
// Interpreter keeps its own cache of executed modules and does cycle
// detection (interpreter_exec.go execReq).
func (l *FSModuleLoader) Load(name string) (*Program, error) {
	path, err := l.resolve(name)
	if err != nil {
		return nil, err
	}
	if prog, ok := l.parseCache[path]; ok {
		return prog, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidModule, err)
	}

	prog, perr := parseModule(path, string(data))
	if perr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModule, perr)
	}
	if l.parseCache == nil {
		l.parseCache = map[string]*Program{}
	}
	l.parseCache[path] = prog
	return prog, nil
}

func (l *FSModuleLoader) resolve(name string) (string, error) {
	candidate := name
	if filepath.Ext(candidate) == "" {
		candidate += sourceExt
	}

	if filepath.IsAbs(candidate) {
		if fileExists(candidate) {
			return filepath.Clean(candidate), nil
		}
		return "", ErrNotFound
	}

	for _, base := range l.SearchPaths {
		full := filepath.Join(base, candidate)
		if fileExists(full) {
			return filepath.Clean(full), nil
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		full := filepath.Join(cwd, candidate)
		if fileExists(full) {
			return filepath.Clean(full), nil
		}
	}

	return "", ErrNotFound
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// parseModule recovers a lex/parse panic into a plain error, the same
// boundary Interpreter.ParseSafe uses for top-level source.
func parseModule(name, text string) (prog *Program, err error) {
	defer catchSignal(&err)
	prog = Parse(NewSource(name, text))
	return prog, nil
}
