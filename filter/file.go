package filter

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/konterm/konterm/hotspot"
)

// filePattern matches a quoted or unquoted path (requiring a dotted
// extension when unquoted, to avoid treating every bare word as a file),
// optionally followed by a ":line[:col]" or "(line)" suffix.
var filePattern = compile(`(?:"([^"]+)"|'([^']+)'|(\S+\.[A-Za-z0-9_]{1,8}))(?::(\d+)(?::(\d+))?|\((\d+)\))?`)

// FileFilter recognizes file paths and, when a line/column suffix is
// present, carries it along. A match is only reported as a hotspot if the
// path resolves to something that actually exists, checked first against
// Cwd (the session's current working directory, supplied by the
// collaborator) and then against each of Roots.
type FileFilter struct {
	re    RegExpFilter
	Roots []string
	Cwd   string
}

// NewFileFilter creates a FileFilter that resolves relative paths against
// cwd, falling back to roots (absolute directories) in order.
func NewFileFilter(cwd string, roots ...string) *FileFilter {
	f := &FileFilter{Cwd: cwd, Roots: roots}
	f.re = RegExpFilter{Pattern: filePattern, Build: f.build}
	return f
}

// Process implements Filter.
func (f *FileFilter) Process(buf *Buffer) []*hotspot.HotSpot {
	return f.re.Process(buf)
}

func (f *FileFilter) build(buf *Buffer, m *regexp2.Match) *hotspot.HotSpot {
	groups := m.Groups()
	raw := firstNonEmptyGroup(groups, 1, 2, 3)
	if raw == "" {
		return nil
	}
	resolved, ok := f.resolve(raw)
	if !ok {
		return nil
	}

	line, col := parseGroupInt(groups, 4), parseGroupInt(groups, 5)
	if paren := parseGroupInt(groups, 6); paren != 0 {
		line = paren
	}

	end := m.Index + runeLen(m.String())
	hs := buildHotSpot(buf, m.Index, end, hotspot.File, raw)
	if hs == nil {
		return nil
	}
	hs.Path = resolved
	hs.Line = line
	hs.Col = col
	hs.Actions = []hotspot.Action{
		{ID: "open-editor", Label: "Open in Editor"},
		{ID: "reveal", Label: "Reveal in File Manager"},
	}
	return hs
}

func (f *FileFilter) resolve(raw string) (string, bool) {
	if filepath.IsAbs(raw) {
		if fileExists(raw) {
			return raw, true
		}
		for _, root := range f.Roots {
			candidate := filepath.Join(root, strings.TrimPrefix(raw, string(filepath.Separator)))
			if fileExists(candidate) {
				return candidate, true
			}
		}
		return "", false
	}
	if f.Cwd != "" {
		candidate := filepath.Join(f.Cwd, raw)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	for _, root := range f.Roots {
		candidate := filepath.Join(root, raw)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func firstNonEmptyGroup(groups []regexp2.Group, indices ...int) string {
	for _, i := range indices {
		if i >= len(groups) {
			continue
		}
		if s := groups[i].String(); s != "" {
			return s
		}
	}
	return ""
}

func parseGroupInt(groups []regexp2.Group, i int) int {
	if i >= len(groups) {
		return 0
	}
	s := groups[i].String()
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
