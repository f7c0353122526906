// Package reqfile parses requirements manifests: one dependency entry per
// line, "#" comments, blank lines ignored, version specifiers, editable
// source references with egg-fragment name bindings, and "-r" includes.
package reqfile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mrmachine/reqs/internal/core/domain"
	"go.trai.ch/zerr"
)

// vcsSchemes are the source-control schemes accepted in direct references.
var vcsSchemes = []string{"git", "hg", "svn", "bzr"}

// FileLoader implements ports.ManifestLoader for manifests on disk.
type FileLoader struct{}

// NewFileLoader creates a FileLoader.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load reads and parses the manifest at the given path.
func (l *FileLoader) Load(path string) (*domain.Manifest, error) {
	return Load(path)
}

// Load reads and parses the manifest at the given path, following "-r"
// includes relative to it.
func Load(path string) (*domain.Manifest, error) {
	m := &domain.Manifest{Path: path}
	if err := loadInto(m, path, make(map[string]bool)); err != nil {
		return nil, err
	}
	return m, nil
}

// Parse parses manifest bytes that are not backed by a file. Include
// directives are rejected because there is nothing to resolve them against.
func Parse(src []byte) (*domain.Manifest, error) {
	m := &domain.Manifest{}
	p := &parser{manifest: m}
	if err := p.parse(string(src)); err != nil {
		return nil, err
	}
	return m, nil
}

func loadInto(m *domain.Manifest, path string, visited map[string]bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve manifest path")
	}
	if visited[abs] {
		// Include cycles are silently skipped; every entry of the file is
		// already part of the manifest.
		return nil
	}
	visited[abs] = true

	data, err := os.ReadFile(abs) //nolint:gosec // path is provided by user
	if err != nil {
		return zerr.Wrap(err, "failed to read manifest")
	}

	p := &parser{
		manifest: m,
		path:     path,
		dir:      filepath.Dir(abs),
		visited:  visited,
	}
	return p.parse(string(data))
}

type parser struct {
	manifest *domain.Manifest
	path     string
	dir      string
	visited  map[string]bool
}

func (p *parser) parse(src string) error {
	lines := strings.Split(src, "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		lineNo := i + 1

		// Trailing-backslash continuation joins physical lines into one entry.
		for strings.HasSuffix(strings.TrimRight(line, " \t\r"), "\\") && i+1 < len(lines) {
			line = strings.TrimSuffix(strings.TrimRight(line, " \t\r"), "\\")
			i++
			line += strings.TrimSpace(lines[i])
		}

		if err := p.parseLine(line, lineNo); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseLine(line string, lineNo int) error {
	line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	entry, comment := splitComment(line)
	if entry == "" {
		return nil
	}

	switch {
	case strings.HasPrefix(entry, "-"):
		return p.parseOption(entry, comment, lineNo)
	case hasVCSPrefix(entry):
		return p.addSource(entry, comment, lineNo, false)
	default:
		return p.addRequirement(entry, comment, lineNo)
	}
}

// splitComment separates a trailing purpose comment from the entry. The "#"
// must be preceded by whitespace so URL fragments like "#egg=" survive.
func splitComment(line string) (entry, comment string) {
	for i := 1; i < len(line); i++ {
		if line[i] == '#' && (line[i-1] == ' ' || line[i-1] == '\t') {
			return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:])
		}
	}
	return strings.TrimSpace(line), ""
}

func (p *parser) parseOption(entry, comment string, lineNo int) error {
	flag, arg := cutOption(entry)
	switch flag {
	case "-e", "--editable":
		return p.addSource(arg, comment, lineNo, true)
	case "-r", "--requirement":
		if p.dir == "" {
			err := zerr.With(domain.ErrMalformedRequirement, "reason", "includes require a file-backed manifest")
			return p.fail(err, entry, lineNo)
		}
		return loadInto(p.manifest, filepath.Join(p.dir, arg), p.visited)
	case "-i", "--index-url":
		p.manifest.IndexURL = arg
		return nil
	}
	return p.fail(zerr.With(domain.ErrMalformedRequirement, "reason", "unknown option"), entry, lineNo)
}

func cutOption(entry string) (flag, arg string) {
	if flag, arg, ok := strings.Cut(entry, "="); ok && strings.HasPrefix(flag, "--") {
		return flag, strings.TrimSpace(arg)
	}
	if flag, arg, ok := strings.Cut(entry, " "); ok {
		return flag, strings.TrimSpace(arg)
	}
	return entry, ""
}

func hasVCSPrefix(entry string) bool {
	for _, scheme := range vcsSchemes {
		if strings.HasPrefix(entry, scheme+"+") {
			return true
		}
	}
	return false
}

// addSource parses a direct source-reference entry such as
// "git+https://github.com/philomat/django-form-designer.git#egg=django_form_designer-dev".
func (p *parser) addSource(entry, comment string, lineNo int, editable bool) error {
	ref, fragment, _ := strings.Cut(entry, "#")

	scheme, url, ok := strings.Cut(ref, "+")
	if !ok || url == "" {
		return p.fail(zerr.With(domain.ErrMalformedSource, "source", entry), entry, lineNo)
	}
	if !hasVCSPrefix(ref) {
		return p.fail(zerr.With(domain.ErrUnsupportedScheme, "scheme", scheme), entry, lineNo)
	}

	name, ok := eggName(fragment)
	if !ok {
		err := zerr.With(domain.ErrMalformedSource, "source", entry)
		return p.fail(zerr.With(err, "reason", "missing egg fragment name binding"), entry, lineNo)
	}

	url, rev := cutRevision(url)

	p.manifest.Requirements = append(p.manifest.Requirements, domain.Requirement{
		RawName: name,
		Source: domain.Source{
			VCS:      scheme,
			URL:      url,
			Ref:      rev,
			Editable: editable,
		},
		Comment: comment,
		Line:    lineNo,
	})
	return nil
}

// eggName extracts the package-name binding from a "#egg=name" fragment.
func eggName(fragment string) (string, bool) {
	for part := range strings.SplitSeq(fragment, "&") {
		if name, found := strings.CutPrefix(part, "egg="); found && name != "" {
			return name, true
		}
	}
	return "", false
}

// cutRevision splits a trailing "@revision" from the repository URL. Only an
// "@" after the final path segment counts, so user info in ssh URLs survives.
func cutRevision(url string) (string, string) {
	slash := strings.LastIndex(url, "/")
	at := strings.LastIndex(url, "@")
	if at > slash {
		return url[:at], url[at+1:]
	}
	return url, ""
}

// addRequirement parses a registry entry: name, optional bracketed extras,
// optional comma-joined version specifiers.
func (p *parser) addRequirement(entry, comment string, lineNo int) error {
	name, rest := cutName(entry)
	if name == "" {
		return p.fail(zerr.With(domain.ErrMalformedRequirement, "reason", "missing package name"), entry, lineNo)
	}

	var extras []string
	if strings.HasPrefix(rest, "[") {
		end := strings.Index(rest, "]")
		if end < 0 {
			return p.fail(zerr.With(domain.ErrMalformedRequirement, "reason", "unterminated extras"), entry, lineNo)
		}
		for extra := range strings.SplitSeq(rest[1:end], ",") {
			if extra = strings.TrimSpace(extra); extra != "" {
				extras = append(extras, extra)
			}
		}
		rest = rest[end+1:]
	}

	specs, err := domain.ParseSpecifierSet(rest)
	if err != nil {
		return p.fail(err, entry, lineNo)
	}

	p.manifest.Requirements = append(p.manifest.Requirements, domain.Requirement{
		RawName:    name,
		Extras:     extras,
		Specifiers: specs,
		Comment:    comment,
		Line:       lineNo,
	})
	return nil
}

func cutName(entry string) (name, rest string) {
	i := 0
	for i < len(entry) && isNameRune(entry[i]) {
		i++
	}
	return entry[:i], strings.TrimSpace(entry[i:])
}

func isNameRune(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '_', c == '.':
		return true
	}
	return false
}

func (p *parser) fail(err error, entry string, lineNo int) error {
	err = zerr.With(err, "line", lineNo)
	err = zerr.With(err, "entry", entry)
	if p.path != "" {
		err = zerr.With(err, "file", p.path)
	}
	return err
}
