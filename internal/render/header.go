package render

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// MissingDocFileError reports a module whose documentation file cannot be read.
type MissingDocFileError struct {
	Module string
	Path   string
	Err    error
}

func (e *MissingDocFileError) Error() string {
	return fmt.Sprintf("documentation file for module %s not found: %s", e.Module, e.Path)
}

func (e *MissingDocFileError) Unwrap() error { return e.Err }

// ReadHeader loads path and returns its leading comment block.
func ReadHeader(module, path string) (string, error) {
	if path == "" {
		return "", &MissingDocFileError{Module: module, Path: path, Err: fs.ErrNotExist}
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the evaluated module list
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &MissingDocFileError{Module: module, Path: path, Err: err}
		}
		return "", fmt.Errorf("read documentation file %s: %w", path, err)
	}
	header, err := Header(data)
	if err != nil {
		return "", fmt.Errorf("documentation file %s: %w", path, err)
	}
	return header, nil
}

// Header extracts the contiguous comment lines at the very start of src. Lines
// start with "#" or "//"; the marker and one following space are stripped. The
// block ends at the first line that is not a comment. Trailing empty comment lines
// are dropped; everything else is kept verbatim.
func Header(src []byte) (string, error) {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		text, ok := stripMarker(line)
		if !ok {
			break
		}
		lines = append(lines, text)
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("scan header: %w", err)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n"), nil
}

func stripMarker(line string) (string, bool) {
	var rest string
	switch {
	case strings.HasPrefix(line, "//"):
		rest = line[2:]
	case strings.HasPrefix(line, "#"):
		rest = line[1:]
	default:
		return "", false
	}
	return strings.TrimPrefix(rest, " "), true
}
