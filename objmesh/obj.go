// Package objmesh parses the subset of Wavefront OBJ used as a mesh input
// format: vertex positions (v) and triangular faces (f), with 1-based face
// indices. Every other directive, including texture coordinates, normals,
// and material references, is ignored, since the core mesh engine that
// consumes this has no notion of rendering attributes.
package objmesh

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/astroshaper/shapemodels-go/vector"
)

// Face is a parsed triangular face: three 1-based vertex indices, as
// written in the OBJ source.
type Face struct {
	V0, V1, V2 int
}

// Object is the parsed contents of an OBJ file: vertex positions and
// triangular faces.
type Object struct {
	Vertices []vector.Vector
	Faces    []Face
}

// ParseError reports a malformed OBJ line, with enough context to locate
// it in the source file.
type ParseError struct {
	Filename string
	Line     int
	LineText string
	Msg      string
}

func (e *ParseError) Error() string {
	if e.Filename != "" {
		return fmt.Sprintf("%s:%d: %s\n    %s", e.Filename, e.Line, e.Msg, e.LineText)
	}
	return fmt.Sprintf("line %d: %s\n    %s", e.Line, e.Msg, e.LineText)
}

// ParseFS reads and parses an OBJ file from fsys at pattern.
func ParseFS(fsys fs.FS, pattern string) (*Object, error) {
	f, err := fsys.Open(pattern)
	if err != nil {
		return nil, &ParseError{
			Filename: path.Base(pattern),
			Msg:      fmt.Sprintf("failed to open file %q: %v", pattern, err),
		}
	}
	defer f.Close()

	p := &parser{
		reader:   bufio.NewReader(f),
		obj:      &Object{},
		filename: path.Base(pattern),
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.obj, nil
}

type parser struct {
	reader     *bufio.Reader
	obj        *Object
	lineNumber int
	lineText   string
	filename   string
}

func (p *parser) parse() error {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return &ParseError{Filename: p.filename, Line: p.lineNumber, Msg: fmt.Sprintf("error reading OBJ data: %v", err)}
		}
		if err == io.EOF && len(line) == 0 {
			break
		}
		p.lineNumber++
		p.lineText = strings.TrimSpace(line)
		if parseErr := p.parseLine(p.lineText); parseErr != nil {
			return parseErr
		}
		if err == io.EOF {
			break
		}
	}
	return nil
}

func (p *parser) parseLine(line string) error {
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	firstSpace := strings.IndexByte(line, ' ')
	if firstSpace == -1 {
		return nil
	}
	directive := line[:firstSpace]
	rest := strings.TrimSpace(line[firstSpace+1:])

	switch directive {
	case "v":
		return p.parseVertex(rest)
	case "f":
		return p.parseFace(rest)
	default:
		// Texture coordinates, normals, materials, and anything else are
		// out of scope for the geometry engine; ignore silently.
		return nil
	}
}

func (p *parser) parseVertex(rest string) error {
	fields := strings.Fields(rest)
	if len(fields) < 3 {
		return p.newError("invalid vertex data: expected 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return p.newError("invalid vertex X coordinate: %v", err)
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return p.newError("invalid vertex Y coordinate: %v", err)
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return p.newError("invalid vertex Z coordinate: %v", err)
	}
	p.obj.Vertices = append(p.obj.Vertices, vector.Vector{X: x, Y: y, Z: z})
	return nil
}

func (p *parser) parseFace(rest string) error {
	fields := strings.Fields(rest)
	if len(fields) != 3 {
		return p.newError("face definition error: only triangular faces are supported, got %d vertices", len(fields))
	}
	idx := make([]int, 3)
	for i, field := range fields {
		// A face vertex reference may carry /vt/vn suffixes (e.g. "3/1/2");
		// only the leading vertex index is meaningful here.
		ref := field
		if slash := strings.IndexByte(ref, '/'); slash != -1 {
			ref = ref[:slash]
		}
		v, err := strconv.Atoi(ref)
		if err != nil {
			return p.newError("invalid face index %q: %v", field, err)
		}
		if v < 1 || v > len(p.obj.Vertices) {
			return p.newError("face index %d out of range [1, %d]", v, len(p.obj.Vertices))
		}
		idx[i] = v
	}
	p.obj.Faces = append(p.obj.Faces, Face{V0: idx[0], V1: idx[1], V2: idx[2]})
	return nil
}

func (p *parser) newError(format string, args ...interface{}) error {
	return &ParseError{
		Filename: p.filename,
		Line:     p.lineNumber,
		LineText: p.lineText,
		Msg:      fmt.Sprintf(format, args...),
	}
}
