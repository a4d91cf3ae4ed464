package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

var (
	// ErrHeaderMissing reports a document without a recognised metadata block:
	// no opening delimiter at the top, or a missing closing delimiter.
	ErrHeaderMissing = errors.New("markdown: front matter block missing or unterminated")
	// ErrFieldRequired reports a metadata block lacking one of the mandatory keys.
	ErrFieldRequired = errors.New("markdown: required front matter field missing")
	// ErrFieldInvalid reports a metadata value that could not be decoded.
	ErrFieldInvalid = errors.New("markdown: front matter field invalid")
)

// ParseError is the single failure kind raised by the front-matter parser.
// It aborts processing of the affected document only; callers continue with
// sibling documents.
type ParseError struct {
	Path  string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString("markdown: parse")
	if e.Path != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Path)
	}
	sb.WriteString(": ")
	if e.Field != "" {
		fmt.Fprintf(&sb, "field %q: ", e.Field)
	}
	if e.Err != nil {
		sb.WriteString(e.Err.Error())
	} else {
		sb.WriteString("malformed document")
	}
	return sb.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// AsParseError unwraps err into a *ParseError when one is present.
func AsParseError(err error) (*ParseError, bool) {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr, true
	}
	return nil, false
}

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. The metadata block must open the document and be
// closed by a matching delimiter; title, date, and spoiler are mandatory.
// On failure no partial metadata is returned. The body is handed back
// untouched, fenced code blocks included.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var env frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.MustParse(reader, &env)
	if err != nil {
		return interfaces.FrontMatter{}, nil, &ParseError{Err: fmt.Errorf("%w: %v", ErrHeaderMissing, err)}
	}

	meta, err := envelopeToFrontMatter(env)
	if err != nil {
		return interfaces.FrontMatter{}, nil, err
	}

	// The raw header is everything ahead of the returned body; keeping it
	// verbatim lets Serialize reproduce the input byte for byte.
	meta.Header = append([]byte(nil), source[:len(source)-len(body)]...)
	return meta, body, nil
}

// Serialize reassembles a document from its metadata and body. When the
// metadata still carries the verbatim header block the output is
// byte-identical to the original source; otherwise the header is re-encoded
// as YAML.
func Serialize(meta interfaces.FrontMatter, body []byte) ([]byte, error) {
	if len(meta.Header) > 0 {
		out := make([]byte, 0, len(meta.Header)+len(body))
		out = append(out, meta.Header...)
		out = append(out, body...)
		return out, nil
	}

	encoded, err := yaml.Marshal(serializableEnvelope{
		Title:   meta.Title,
		Date:    meta.Date.Format("2006-01-02"),
		Spoiler: meta.Spoiler,
		Slug:    meta.Slug,
		Tags:    meta.Tags,
		Draft:   meta.Draft,
		Custom:  meta.Custom,
	})
	if err != nil {
		return nil, fmt.Errorf("markdown serialize: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(encoded)
	buf.WriteString("---\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// slug, raw content, and modification time. BodyHTML is intentionally left
// empty so callers can render lazily.
func BuildDocument(path string, slug string, source []byte, modified time.Time) (*interfaces.Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		if parseErr, ok := AsParseError(err); ok && parseErr.Path == "" {
			parseErr.Path = path
		}
		return nil, err
	}

	if override := strings.TrimSpace(meta.Slug); override != "" {
		slug = override
	}

	return &interfaces.Document{
		FilePath:     path,
		Slug:         slug,
		FrontMatter:  meta,
		Body:         body,
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	Title   string         `yaml:"title"`
	Slug    string         `yaml:"slug"`
	Date    string         `yaml:"date"`
	Spoiler string         `yaml:"spoiler"`
	Tags    []string       `yaml:"tags"`
	Draft   bool           `yaml:"draft"`
	Custom  map[string]any `yaml:",inline"`
}

type serializableEnvelope struct {
	Title   string         `yaml:"title"`
	Date    string         `yaml:"date"`
	Spoiler string         `yaml:"spoiler"`
	Slug    string         `yaml:"slug,omitempty"`
	Tags    []string       `yaml:"tags,omitempty"`
	Draft   bool           `yaml:"draft,omitempty"`
	Custom  map[string]any `yaml:",inline"`
}

// dateLayouts lists the accepted calendar date shapes, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Jan 2, 2006",
}

func envelopeToFrontMatter(env frontMatterEnvelope) (interfaces.FrontMatter, error) {
	if strings.TrimSpace(env.Title) == "" {
		return interfaces.FrontMatter{}, &ParseError{Field: "title", Err: ErrFieldRequired}
	}
	if strings.TrimSpace(env.Date) == "" {
		return interfaces.FrontMatter{}, &ParseError{Field: "date", Err: ErrFieldRequired}
	}
	if strings.TrimSpace(env.Spoiler) == "" {
		return interfaces.FrontMatter{}, &ParseError{Field: "spoiler", Err: ErrFieldRequired}
	}

	date, err := parseDate(env.Date)
	if err != nil {
		return interfaces.FrontMatter{}, &ParseError{Field: "date", Err: fmt.Errorf("%w: %v", ErrFieldInvalid, err)}
	}

	return interfaces.FrontMatter{
		Title:   env.Title,
		Slug:    env.Slug,
		Date:    date,
		Spoiler: env.Spoiler,
		Tags:    append([]string(nil), env.Tags...),
		Draft:   env.Draft,
		Custom:  cloneMap(env.Custom),
	}, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
