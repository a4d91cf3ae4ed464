package markdown

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestParseFrontMatter(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if meta.Title != "Spring Boot and RabbitMQ" {
		t.Fatalf("FrontMatter Title mismatch, got %q", meta.Title)
	}
	if got := meta.Date.Format("2006-01-02"); got != "2024-01-15" {
		t.Fatalf("FrontMatter Date mismatch, got %q", got)
	}
	if !strings.HasPrefix(meta.Spoiler, "Declaring queues") {
		t.Fatalf("FrontMatter Spoiler mismatch, got %q", meta.Spoiler)
	}
	if len(meta.Tags) != 2 || meta.Tags[0] != "spring" {
		t.Fatalf("FrontMatter Tags mismatch: %#v", meta.Tags)
	}
	if meta.Custom["custom_flag"] != true {
		t.Fatalf("FrontMatter Custom flag missing: %#v", meta.Custom)
	}
	if len(body) == 0 || !strings.Contains(string(body), "# Spring Boot and RabbitMQ") {
		t.Fatalf("Markdown body not returned correctly: %q", string(body))
	}
	if !bytes.HasPrefix(meta.Header, []byte("---\n")) {
		t.Fatalf("expected verbatim header capture, got %q", string(meta.Header))
	}
}

func TestParseFrontMatterScenario(t *testing.T) {
	input := "---\ntitle: 'X'\ndate: '2024-01-01'\nspoiler: \"Y\"\n---\nBody text"

	meta, body, err := ParseFrontMatter([]byte(input))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if meta.Title != "X" {
		t.Fatalf("expected title X, got %q", meta.Title)
	}
	if got := meta.Date.Format("2006-01-02"); got != "2024-01-01" {
		t.Fatalf("expected date 2024-01-01, got %q", got)
	}
	if meta.Spoiler != "Y" {
		t.Fatalf("expected spoiler Y, got %q", meta.Spoiler)
	}
	if string(body) != "Body text" {
		t.Fatalf("expected body %q, got %q", "Body text", string(body))
	}
}

func TestParseFrontMatterRoundTrip(t *testing.T) {
	inputs := [][]byte{
		readFixture(t, "testdata/basic.md"),
		[]byte("---\ntitle: 'X'\ndate: '2024-01-01'\nspoiler: \"Y\"\n---\nBody text"),
	}

	for _, input := range inputs {
		meta, body, err := ParseFrontMatter(input)
		if err != nil {
			t.Fatalf("ParseFrontMatter: %v", err)
		}

		out, err := Serialize(meta, body)
		if err != nil {
			t.Fatalf("Serialize: %v", err)
		}
		if !bytes.Equal(out, input) {
			t.Fatalf("round trip mismatch:\nwant %q\ngot  %q", string(input), string(out))
		}
	}
}

func TestParseFrontMatterMissingField(t *testing.T) {
	cases := map[string]struct {
		input string
		field string
	}{
		"missing title": {
			input: "---\ndate: '2024-01-01'\nspoiler: s\n---\nbody",
			field: "title",
		},
		"missing date": {
			input: "---\ntitle: t\nspoiler: s\n---\nbody",
			field: "date",
		},
		"missing spoiler": {
			input: "---\ntitle: t\ndate: '2024-01-01'\n---\nbody",
			field: "spoiler",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			meta, body, err := ParseFrontMatter([]byte(tc.input))
			if err == nil {
				t.Fatal("expected parse error")
			}
			parseErr, ok := AsParseError(err)
			if !ok {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if parseErr.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, parseErr.Field)
			}
			if !errors.Is(err, ErrFieldRequired) {
				t.Fatalf("expected ErrFieldRequired, got %v", err)
			}
			if meta.Title != "" || meta.Spoiler != "" || !meta.Date.IsZero() || body != nil {
				t.Fatal("expected no partial record on failure")
			}
		})
	}
}

func TestParseFrontMatterUnterminatedHeader(t *testing.T) {
	data := readFixture(t, "testdata/unterminated.md")

	_, _, err := ParseFrontMatter(data)
	if err == nil {
		t.Fatal("expected parse error for missing closing delimiter")
	}
	if _, ok := AsParseError(err); !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if !errors.Is(err, ErrHeaderMissing) {
		t.Fatalf("expected ErrHeaderMissing, got %v", err)
	}
}

func TestParseFrontMatterMissingHeader(t *testing.T) {
	_, _, err := ParseFrontMatter([]byte("# Just a heading\n\nNo metadata here.\n"))
	if err == nil {
		t.Fatal("expected parse error for absent front matter")
	}
	if !errors.Is(err, ErrHeaderMissing) {
		t.Fatalf("expected ErrHeaderMissing, got %v", err)
	}
}

func TestParseFrontMatterPreservesFencedBlocks(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")

	_, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	fence := "```yaml\nspring:\n  rabbitmq:\n    host: localhost\n    port: 5672\n```"
	if !strings.Contains(string(body), fence) {
		t.Fatalf("expected fenced block to survive verbatim, got %q", string(body))
	}
}

func TestSerializeWithoutHeader(t *testing.T) {
	meta, body, err := ParseFrontMatter([]byte("---\ntitle: t\ndate: '2024-01-01'\nspoiler: s\n---\nbody"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	meta.Header = nil
	out, err := Serialize(meta, body)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	text := string(out)
	if !strings.HasPrefix(text, "---\n") {
		t.Fatalf("expected opening delimiter, got %q", text)
	}
	for _, want := range []string{"title: t", "date: \"2024-01-01\"", "spoiler: s", "body"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected serialized output to contain %q, got %q", want, text)
		}
	}
}

func TestBuildDocument(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")
	modified := time.Now().UTC()

	doc, err := BuildDocument("testdata/basic.md", "basic", data, modified)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}

	if doc.FilePath != "testdata/basic.md" {
		t.Fatalf("expected FilePath to be set, got %q", doc.FilePath)
	}
	if doc.Slug != "basic" {
		t.Fatalf("expected Slug to be basic, got %q", doc.Slug)
	}
	if doc.LastModified != modified {
		t.Fatalf("expected LastModified to equal the provided timestamp")
	}
	if len(doc.Body) == 0 {
		t.Fatalf("expected Body to contain markdown content")
	}
}

func TestBuildDocumentSlugOverride(t *testing.T) {
	input := "---\ntitle: t\nslug: custom-slug\ndate: '2024-01-01'\nspoiler: s\n---\nbody"

	doc, err := BuildDocument("posts/original.md", "original", []byte(input), time.Now())
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}
	if doc.Slug != "custom-slug" {
		t.Fatalf("expected front matter slug override, got %q", doc.Slug)
	}
}

func TestBuildDocumentAnnotatesPath(t *testing.T) {
	_, err := BuildDocument("posts/bad.md", "bad", []byte("no front matter"), time.Now())
	if err == nil {
		t.Fatal("expected error")
	}
	parseErr, ok := AsParseError(err)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Path != "posts/bad.md" {
		t.Fatalf("expected path annotation, got %q", parseErr.Path)
	}
}

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}
