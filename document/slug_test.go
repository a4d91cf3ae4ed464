package document

import "testing"

func TestSlugFromPath(t *testing.T) {
	cases := map[string]struct {
		path string
		want string
	}{
		"flat file":           {path: "spring-rabbitmq.md", want: "spring-rabbitmq"},
		"nested file":         {path: "posts/2024/bigquery-testing.md", want: "bigquery-testing"},
		"index takes dir":     {path: "spring-rabbitmq/index.md", want: "spring-rabbitmq"},
		"uppercase index":     {path: "my-post/INDEX.md", want: "my-post"},
		"windows separators":  {path: "posts\\my-post.md", want: "my-post"},
		"mixed case filename": {path: "My Fancy Post.md", want: "my-fancy-post"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := SlugFromPath(tc.path)
			if err != nil {
				t.Fatalf("SlugFromPath(%q): %v", tc.path, err)
			}
			if got != tc.want {
				t.Fatalf("SlugFromPath(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	for _, valid := range []string{"a", "a-post", "post-2024"} {
		if !IsValidSlug(valid) {
			t.Fatalf("expected %q to be a valid slug", valid)
		}
	}
	for _, invalid := range []string{"", "A Post", "post_with_underscores!"} {
		if IsValidSlug(invalid) {
			t.Fatalf("expected %q to be rejected", invalid)
		}
	}
}
