package document

import (
	"path"
	"strings"

	"github.com/goliatone/go-slug"
)

// SlugNormalizer exposes the slug normalizer interface.
type SlugNormalizer = slug.Normalizer

// DefaultSlugNormalizer returns the default slug normalizer.
func DefaultSlugNormalizer() SlugNormalizer {
	return slug.Default()
}

// NormalizeSlug applies the default slug normalization rules.
func NormalizeSlug(value string) (string, error) {
	return slug.Normalize(value)
}

// IsValidSlug reports whether the slug matches the default rules.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}

// SlugFromPath derives a document slug from its storage path: the file name
// stripped of its extension, normalized. Index files take the name of their
// parent directory so "spring-rabbitmq/index.md" becomes "spring-rabbitmq".
func SlugFromPath(filePath string) (string, error) {
	cleaned := path.Clean(strings.ReplaceAll(filePath, "\\", "/"))
	base := path.Base(cleaned)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if strings.EqualFold(base, "index") {
		if dir := path.Base(path.Dir(cleaned)); dir != "." && dir != "/" {
			base = dir
		}
	}
	return slug.Normalize(base)
}
