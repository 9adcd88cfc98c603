package importer

import "github.com/gosimple/slug"

const fallbackSlug = "unknown-cuisine"

func slugify(name string) string {
	s := slug.Make(name)
	if s == "" {
		return fallbackSlug
	}
	return s
}
