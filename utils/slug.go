package utils

import "github.com/gosimple/slug"

// Slugify derives the URL slug stored alongside every catalog name.
func Slugify(name string) string {
	return slug.Make(name)
}
