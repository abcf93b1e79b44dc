// Package assets embeds the default word lists and the SQL migrations so the
// binary runs without any files on disk.
package assets

import (
	"embed"
	"io"
	"io/fs"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

//go:embed migrations/*.sql
var migrations embed.FS

// Allowed opens the embedded valid-guess list.
func Allowed() (io.ReadCloser, error) {
	return FS.Open("allowed.txt")
}

// Answers opens the embedded solution list.
func Answers() (io.ReadCloser, error) {
	return FS.Open("answers.txt")
}

// Migrations returns the migration files rooted at the migrations directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}
