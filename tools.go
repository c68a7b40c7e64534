//go:build tools

package tools

// This file tracks CLI tool dependencies used during development.
// It is not compiled into the binary.
//
// - github.com/matryer/moq: service/lookup mocks (go generate ./...)
// - github.com/pressly/goose/v3/cmd/goose: migration status and down
//   migrations; "wd migrate" only applies pending ones.
