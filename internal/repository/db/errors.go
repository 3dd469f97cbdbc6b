// Package db holds the bun repositories of the attendance store.
package db

import "github.com/pkg/errors"

var ErrNotFound = errors.New("not found")
