// internal/repositories/errors.go
// Shared repository error sentinels

package repositories

import "errors"

var ErrNotFound = errors.New("resource not found")
