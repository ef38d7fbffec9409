package catalog

import "errors"

// ErrPageNotFound is returned when a path is not in the catalog.
var ErrPageNotFound = errors.New("page not found in catalog")
