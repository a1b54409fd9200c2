package storage

import "errors"

// ErrNotFound возвращается GetEntry и DeleteEntry для неизвестного id.
var ErrNotFound = errors.New("entry not found")
