package quote

import "errors"

// ErrNoQuotes indicates there are no active quotes to choose from.
var ErrNoQuotes = errors.New("no quotes available")
