package idxmap

import "errors"

// ErrNegativeIndex names the negative-index case. IndexedMap does not
// return it: Set ignores a key whose Index() is negative, and Get/Has
// report the default/false for one.
var ErrNegativeIndex = errors.New("idxmap: negative index")

// Indexed is implemented by any key type usable with IndexedMap: a dense,
// non-negative, small integer identity.
type Indexed interface {
	Index() int
}
