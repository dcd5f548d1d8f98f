package segment

import "errors"

// ErrInvalidLimit indicates a target length below 1.
var ErrInvalidLimit = errors.New("limit must be a positive integer")
