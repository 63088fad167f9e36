package imagemeta

import (
	"github.com/simonhull/imagemeta/internal/binary"
	"github.com/simonhull/imagemeta/internal/types"
)

// OutOfRangeError is an alias to binary.OutOfRangeError.
// Returned when a header offset lies at or beyond the end of the stream.
type OutOfRangeError = binary.OutOfRangeError

// UnexpectedEndError is an alias to binary.UnexpectedEndError.
// Returned when a header field extends past the end of the stream.
type UnexpectedEndError = binary.UnexpectedEndError

// UnresolvableImageError is an alias to types.UnresolvableImageError.
// Returned when the inspector cannot open or decode the image handle.
type UnresolvableImageError = types.UnresolvableImageError

// DuplicateFieldError is an alias to types.DuplicateFieldError.
// Returned if a decoder emits the same field name twice.
type DuplicateFieldError = types.DuplicateFieldError
