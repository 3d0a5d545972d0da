package cryptox

import "errors"

var ErrFailedToAppendCertToPool = errors.New("failed to append cert to pool")
