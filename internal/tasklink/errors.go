package tasklink

import "errors"

var ErrEmptyHost = errors.New("tracker host is empty")
