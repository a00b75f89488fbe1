package notify

import "errors"

var ErrRender = errors.New("failed to render notification")
