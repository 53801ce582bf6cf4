package repl

import (
	"errors"

	"github.com/ardnew/calc/lang"
)

// Sentinel errors.
var (
	ErrOutOfBounds = errors.New("index out of range")
	ErrHistory     = lang.NewError("history file")
	ErrEditor      = lang.NewError("run editor")
)
