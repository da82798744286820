package common

import "github.com/cockroachdb/errors"

var (
	ErrDuplicate          = errors.New("duplicate message")
	ErrUnsupportedChannel = errors.New("unsupported channel")
	ErrEmptyMessage       = errors.New("empty message")
)
