package pwdigest

import "github.com/pkg/errors"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// ErrInvalidArgument is matched, via errors.Is, by every error GetHash returns.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError reports a mandatory input that was absent.
type ArgumentError struct {
	Param string
}

func (e *ArgumentError) Error() string { return e.Param + " must not be null" }

func (e *ArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

func nullArgument(param string) error {
	return errors.WithStack(&ArgumentError{Param: param})
}
