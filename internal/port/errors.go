package port

import "errors"

// ErrAlreadyExists indicates the Data Store rejected an insert on a
// uniqueness constraint.
var ErrAlreadyExists = errors.New("record already exists")
