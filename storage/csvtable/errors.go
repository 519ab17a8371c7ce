package csvtable

import (
	"errors"
	"fmt"
)

// StorageFault indicates the backing CSV file could not be read or
// written (permissions, disk full, corruption). Operations are never
// retried here; the caller decides.
type StorageFault struct {
	Op   string
	Path string
	Err  error
}

func newFault(op, path string, err error) *StorageFault {
	return &StorageFault{Op: op, Path: path, Err: err}
}

func (f *StorageFault) Error() string {
	return fmt.Sprintf("csvtable: %s %s: %v", f.Op, f.Path, f.Err)
}

func (f *StorageFault) Unwrap() error { return f.Err }

func IsStorageFault(err error) bool {
	var f *StorageFault
	return errors.As(err, &f)
}
