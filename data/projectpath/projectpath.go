package projectpath

import (
	"path/filepath"
	"runtime"
)

var (
	_, b, _, _ = runtime.Caller(0)

	// Root of this project (where .env and migrations/ live)
	Root = filepath.Join(filepath.Dir(b), "../..")
)
