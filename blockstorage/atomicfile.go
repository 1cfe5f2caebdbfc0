package blockstorage

import (
	"bytes"

	"github.com/natefinch/atomic"
)

// atomicWriteFile writes data to path via a temp-file-plus-rename replace,
// so a process crash mid-create never leaves a container with a torn
// first block where a caller might otherwise observe a partial file.
func atomicWriteFile(path string, data []byte) error {
	return atomic.WriteFile(path, bytes.NewReader(data))
}
