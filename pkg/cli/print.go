package cli

import (
	"io"

	"github.com/getmockd/wretchkit/pkg/cli/internal/output"
)

// printResult outputs a single operation result.
//
// When --json is active, ONLY the JSON encoding of data is written to out.
// textFn is called only in text mode.
func printResult(out io.Writer, data any, textFn func()) {
	if jsonOutput {
		_ = output.JSON(out, data)
		return
	}
	textFn()
}
