package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/getmockd/wretchkit/pkg/mockserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodesCmd_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "errorcodes", "--json")
	require.NoError(t, err)

	var codes []ErrorCodeInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &codes))
	require.Len(t, codes, len(mockserver.ErrorCodes()))

	assert.Equal(t, ErrorCodeInfo{Code: 444, Path: "/444"}, codes[0])
	assert.Equal(t, ErrorCodeInfo{Code: 418, Status: "I'm a teapot", Path: "/418"}, codes[indexOf(codes, 418)])
}

func TestErrorCodesCmd_Table(t *testing.T) {
	stdout, _, err := executeCommand(t, "errorcodes")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, len(mockserver.ErrorCodes())+1)
	assert.Equal(t, []string{"CODE", "PATH", "STATUS"}, strings.Fields(lines[0]))
	assert.Contains(t, stdout, "404   /404  Not Found")
}

func indexOf(codes []ErrorCodeInfo, code int) int {
	for i, c := range codes {
		if c.Code == code {
			return i
		}
	}
	return -1
}
