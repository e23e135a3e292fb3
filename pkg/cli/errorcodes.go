package cli

import (
	"fmt"
	"net/http"

	"github.com/getmockd/wretchkit/pkg/cli/internal/output"
	"github.com/getmockd/wretchkit/pkg/mockserver"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// ErrorCodeInfo describes one /{code} route.
type ErrorCodeInfo struct {
	Code   int    `json:"code"`
	Status string `json:"status,omitempty"`
	Path   string `json:"path"`
}

var errorCodesCmd = &cobra.Command{
	Use:   "errorcodes",
	Short: "List the status codes the mock server answers on /{code}",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		codes := lo.Map(mockserver.ErrorCodes(), func(code int, _ int) ErrorCodeInfo {
			return ErrorCodeInfo{
				Code:   code,
				Status: http.StatusText(code),
				Path:   fmt.Sprintf("/%d", code),
			}
		})

		if jsonOutput {
			return output.JSON(out, codes)
		}
		tw := output.Table(out)
		fmt.Fprintln(tw, "CODE\tPATH\tSTATUS")
		for _, c := range codes {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", c.Code, c.Path, c.Status)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(errorCodesCmd)
}
