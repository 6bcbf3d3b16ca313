package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
)

const maxStdioLine = 4 << 20

// RunStdio serves newline-delimited JSON-RPC requests from in until EOF.
// Sessions are not required over stdio.
func RunStdio(ctx context.Context, srv *Server, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStdioLine)
	writer := bufio.NewWriter(out)
	defer writer.Flush()

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var req Request
		resp := Response{JSONRPC: "2.0"}
		if err := json.Unmarshal(line, &req); err != nil {
			resp.Error = &ResponseError{Code: -32700, Message: "parse error"}
		} else {
			resp.ID = req.ID
			result, err := srv.dispatch(ctx, req)
			if err != nil {
				code, message, data := dispatchError(err)
				resp.Error = &ResponseError{Code: code, Message: message, Data: data}
			} else {
				resp.Result = result
			}
		}
		data, _ := json.Marshal(resp)
		if _, err := writer.Write(append(data, '\n')); err != nil {
			return err
		}
		if err := writer.Flush(); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return fmt.Errorf("stdio scan error: %w", err)
	}
	return nil
}
