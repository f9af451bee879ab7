package buysim

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Gateway invokes named operations on the remote sales agent. Failures never
// propagate as errors: a failed call yields an empty Result and a report on
// the gateway's error writer, so callers always receive a well-formed
// structure and treat missing fields as unknown.
type Gateway interface {
	Invoke(ctx context.Context, operation string, params any) Result
}

// toolCaller is the subset of mcp.ClientSession used by MCPGateway.
type toolCaller interface {
	CallTool(ctx context.Context, params *mcp.CallToolParams) (*mcp.CallToolResult, error)
}

// MCPGateway implements Gateway over an MCP client session.
type MCPGateway struct {
	calls  toolCaller
	errOut io.Writer
	tracer trace.Tracer
}

// NewMCPGateway wraps an MCP client session. Call errors are reported to
// errOut; pass nil to discard them.
func NewMCPGateway(session *mcp.ClientSession, errOut io.Writer) *MCPGateway {
	return newMCPGateway(session, errOut)
}

func newMCPGateway(calls toolCaller, errOut io.Writer) *MCPGateway {
	if errOut == nil {
		errOut = io.Discard
	}
	return &MCPGateway{
		calls:  calls,
		errOut: errOut,
		tracer: otel.Tracer("buysim/gateway"),
	}
}

// Invoke calls the named tool and decodes its structured content. Transport
// errors and tool-level errors both produce an empty Result.
func (g *MCPGateway) Invoke(ctx context.Context, operation string, params any) Result {
	ctx, span := g.tracer.Start(ctx, operation)
	defer span.End()

	response, err := g.calls.CallTool(ctx, &mcp.CallToolParams{
		Name:      operation,
		Arguments: params,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "call failed")
		fmt.Fprintf(g.errOut, "call %s: %v\n", operation, err)
		return Result{}
	}
	if response.IsError {
		message := toolErrorText(response)
		span.SetStatus(codes.Error, message)
		fmt.Fprintf(g.errOut, "call %s: %s\n", operation, message)
		return Result{}
	}

	result := Result{}
	if response.StructuredContent == nil {
		return result
	}
	data, err := json.Marshal(response.StructuredContent)
	if err != nil {
		fmt.Fprintf(g.errOut, "call %s: marshal structured content: %v\n", operation, err)
		return Result{}
	}
	if err := json.Unmarshal(data, &result); err != nil {
		fmt.Fprintf(g.errOut, "call %s: decode structured content: %v\n", operation, err)
		return Result{}
	}
	return result
}

// toolErrorText extracts a readable message from an error-flagged tool result.
func toolErrorText(result *mcp.CallToolResult) string {
	var parts []string
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok && text.Text != "" {
			parts = append(parts, text.Text)
		}
	}
	if len(parts) == 0 {
		return "tool reported an error"
	}
	return strings.Join(parts, "; ")
}
