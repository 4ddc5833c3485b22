// Package mcpserver exposes the conversion operation as Model Context
// Protocol tools, served over stdio (unitai mcp) or streamable HTTP (/mcp).
package mcpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matiasleandrokruk/unitai/internal/domain/conversion"
	"github.com/matiasleandrokruk/unitai/internal/domain/units"
)

// ServerName is advertised in the MCP initialize handshake.
const ServerName = "unitai"

const (
	ToolConvert   = "convert_units"
	ToolListUnits = "list_units"
)

// Converter is satisfied by *conversion.Service.
type Converter interface {
	Convert(ctx context.Context, req conversion.Request) (*conversion.Outcome, error)
}

// ConvertInput is the argument object of convert_units.
type ConvertInput struct {
	Category string  `json:"category,omitempty" jsonschema:"optional unit category such as Length or Temperature"`
	From     string  `json:"from" jsonschema:"unit to convert from"`
	To       string  `json:"to" jsonschema:"unit to convert to"`
	Value    float64 `json:"value" jsonschema:"amount to convert"`
}

// ConvertOutput is the structured result of convert_units.
type ConvertOutput struct {
	Prompt string `json:"prompt"`
	Result string `json:"result"`
	Model  string `json:"model"`
}

// ListUnitsInput takes no arguments.
type ListUnitsInput struct{}

// ListUnitsOutput lists every category in tab order.
type ListUnitsOutput struct {
	Categories []units.Category `json:"categories"`
}

// New builds an MCP server with both tools registered.
func New(converter Converter, catalog *units.Catalog, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolConvert,
		Description: "Ask the configured language model to convert a value between two units. The answer is model text and is not verified.",
	}, convertTool(converter))

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolListUnits,
		Description: "List the unit categories and unit names the converter offers.",
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ ListUnitsInput) (*mcp.CallToolResult, ListUnitsOutput, error) {
		return nil, ListUnitsOutput{Categories: catalog.Categories()}, nil
	})

	return server
}

func convertTool(converter Converter) mcp.ToolHandlerFor[ConvertInput, ConvertOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ConvertInput) (*mcp.CallToolResult, ConvertOutput, error) {
		out, err := converter.Convert(ctx, conversion.Request{
			Category: in.Category,
			From:     in.From,
			To:       in.To,
			Value:    in.Value,
			Source:   conversion.SourceMCP,
		})
		if err != nil {
			return toolError(err), ConvertOutput{}, nil
		}
		return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: out.Text}},
			}, ConvertOutput{
				Prompt: out.Prompt,
				Result: out.Text,
				Model:  out.Model,
			}, nil
	}
}

// toolError reports failures in-band so the calling model can read them.
func toolError(err error) *mcp.CallToolResult {
	msg := conversion.GenerationErrorMessage
	var ve *conversion.ValidationError
	if errors.As(err, &ve) {
		msg = ve.Message
	}
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}

// HTTPHandler serves server over the streamable HTTP transport.
func HTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
}

// ServeStdio runs server on stdin/stdout until ctx is done or the client disconnects.
func ServeStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}
