package mcpserver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matiasleandrokruk/unitai/internal/domain/conversion"
	"github.com/matiasleandrokruk/unitai/internal/domain/units"
)

type stubConverter struct {
	got conversion.Request
	out *conversion.Outcome
	err error
}

func (s *stubConverter) Convert(_ context.Context, req conversion.Request) (*conversion.Outcome, error) {
	s.got = req
	return s.out, s.err
}

// connect wires a client session to New(...) over in-memory transports.
func connect(t *testing.T, conv Converter) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := New(conv, units.Default(), "test").Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	t.Cleanup(func() { serverSession.Close() }) //nolint:errcheck

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() }) //nolint:errcheck
	return session
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("expected one content block, got %d", len(res.Content))
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("expected *mcp.TextContent, got %T", res.Content[0])
	}
	return tc.Text
}

func TestServer_ListsBothTools(t *testing.T) {
	t.Parallel()

	session := connect(t, &stubConverter{})
	res, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	names := map[string]bool{}
	for _, tool := range res.Tools {
		names[tool.Name] = true
	}
	if !names[ToolConvert] || !names[ToolListUnits] {
		t.Errorf("tools = %v", names)
	}
}

func TestConvertUnits_Success(t *testing.T) {
	t.Parallel()

	conv := &stubConverter{out: &conversion.Outcome{
		Prompt: "Convert 1 miles to kilometers.",
		Text:   "1 mile is 1.609 kilometers",
		Model:  "stub-1",
	}}
	session := connect(t, conv)

	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      ToolConvert,
		Arguments: map[string]any{"category": "Length", "from": "miles", "to": "kilometers", "value": 1},
	})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", textOf(t, res))
	}
	if got := textOf(t, res); got != "1 mile is 1.609 kilometers" {
		t.Errorf("text = %q", got)
	}
	if conv.got.Source != conversion.SourceMCP || conv.got.From != "miles" || conv.got.Value != 1 {
		t.Errorf("request = %+v", conv.got)
	}
}

func TestConvertUnits_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"validation", &conversion.ValidationError{Err: conversion.ErrMissingUnits, Message: "Please select both units!"}, "Please select both units!"},
		{"generation", errors.Join(conversion.ErrGenerationFailed, errors.New("503")), conversion.GenerationErrorMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			session := connect(t, &stubConverter{err: tc.err})

			res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
				Name:      ToolConvert,
				Arguments: map[string]any{"from": "a", "to": "b", "value": 1},
			})
			if err != nil {
				t.Fatalf("CallTool: %v", err)
			}
			if !res.IsError {
				t.Fatal("expected IsError")
			}
			if got := textOf(t, res); got != tc.want {
				t.Errorf("text = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestListUnits(t *testing.T) {
	t.Parallel()

	session := connect(t, &stubConverter{})
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: ToolListUnits, Arguments: map[string]any{}})
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	if res.IsError {
		t.Fatal("unexpected tool error")
	}
	if text := textOf(t, res); !strings.Contains(text, "Temperature") {
		t.Errorf("expected catalog JSON in text content, got %q", text)
	}
}
