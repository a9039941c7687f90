package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/covscore/covscore/internal/adapters/outbound/decoder"
	"github.com/covscore/covscore/internal/adapters/outbound/gitinfo"
	"github.com/covscore/covscore/internal/adapters/outbound/report"
	"github.com/covscore/covscore/internal/adapters/outbound/scanner"
	"github.com/covscore/covscore/internal/adapters/outbound/source"
	"github.com/covscore/covscore/internal/application"
	"github.com/covscore/covscore/internal/domain"
	"github.com/covscore/covscore/internal/domain/scoring"
)

// registerTools registers all covscore MCP tools on the given server.
func registerTools(s *server.MCPServer, root string) {
	// 1. covscore_analyze
	s.AddTool(
		mcplib.NewTool("covscore_analyze",
			mcplib.WithDescription("Analyze an Istanbul/NYC coverage report (summary or detailed format) and return its normalized metrics and score"),
			mcplib.WithString("report",
				mcplib.Description("Coverage report JSON text. Either report or path is required."),
			),
			mcplib.WithString("path",
				mcplib.Description("Path to a report file or a directory containing coverage-final.json or coverage-summary.json"),
			),
			mcplib.WithString("format",
				mcplib.Description("Output format: json or markdown (default: json)"),
			),
		),
		handleAnalyze(root),
	)

	// 2. covscore_evaluate
	s.AddTool(
		mcplib.NewTool("covscore_evaluate",
			mcplib.WithDescription("Score a coverage summary: overall percentage, star rating, rating label and per-metric breakdown"),
			mcplib.WithString("summary",
				mcplib.Required(),
				mcplib.Description(`Summary JSON: {"statements":{"total":N,"covered":N},"branches":{...},"functions":{...},"lines":{...}}`),
			),
		),
		handleEvaluate(),
	)
}

type analyzeArgs struct {
	Report any    `mapstructure:"report"`
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

type evaluateArgs struct {
	Summary any `mapstructure:"summary"`
}

func newAnalyzeService() *application.AnalyzeService {
	logger := slog.Default()
	return application.NewAnalyzeService(
		source.New(),
		decoder.New(logger),
		scanner.New(),
		gitinfo.New(),
		logger,
	)
}

func handleAnalyze(root string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		var args analyzeArgs
		if err := mapstructure.Decode(request.GetArguments(), &args); err != nil {
			return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		svc := newAnalyzeService()
		var analyses []*domain.Analysis

		switch {
		case args.Report != nil:
			data, err := rawJSON(args.Report)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			a, err := svc.Analyze("report", data)
			if err != nil {
				return errorResult(domain.Describe(err)), nil
			}
			analyses = append(analyses, a)

		case args.Path != "":
			if args.Path == source.Stdin {
				return errorResult("stdin is not available over MCP; pass the report text instead"), nil
			}
			path := args.Path
			if !filepath.IsAbs(path) {
				path = filepath.Join(root, path)
			}
			paths, err := svc.Expand([]string{path})
			if err != nil {
				return errorResult(err.Error()), nil
			}
			analyses, err = svc.AnalyzeAll(ctx, paths)
			if err != nil {
				return errorResult(domain.Describe(err)), nil
			}

		default:
			return errorResult("either report or path is required"), nil
		}

		switch args.Format {
		case "", string(domain.OutputJSON):
			if len(analyses) == 1 {
				return jsonResult(analyses[0])
			}
			return jsonResult(analyses)
		case string(domain.OutputMarkdown):
			return textResult(report.RenderMarkdown(analyses, domain.DefaultLowestFiles)), nil
		default:
			return errorResult(fmt.Sprintf("unknown format %q (valid: json, markdown)", args.Format)), nil
		}
	}
}

func handleEvaluate() server.ToolHandlerFunc {
	dec := decoder.New(slog.Default())
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		var args evaluateArgs
		if err := mapstructure.Decode(request.GetArguments(), &args); err != nil {
			return errorResult(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Summary == nil {
			return errorResult("summary is required"), nil
		}

		data, err := rawJSON(args.Summary)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		// Accept both the bare metrics object and a full {"total": ...} report.
		r, err := dec.Decode(data)
		if err == nil {
			if _, ok := r.(domain.SummaryReport); !ok {
				r, err = dec.Decode(wrapTotal(data))
			}
		}
		if err != nil {
			return errorResult(domain.Describe(err)), nil
		}

		sr, ok := r.(domain.SummaryReport)
		if !ok {
			return errorResult(domain.Describe(domain.ErrInvalidInput)), nil
		}
		return jsonResult(scoring.Evaluate(sr.Total))
	}
}

// rawJSON turns a tool argument into JSON bytes. Strings are taken as JSON
// text; any other value was already decoded by the client and is re-encoded.
func rawJSON(v any) ([]byte, error) {
	if s, ok := v.(string); ok {
		return []byte(s), nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding argument: %w", err)
	}
	return data, nil
}

func wrapTotal(data []byte) []byte {
	out := make([]byte, 0, len(data)+10)
	out = append(out, `{"total":`...)
	out = append(out, data...)
	return append(out, '}')
}

// jsonResult marshals v to indented JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
