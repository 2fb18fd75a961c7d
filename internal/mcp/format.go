package mcp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/a3tai/mcp-pdf-toolkit/internal/delivery"
	"github.com/a3tai/mcp-pdf-toolkit/internal/pdf"
)

// stringArgument returns an optional string argument, or "" when absent
func stringArgument(request mcp.CallToolRequest, name string) string {
	v, ok := request.GetArguments()[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// intArgument returns a required whole-number argument. Clients send JSON
// numbers, but numeric strings are accepted as well.
func intArgument(request mcp.CallToolRequest, name string) (int, error) {
	v, ok := request.GetArguments()[name]
	if !ok || v == nil {
		return 0, fmt.Errorf("required argument %q not found", name)
	}

	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("argument %q must be a whole number, got %v", name, n)
		}
		return int(n), nil
	case int:
		return n, nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("argument %q must be a number, got %q", name, n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("argument %q must be a number", name)
	}
}

// Formatting methods
func formatBundle(bundle *pdf.OutputBundle, locations []delivery.Location) string {
	var b strings.Builder

	if len(locations) > 0 {
		fmt.Fprintf(&b, "✅ %s completed: %d file(s), %d page(s) written\n\n",
			bundle.Operation, len(locations), bundle.TotalPages())
		for i, loc := range locations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, loc.Name)
			fmt.Fprintf(&b, "   Location: %s\n", loc.URI)
			fmt.Fprintf(&b, "   Pages: %d\n", loc.Pages)
			fmt.Fprintf(&b, "   Size: %d bytes\n", loc.Size)
		}
	} else {
		fmt.Fprintf(&b, "❌ %s produced no output\n", bundle.Operation)
	}

	if len(bundle.Failures) > 0 {
		fmt.Fprintf(&b, "\n⚠️  %d file(s) could not be converted:\n", len(bundle.Failures))
		for _, f := range bundle.Failures {
			fmt.Fprintf(&b, "   • %s: %v\n", f.Name, f.Err)
		}
	}

	return b.String()
}

func formatInspectResult(result *pdf.InspectResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PDF Inspection: %s\n", result.Name)
	fmt.Fprintf(&b, "Size: %d bytes\n", result.Size)
	fmt.Fprintf(&b, "Pages: %d\n", result.PageCount)

	for _, page := range result.Pages {
		fmt.Fprintf(&b, "\nPage %d: %.0f x %.0f pt\n", page.Number, page.Width, page.Height)
		if page.Preview != "" {
			fmt.Fprintf(&b, "  Preview: %s\n", strings.Join(strings.Fields(page.Preview), " "))
		} else {
			b.WriteString("  Preview: (no extractable text)\n")
		}
	}
	return b.String()
}

func formatServerInfoResult(result *pdf.ServerInfoResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📋 %s v%s - Server Information\n", result.ServerName, result.Version)
	fmt.Fprintf(&b, "📁 Input Directory: %s\n", result.InputDirectory)
	fmt.Fprintf(&b, "📤 Output Location: %s\n", result.OutputLocation)
	fmt.Fprintf(&b, "📏 Max File Size: %d MB\n", result.MaxFileSize/(1024*1024))
	fmt.Fprintf(&b, "📄 Max Generated Pages: %d\n\n", result.MaxGeneratedPages)

	if len(result.InputFiles) > 0 {
		fmt.Fprintf(&b, "📂 Input Files (%d found):\n", len(result.InputFiles))
		for i, file := range result.InputFiles {
			if i >= 20 {
				fmt.Fprintf(&b, "   ... and %d more files\n", len(result.InputFiles)-20)
				break
			}
			fmt.Fprintf(&b, "   %d. %s (%d bytes)\n", i+1, file.Path, file.Size)
		}
		if result.InputsTruncated {
			b.WriteString("   (listing truncated)\n")
		}
		b.WriteString("\n")
	} else {
		b.WriteString("📂 Input Files: none found in input directory\n\n")
	}

	b.WriteString("🛠️  Available Tools:\n")
	for _, tool := range result.AvailableTools {
		fmt.Fprintf(&b, "\n• %s\n", tool.Name)
		fmt.Fprintf(&b, "  Usage: %s\n", tool.Usage)
		fmt.Fprintf(&b, "  Parameters: %s\n", tool.Parameters)
	}

	if len(result.SupportedFormats) > 0 {
		fmt.Fprintf(&b, "\n🗂️  Accepted Input Formats: %s\n", strings.Join(result.SupportedFormats, ", "))
	}

	b.WriteString("\n" + result.UsageGuidance)
	return b.String()
}
