package descriptions

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryToolHasDescription(t *testing.T) {
	tools := []string{
		ToolGenerateEmpty, ToolConvertFiles, ToolExtractPages, ToolMergeFiles, ToolSplitFile,
		ToolCompressFile, ToolNumberPages, ToolReorderPages, ToolInspectFile, ToolServerInfo,
	}

	for _, name := range tools {
		t.Run(name, func(t *testing.T) {
			desc := GetToolDescription(name)
			assert.NotEqual(t, "Tool description not available", desc)
			assert.Contains(t, desc, "**Best practices:**")
		})
	}
	assert.Len(t, ToolDescriptions, len(tools))
}

func TestGetToolDescription_Unknown(t *testing.T) {
	assert.Equal(t, "Tool description not available", GetToolDescription("pdf_read_file"))
}

func TestGetAllToolNames_Sorted(t *testing.T) {
	names := GetAllToolNames()
	assert.Len(t, names, len(ToolDescriptions))
	assert.True(t, sort.StringsAreSorted(names))
}
