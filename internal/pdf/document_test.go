package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdferrors "github.com/a3tai/mcp-pdf-toolkit/internal/pdf/errors"
)

func TestGenerator_Generate(t *testing.T) {
	gen := NewGenerator(10)

	for _, n := range []int{1, 3, 10} {
		data, err := gen.Generate(n)
		require.NoError(t, err)
		assert.Equal(t, n, pageCount(t, data))
		assert.Equal(t, expectedLabels(AllPages(n)...), pageLabels(t, data))
	}
}

func TestGenerator_Bounds(t *testing.T) {
	gen := NewGenerator(10)

	for _, n := range []int{0, -1, 11} {
		_, err := gen.Generate(n)
		require.Error(t, err, "n=%d", n)
		assert.Equal(t, pdferrors.KindValidation, pdferrors.KindOf(err))
	}
}

func TestOpenSource(t *testing.T) {
	src := openLabelled(t, "two.pdf", 2)
	assert.Equal(t, "two.pdf", src.Name())
	assert.Equal(t, 2, src.PageCount())
	assert.Positive(t, src.Size())

	w, h, err := src.PageSize(1)
	require.NoError(t, err)
	assert.InDelta(t, 595.28, w, 0.5)
	assert.InDelta(t, 841.89, h, 0.5)

	_, _, err = src.PageSize(3)
	assert.Equal(t, pdferrors.KindValidation, pdferrors.KindOf(err))
}

func TestOpenSource_Invalid(t *testing.T) {
	_, err := OpenSource("empty.pdf", nil)
	assert.Equal(t, pdferrors.KindValidation, pdferrors.KindOf(err))

	_, err = OpenSource("junk.pdf", []byte("this is not a pdf document"))
	require.Error(t, err)
	assert.Equal(t, pdferrors.KindCodec, pdferrors.KindOf(err))
	assert.False(t, pdferrors.IsUserError(err))
}

func TestSizeReducer_Reduce(t *testing.T) {
	src := openLabelled(t, "six.pdf", 6)

	out, err := NewSizeReducer().Reduce(src)
	require.NoError(t, err)
	assert.Equal(t, 6, pageCount(t, out))
	assert.Equal(t, expectedLabels(AllPages(6)...), pageLabels(t, out))
}

func TestInspector_Inspect(t *testing.T) {
	src := openLabelled(t, "three.pdf", 3)

	result, err := NewInspector().Inspect(src)
	require.NoError(t, err)
	assert.Equal(t, "three.pdf", result.Name)
	assert.Equal(t, 3, result.PageCount)
	require.Len(t, result.Pages, 3)

	for i, page := range result.Pages {
		assert.Equal(t, i+1, page.Number)
		assert.InDelta(t, 595.28, page.Width, 0.5)
		assert.Contains(t, page.Preview, PageNumberLabel(i))
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 5))
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "äö", truncateRunes("äöü", 2))
}
