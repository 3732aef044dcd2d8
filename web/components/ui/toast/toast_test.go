package toast

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	assert.Equal(t, VariantError, ParseVariant("destructive"))
	assert.Equal(t, VariantWarning, ParseVariant(" Warning "))
	assert.Equal(t, VariantSuccess, ParseVariant(""))
}

func TestClassesMergeOverrides(t *testing.T) {
	cls := Classes(Props{Variant: VariantInfo, Position: PositionTopLeft, Class: "p-2"})
	fields := strings.Fields(cls)
	assert.Contains(t, fields, "p-2")
	assert.NotContains(t, fields, "p-4")
	assert.Contains(t, fields, "left-4")
	assert.Contains(t, fields, "bg-blue-50")
}

func TestToastRender(t *testing.T) {
	var b strings.Builder
	err := Toast(Props{
		ID:            "t1",
		Title:         "Saved",
		Description:   `<script>x</script>`,
		Variant:       VariantSuccess,
		Duration:      1500,
		ShowIndicator: true,
		Icon:          true,
	}).Render(context.Background(), &b)
	require.NoError(t, err)

	html := b.String()
	assert.Contains(t, html, `id="t1"`)
	assert.Contains(t, html, "Saved")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "toast-progress 1500ms")
	assert.NotContains(t, html, "data-toast-dismiss")
}
