package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	out := RenderHTML("## STATUS REPORT\n\n- **Biology** is the weakest link\n")

	assert.Contains(t, out, "<h2")
	assert.Contains(t, out, "STATUS REPORT")
	assert.Contains(t, out, "<li><strong>Biology</strong> is the weakest link</li>")
}

func TestRenderHTMLSanitizes(t *testing.T) {
	t.Parallel()

	out := RenderHTML("hello <script>alert('x')</script> [link](javascript:alert(1))")

	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "hello")
}

func TestRenderHTMLEmpty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, RenderHTML(""))
}
