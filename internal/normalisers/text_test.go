package normalisers

import (
	"strings"
	"testing"
)

func TestNormalise_StripsScriptAndStyle(t *testing.T) {
	n := New()

	in := `Before <script type="text/javascript">alert("x");
	var y = 1;</script> middle <style>.a { color: red; }</style> after`
	out := n.Normalise(in)

	if strings.Contains(out, "alert") {
		t.Errorf("script content survived: %q", out)
	}
	if strings.Contains(out, "color") {
		t.Errorf("style content survived: %q", out)
	}
	if !strings.Contains(out, "Before") || !strings.Contains(out, "after") {
		t.Errorf("surrounding text lost: %q", out)
	}
}

func TestNormalise_DecodesEntities(t *testing.T) {
	n := New()

	out := n.Normalise("fish&nbsp;&amp;&nbsp;chips &quot;fresh&quot;")
	if !strings.Contains(out, `fish & chips "fresh"`) {
		t.Errorf("entities not decoded: %q", out)
	}
}

func TestNormalise_CollapsesWhitespace(t *testing.T) {
	n := New()

	out := n.Normalise("too   many\t\tspaces\n\n\nhere")
	if strings.Contains(out, "  ") {
		t.Errorf("whitespace run survived: %q", out)
	}
}

func TestNormalise_RestoresParagraphBreaks(t *testing.T) {
	n := New()

	out := n.Normalise("First sentence. Second sentence. Third")
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Errorf("expected 3 lines, got %d: %q", len(lines), out)
	}
}

func TestNormalise_Empty(t *testing.T) {
	n := New()
	if out := n.Normalise(""); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
	if out := n.Normalise("   \n\t "); out != "" {
		t.Errorf("expected empty output for whitespace, got %q", out)
	}
}

func TestNormalise_Deterministic(t *testing.T) {
	n := New()
	in := "Some visa text. With &amp; entities <style>x</style> and   spaces."
	if n.Normalise(in) != n.Normalise(in) {
		t.Error("normalisation is not deterministic")
	}
}
