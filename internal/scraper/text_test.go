package scraper

import "testing"

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  Markets   rally\n after  report ", "Markets rally after report"},
		{"tags", "<p>First <b>bold</b> line.</p><p>Second line.</p>", "First bold line. Second line."},
		{"entities", "Tom &amp; Jerry &quot;return&quot;", `Tom & Jerry "return"`},
		{"script removed", "<div>Story<script>alert(1)</script></div>", "Story"},
		{"line breaks", "one<br>two<br/>three", "one two three"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFirstImage(t *testing.T) {
	in := `<p>Intro</p><img alt="x"><img src=" https://cdn.example.com/a.jpg "><img src="https://cdn.example.com/b.jpg">`
	if got := FirstImage(in); got != "https://cdn.example.com/a.jpg" {
		t.Errorf("unexpected image %q", got)
	}
	if got := FirstImage("no images here"); got != "" {
		t.Errorf("expected empty image, got %q", got)
	}
}
