package htmlesc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"", ""},
		{"<script>", "&lt;script&gt;"},
		{`a & "b" 'c'`, "a &amp; &quot;b&quot; &#39;c&#39;"},
		{"line\nbreak", "line\nbreak"},
		{"日本語 <b>", "日本語 &lt;b&gt;"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Text(tt.in), tt.in)
	}
}

func TestAttr(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"btn primary", "btn primary"},
		{`x" onclick="y`, "x&quot; onclick=&quot;y"},
		{"a\nb\tc\rd", "a&#10;b&#9;c&#13;d"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Attr(tt.in), tt.in)
	}
}
