package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/plugingen/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{GoEngineName, JinjaEngineName}, Names())
}

func TestNew_UnknownEngine(t *testing.T) {
	engine, err := New("mako", Options{})

	assert.Nil(t, engine)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownEngine))
	assert.Contains(t, err.Error(), "go, jinja")
}

func TestPrepareSource(t *testing.T) {
	tests := []struct {
		name   string
		source string
		opts   Options
		want   string
	}{
		{"strips_one_trailing_newline", "a\n\n", Options{}, "a\n"},
		{"keeps_trailing_newline", "a\n", Options{KeepTrailingNewline: true}, "a\n"},
		{"normalises_crlf", "a\r\nb\r\n", Options{}, "a\nb"},
		{"normalises_cr", "a\rb", Options{}, "a\nb"},
		{"no_newline", "a", Options{}, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, prepareSource(tt.source, tt.opts))
		})
	}
}

func TestJinjaEngine_Render(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		plugins []string
		opts    Options
		want    string
	}{
		{
			name:    "loop_over_plugins",
			source:  "Plugins: {% for p in plugins %}{{ p }},{% endfor %}",
			plugins: []string{"alpha", "beta"},
			want:    "Plugins: alpha,beta,",
		},
		{
			name:    "no_plugins_reference",
			source:  "static text\nsecond line",
			plugins: []string{},
			want:    "static text\nsecond line",
		},
		{
			name:    "empty_plugin_list",
			source:  "[{% for p in plugins %}{{ p }}{% endfor %}]",
			plugins: []string{},
			want:    "[]",
		},
		{
			name:    "order_preserved",
			source:  "{% for p in plugins %}{{ loop.index }}={{ p }};{% endfor %}",
			plugins: []string{"gl3", "vulkan", "gles2"},
			want:    "1=gl3;2=vulkan;3=gles2;",
		},
		{
			name:    "separator_until_last",
			source:  `{% for p in plugins %}{{ p }}{% if not loop.last %}, {% endif %}{% endfor %}`,
			plugins: []string{"a", "b", "c"},
			want:    "a, b, c",
		},
		{
			name:    "join_filter_call_syntax",
			source:  `{{ plugins|join(", ") }}`,
			plugins: []string{"a", "b", "c"},
			want:    "a, b, c",
		},
		{
			name:    "loop_first_and_length",
			source:  "{% for p in plugins %}{% if loop.first %}{{ loop.length }}:{% endif %}{{ p }}{% endfor %}",
			plugins: []string{"x", "y"},
			want:    "2:xy",
		},
		{
			name:    "undefined_renders_empty",
			source:  "[{{ missing }}]",
			plugins: []string{},
			want:    "[]",
		},
		{
			name:    "conditional",
			source:  "{% if plugins %}has plugins{% else %}none{% endif %}",
			plugins: []string{},
			want:    "none",
		},
		{
			name:    "no_html_escaping",
			source:  "{% for p in plugins %}{{ p }}{% endfor %}",
			plugins: []string{"<gl&3>"},
			want:    "<gl&3>",
		},
		{
			name:    "trailing_newline_dropped",
			source:  "{{ plugins|length }}\n",
			plugins: []string{"a", "b"},
			want:    "2",
		},
		{
			name:    "trailing_newline_kept",
			source:  "{{ plugins|length }}\n",
			plugins: []string{"a"},
			opts:    Options{KeepTrailingNewline: true},
			want:    "1\n",
		},
		{
			name:    "trim_blocks",
			source:  "{% for p in plugins %}\n{{ p }}\n{% endfor %}\n",
			plugins: []string{"a", "b"},
			opts:    Options{TrimBlocks: true},
			want:    "a\nb\n",
		},
		{
			name:    "trim_blocks_leaves_variable_tags",
			source:  "{{ plugins|length }}\n{% if plugins %}\nyes\n{% endif %}\n",
			plugins: []string{"a"},
			opts:    Options{TrimBlocks: true},
			want:    "1\nyes\n",
		},
		{
			name:    "lstrip_blocks_at_line_start",
			source:  "  {% for p in plugins %}\n{{ p }}\n\t{% endfor %}\n",
			plugins: []string{"a", "b"},
			opts:    Options{LStripBlocks: true, TrimBlocks: true},
			want:    "a\nb\n",
		},
		{
			name:    "lstrip_blocks_keeps_mid_line_whitespace",
			source:  "{% for p in plugins %}{{ p }} {% endfor %}|",
			plugins: []string{"a", "b"},
			opts:    Options{LStripBlocks: true},
			want:    "a b |",
		},
		{
			name:    "lstrip_blocks_strips_comment_lines",
			source:  "    {# note #}x",
			plugins: []string{},
			opts:    Options{LStripBlocks: true},
			want:    "x",
		},
		{
			name:    "whitespace_without_lstrip",
			source:  "  {% for p in plugins %}{{ p }}{% endfor %}",
			plugins: []string{"a"},
			want:    "  a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := New(JinjaEngineName, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, JinjaEngineName, engine.Name())

			out, err := engine.Render("plugins.tmpl", tt.source, Vars{"plugins": tt.plugins})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestJinjaEngine_SyntaxError(t *testing.T) {
	engine, err := New(JinjaEngineName, Options{})
	require.NoError(t, err)

	out, err := engine.Render("broken.tmpl", "{% for p in plugins %}{{ p }}", Vars{"plugins": []string{"a"}})

	assert.Empty(t, out)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateSyntax))
	assert.Equal(t, JinjaEngineName, errors.GetErrorDetails(err)["engine"])
}

func TestJinjaEngine_StrictUndefined(t *testing.T) {
	engine, err := New(JinjaEngineName, Options{StrictUndefined: true})
	require.NoError(t, err)

	out, err := engine.Render("strict.tmpl", "{{ missing }}", Vars{"plugins": []string{}})

	assert.Empty(t, out)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRender))
}

func TestApplyBlockWhitespace(t *testing.T) {
	tests := []struct {
		name   string
		source string
		opts   Options
		want   string
	}{
		{"disabled", "  {% if x %}\n", Options{}, "  {% if x %}\n"},
		{"lstrip_only", "  {% if x %}\n", Options{LStripBlocks: true}, "{% if x %}\n"},
		{"trim_only", "  {% if x %}\n", Options{TrimBlocks: true}, "  {% if x %}"},
		{"lstrip_ignores_variables", "  {{ x }}", Options{LStripBlocks: true}, "  {{ x }}"},
		{"lstrip_ignores_text_before_tag", "a {% if x %}", Options{LStripBlocks: true}, "a {% if x %}"},
		{"trim_ignores_variables", "{{ x }}\n", Options{TrimBlocks: true}, "{{ x }}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, applyBlockWhitespace(tt.source, tt.opts))
		})
	}
}

func TestJinjaEngine_IncludeRelativeToTemplate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "item.tmpl"), []byte("<{{ p }}>"), 0644))
	name := filepath.Join(dir, "main.tmpl")

	engine, err := New(JinjaEngineName, Options{})
	require.NoError(t, err)

	out, err := engine.Render(name, `{% for p in plugins %}{% include "item.tmpl" %}{% endfor %}`,
		Vars{"plugins": []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "<a><b>", out)
}

func TestGoEngine_Render(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		plugins []string
		want    string
	}{
		{
			name:    "range_over_plugins",
			source:  "Plugins: {{ range .plugins }}{{ . }},{{ end }}",
			plugins: []string{"alpha", "beta"},
			want:    "Plugins: alpha,beta,",
		},
		{
			name:    "sprig_functions",
			source:  `{{ .plugins | join "|" | upper }}`,
			plugins: []string{"gl3", "vulkan"},
			want:    "GL3|VULKAN",
		},
		{
			name:    "missing_key_prints_no_value",
			source:  "[{{ .missing }}]",
			plugins: []string{},
			want:    "[<no value>]",
		},
		{
			name:    "empty_plugin_list",
			source:  "{{ if .plugins }}some{{ else }}none{{ end }}\n",
			plugins: []string{},
			want:    "none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := New(GoEngineName, Options{})
			require.NoError(t, err)
			assert.Equal(t, GoEngineName, engine.Name())

			out, err := engine.Render("plugins.tmpl", tt.source, Vars{"plugins": tt.plugins})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestGoEngine_Errors(t *testing.T) {
	engine, err := New(GoEngineName, Options{})
	require.NoError(t, err)

	t.Run("syntax", func(t *testing.T) {
		_, err := engine.Render("broken.tmpl", "{{ range .plugins }}", Vars{"plugins": []string{}})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateSyntax))
	})

	t.Run("strict_undefined", func(t *testing.T) {
		strict, err := New(GoEngineName, Options{StrictUndefined: true})
		require.NoError(t, err)

		_, err = strict.Render("strict.tmpl", "{{ .missing }}", Vars{"plugins": []string{}})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRender))
	})

	t.Run("execution", func(t *testing.T) {
		_, err := engine.Render("fail.tmpl", `{{ fail "no plugins" }}`, Vars{"plugins": []string{}})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateRender))
	})
}

func TestRender_Deterministic(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			engine, err := New(name, Options{})
			require.NoError(t, err)

			source := "static header"
			vars := Vars{"plugins": []string{"a", "b", "c"}}

			first, err := engine.Render("t.tmpl", source, vars)
			require.NoError(t, err)
			second, err := engine.Render("t.tmpl", source, vars)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}
