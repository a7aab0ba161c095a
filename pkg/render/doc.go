// Package render turns template source into text through a pluggable engine.
//
// Two engines are registered:
//
//   - "jinja" uses gonja, a Go port of Jinja2, so templates written for
//     jinja2 keep working: {% for p in plugins %}{{ p }}{% if not loop.last %},
//     {% endif %}{% endfor %} or {{ plugins|join(", ") }}. Autoescaping is
//     disabled because the output is source code, not HTML.
//   - "go" uses text/template with the sprig function library, so the same
//     loop is written {{ range .plugins }}{{ . }}{{ end }}.
//
// Both engines normalise line endings to \n and drop a single trailing
// newline from the source unless Options.KeepTrailingNewline is set, which
// matches the defaults of a plain jinja2.Template.
//
// Undefined variables render as an empty string in the jinja engine and as
// "<no value>" in the go engine, which is how text/template prints a missing
// map key. Options.StrictUndefined makes both engines fail instead.
package render
