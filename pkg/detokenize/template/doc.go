/*
Package template expands ${var} and $var placeholders on top of detokenize.

# Overview

Each placeholder style is a pattern definition whose replacement looks the
variable up in a map. Brace placeholders are applied first, then dollar
placeholders; a value substituted for a brace placeholder is never expanded
again, even if it contains "$name".

# Basic Usage

	result := template.Expand("Hello ${name}", map[string]any{"name": "World"})
	// result: "Hello World"

	vars := map[string]any{"host": "api.example.com", "port": 8080}
	url := template.Expand("https://${host}:$port/api", vars)
	// url: "https://api.example.com:8080/api"

# Missing Variables

Missing variables are kept as-is by default. Configure with options:

	exp := template.NewExpander(template.WithMissingAction(template.MissingError))
	_, err := exp.Expand("Hello ${missing}", nil)
	// err: "undefined variable: missing"

# Composing With Other Definitions

Values returns the placeholder definitions as a detokenize.List so they can
be combined with other tokens:

	values := append(template.Values(vars), detokenize.Text("%%", "%"))
	out, err := detokenize.Detokenize(s, values)

# Thread Safety

Expander is safe for concurrent use after construction.
*/
package template
