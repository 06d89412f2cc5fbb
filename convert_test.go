package latex_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	latex "github.com/rsalesc/rbx-latex"
)

func convert(t *testing.T, source string, opts latex.ConvertOptions) string {
	t.Helper()

	doc, err := latex.Parse(source)
	require.NoError(t, err, "source must parse")

	got := latex.Convert(doc, opts)
	require.Equal(t, source, doc.String(), "convert must not mutate the document")

	return got
}

func TestConvert(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		output string
	}{
		{
			name:   "legacy inline math",
			input:  "Inline \\( x \\)",
			output: "Inline $ x $",
		},
		{
			name:   "legacy display math",
			input:  "Display \\[ y \\]",
			output: "Display $$ y $$",
		},
		{
			name:   "dollar math passes through",
			input:  "$a$ and $$b$$",
			output: "$a$ and $$b$$",
		},
		{
			name:   "legacy math nested in legacy math collides",
			input:  "\\( a + \\[ b \\]\\)",
			output: "$ a + $$ b $$$",
		},
		{
			name:   "font switch gets a scope",
			input:  "\\it Italic",
			output: "{\\it Italic}",
		},
		{
			name:   "font switch scope stops at the next item",
			input:  "\\it Italic \\item Next",
			output: "{\\it Italic }\\item Next",
		},
		{
			name:   "font switch scope stops at an environment",
			input:  "\\bf Bold \\begin{center}x\\end{center}",
			output: "{\\bf Bold }\\begin{center}x\\end{center}",
		},
		{
			name:   "font switch scope stops at a section",
			input:  "\\tt code \\section{next} after",
			output: "{\\tt code }\\section{next} after",
		},
		{
			name:   "font switch with arguments is left alone",
			input:  "\\it{x} y",
			output: "\\it{x} y",
		},
		{
			name:   "font switch already in a group",
			input:  "{\\bf x} y",
			output: "{{\\bf x}} y",
		},
		{
			name:   "environment without restricted constructs is untouched",
			input:  "\\begin{center} Text \\end{center}",
			output: "\\begin{center} Text \\end{center}",
		},
		{
			name:   "legacy math inside an environment",
			input:  "\\begin{center}\\( x \\)\\end{center}",
			output: "\\begin{center}$ x $\\end{center}",
		},
		{
			name:   "verbatim environment is preserved byte for byte",
			input:  "\\begin{verbatim}\\( raw { $\\end{verbatim} \\( x \\)",
			output: "\\begin{verbatim}\\( raw { $\\end{verbatim} $ x $",
		},
		{
			name:   "verb payload is preserved byte for byte",
			input:  "\\verb|\\( x \\)| and \\( y \\)",
			output: "\\verb|\\( x \\)| and $ y $",
		},
		{
			name:   "command arguments keep their delimiters",
			input:  "\\includegraphics[scale=2]{a.png}",
			output: "\\includegraphics[scale=2]{a.png}",
		},
		{
			name:   "item keeps its trailing content",
			input:  "\\begin{itemize}\\item \\( x \\)\\end{itemize}",
			output: "\\begin{itemize}\\item $ x $\\end{itemize}",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := convert(t, tc.input, latex.ConvertOptions{})
			require.Equal(t, tc.output, got)
		})
	}
}

func TestConvertMacroStripping(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		output string
	}{
		{
			name:   "newcommand is omitted",
			input:  "keep \\newcommand{\\foo}{bar} rest",
			output: "keep  rest",
		},
		{
			name:   "renewcommand is omitted",
			input:  "\\renewcommand{\\foo}{baz} x",
			output: " x",
		},
		{
			name:   "def takes its macro with it",
			input:  "\\def\\foo{bar} x",
			output: " x",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := convert(t, tc.input, latex.ConvertOptions{IgnoreMacros: true})
			require.Equal(t, tc.output, got)
		})
	}
}

func TestConvertKeepsMacrosByDefault(t *testing.T) {
	source := "keep \\newcommand{\\foo}{bar} rest"
	require.Equal(t, source, convert(t, source, latex.ConvertOptions{}))
}

// Converted output contains no legacy delimiters and no undelimited
// font switches, so documents whose only restricted constructs are
// those must validate cleanly after a conversion cycle.
func TestConvertOutputValidatesProperty(t *testing.T) {
	atoms := []string{
		"plain words",
		"line\nbreak",
		"\\textbf{bold}",
		"\\emph{note}",
		"$x^2$",
		"$$x_i$$",
		"\\( y \\)",
		"\\[ z \\]",
		"\\it switch",
		"\\bf loud",
		"\\small quiet",
		"{group}",
		"\\item point",
		"\\begin{center}mid\\end{center}",
		"\\begin{itemize}\\item a\\end{itemize}",
	}

	rapid.Check(t, func(t *rapid.T) {
		parts := rapid.SliceOfN(rapid.SampledFrom(atoms), 1, 10).Draw(t, "parts")
		source := strings.Join(parts, " ")

		doc, err := latex.Parse(source)
		if err != nil {
			t.Fatalf("unable to parse %q: %v", source, err)
		}

		converted := latex.Convert(doc, latex.ConvertOptions{})

		out, err := latex.Parse(converted)
		if err != nil {
			t.Fatalf("unable to re-parse %q: %v", converted, err)
		}

		if violations := latex.Validate(out, latex.PolygonDialect()); len(violations) != 0 {
			t.Fatalf("converted %q to %q, still invalid: %+v", source, converted, violations)
		}
	})
}
