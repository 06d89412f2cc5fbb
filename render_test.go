package latex_test

import (
	"bytes"
	"strings"
	"testing"

	latex "github.com/rsalesc/rbx-latex"
	"pgregory.net/rapid"
)

func TestRenderRoundTrip(t *testing.T) {
	sources := []string{
		"Hello, world!",
		"Multi\nline\n\ntext with paragraphs\n",
		"\\textbf{bold} and \\textit{italic} and \\t{mono}",
		"\\includegraphics[scale=0.5]{img/logo.png}",
		"\\begin{center} Text \\end{center}",
		"\\begin{itemize}\n  \\item one;\n  \\item two.\n\\end{itemize}",
		"\\begin{tabular}{|l|c|}a & b \\\\ \\hline c & d\\end{tabular}",
		"$a_i^2 + b_i^2 \\le a_{i+1}^2$ and $$\\sum_{i=1}^n a_i$$",
		"\\( legacy \\) and \\[ display \\]",
		"price is \\$5 or \\$$x$",
		"% leading comment\ntext %trailing comment\nmore",
		"\\begin{verbatim}\n10 PRINT \"{ $ [\"\n\\end{verbatim}",
		"\\begin{lstlisting}[language=c]\nint main() { return 0; }\n\\end{lstlisting}",
		"The \\verb|\\ldots| command",
		"\\it Italic everywhere",
		"{\\bf grouped} {plain group}",
		"\\def\\answer{42} the answer is \\answer",
		"stray ] and [ brackets",
		"escapes: \\% \\& \\# \\_ \\{ \\}",
		"\\documentclass{article}\n\\usepackage{tikz}\n\\begin{document}\nHi\n\\end{document}\n",
		"\\begin{center}$x$\\begin{itemize}\\item a\\end{itemize}\\end{center}",
		"\\section*{Header} body",
	}

	for _, source := range sources {
		doc, err := latex.Parse(source)
		if err != nil {
			t.Errorf("Unable to parse %q: %v", source, err)
			continue
		}

		if got := doc.String(); got != source {
			t.Errorf("Round trip failed:\n want %q\n  got %q\n", source, got)
		}
	}
}

// Any well-formed combination of dialect constructs must survive a
// parse and serialize cycle byte for byte.
func TestRenderRoundTripProperty(t *testing.T) {
	atoms := []string{
		"plain words",
		"line\nbreak",
		"\\textbf{bold}",
		"\\emph{note}",
		"\\includegraphics[width=4cm]{logo.png}",
		"$x^2$",
		"$$x_i$$",
		"\\( y \\)",
		"\\[ z \\]",
		"\\it switch",
		"{group}",
		"{\\bf wrapped}",
		"% comment",
		"\\$3",
		"\\%",
		"\\item point",
		"\\begin{center}mid\\end{center}",
		"\\begin{itemize}\\item a\\end{itemize}",
		"\\begin{verbatim}raw { $\\end{verbatim}",
		"\\verb|x{|",
	}

	rapid.Check(t, func(t *rapid.T) {
		parts := rapid.SliceOfN(rapid.SampledFrom(atoms), 1, 12).Draw(t, "parts")
		source := strings.Join(parts, " ")

		doc, err := latex.Parse(source)
		if err != nil {
			t.Fatalf("unable to parse %q: %v", source, err)
		}

		if got := doc.String(); got != source {
			t.Fatalf("round trip failed:\n want %q\n  got %q", source, got)
		}
	})
}

func TestRenderSubtree(t *testing.T) {
	doc, err := latex.Parse("pre \\textbf{bold} post")
	if err != nil {
		t.Fatalf("Unable to parse: %v", err)
	}

	var buffer bytes.Buffer
	if err := latex.Render(&buffer, doc.Children[1]); err != nil {
		t.Fatalf("Unable to render: %v", err)
	}

	if got := buffer.String(); got != "\\textbf{bold}" {
		t.Errorf("Wrong subtree serialization: want %q, got %q", "\\textbf{bold}", got)
	}
}

func TestString(t *testing.T) {
	doc, err := latex.Parse("\\textbf{bold \\textit{nested}} tail")
	if err != nil {
		t.Fatalf("Unable to parse: %v", err)
	}

	if got := latex.String(doc.Children[0]); got != "bold nested" {
		t.Errorf("Wrong plain text: want %q, got %q", "bold nested", got)
	}
}
