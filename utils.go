package latex

// Fixed name sets of the dialect engine. The renderer used to
// hard-code these in command switches; keeping them as data lets the
// validator and the converter share one source of truth.

// fontSwitches are undelimited styling commands: without braces they
// affect everything up to the next barrier.
var fontSwitches = map[string]bool{
	"it": true, "bf": true, "tt": true, "sf": true, "sl": true,
	"sc": true, "rm": true,
	"tiny": true, "scriptsize": true, "small": true, "normalsize": true,
	"large": true, "Large": true, "LARGE": true, "huge": true, "Huge": true,
	"bfseries": true, "itshape": true, "ttfamily": true,
	"sffamily": true, "rmfamily": true,
}

// barrierCommands terminate the implicit scope of a font switch.
var barrierCommands = map[string]bool{
	"item": true, "section": true, "subsection": true,
	"subsubsection": true, "chapter": true, "part": true,
	"begin": true, "end": true, "par": true,
}

// verbatimEnvironments have raw bodies where all markup is ignored.
var verbatimEnvironments = map[string]bool{
	"lstlisting": true, "verbatim": true, "spverbatim": true, "minted": true,
}

var verbatimCommands = map[string]bool{
	"verb": true, "verb*": true,
}

// mathEnvironments are math-mode environments the dialect rejects in
// favor of $...$ and $$...$$.
var mathEnvironments = map[string]bool{
	"equation": true, "align": true, "gather": true, "split": true,
}

// macroDefinitions are stripped from the output when conversion runs
// with IgnoreMacros.
var macroDefinitions = map[string]bool{
	"newcommand": true, "renewcommand": true, "def": true,
}

func isVerbatimEnv(name string) bool {
	return verbatimEnvironments[name]
}

// isFontSwitch reports whether a node is an undelimited styling
// command; a switch that consumed explicit arguments is an ordinary
// command.
func isFontSwitch(n *Node) bool {
	return n.Kind == CommandNode && len(n.Args) == 0 && fontSwitches[n.Data]
}

// isBarrier reports whether a sibling terminates the implicit scope of
// a font switch. Environments count as \begin.
func isBarrier(n *Node) bool {
	if n.Kind == EnvironmentNode {
		return true
	}

	return n.Kind == CommandNode && barrierCommands[n.Data]
}
