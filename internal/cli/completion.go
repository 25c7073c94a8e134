package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/setpart/internal/config"
)

// completionFlag describes one flag for the completion scripts.
type completionFlag struct {
	short, long string
	help        string
	// values suggested for the flag's argument; nil for boolean flags.
	values []string
	// file marks flags completed with file names.
	file bool
	// arg marks flags that take a free-form argument.
	arg bool
}

func completionFlags(algorithms []string) []completionFlag {
	return []completionFlag{
		{short: "h", long: "help", help: "Show help message"},
		{short: "V", long: "version", help: "Show version information"},
		{long: "n", help: "Size of the ground set", arg: true},
		{long: "algo", help: "Generator to use", values: append(append([]string{}, algorithms...), config.AlgoAll)},
		{long: "limit", help: "Stop after this many partitions", arg: true},
		{long: "count", help: "Only print the Bell number"},
		{long: "format", help: "Line format", values: []string{config.FormatBraces, config.FormatJSON}},
		{long: "timeout", help: "Maximum execution time", values: []string{"10s", "1m", "5m", "30m"}},
		{long: "json", help: "Summaries in JSON"},
		{short: "q", long: "quiet", help: "Partitions only"},
		{short: "d", long: "details", help: "Print a run summary"},
		{short: "o", long: "output", help: "Output file", file: true},
		{long: "verify", help: "Check validity and uniqueness"},
		{long: "server", help: "Start HTTP server mode"},
		{long: "port", help: "Server port", values: []string{"8080", "3000", "9000"}},
		{long: "no-color", help: "Disable colored output"},
		{long: "completion", help: "Print a completion script", values: config.CompletionShells},
	}
}

// GenerateCompletion writes a completion script for shell.
//
// Parameters:
//   - out: Destination of the script.
//   - shell: "bash", "zsh" or "fish".
//   - algorithms: Generator names offered for -algo.
//
// Returns:
//   - error: An error for an unsupported shell or a failed write.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	flags := completionFlags(algorithms)
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(flags)
	case "zsh":
		script = zshCompletion(flags)
	case "fish":
		script = fishCompletion(flags)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(config.CompletionShells, ", "))
	}
	_, err := io.WriteString(out, script)
	return err
}

func bashCompletion(flags []completionFlag) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flags {
		names := []string{"-" + f.long, "--" + f.long}
		opts = append(opts, "-"+f.long)
		if f.short != "" {
			names = append(names, "-"+f.short)
			opts = append(opts, "-"+f.short)
		}
		switch {
		case f.file:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n", strings.Join(names, "|"))
		case f.values != nil:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n            return 0\n            ;;\n", strings.Join(names, "|"), strings.Join(f.values, " "))
		}
	}

	var b strings.Builder
	b.WriteString("# Bash completion script for setpart\n# Add this to your ~/.bashrc or ~/.bash_completion\n\n")
	b.WriteString("_setpart_completions() {\n    local cur prev\n    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n\n")
	b.WriteString("    case \"${prev}\" in\n")
	b.WriteString(cases.String())
	b.WriteString("    esac\n\n")
	fmt.Fprintf(&b, "    if [[ \"${cur}\" == -* ]]; then\n        COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n    fi\n}\n\n", strings.Join(opts, " "))
	b.WriteString("complete -F _setpart_completions setpart\n")
	return b.String()
}

func zshCompletion(flags []completionFlag) string {
	var b strings.Builder
	b.WriteString("#compdef setpart\n\n# Zsh completion script for setpart\n# Place this file in your $fpath\n\n")
	b.WriteString("_setpart() {\n    _arguments -s \\\n")
	for i, f := range flags {
		entry := "'-" + f.long + "[" + f.help + "]"
		if f.short != "" {
			entry = "'(-" + f.short + " -" + f.long + ")'{-" + f.short + ",-" + f.long + "}'[" + f.help + "]"
		}
		switch {
		case f.file:
			entry += ":file:_files"
		case f.values != nil:
			entry += ":" + f.long + ":(" + strings.Join(f.values, " ") + ")"
		case f.arg:
			entry += ":" + f.long + ":"
		}
		entry += "'"
		if i < len(flags)-1 {
			entry += " \\"
		}
		b.WriteString("        " + entry + "\n")
	}
	b.WriteString("}\n\n_setpart \"$@\"\n")
	return b.String()
}

func fishCompletion(flags []completionFlag) string {
	var b strings.Builder
	b.WriteString("# Fish completion script for setpart\n# Save as ~/.config/fish/completions/setpart.fish\n\n")
	b.WriteString("complete -c setpart -f\n")
	for _, f := range flags {
		line := "complete -c setpart -o " + f.long
		if f.short != "" {
			line += " -o " + f.short
		}
		line += " -d '" + f.help + "'"
		switch {
		case f.file:
			line += " -rF"
		case f.values != nil:
			line += " -xa '" + strings.Join(f.values, " ") + "'"
		case f.arg:
			line += " -x"
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
