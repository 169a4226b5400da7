package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every generator reads flagRegistry, so a new flag only needs an entry there.
type FlagCompletion struct {
	Long      string   // long flag name without "--"
	Short     string   // short flag without "-"
	Help      string   // description text
	Values    []string // suggested values (nil = boolean or free-form)
	ValueName string   // label of the value; empty for boolean flags
	IsFile    bool     // true if the flag takes a file path
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "prompt", Short: "p", Help: "Prompt to submit", ValueName: "text"},
	{Long: "targets", Short: "t", Help: "Comma-separated model targets", ValueName: "list"},
	{Long: "targets-file", Help: "YAML targets file", IsFile: true, ValueName: "file"},
	{Long: "latency", Help: "Simulated per-target latency", Values: []string{"0s", "200ms", "800ms", "2s"}, ValueName: "duration"},
	{Long: "timeout", Help: "Maximum submission time", Values: []string{"5s", "10s", "30s", "1m"}, ValueName: "duration"},
	{Long: "seed", Help: "Seed for generated metrics", ValueName: "number"},
	{Long: "tui", Help: "Start the interactive dashboard"},
	{Long: "repl", Help: "Read prompts line by line"},
	{Long: "json", Help: "Print the final state as JSON"},
	{Long: "output", Short: "o", Help: "Report file path", IsFile: true, ValueName: "file"},
	{Long: "quiet", Short: "q", Help: "Print only result contents"},
	{Long: "verbose", Short: "v", Help: "Print full contents"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "theme", Help: "Color theme", Values: []string{"indigo", "dark", "light"}, ValueName: "name"},
	{Long: "log-level", Help: "Log level", Values: []string{"trace", "debug", "info", "warn", "error", "disabled"}, ValueName: "level"},
	{Long: "log-file", Help: "Log file path", IsFile: true, ValueName: "file"},
	{Long: "metrics-addr", Help: "Prometheus listen address", Values: []string{":9090"}, ValueName: "addr"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion writes the completion script of program for shell.
func GenerateCompletion(out io.Writer, shell, program string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(program)
	case "zsh":
		script = zshCompletion(program)
	case "fish":
		script = fishCompletion(program)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

// funcName turns a program name into a shell identifier.
func funcName(program string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, program)
}

func bashCompletion(program string) string {
	var opts []string
	var cases strings.Builder
	var filePatterns []string
	for _, f := range flagRegistry {
		opts = append(opts, flagNames(f)...)
		switch {
		case f.IsFile:
			filePatterns = append(filePatterns, flagNames(f)...)
		case len(f.Values) > 0:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				strings.Join(flagNames(f), "|"), strings.Join(f.Values, " "))
		}
	}
	if len(filePatterns) > 0 {
		fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n",
			strings.Join(filePatterns, "|"))
	}

	fn := funcName(program)
	return fmt.Sprintf(`# Bash completion script for %[1]s
# Add this to your ~/.bashrc or ~/.bash_completion

_%[2]s_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%[3]s"

    case "${prev}" in
%[4]s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _%[2]s_completions %[1]s
`, program, fn, strings.Join(opts, " "), cases.String())
}

func zshArgEntry(f FlagCompletion) string {
	suffix := ""
	switch {
	case f.IsFile:
		suffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		suffix = fmt.Sprintf(":%s:", f.ValueName)
	}
	if f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, suffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, suffix)
}

func zshCompletion(program string) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	fn := funcName(program)
	return fmt.Sprintf(`#compdef %[1]s

# Zsh completion script for %[1]s
# Place this file in a directory of $fpath

_%[2]s() {
    _arguments -s \
%[3]s
}

_%[2]s "$@"
`, program, fn, strings.Join(args, " \\\n"))
}

func fishCompletion(program string) string {
	lines := []string{
		"# Fish completion script for " + program,
		"# Add this to ~/.config/fish/completions/" + program + ".fish",
		"",
		"complete -c " + program + " -f",
	}
	for _, f := range flagRegistry {
		parts := []string{"complete -c " + program}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))
		switch {
		case f.IsFile:
			parts = append(parts, "-rF")
		case len(f.Values) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
		case f.ValueName != "":
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}
