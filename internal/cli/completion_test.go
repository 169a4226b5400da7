package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		shell string
		want  []string
	}{
		{"bash", []string{"complete -F _accai_completions accai", "--targets-file|--output|-o|--log-file)", `compgen -W "bash zsh fish"`}},
		{"zsh", []string{"#compdef accai", "'(-p --prompt)'{-p,--prompt}'[Prompt to submit]:text:'", "'--targets-file[YAML targets file]:file:_files'"}},
		{"fish", []string{"complete -c accai -f", "complete -c accai -s q -l quiet -d 'Print only result contents'", "-l log-level -d 'Log level' -xa 'trace debug info warn error disabled'"}},
	}
	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, "accai"); err != nil {
				t.Fatalf("GenerateCompletion: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("%s script should contain %q:\n%s", tt.shell, w, buf.String())
				}
			}
		})
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	t.Parallel()
	if err := GenerateCompletion(&bytes.Buffer{}, "tcsh", "accai"); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

func TestFuncName(t *testing.T) {
	t.Parallel()
	if got := funcName("./bin/acc-ai"); got != "__bin_acc_ai" {
		t.Errorf("funcName = %q", got)
	}
}
