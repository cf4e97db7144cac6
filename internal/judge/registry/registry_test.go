package registry

import (
	"errors"
	"strings"
	"testing"

	"algojudge/internal/common"
)

func TestResolveKnownLanguages(t *testing.T) {
	reg := New()
	for _, name := range []string{"python", "javascript", "typescript", "ruby", "go", "c", "cpp", "java"} {
		desc, err := reg.Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", name, err)
		}
		if desc.Name != name {
			t.Fatalf("Resolve(%q) returned descriptor for %q", name, desc.Name)
		}
		if desc.FileName == "" || desc.Image == "" || desc.Command == nil {
			t.Fatalf("Resolve(%q) returned incomplete descriptor: %+v", name, desc)
		}
	}
}

func TestResolveUnsupportedLanguage(t *testing.T) {
	reg := New()
	_, err := reg.Resolve("cobol")
	if err == nil {
		t.Fatalf("expected error for unsupported language")
	}
	if !errors.Is(err, common.ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got: %v", err)
	}
}

func TestJavaFileNameMatchesPublicClass(t *testing.T) {
	reg := New()
	desc, err := reg.Resolve("java")
	if err != nil {
		t.Fatalf("Resolve(java) failed: %v", err)
	}
	if desc.FileName != "Main.java" {
		t.Fatalf("expected Main.java, got %q", desc.FileName)
	}
}

func TestInterpretedCommandPassesArgsAsVector(t *testing.T) {
	reg := New()
	desc, err := reg.Resolve("python")
	if err != nil {
		t.Fatalf("Resolve(python) failed: %v", err)
	}

	args := []string{`2 3"; rm -rf /`, "5"}
	argv := desc.Command("/work/abc", desc.FileName, args)

	if argv[0] != "docker" {
		t.Fatalf("expected docker argv, got %v", argv)
	}
	// The crafted argument must survive as a single vector element, never
	// spliced into a shell string.
	if argv[len(argv)-2] != args[0] || argv[len(argv)-1] != args[1] {
		t.Fatalf("args not appended verbatim: %v", argv)
	}
	for _, a := range argv {
		if a == "sh" || a == "-c" {
			t.Fatalf("interpreted command must not go through a shell: %v", argv)
		}
	}
}

func TestCompiledCommandCompilesAndRunsInOneInvocation(t *testing.T) {
	reg := New()
	desc, err := reg.Resolve("cpp")
	if err != nil {
		t.Fatalf("Resolve(cpp) failed: %v", err)
	}
	if !desc.Compiled {
		t.Fatalf("cpp should be marked compiled")
	}

	argv := desc.Command("/work/abc", desc.FileName, []string{"1 2", "3"})

	var script string
	for i, a := range argv {
		if a == "-c" && i+1 < len(argv) {
			script = argv[i+1]
		}
	}
	if script == "" {
		t.Fatalf("compiled command missing sh -c script: %v", argv)
	}
	if !strings.Contains(script, "&&") {
		t.Fatalf("compile and run must share one invocation: %q", script)
	}
	if !strings.Contains(script, `"$@"`) {
		t.Fatalf("script must forward positional parameters: %q", script)
	}
	if strings.Contains(script, "1 2") {
		t.Fatalf("test arguments leaked into the shell script: %q", script)
	}
	if argv[len(argv)-2] != "1 2" || argv[len(argv)-1] != "3" {
		t.Fatalf("args not appended after the script: %v", argv)
	}
}

func TestCommandMountsWorkspace(t *testing.T) {
	reg := New()
	for _, name := range []string{"python", "java"} {
		desc, _ := reg.Resolve(name)
		argv := desc.Command("/tmp/ws-1", desc.FileName, nil)
		found := false
		for _, a := range argv {
			if a == "/tmp/ws-1:/box" {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s command does not mount the workspace: %v", name, argv)
		}
	}
}

func TestListReturnsAllLanguagesInStableOrder(t *testing.T) {
	reg := New()
	first := reg.List()
	second := reg.List()
	if len(first) != 8 {
		t.Fatalf("expected 8 languages, got %d", len(first))
	}
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Fatalf("List order not stable: %v vs %v", first[i].Name, second[i].Name)
		}
	}
}
