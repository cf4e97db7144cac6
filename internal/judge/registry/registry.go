// Package registry holds the static per-language table describing how a
// submission is written to disk and executed inside its sandbox image. Pure
// data and lookup; no I/O.
package registry

import (
	"fmt"

	"algojudge/internal/common"
)

// CommandFunc builds the full argument vector that launches one sandboxed
// execution: the workspace is bind-mounted at /box and the harness arguments
// are appended as positional parameters, never interpolated into a shell
// string.
type CommandFunc func(workDir, fileName string, args []string) []string

type Descriptor struct {
	Name     string
	FileName string
	Image    string
	Compiled bool
	Command  CommandFunc
}

type Registry struct {
	languages map[string]Descriptor
	order     []string
}

const (
	memoryLimit = "512m"
	cpuLimit    = "1"
)

func dockerPrefix(workDir, image string) []string {
	return []string{
		"docker", "run", "--rm",
		"--network=none",
		"--memory=" + memoryLimit,
		"--cpus=" + cpuLimit,
		"-v", workDir + ":/box",
		image,
	}
}

// interpretedCommand invokes the interpreter directly on the source file with
// the arguments appended to the vector.
func interpretedCommand(image string, interpreter ...string) CommandFunc {
	return func(workDir, fileName string, args []string) []string {
		cmd := append(dockerPrefix(workDir, image), interpreter...)
		cmd = append(cmd, "/box/"+fileName)
		return append(cmd, args...)
	}
}

// compiledCommand compiles then immediately executes in a single shell
// invocation. The script ends in `"$@"` so the arguments still travel as
// positional parameters; compile failures are only distinguishable from
// runtime failures via captured stderr, which is all the contract requires.
func compiledCommand(image, script string) CommandFunc {
	return func(workDir, fileName string, args []string) []string {
		cmd := append(dockerPrefix(workDir, image), "sh", "-c", script, "sh")
		return append(cmd, args...)
	}
}

// New returns the fixed language table. Java insists on the file name matching
// the public class, hence Main.java; everything else uses run.<ext>.
func New() *Registry {
	languages := []Descriptor{
		{
			Name:     "python",
			FileName: "run.py",
			Image:    "python-runner",
			Command:  interpretedCommand("python-runner", "python3"),
		},
		{
			Name:     "javascript",
			FileName: "run.js",
			Image:    "node-runner",
			Command:  interpretedCommand("node-runner", "node"),
		},
		{
			Name:     "typescript",
			FileName: "run.ts",
			Image:    "ts-runner",
			Command:  interpretedCommand("ts-runner", "ts-node"),
		},
		{
			Name:     "ruby",
			FileName: "run.rb",
			Image:    "ruby-runner",
			Command:  interpretedCommand("ruby-runner", "ruby"),
		},
		{
			Name:     "go",
			FileName: "run.go",
			Image:    "go-runner",
			Command:  interpretedCommand("go-runner", "go", "run"),
		},
		{
			Name:     "c",
			FileName: "run.c",
			Image:    "gcc-runner",
			Compiled: true,
			Command:  compiledCommand("gcc-runner", `gcc /box/run.c -O2 -lm -o /tmp/a.out && /tmp/a.out "$@"`),
		},
		{
			Name:     "cpp",
			FileName: "run.cpp",
			Image:    "gcc-runner",
			Compiled: true,
			Command:  compiledCommand("gcc-runner", `g++ /box/run.cpp -O2 -std=gnu++17 -o /tmp/a.out && /tmp/a.out "$@"`),
		},
		{
			Name:     "java",
			FileName: "Main.java",
			Image:    "java-runner",
			Compiled: true,
			Command:  compiledCommand("java-runner", `javac -d /tmp /box/Main.java && java -cp /tmp Main "$@"`),
		},
	}

	r := &Registry{languages: make(map[string]Descriptor, len(languages))}
	for _, lang := range languages {
		r.languages[lang.Name] = lang
		r.order = append(r.order, lang.Name)
	}
	return r
}

func (r *Registry) Resolve(language string) (Descriptor, error) {
	desc, ok := r.languages[language]
	if !ok {
		return Descriptor{}, fmt.Errorf("language %q: %w", language, common.ErrUnsupportedLanguage)
	}
	return desc, nil
}

// List returns all descriptors in registration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.languages[name])
	}
	return out
}
