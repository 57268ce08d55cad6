package bridge

import (
	"github.com/zjrosen/vimbridge/internal/engine"
)

// fakeEngine is a scripted engine.Engine. Tests set its state directly and
// inspect the calls the session made.
type fakeEngine struct {
	lines      []string
	cursor     engine.Pos
	mode       engine.Mode
	anchor     engine.Pos
	visualType engine.VisualType
	cmdline    string
	cmdActive  bool

	keys     []string
	inputs   []string
	commands []string
}

func newFakeEngine(lines ...string) *fakeEngine {
	if len(lines) == 0 {
		lines = []string{""}
	}
	return &fakeEngine{
		lines:  lines,
		cursor: engine.Pos{Line: 1},
		mode:   engine.ModeNormal,
	}
}

func (f *fakeEngine) Init() error { return nil }
func (f *fakeEngine) NewBuffer() error { return nil }
func (f *fakeEngine) LineCount() int { return len(f.lines) }

func (f *fakeEngine) Line(lnum int) string {
	return f.lines[lnum-1]
}

func (f *fakeEngine) Cursor() engine.Pos { return f.cursor }
func (f *fakeEngine) SetCursor(pos engine.Pos) { f.cursor = pos }
func (f *fakeEngine) Mode() engine.Mode { return f.mode }
func (f *fakeEngine) VisualType() engine.VisualType { return f.visualType }

func (f *fakeEngine) VisualRange() (engine.Pos, engine.Pos) {
	return f.anchor, f.cursor
}

func (f *fakeEngine) CommandLine() (string, bool) {
	return f.cmdline, f.cmdActive
}

func (f *fakeEngine) Key(name string) { f.keys = append(f.keys, name) }
func (f *fakeEngine) Input(text string) { f.inputs = append(f.inputs, text) }
func (f *fakeEngine) Execute(cmd string) { f.commands = append(f.commands, cmd) }

// visual puts the fake into visual mode with the given anchor and cursor.
func (f *fakeEngine) visual(t engine.VisualType, anchor, cursor engine.Pos) {
	f.mode = engine.ModeVisual
	f.visualType = t
	f.anchor = anchor
	f.cursor = cursor
}

// launch is one recorded hook launch.
type launch struct {
	path string
	env  map[string]string
}

// recordingLauncher records launches instead of starting processes.
type recordingLauncher struct {
	launches []launch
}

func (r *recordingLauncher) Launch(path string, env map[string]string) {
	r.launches = append(r.launches, launch{path: path, env: env})
}

func pos(line, col int) engine.Pos {
	return engine.Pos{Line: line, Col: col}
}
