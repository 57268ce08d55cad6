package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/vimbridge/internal/bridge"
	"github.com/zjrosen/vimbridge/internal/keys"
	"github.com/zjrosen/vimbridge/internal/log"
)

var replayTrace bool

var replayCmd = &cobra.Command{
	Use:   "replay [FILE|-]",
	Short: "Feed key notation through a session and print the result",
	Long: `Replay reads vim key notation, one line of keys at a time, types it into a
fresh session, and prints the resulting state as YAML.

Lines are read from FILE, or stdin when FILE is "-" or omitted. Blank lines
and lines starting with '"' are skipped. Keys in angle brackets follow vim
notation: <Esc>, <C-[>, <CR>, <BS>, <Tab>, <lt>, <C-v> and so on.

Examples:
  # Type a word, leave insert mode and select it
  echo 'ihello<Esc>v0' | vimbridge replay

  # Print the state after every line
  vimbridge replay --trace keys.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening key file: %w", err)
			}
			defer func() { _ = f.Close() }()
			in = f
		}
		if cfg.Debug {
			level, _ := log.ParseLevel(cfg.LogLevel)
			log.InitWriter(cmd.ErrOrStderr(), level)
		}

		session := newSession(cmd)
		defer session.Close()
		return replay(session, in, cmd.OutOrStdout(), replayTrace)
	},
}

func init() {
	replayCmd.Flags().BoolVar(&replayTrace, "trace", false, "print the state after every line, not just at the end")
	rootCmd.AddCommand(replayCmd)
}

// replayState is the YAML view of a session.
type replayState struct {
	Line      int         `yaml:"line,omitempty"`
	Text      string      `yaml:"text"`
	Position  int         `yaml:"position"`
	Selection int         `yaml:"selection"`
	Mode      string      `yaml:"mode"`
	ModeCode  string      `yaml:"mode_code"`
	Cmdline   *string     `yaml:"cmdline,omitempty"`
	LastEdit  *replayEdit `yaml:"last_edit,omitempty"`
}

type replayEdit struct {
	Offset   int    `yaml:"offset"`
	Deleted  int    `yaml:"deleted"`
	Inserted string `yaml:"inserted"`
}

func stateOf(s *bridge.Session, line int) replayState {
	st := replayState{
		Line:      line,
		Text:      s.FlatText(),
		Position:  s.CursorPosition(),
		Selection: s.SelectionLength(),
		Mode:      s.Mode().String(),
		ModeCode:  bridge.ModeCode(s.Mode()),
	}
	if text, present := s.CommandLine(); present {
		st.Cmdline = &text
	}
	if e := s.LastEdit(); !e.IsZero() {
		st.LastEdit = &replayEdit{Offset: e.Offset, Deleted: e.Deleted, Inserted: e.Inserted}
	}
	return st
}

// replay starts s, types every line of key notation from r and writes the
// final state to w. With trace set, one YAML document is written per line.
func replay(s *bridge.Session, r io.Reader, w io.Writer, trace bool) error {
	if err := s.Begin(); err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()

	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, `"`) {
			continue
		}
		events, err := keys.Parse(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		for _, ev := range events {
			if err := s.HandleInput(ev); err != nil {
				return fmt.Errorf("line %d: %w", n, err)
			}
		}
		if trace {
			if err := enc.Encode(stateOf(s, n)); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading keys: %w", err)
	}

	if trace {
		return nil
	}
	return enc.Encode(stateOf(s, 0))
}
