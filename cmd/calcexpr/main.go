package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/calcexpr"
	"github.com/zephyrtronium/calcexpr/display"
)

func main() {
	log.SetFlags(0)
	var (
		cfgname, lang, state string
		deg, frac, inter     bool
		digits               int
	)
	flag.StringVar(&cfgname, "config", "", "YAML configuration file")
	flag.BoolVar(&deg, "deg", false, "use degrees for trigonometric functions")
	flag.IntVar(&digits, "digits", calcexpr.DefaultDigits, "significant digits in inexact results")
	flag.StringVar(&lang, "lang", "", "language tag for displaying numbers")
	flag.StringVar(&state, "state", "", "session file to restore at start and save at exit")
	flag.BoolVar(&frac, "frac", false, "also print exact results as fractions")
	flag.BoolVar(&inter, "i", false, "interactive mode with line editing")
	flag.Parse()

	cfg, err := Load(cfgname)
	if err != nil {
		log.Fatal(err)
	}
	// Flags given explicitly override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "deg":
			cfg.Degrees = deg
		case "digits":
			cfg.Digits = digits
		case "lang":
			cfg.Lang = lang
		case "state":
			cfg.State = state
		case "frac":
			cfg.Fractions = frac
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	var fm calcexpr.Formatter = calcexpr.PlainFormatter
	if cfg.Lang != "" {
		f, err := display.Parse(cfg.Lang)
		if err != nil {
			log.Fatalf("language %q: %v", cfg.Lang, err)
		}
		fm = f
	}
	calc := calcexpr.NewCalculator(
		calcexpr.DegreeMode(cfg.Degrees),
		calcexpr.Digits(cfg.Digits),
		calcexpr.WithFormatter(fm),
	)
	if cfg.State != "" {
		err := loadState(cfg.State, calc)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("restoring %s: %v", cfg.State, err)
		}
	}

	s := &session{calc: calc, out: os.Stdout, frac: cfg.Fractions}
	switch {
	case inter:
		s.repl(cfg.History)
	case flag.NArg() > 0:
		for _, arg := range flag.Args() {
			if s.line(arg) {
				break
			}
		}
	default:
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			if s.line(sc.Text()) {
				break
			}
		}
		if err := sc.Err(); err != nil {
			log.Print(err)
		}
	}

	if cfg.State != "" {
		if err := saveState(cfg.State, calc); err != nil {
			log.Fatalf("saving %s: %v", cfg.State, err)
		}
	}
}

// session runs input lines against a calculator.
type session struct {
	calc *calcexpr.Calculator
	out  io.Writer
	frac bool
}

// line handles one line of input and reports whether the session should end.
// A line is either a command starting with ':' or keys to type followed by
// evaluation. Typing after a result continues from it when the line starts
// with an operator.
func (s *session) line(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if strings.HasPrefix(text, ":") {
		return s.command(text[1:])
	}
	if err := s.calc.Type(text); err != nil {
		fmt.Fprintln(s.out, err)
		s.calc.Clear()
		return false
	}
	if _, err := s.calc.Equals(); err != nil {
		fmt.Fprintln(s.out, err)
		return false
	}
	fmt.Fprintln(s.out, s.calc.ResultText())
	if s.frac {
		if f, ok := s.calc.Fraction(); ok && f != s.calc.ResultText() {
			fmt.Fprintln(s.out, "=", f)
		}
	}
	return false
}

func (s *session) command(cmd string) bool {
	switch strings.TrimSpace(cmd) {
	case "quit", "q":
		return true
	case "deg":
		s.calc.SetDegreeMode(true)
	case "rad":
		s.calc.SetDegreeMode(false)
	case "del":
		s.calc.Delete()
		fmt.Fprintln(s.out, s.calc.Text())
	case "clear":
		s.calc.Clear()
	case "frac":
		s.frac = !s.frac
	case "show":
		fmt.Fprintln(s.out, s.calc.Text())
		if p, ok := s.calc.Preview(); ok {
			fmt.Fprintln(s.out, "≈", p)
		}
	default:
		fmt.Fprintf(s.out, "unknown command %q; try :deg :rad :del :clear :frac :show :quit\n", cmd)
	}
	return false
}

// repl runs an interactive session with line editing and history.
func (s *session) repl(history string) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	if history != "" {
		if f, err := os.Open(history); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
		defer func() {
			f, err := createHistory(history)
			if err != nil {
				log.Print(err)
				return
			}
			line.WriteHistory(f)
			f.Close()
		}()
	}
	for {
		prompt := "> "
		if s.calc.DegreeMode() {
			prompt = "deg> "
		}
		in, err := line.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				s.calc.Clear()
				continue
			}
			if err != io.EOF {
				log.Print(err)
			}
			return
		}
		if strings.TrimSpace(in) != "" {
			line.AppendHistory(in)
		}
		if s.line(in) {
			return
		}
	}
}

// createHistory truncates or creates a history file readable only by the
// user.
func createHistory(name string) (*os.File, error) {
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, err
	}
	// OpenFile leaves the mode of an existing file alone.
	if err := f.Chmod(0o600); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
