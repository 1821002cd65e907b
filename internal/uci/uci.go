// uci.go implements the UCI text protocol: one command per line, parsed
// and dispatched to the engine package's Position/Control/TimeManager.
//
// Grounded on the teacher's zurichess/uci.go: the idle/ponder channel
// pair that lets `stop`/`ponderhit` observe whether a search is in
// flight without a lock, the same position/go/setoption argument
// grammar, and the same "non-idle commands queue behind a full idle
// channel" dispatch shape - adapted onto engine.Control/Search instead
// of a package-level Engine and mutex-free HashTable, and onto zerolog
// instead of the teacher's standard log package for non-protocol output.

package uci

import (
	"bufio"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/odonata-engine/odonata/engine"
)

const (
	engineName   = "Odonata"
	engineAuthor = "the Odonata project"
	maxMultiPV   = 64
	maxThreads   = 512
	maxHashMB    = 4000
)

var errQuit = fmt.Errorf("quit")

// UCI drives one UCI session over the given reader/writer, owning the
// position, configuration and shared search state every command mutates.
type UCI struct {
	out io.Writer
	log zerolog.Logger

	mu        sync.Mutex
	pos       *engine.Position
	cfg       engine.Config
	opts      engine.Options
	ctrl      *engine.Control
	tm        *engine.TimeManager
	rootMoves []engine.Move
	predicted uint64

	// idle holds one token when no search is running; goCommand takes it before
	// starting a goroutine and returns it when that goroutine finishes, so
	// stop/position/go can tell whether a search is currently in flight by
	// trying to take and immediately return the token.
	idle   chan struct{}
	ponder chan struct{}
}

// New returns a session ready to read commands, writing protocol output to
// out and diagnostic logging through log.
func New(out io.Writer, log zerolog.Logger) *UCI {
	cfg := engine.DefaultConfig()
	u := &UCI{
		out:    out,
		log:    log,
		pos:    engine.StartPosition(),
		cfg:    cfg,
		opts:   engine.DefaultOptions(),
		ctrl:   engine.NewControl(cfg),
		idle:   make(chan struct{}, 1),
		ponder: make(chan struct{}, 1),
	}
	u.ctrl.SetLogger(log)
	u.idle <- struct{}{}
	return u
}

// LoadConfigFile replaces the session's configuration with the one
// decoded from path, rebuilding the shared search Control so the new
// table size takes effect. Call before Run; behavior if called mid-search
// is undefined.
func (u *UCI) LoadConfigFile(path string) error {
	cfg, err := engine.LoadConfig(path)
	if err != nil {
		return err
	}
	u.mu.Lock()
	u.cfg = cfg
	u.opts.Threads = cfg.Threads
	u.opts.HashMB = cfg.TT.SizeMB
	u.ctrl = engine.NewControl(cfg)
	u.ctrl.SetLogger(u.log)
	u.mu.Unlock()
	return nil
}

// Run reads commands from in, one per line, until EOF or `quit`.
func (u *UCI) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 4096), 1<<20)
	for scanner.Scan() {
		if err := u.Execute(scanner.Text()); err != nil {
			if err == errQuit {
				return
			}
			u.log.Warn().Err(err).Str("line", scanner.Text()).Msg("uci command failed")
		}
	}
}

// Execute dispatches a single command line. errQuit is returned for `quit`
// and is not itself an error condition.
func (u *UCI) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	fields := strings.Fields(line)
	cmd := fields[0]

	switch cmd {
	case "quit":
		return errQuit
	case "isready":
		return u.isready()
	case "uci":
		return u.uci()
	case "stop":
		return u.stop()
	case "ponderhit":
		return u.ponderhit()
	}

	// Every other command expects no search to be mid-flight: take the
	// idle token (blocking until any in-flight search releases it via
	// play) and hand it straight back.
	<-u.idle
	u.idle <- struct{}{}

	switch cmd {
	case "ucinewgame":
		return u.ucinewgame()
	case "position":
		return u.position(fields[1:])
	case "go":
		return u.goCommand(fields[1:])
	case "setoption":
		return u.setoption(line)
	case "d", "board":
		return u.board()
	case "eval":
		return u.eval()
	case "perft":
		return u.perft(fields[1:])
	case "compiler":
		return u.compiler()
	default:
		return fmt.Errorf("unhandled command %s", cmd)
	}
}

func (u *UCI) uci() error {
	fmt.Fprintf(u.out, "id name %s\n", engineName)
	fmt.Fprintf(u.out, "id author %s\n", engineAuthor)
	fmt.Fprintf(u.out, "option name Threads type spin default %d min 1 max %d\n", u.opts.Threads, maxThreads)
	fmt.Fprintf(u.out, "option name Hash type spin default %d min 1 max %d\n", u.opts.HashMB, maxHashMB)
	fmt.Fprintf(u.out, "option name Clear Hash type button\n")
	fmt.Fprintf(u.out, "option name MultiPV type spin default %d min 1 max %d\n", u.opts.MultiPV, maxMultiPV)
	fmt.Fprintf(u.out, "option name Ponder type check default %v\n", u.opts.Ponder)
	fmt.Fprintf(u.out, "option name OwnBook type check default %v\n", u.opts.OwnBook)
	fmt.Fprintf(u.out, "option name UCI_AnalyseMode type check default %v\n", u.opts.UCIAnalyseMode)
	fmt.Fprintln(u.out, "uciok")
	return nil
}

func (u *UCI) isready() error {
	fmt.Fprintln(u.out, "readyok")
	return nil
}

func (u *UCI) ucinewgame() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.ctrl.TT.Clear()
	return nil
}

func (u *UCI) position(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("expected argument for 'position'")
	}

	var pos *engine.Position
	var err error
	i := 0
	switch args[0] {
	case "startpos":
		pos = engine.StartPosition()
		i = 1
	case "fen":
		j := 1
		for j < len(args) && args[j] != "moves" {
			j++
		}
		pos, err = engine.PositionFromFEN(strings.Join(args[1:j], " "))
		i = j
	default:
		return fmt.Errorf("unknown position command: %s", args[0])
	}
	if err != nil {
		return err
	}

	if i < len(args) {
		if args[i] != "moves" {
			return fmt.Errorf("expected 'moves', got %q", args[i])
		}
		for _, ms := range args[i+1:] {
			m, err := engine.UCIToMove(pos, ms)
			if err != nil {
				return err
			}
			pos.DoMove(m)
		}
	}

	u.mu.Lock()
	u.pos = pos
	u.mu.Unlock()
	return nil
}

var validGoArgs = map[string]bool{
	"searchmoves": true, "ponder": true, "wtime": true, "btime": true,
	"winc": true, "binc": true, "movestogo": true, "depth": true,
	"nodes": true, "mate": true, "movetime": true, "infinite": true,
}

func (u *UCI) goCommand(args []string) error {
	u.mu.Lock()
	pos := u.pos.Clone()
	predicted := u.predicted == pos.Zobrist
	u.ctrl.Cfg.Threads = u.cfg.Threads
	u.ctrl.Cfg.MultiPV = u.cfg.MultiPV
	u.ctrl.Cfg.Deterministic = u.cfg.Deterministic
	u.mu.Unlock()

	tm := engine.NewTimeManager(pos, predicted)
	var rootMoves []engine.Move
	ponder := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "searchmoves":
			for i+1 < len(args) && !validGoArgs[args[i+1]] {
				i++
				m, err := engine.UCIToMove(pos, args[i])
				if err != nil {
					return err
				}
				rootMoves = append(rootMoves, m)
			}
		case "ponder":
			ponder = true
		case "infinite":
			tm.Depth = 64
		case "wtime":
			i++
			t, _ := strconv.Atoi(args[i])
			tm.WTime = time.Duration(t) * time.Millisecond
		case "winc":
			i++
			t, _ := strconv.Atoi(args[i])
			tm.WInc = time.Duration(t) * time.Millisecond
		case "btime":
			i++
			t, _ := strconv.Atoi(args[i])
			tm.BTime = time.Duration(t) * time.Millisecond
		case "binc":
			i++
			t, _ := strconv.Atoi(args[i])
			tm.BInc = time.Duration(t) * time.Millisecond
		case "movestogo":
			i++
			t, _ := strconv.Atoi(args[i])
			tm.MovesToGo = t
		case "movetime":
			i++
			t, _ := strconv.Atoi(args[i])
			tm.WTime, tm.WInc = time.Duration(t)*time.Millisecond, 0
			tm.BTime, tm.BInc = time.Duration(t)*time.Millisecond, 0
			tm.MovesToGo = 1
		case "depth":
			i++
			d, _ := strconv.Atoi(args[i])
			tm.Depth = d
		case "nodes", "mate":
			u.log.Info().Str("arg", args[i]).Msg("go argument not implemented, ignoring")
			i++
		default:
			return fmt.Errorf("invalid go argument %s", args[i])
		}
	}

	if ponder {
		u.ponder <- struct{}{}
	}

	<-u.idle // take the idle token: a search is about to start
	u.mu.Lock()
	u.tm = tm
	u.rootMoves = rootMoves
	u.mu.Unlock()

	go u.play(pos, tm, rootMoves, ponder)
	return nil
}

// play runs one search to completion and prints its bestmove line. It must
// run in its own goroutine so Execute can keep dispatching stop/ponderhit.
func (u *UCI) play(pos *engine.Position, tm *engine.TimeManager, rootMoves []engine.Move, ponder bool) {
	logger := &infoLogger{out: u.out}
	u.mu.Lock()
	ctrl := u.ctrl
	u.mu.Unlock()

	pv := engine.Search(pos, tm, ctrl, logger, rootMoves, nil)

	if ponder {
		u.ponder <- struct{}{}
		<-u.ponder
	}

	if len(pv) >= 2 {
		cp := pos.Clone()
		cp.DoMove(pv[0])
		cp.DoMove(pv[1])
		u.mu.Lock()
		u.predicted = cp.Zobrist
		u.mu.Unlock()
	}

	switch len(pv) {
	case 0:
		fmt.Fprintln(u.out, "bestmove 0000")
	case 1:
		fmt.Fprintf(u.out, "bestmove %s\n", pv[0].UCI())
	default:
		fmt.Fprintf(u.out, "bestmove %s ponder %s\n", pv[0].UCI(), pv[1].UCI())
	}

	u.idle <- struct{}{}
}

func (u *UCI) ponderhit() error {
	u.mu.Lock()
	tm := u.tm
	u.mu.Unlock()
	if tm != nil {
		tm.PonderHit()
	}
	select {
	case <-u.ponder:
	default:
	}
	return nil
}

func (u *UCI) stop() error {
	u.mu.Lock()
	ctrl, tm := u.ctrl, u.tm
	u.mu.Unlock()

	ctrl.Stop()
	if tm != nil {
		tm.Stop()
	}
	select {
	case <-u.ponder:
	default:
	}

	// Wait for the in-flight search, if any, to actually finish.
	<-u.idle
	u.idle <- struct{}{}
	return nil
}

func (u *UCI) board() error {
	u.mu.Lock()
	pos := u.pos
	u.mu.Unlock()
	fmt.Fprint(u.out, pos.PrettyPrint())
	fmt.Fprintf(u.out, "Fen: %s\n", pos.FEN())
	fmt.Fprintf(u.out, "Key: %016x\n", pos.Zobrist)
	return nil
}

func (u *UCI) eval() error {
	u.mu.Lock()
	pos := u.pos
	u.mu.Unlock()
	score := engine.Evaluate(pos)
	fmt.Fprintf(u.out, "info string eval %d cp (%s to move)\n", score, pos.SideToMove)
	return nil
}

func (u *UCI) perft(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("expected depth argument for 'perft'")
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid perft depth %q: %w", args[0], err)
	}
	u.mu.Lock()
	pos := u.pos.Clone()
	u.mu.Unlock()

	start := time.Now()
	nodes := engine.Perft(pos, depth)
	elapsed := time.Since(start)
	fmt.Fprintf(u.out, "info string perft(%d) = %s nodes in %s\n", depth, humanize.Comma(int64(nodes)), elapsed)
	return nil
}

func (u *UCI) compiler() error {
	fmt.Fprintf(u.out, "info string %s built with %s for %s/%s\n",
		engineName, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return nil
}
