// config.go decodes the engine's tuning knobs from TOML. Every
// sub-component gets its own flat struct of named effects rather than a
// class hierarchy, so the search's inner loop reads plain fields instead
// of making virtual calls.
//
// Grounded on the teacher's engine.go (Options) for the shape of an
// options struct controlling search behavior, and on FrankyGo's use of
// github.com/BurntSushi/toml for decoding a keyed engine configuration
// file; unknown keys are accepted silently, matching both that library's
// default behavior and the spec's stated requirement.

package engine

import "github.com/BurntSushi/toml"

// Config is the full set of tunable search parameters, one field per
// key-group named in the UCI configuration schema.
type Config struct {
	Aspiration   AspirationConfig   `toml:"aspiration"`
	NullMove     NullMoveConfig     `toml:"nmp"`
	Razor        RazorConfig        `toml:"razor"`
	Futility     FutilityConfig     `toml:"futility"`
	ReverseFut   ReverseFutConfig   `toml:"rev_fut"`
	Extensions   ExtensionsConfig   `toml:"ext"`
	PVS          PVSConfig          `toml:"pvs"`
	LMP          LMPConfig          `toml:"lmp"`
	LMR          LMRConfig          `toml:"lmr"`
	MoveTime     MoveTimeConfig     `toml:"mte"`
	MoveOrderer  MoveOrdererConfig  `toml:"move_orderer"`
	Repetition   RepetitionConfig   `toml:"repetition"`
	TT           TTConfig           `toml:"tt"`
	Killers      KillersConfig      `toml:"killers"`
	CounterMove  CounterMoveConfig  `toml:"counter_move"`
	Quiescence   QuiescenceConfig   `toml:"qs"`
	History      HistoryConfig      `toml:"history"`

	// Explainer and Recognizer are accepted and stored but intentionally
	// inert: an endgame tablebase-style recognizer and a human-readable
	// search-decision explainer would duplicate functionality explicitly
	// out of scope, but the keys are kept since unknown keys must be
	// accepted silently and these are the two the upstream schema names.
	Explainer  map[string]interface{} `toml:"explainer"`
	Recognizer map[string]interface{} `toml:"recognizer"`

	Deterministic bool `toml:"deterministic"`
	Threads       int  `toml:"threads"`

	// MultiPV is how many distinct root lines IterativeDeepen reports,
	// set from Options.MultiPV rather than the TOML file.
	MultiPV int `toml:"-"`
}

type AspirationConfig struct {
	InitialWindow int32 `toml:"initial_window"`
	MinDepth      int   `toml:"min_depth"`
	MaxIter       int   `toml:"max_iter"`
}

type NullMoveConfig struct {
	Enabled     bool `toml:"enabled"`
	DepthLimit  int  `toml:"depth_limit"`
	BaseReduct  int  `toml:"base_reduction"`
}

type RazorConfig struct {
	Enabled    bool  `toml:"enabled"`
	DepthLimit int   `toml:"depth_limit"`
	Margin     int32 `toml:"margin_per_depth"`
}

type FutilityConfig struct {
	Enabled    bool  `toml:"enabled"`
	DepthLimit int   `toml:"depth_limit"`
	Margin     int32 `toml:"margin"`
}

type ReverseFutConfig struct {
	Enabled    bool  `toml:"enabled"`
	DepthLimit int   `toml:"depth_limit"`
	MarginStep int32 `toml:"margin_per_depth"`
}

type ExtensionsConfig struct {
	Check     bool `toml:"check"`
	Recapture bool `toml:"recapture"`
	SingleReply bool `toml:"single_reply"`
	MaxExtend int  `toml:"max_extend"`
}

type PVSConfig struct {
	Enabled bool `toml:"enabled"`
}

type LMPConfig struct {
	Enabled    bool `toml:"enabled"`
	DepthLimit int  `toml:"depth_limit"`
	BaseCount  int  `toml:"base_count"`
}

type LMRConfig struct {
	Enabled    bool `toml:"enabled"`
	DepthLimit int  `toml:"depth_limit"`
	Divisor    int  `toml:"divisor"`
}

type MoveTimeConfig struct {
	MovesToGo      int     `toml:"moves_to_go"`
	OverspendFactor float64 `toml:"overspend_factor"`
	CheckEvery     uint64  `toml:"check_every"`
}

type MoveOrdererConfig struct {
	UseSEE bool `toml:"use_see"`
}

type RepetitionConfig struct {
	Enabled bool `toml:"enabled"`
}

type TTConfig struct {
	SizeMB         int  `toml:"hash_mb"`
	RewritePV      bool `toml:"rewrite_pv"`
	FreshenOnFetch bool `toml:"freshen_on_fetch"`
}

type KillersConfig struct {
	Enabled bool `toml:"enabled"`
	Slots   int  `toml:"slots"`
}

type CounterMoveConfig struct {
	Enabled bool `toml:"enabled"`
}

type QuiescenceConfig struct {
	DeltaMargin int32 `toml:"delta_margin"`
	UseSEE      bool  `toml:"use_see"`
}

type HistoryConfig struct {
	Enabled bool  `toml:"enabled"`
	Decay   int32 `toml:"decay"`
}

// DefaultConfig returns the configuration the engine ships with: every
// technique enabled, margins and depth limits matching the values this
// package's search hard-codes when no config file is supplied.
func DefaultConfig() Config {
	return Config{
		Aspiration: AspirationConfig{InitialWindow: initialAspirationWindow, MinDepth: 4, MaxIter: 6},
		NullMove:   NullMoveConfig{Enabled: true, DepthLimit: nullMoveDepthLimit, BaseReduct: 2},
		Razor:      RazorConfig{Enabled: true, DepthLimit: 3, Margin: 300},
		Futility:   FutilityConfig{Enabled: true, DepthLimit: futilityDepthLimit, Margin: futilityMargin},
		ReverseFut: ReverseFutConfig{Enabled: true, DepthLimit: 6, MarginStep: 80},
		Extensions: ExtensionsConfig{Check: true, Recapture: true, SingleReply: true, MaxExtend: maxExtendPerLine},
		PVS:        PVSConfig{Enabled: true},
		LMP:        LMPConfig{Enabled: true, DepthLimit: futilityDepthLimit, BaseCount: 3},
		LMR:        LMRConfig{Enabled: true, DepthLimit: lmrDepthLimit, Divisor: 5},
		MoveTime:   MoveTimeConfig{MovesToGo: 30, OverspendFactor: overspendFactor, CheckEvery: nodesPerTimeCheck},
		MoveOrderer: MoveOrdererConfig{UseSEE: true},
		Repetition: RepetitionConfig{Enabled: true},
		TT:         TTConfig{SizeMB: 64, RewritePV: true, FreshenOnFetch: true},
		Killers:    KillersConfig{Enabled: true, Slots: 2},
		CounterMove: CounterMoveConfig{Enabled: true},
		Quiescence: QuiescenceConfig{DeltaMargin: 200, UseSEE: true},
		History:    HistoryConfig{Enabled: true, Decay: 16384},
		Threads:    1,
		MultiPV:    1,
	}
}

// LoadConfig decodes a TOML configuration file at path, starting from
// DefaultConfig so any key the file omits keeps its shipped default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

// Options is the UCI-visible subset of engine state: the knobs a GUI sets
// with `setoption` rather than the internal tuning surface of Config.
// OwnBook is accepted and stored but inert, since no opening book is
// implemented.
type Options struct {
	Threads       int
	HashMB        int
	MultiPV       int
	Ponder        bool
	OwnBook       bool
	UCIAnalyseMode bool
}

// DefaultOptions mirrors DefaultConfig's Threads/TT.SizeMB so a freshly
// started engine and a freshly decoded Options struct agree.
func DefaultOptions() Options {
	return Options{Threads: 1, HashMB: 64, MultiPV: 1}
}

// Apply folds o into cfg, overwriting only the fields Options exposes.
func (o Options) Apply(cfg Config) Config {
	cfg.Threads = o.Threads
	cfg.TT.SizeMB = o.HashMB
	cfg.MultiPV = o.MultiPV
	return cfg
}
