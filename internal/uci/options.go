// options.go parses `setoption` lines and applies them to the session's
// engine.Options/engine.Config, plus the `Clear Hash` button.
//
// Grounded on the teacher's zurichess/uci.go setoption (the
// `name ... value ...` regex grammar and per-option switch), adapted to
// this package's engine.Options type and to rebuilding engine.Control's
// table when Hash changes rather than replacing a package-level
// global.

package uci

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/odonata-engine/odonata/engine"
)

var reOption = regexp.MustCompile(`(?i)^setoption\s+name\s+(.+?)(\s+value\s+(.*))?$`)

func (u *UCI) setoption(line string) error {
	m := reOption.FindStringSubmatch(line)
	if m == nil {
		return fmt.Errorf("invalid setoption line %q", line)
	}
	name, hasValue, value := m[1], m[2] != "", m[3]

	if name == "Clear Hash" {
		u.mu.Lock()
		u.ctrl.TT.Clear()
		u.mu.Unlock()
		return nil
	}

	if !hasValue {
		return fmt.Errorf("option %q requires a value", name)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	switch name {
	case "Threads":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if n < 1 || n > maxThreads {
			return fmt.Errorf("Threads must be between 1 and %d", maxThreads)
		}
		u.opts.Threads = n
		u.cfg.Threads = n
	case "Hash":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if n < 1 || n > maxHashMB {
			return fmt.Errorf("Hash must be between 1 and %d", maxHashMB)
		}
		u.opts.HashMB = n
		u.cfg.TT.SizeMB = n
		u.ctrl = engine.NewControl(u.cfg)
		u.ctrl.SetLogger(u.log)
	case "MultiPV":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		if n < 1 || n > maxMultiPV {
			return fmt.Errorf("MultiPV must be between 1 and %d", maxMultiPV)
		}
		u.opts.MultiPV = n
		u.cfg.MultiPV = n
	case "Ponder":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		u.opts.Ponder = b
	case "OwnBook":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		u.opts.OwnBook = b
	case "UCI_AnalyseMode":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		u.opts.UCIAnalyseMode = b
		u.cfg.Deterministic = b
	default:
		return fmt.Errorf("unhandled option %s", name)
	}
	return nil
}
