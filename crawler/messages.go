package crawler

import "github.com/corvidscan/keyhunter/htmlparse"

// ScriptMsg is one message on the channel a Walk sends to a Script
// Collector: a batch of newly discovered scripts, a per-page progress
// signal, or the terminal Done sentinel.
type ScriptMsg interface {
	isScriptMsg()
}

// ScriptsMsg carries one page's worth of newly discovered, not-yet-seen
// script references.
type ScriptsMsg struct {
	Scripts []htmlparse.ScriptRef
}

func (ScriptsMsg) isScriptMsg() {}

// DidWalkPageMsg reports that one page finished being fetched and
// parsed, regardless of whether it yielded any new scripts.
type DidWalkPageMsg struct{}

func (DidWalkPageMsg) isScriptMsg() {}

// DoneMsg is the terminal message, sent exactly once when the walk has
// no in-progress pages left or has exhausted its walk budget.
type DoneMsg struct{}

func (DoneMsg) isScriptMsg() {}
