package wts

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/cscott/nell-parsoid/dparsoid"
	"github.com/cscott/nell-parsoid/token"
)

// ListFrame is one entry of State.ListStack. ParentBullets is the
// cumulative bullet path up to but not including this frame; Bullet is
// this frame's own character ("*", "#", or "" for dl, whose dt/dd items
// supply ";"/":" per item via LastItemChar).
type ListFrame struct {
	ParentBullets string
	Bullet        string
	LastItemChar  string
	ItemCount     int
}

// TableSnapshot is what State.TableStack saves on entering a table and
// restores on leaving it — lists and single-line mode do not cross table
// boundaries (spec.md §3 invariant 1 and §4.1's table handler contract).
type TableSnapshot struct {
	ListStack     []*ListFrame
	SingleLineMode int
}

// CurrLine accumulates the inline text of the block element currently being
// walked, for the escape engine's line-level heading/bracket-pair analysis
// (spec.md §4.2 "Line-level analysis").
type CurrLine struct {
	Text            string
	NumPieces       int
	Processed       bool
	HasBracketPair  bool
	HasHeadingPair  bool
}

// TplAttrEntry is one template's recorded attribute sources, keyed by
// attribute name (spec.md §3's tplAttrs, §4.5's preprocessing step 1).
type TplAttrEntry struct {
	Kvs map[string]string // attr -> "key=value" source
	Ks  map[string]string // attr -> key source
	Vs  map[string]string // attr -> value source
}

func newTplAttrEntry() *TplAttrEntry {
	return &TplAttrEntry{Kvs: map[string]string{}, Ks: map[string]string{}, Vs: map[string]string{}}
}

// wteContext is a single entry of State.WteHandlerStack: a name (consulted
// by the escape engine's contextual-fencing table, spec.md §4.2) plus
// whatever data that context needs (e.g. the enclosing table cell's
// dataParsoid, for the "begins with -/+ and openWidth==1" rule).
type wteContext struct {
	name string
	dp   *dparsoid.DataParsoid
}

// State is the single mutable record threaded through one serializeDOM
// call (spec.md §3). newState builds a fresh one for each top-level call;
// it is never shared across calls.
type State struct {
	opts *Options
	out  OnChunk

	OnNewline     bool
	OnStartOfLine bool
	SingleLineMode int

	ListStack     []*ListFrame
	TableStack    []*TableSnapshot
	WteHandlerStack []*wteContext

	TplAttrs map[string]*TplAttrEntry

	CurrLine CurrLine

	Src *string

	bufferedSeparator      *string
	separatorEmittedFromSrc bool

	PrevToken     token.Token
	CurToken      token.Token
	PrevTagToken  token.Token
	CurTagToken   token.Token

	InNoWiki    bool
	InHTMLPre   bool
	InIndentPre bool

	// IgnorePTag suppresses the paragraph handler's blank-line emission
	// while set. Nothing in this package sets it; it is left for callers
	// that need flow content serialized without paragraph spacing.
	IgnorePTag bool

	lastRes string // sliding window of the last emitted characters

	ActiveTemplateID string

	// dataParsoid side table: *html.Node has no user-data field, so the
	// preprocessor populates this arena keyed by node identity (spec.md
	// §9's prescribed strategy for DOM libraries without user fields).
	dpTable map[*html.Node]*dparsoid.DataParsoid

	// separators collected by the preprocessor (spec.md §4.5 step 3),
	// keyed by the node identity of the element immediately following the
	// gap.
	sepTable map[*html.Node]string

	// endSepTable holds the trailing separator between a container's last
	// child and its own close tag, keyed by the container node.
	endSepTable map[*html.Node]string

	// textTransform, when non-nil, rewrites each text chunk before it is
	// written (used by the indent-pre handler, spec.md §4.1).
	textTransform func(string) string
}

const lastResWindow = 100

func newState(opts *Options, onChunk OnChunk) *State {
	s := &State{
		opts:          opts,
		out:           onChunk,
		OnStartOfLine: true,
		TplAttrs:      map[string]*TplAttrEntry{},
		dpTable:       map[*html.Node]*dparsoid.DataParsoid{},
		sepTable:      map[*html.Node]string{},
		endSepTable:   map[*html.Node]string{},
	}
	s.Src = opts.Env.Page.Src
	return s
}

// dataParsoid looks up the side table for n's decoded data-parsoid record.
// Returns an empty (non-nil) record if none was attached, so callers never
// need a nil check.
func (s *State) dataParsoid(n *html.Node) *dparsoid.DataParsoid {
	if dp, ok := s.dpTable[n]; ok && dp != nil {
		return dp
	}
	return &dparsoid.DataParsoid{}
}

func (s *State) pushWteContext(name string, dp *dparsoid.DataParsoid) {
	s.WteHandlerStack = append(s.WteHandlerStack, &wteContext{name: name, dp: dp})
}

func (s *State) popWteContext() {
	if len(s.WteHandlerStack) == 0 {
		return
	}
	s.WteHandlerStack = s.WteHandlerStack[:len(s.WteHandlerStack)-1]
}

func (s *State) topWteContext() *wteContext {
	if len(s.WteHandlerStack) == 0 {
		return nil
	}
	return s.WteHandlerStack[len(s.WteHandlerStack)-1]
}

func (s *State) pushList(bullet string) *ListFrame {
	f := &ListFrame{ParentBullets: s.cumulativeBullets(), Bullet: bullet}
	s.ListStack = append(s.ListStack, f)
	return f
}

func (s *State) popList() {
	if len(s.ListStack) == 0 {
		return
	}
	s.ListStack = s.ListStack[:len(s.ListStack)-1]
}

func (s *State) topList() *ListFrame {
	if len(s.ListStack) == 0 {
		return nil
	}
	return s.ListStack[len(s.ListStack)-1]
}

func (s *State) cumulativeBullets() string {
	if len(s.ListStack) == 0 {
		return ""
	}
	top := s.ListStack[len(s.ListStack)-1]
	if top.Bullet != "" {
		return top.ParentBullets + top.Bullet
	}
	return top.ParentBullets + top.LastItemChar
}

func (s *State) saveTableState() {
	snap := &TableSnapshot{SingleLineMode: s.SingleLineMode}
	snap.ListStack = s.ListStack
	s.TableStack = append(s.TableStack, snap)
	s.ListStack = nil
	s.SingleLineMode = 0
}

func (s *State) restoreTableState() {
	if len(s.TableStack) == 0 {
		return
	}
	last := len(s.TableStack) - 1
	snap := s.TableStack[last]
	s.TableStack = s.TableStack[:last]
	s.ListStack = snap.ListStack
	s.SingleLineMode = snap.SingleLineMode
}

// emit writes content directly to the output sink, tracking the last-100
// window used by bold/italic adjacency detection and updating newline/
// start-of-line tracking from the trailing character.
func (s *State) emit(content string, info interface{}) {
	if content == "" {
		return
	}
	if s.textTransform != nil {
		content = s.textTransform(content)
	}
	s.out(content, info)
	s.appendLastRes(content)
	last := content[len(content)-1]
	s.OnNewline = last == '\n'
	s.OnStartOfLine = s.OnNewline
}

func (s *State) appendLastRes(content string) {
	s.lastRes += content
	if len(s.lastRes) > lastResWindow {
		s.lastRes = s.lastRes[len(s.lastRes)-lastResWindow:]
	}
}

// bufferSeparatorChunk stashes a newline emitted by token-time handler logic
// while source splicing is still possible (spec.md §4.7); it is flushed
// verbatim if the separator engine fails to splice, and discarded if it
// succeeds.
func (s *State) bufferSeparatorChunk(chunk string) {
	if s.bufferedSeparator != nil && strings.HasSuffix(*s.bufferedSeparator, chunk) {
		// Nested EndsLine handlers (e.g. a list item closing inside a
		// closing list) each ask to "end the line" independently; the
		// request is idempotent, not cumulative.
		return
	}
	if s.bufferedSeparator == nil {
		s.bufferedSeparator = new(string)
	}
	*s.bufferedSeparator += chunk
}

func (s *State) flushBufferedSeparator() {
	if s.bufferedSeparator == nil {
		return
	}
	buf := *s.bufferedSeparator
	s.bufferedSeparator = nil
	if buf == "\n" && s.OnNewline {
		// Already at the start of a fresh line; nothing to separate.
		return
	}
	s.emit(buf, nil)
}

func (s *State) discardBufferedSeparator() {
	s.bufferedSeparator = nil
}
