package wts

import "github.com/sirupsen/logrus"

// Page carries the page identity and, when available, the original
// wikitext source that enables separator splicing (spec.md §6).
type Page struct {
	// Src is the original wikitext the DOM was parsed from. A nil value
	// means no source is available and the separator engine falls back
	// to handler-driven newline emission for every boundary.
	Src  *string
	Name string
}

// ParsoidConf mirrors the subset of wiki configuration the core consults.
type ParsoidConf struct {
	TraceFlags []string
}

// Conf mirrors env.conf from spec.md §6.
type Conf struct {
	Wiki    string
	Parsoid ParsoidConf
}

// Env mirrors the env collaborator from spec.md §6: the parts of the
// surrounding wiki-config/title-normalization subsystem the core needs,
// injected rather than implemented here.
type Env struct {
	Page Page
	Conf Conf

	// NormalizeTitle canonicalizes a wiki title for link-target
	// comparison. noUnderscores, when true, also collapses underscores
	// to spaces.
	NormalizeTitle func(s string, noUnderscores ...bool) string

	// ErrCB receives any fatal error the serializer could not recover
	// from locally (spec.md §7).
	ErrCB func(err error)
}

// Options bundles the per-call configuration for Serialize.
type Options struct {
	Env Env

	// Oldid is an opaque revision identifier carried for callers that
	// need it (e.g. for cache keys); the core never reads it.
	Oldid interface{}

	// Logger receives warnings for locally recovered errors (spec.md
	// §7). Defaults to logrus.StandardLogger() when nil.
	Logger *logrus.Logger
}

func (o *Options) logger() *logrus.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logrus.StandardLogger()
}

// OnChunk receives one piece of emitted wikitext. serializeInfo is an
// opaque value the core forwards without interpreting (spec.md §9); Serialize
// itself always passes nil, and a wrapper such as selective.SerializeChanged
// substitutes its own value.
type OnChunk func(chunk string, serializeInfo interface{})

// OnEnd is invoked once after the walk completes successfully.
type OnEnd func()
