package anngraph

import "errors"

// Errors
var (
	ErrMalformedInput = errors.New("malformed input")
	ErrRuleParse      = errors.New("bad rule expression")
	ErrInvalidRef     = errors.New("invalid vertex or edge reference")
	ErrBadEdge        = errors.New("edge endpoint is not a known vertex")
	ErrDupVertexID    = errors.New("duplicate vertex ID")
	ErrNilGraph       = errors.New("nil graph")
)
