package anngraph

import "strconv"

// UnresolvedMarker is the output rendering of an attr the agent-function
// never resolved.  It cannot collide with a float rendering.
const UnresolvedMarker = "unresolved"

// FormatAttr renders an attr value the way the output format expects:
// shortest round-tripping float form, or the explicit unresolved marker.
func FormatAttr(a Attr) string {
	if !a.Defined {
		return UnresolvedMarker
	}
	return formatAttrValue(a.Value)
}

func formatAttrValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func itoa(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}
