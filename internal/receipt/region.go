package receipt

import "strings"

// ItemRegion returns the lines strictly between the last item start marker
// and the last item end marker. Markers can repeat earlier in the document,
// so only the final occurrence of each counts.
func (l Layout) ItemRegion(lines []string) ([]string, error) {
	start, end := -1, -1
	for i, line := range lines {
		if hasAnyPrefix(line, l.ItemStartMarkers) {
			start = i
		} else if strings.HasPrefix(line, l.ItemEndMarker) {
			end = i
		}
	}

	if start < 0 {
		return nil, &MissingSectionMarkerError{Marker: strings.Join(l.ItemStartMarkers, " | ")}
	}
	if end < 0 || end <= start {
		return nil, &MissingSectionMarkerError{Marker: l.ItemEndMarker}
	}
	return lines[start+1 : end], nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
