package models

import "strings"

// NoFindings is the sentinel value reported when a finding category is
// empty. Report consumers key cell colouring on this exact string.
const NoFindings = "None"

// JoinFindings collapses a list of finding messages into a single comma
// separated string. An empty list, or a list containing only NoFindings
// entries, collapses to NoFindings itself.
func JoinFindings(findings []string) string {
	var kept []string
	for _, finding := range findings {
		if finding == NoFindings || finding == "" {
			continue
		}
		kept = append(kept, finding)
	}
	if len(kept) == 0 {
		return NoFindings
	}
	return strings.Join(kept, ", ")
}
