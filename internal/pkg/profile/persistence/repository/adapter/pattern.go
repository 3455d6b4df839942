package adapter

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, with s's own
// wildcard characters escaped by backslash.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
