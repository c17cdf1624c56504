package client

import "strings"

// LikeEscape is the escape character paired with ContainsPattern.
const LikeEscape = `\`

var likeReplacer = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`_`, `\_`,
)

// ContainsPattern turns term into a lower-cased LIKE pattern that matches
// it as a literal substring.
func ContainsPattern(term string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(term)) + "%"
}
