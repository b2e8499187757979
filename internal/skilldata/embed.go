// Package skilldata embeds the astgen skill files for distribution inside
// the astgen binary. The embedded filesystem is rooted at "skill/astgen/"
// and contains SKILL.md.
package skilldata

import "embed"

// SkillFS contains the embedded skill files. Walk from "skill/astgen" to
// iterate over all files.
//
//go:embed all:skill
var SkillFS embed.FS
