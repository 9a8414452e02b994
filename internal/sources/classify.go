package sources

import (
	"regexp"
	"strings"

	"github.com/feral-file/ff-opportunities/internal/domain"
)

var (
	airdropKeywords = regexp.MustCompile(`\b(airdrops?|claim|claimable|drops?|allocations?|tge|snapshot|eligible|retroactive)\b`)
	questKeywords   = regexp.MustCompile(`\b(quests?|tasks?|missions?|complete|follow|learn|streaks?|campaign)\b`)
)

// Classify labels a mixed quest/airdrop record: airdrop keywords present and
// quest keywords absent means airdrop, anything else is a quest
func Classify(texts ...string) domain.OpportunityType {
	text := strings.ToLower(strings.Join(texts, " "))
	if airdropKeywords.MatchString(text) && !questKeywords.MatchString(text) {
		return domain.OpportunityTypeAirdrop
	}
	return domain.OpportunityTypeQuest
}
