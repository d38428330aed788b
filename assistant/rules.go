package assistant

// Rule is one step of the resolution cascade. Match decides whether the rule
// applies; Reply may still decline by returning false, in which case the
// cascade moves on. Some rules only update the turn and always decline.
type Rule struct {
	Name  string
	Match func(t *turn) bool
	Reply func(t *turn) (string, bool)
}

// rules is evaluated top to bottom; the first reply wins.
var rules = []Rule{
	{"identity", asksIdentity, deflect},
	{"pronoun-substitution", hasHistory, substitutePronouns},
	{"pronoun-only", isBarePronoun, resolveBarePronoun},
	{"entity-extraction", always, extractEntity},
	{"clarify", needsClarification, clarify},
	{"character-name", asksForNamedCharacter, namedCharacter},
	{"what-happened-next", asksWhatNext, nextInArc},
	{"go-back", asksGoBack, goBack},
	{"summarize-arc", asksArcSummary, summarizeArc},
	{"battles", asksBattles, listBattles},
	{"allies-enemies", asksAlliesEnemies, alliesEnemies},
	{"relationship-context", asksRelationship, relationshipInContext},
	{"theme-context", asksThemeMeaning, themeInContext},
	{"author", mentionsAuthor, authorInfo},
	{"universe", mentionsUniverse, universeInfo},
	{"arcs", mentionsArcs, arcList},
	{"story-categories", mentionsStories, storyCategories},
	{"character-categories", mentionsCharacters, characterCategories},
	{"compare", asksComparison, compareCharacters},
	{"character-profile", always, characterByNameOrRole},
	{"disambiguation", always, disambiguateCharacter},
	{"story-content", asksContent, storyContent},
	{"relationship-pairs", asksRelated, relationshipPair},
	{"theme-list", mentionsThemes, themeList},
	{"help", asksHelp, help},
	{"story-neighbours", asksNeighbours, storyNeighbours},
	{"timeline", asksTimeline, timeline},
	{"powers", asksPowers, powers},
	{"keyword-search", hasKeywords, keywordSearch},
	{"generative-fallback", hasFallback, generativeFallback},
	{"default", always, defaultResponse},
}

// Rules returns the rule names in evaluation order.
func Rules() []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Name
	}
	return out
}

func always(*turn) bool { return true }

func defaultResponse(*turn) (string, bool) {
	return say(defaultReply), true
}
