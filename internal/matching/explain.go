package matching

import (
	"fmt"
	"strings"
)

// MaxIcebreakers caps the conversation starters attached to one match.
const MaxIcebreakers = 5

// ExplanationGenerator turns a scored pair into human-readable connection
// reasons and conversation starters in the requester's preferred language.
// Pure function of its inputs plus the static localization tables.
type ExplanationGenerator struct{}

// NewExplanationGenerator returns the standard generator.
func NewExplanationGenerator() *ExplanationGenerator {
	return &ExplanationGenerator{}
}

// Annotate fills ConnectionReasons and RecommendedIcebreakers on the
// match's breakdown, leaving the score fields untouched.
func (g *ExplanationGenerator) Annotate(requester *Profile, match *ScoredMatch, pref LanguagePreference) {
	lang := resolveLanguage(pref, requester)

	match.Compatibility.ConnectionReasons = g.connectionReasons(requester, match, lang)
	match.Compatibility.RecommendedIcebreakers = g.icebreakers(requester, match.Profile, lang)
}

// resolveLanguage maps the preference to a concrete rendering language.
// Bilingual members get whichever of portuguese/english they speak better;
// ties favour portuguese.
func resolveLanguage(pref LanguagePreference, requester *Profile) language {
	switch pref {
	case LanguagePortuguese:
		return langPT
	case LanguageEnglish:
		return langEN
	}

	pt := requester.LanguageSkills["portuguese"].rank()
	en := requester.LanguageSkills["english"].rank()
	if en > pt {
		return langEN
	}
	return langPT
}

func (g *ExplanationGenerator) connectionReasons(requester *Profile, match *ScoredMatch, lang language) []string {
	factors := match.Factors()
	var reasons []string

	switch {
	case factors.Region >= RegionalMatchWeight:
		name := sharedHeritageName(match.Compatibility.SharedElements, lang)
		reasons = append(reasons, fmt.Sprintf(reasonTemplates[tmplSharedHeritage][lang], name))
	case factors.Region > 0:
		reasons = append(reasons, reasonTemplates[tmplCrossCultural][lang])
	}

	if factors.Interests > 0 {
		shared := SharedInterests(requester, match.Profile)
		names := make([]string, 0, len(shared))
		for _, tag := range shared {
			names = append(names, interestName(tag, lang))
		}
		reasons = append(reasons, fmt.Sprintf(reasonTemplates[tmplCommonInterests][lang], strings.Join(names, ", ")))
	}

	if factors.Community > 0 {
		reasons = append(reasons, reasonTemplates[tmplActiveCommunity][lang])
	}

	if factors.Verification > 0 {
		reasons = append(reasons, reasonTemplates[tmplBothVerified][lang])
	}

	return reasons
}

// icebreakers draws from the union of shared interests and shared cultural
// backgrounds, tailored phrases first, capped without padding.
func (g *ExplanationGenerator) icebreakers(requester, candidate *Profile, lang language) []string {
	var out []string

	for _, tag := range SharedInterests(requester, candidate) {
		if len(out) >= MaxIcebreakers {
			return out
		}
		if phrase, ok := lookup(interestIcebreakers, tag, lang); ok {
			out = append(out, phrase)
		} else {
			out = append(out, fmt.Sprintf(reasonTemplates[tmplIcebreakerGeneric][lang], interestName(tag, lang)))
		}
	}

	for _, code := range SharedBackgrounds(requester, candidate) {
		if len(out) >= MaxIcebreakers {
			return out
		}
		if place, ok := lookup(backgroundPlaces, code, lang); ok {
			out = append(out, fmt.Sprintf(reasonTemplates[tmplIcebreakerCulture][lang], place))
		}
	}

	return out
}

func sharedHeritageName(sharedCodes []string, lang language) string {
	if len(sharedCodes) == 0 {
		return ""
	}
	if name, ok := lookup(backgroundNames, sharedCodes[0], lang); ok {
		return name
	}
	return sharedCodes[0]
}
