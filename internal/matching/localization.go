package matching

// Localized strings consumed by the explanation generator. One table keyed
// by (templateID, language) rather than language conditionals scattered
// through the rendering code.

type language string

const (
	langEN language = "en"
	langPT language = "pt"
)

// reason template IDs
const (
	tmplSharedHeritage    = "reason.shared_heritage"
	tmplCrossCultural     = "reason.cross_cultural"
	tmplCommonInterests   = "reason.common_interests"
	tmplActiveCommunity   = "reason.active_community"
	tmplBothVerified      = "reason.both_verified"
	tmplIcebreakerGeneric = "icebreaker.generic_interest"
	tmplIcebreakerCulture = "icebreaker.culture"
)

// reasonTemplates hold fmt-style templates; %s slots are filled by the
// generator.
var reasonTemplates = map[string]map[language]string{
	tmplSharedHeritage: {
		langEN: "You share %s heritage",
		langPT: "Partilham herança %s",
	},
	tmplCrossCultural: {
		langEN: "A chance for cross-cultural exchange between lusophone communities",
		langPT: "Uma oportunidade de intercâmbio entre comunidades lusófonas",
	},
	tmplCommonInterests: {
		langEN: "Common interests: %s",
		langPT: "Interesses em comum: %s",
	},
	tmplActiveCommunity: {
		langEN: "Both of you are active in community events",
		langPT: "Ambos são ativos em eventos da comunidade",
	},
	tmplBothVerified: {
		langEN: "Both profiles completed heritage verification",
		langPT: "Ambos os perfis completaram a verificação de herança",
	},
	tmplIcebreakerGeneric: {
		langEN: "I noticed we both enjoy %s. What got you into it?",
		langPT: "Reparei que ambos gostamos de %s. Como começou esse interesse?",
	},
	tmplIcebreakerCulture: {
		langEN: "What do you miss most about %s?",
		langPT: "Do que sentes mais saudades de %s?",
	},
}

// interestIcebreakers carry a tailored conversation starter per known
// interest tag. Unknown tags fall back to the generic template.
var interestIcebreakers = map[string]map[language]string{
	"fado": {
		langEN: "Have you been to any fado nights in London? I'm always looking for the real thing.",
		langPT: "Já foste a alguma noite de fado em Londres? Ando sempre à procura do autêntico.",
	},
	"portuguese_cuisine": {
		langEN: "Best pastel de nata in the city: defend your pick.",
		langPT: "O melhor pastel de nata da cidade: defende a tua escolha.",
	},
	"football": {
		langEN: "Which club has your heart, here or back home?",
		langPT: "Qual é o teu clube do coração, aqui ou na terra?",
	},
	"community_events": {
		langEN: "Seen any good community events coming up? I try not to miss the festivals.",
		langPT: "Tens visto bons eventos da comunidade por aí? Tento não perder os festivais.",
	},
	"brazilian_music": {
		langEN: "Samba, bossa or MPB? I need new playlists.",
		langPT: "Samba, bossa ou MPB? Preciso de playlists novas.",
	},
	"cooking": {
		langEN: "What's the one dish from home you've mastered abroad?",
		langPT: "Qual é o prato da terra que já dominas aqui fora?",
	},
	"language_exchange": {
		langEN: "Always happy to trade Portuguese for English practice. Deal?",
		langPT: "Troco sempre português por prática de inglês. Combinado?",
	},
	"networking": {
		langEN: "What brought you to the community here: work, family, or adventure?",
		langPT: "O que te trouxe à comunidade: trabalho, família ou aventura?",
	},
	"cultural_education": {
		langEN: "If you could teach one tradition from home to everyone here, which one?",
		langPT: "Se pudesses ensinar uma tradição da tua terra a toda a gente aqui, qual seria?",
	},
}

// interestNames render interest tags as readable phrases inside reasons.
var interestNames = map[string]map[language]string{
	"fado":                      {langEN: "fado music", langPT: "música de fado"},
	"portuguese_cuisine":        {langEN: "Portuguese cuisine", langPT: "culinária portuguesa"},
	"football":                  {langEN: "football", langPT: "futebol"},
	"community_events":          {langEN: "community events", langPT: "eventos da comunidade"},
	"brazilian_music":           {langEN: "Brazilian music", langPT: "música brasileira"},
	"cooking":                   {langEN: "cooking", langPT: "cozinhar"},
	"language_exchange":         {langEN: "language exchange", langPT: "intercâmbio de línguas"},
	"networking":                {langEN: "networking", langPT: "networking"},
	"cultural_education":        {langEN: "cultural education", langPT: "educação cultural"},
	"african_lusophone_cuisine": {langEN: "African lusophone cuisine", langPT: "culinária lusófona africana"},
	"traditional_folk":          {langEN: "traditional folk music", langPT: "música folclórica tradicional"},
	"literature_poetry":         {langEN: "literature and poetry", langPT: "literatura e poesia"},
}

// backgroundNames map country/region codes to display names.
var backgroundNames = map[string]map[language]string{
	"PT": {langEN: "Portuguese", langPT: "portuguesa"},
	"BR": {langEN: "Brazilian", langPT: "brasileira"},
	"CV": {langEN: "Cape Verdean", langPT: "cabo-verdiana"},
	"AO": {langEN: "Angolan", langPT: "angolana"},
	"MZ": {langEN: "Mozambican", langPT: "moçambicana"},
	"GW": {langEN: "Guinea-Bissauan", langPT: "guineense"},
	"ST": {langEN: "São Toméan", langPT: "são-tomense"},
	"TL": {langEN: "Timorese", langPT: "timorense"},
	"MO": {langEN: "Macanese", langPT: "macaense"},
}

// backgroundPlaces name the place itself, used by culture icebreakers.
var backgroundPlaces = map[string]map[language]string{
	"PT": {langEN: "Portugal", langPT: "Portugal"},
	"BR": {langEN: "Brazil", langPT: "o Brasil"},
	"CV": {langEN: "Cape Verde", langPT: "Cabo Verde"},
	"AO": {langEN: "Angola", langPT: "Angola"},
	"MZ": {langEN: "Mozambique", langPT: "Moçambique"},
	"GW": {langEN: "Guinea-Bissau", langPT: "a Guiné-Bissau"},
	"ST": {langEN: "São Tomé and Príncipe", langPT: "São Tomé e Príncipe"},
	"TL": {langEN: "Timor-Leste", langPT: "Timor-Leste"},
	"MO": {langEN: "Macau", langPT: "Macau"},
}

func lookup(table map[string]map[language]string, key string, lang language) (string, bool) {
	byLang, ok := table[key]
	if !ok {
		return "", false
	}
	s, ok := byLang[lang]
	return s, ok
}

// interestName falls back to the raw tag with underscores spaced out.
func interestName(tag string, lang language) string {
	if s, ok := lookup(interestNames, tag, lang); ok {
		return s
	}
	return humanizeTag(tag)
}

func humanizeTag(tag string) string {
	out := make([]byte, len(tag))
	for i := 0; i < len(tag); i++ {
		if tag[i] == '_' {
			out[i] = ' '
		} else {
			out[i] = tag[i]
		}
	}
	return string(out)
}
