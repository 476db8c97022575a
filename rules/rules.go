package rules

import (
	guard "github.com/khidma/guard"
)

// safetyRules is the stock rule table for mission/content submissions.
// Order is significant twice over: categories appear in their declared
// priority order, and language groups keep a fixed order within each
// category. Latin-group patterns are compiled case-insensitively;
// ar/ur groups match exact codepoints.
var safetyRules = []guard.Rule{
	// drugs
	{Category: guard.CategoryDrugs, LangGroup: "en", Pattern: `cocaine|heroin|methamphetamine|crystal meth|\bmdma\b|ecstasy|\bweed\b|cannabis`},
	{Category: guard.CategoryDrugs, LangGroup: "fr", Pattern: `cocaïne|héroïne|\bdrogue\b`},
	{Category: guard.CategoryDrugs, LangGroup: "es", Pattern: `cocaína|heroína|\bdrogas\b`},
	{Category: guard.CategoryDrugs, LangGroup: "de", Pattern: `kokain|\bdrogen\b`},
	{Category: guard.CategoryDrugs, LangGroup: "it", Pattern: `cocaina|eroina`},
	{Category: guard.CategoryDrugs, LangGroup: "ar", Pattern: `مخدرات|كوكايين|حشيش|هيروين`},
	{Category: guard.CategoryDrugs, LangGroup: "ur", Pattern: `منشیات|چرس`},

	// adult_content
	{Category: guard.CategoryAdultContent, LangGroup: "en", Pattern: `\bporn\b|\bxxx\b|escort service|onlyfans|nude pics|sexcam`},
	{Category: guard.CategoryAdultContent, LangGroup: "fr", Pattern: `escorte|massage érotique|contenu pornographique`},
	{Category: guard.CategoryAdultContent, LangGroup: "es", Pattern: `pornografía|servicio de escort`},
	{Category: guard.CategoryAdultContent, LangGroup: "de", Pattern: `pornografie|erotikmassage`},
	{Category: guard.CategoryAdultContent, LangGroup: "it", Pattern: `pornografia`},
	{Category: guard.CategoryAdultContent, LangGroup: "ar", Pattern: `إباحي|محتوى جنسي`},

	// violence
	{Category: guard.CategoryViolence, LangGroup: "en", Pattern: `kill you|beat you up|gun for sale|hire a hitman`},
	{Category: guard.CategoryViolence, LangGroup: "fr", Pattern: `te tuer|vais te frapper`},
	{Category: guard.CategoryViolence, LangGroup: "es", Pattern: `te voy a matar|te mato`},
	{Category: guard.CategoryViolence, LangGroup: "de", Pattern: `bring dich um|ich töte dich`},
	{Category: guard.CategoryViolence, LangGroup: "it", Pattern: `ti ammazzo|ti uccido`},
	{Category: guard.CategoryViolence, LangGroup: "ar", Pattern: `سأقتلك|اقتلك`},

	// illegal_activity
	{Category: guard.CategoryIllegal, LangGroup: "en", Pattern: `fake passport|counterfeit|stolen goods|hacked account|money laundering`},
	{Category: guard.CategoryIllegal, LangGroup: "fr", Pattern: `faux papiers|passeport falsifié|marchandise volée`},
	{Category: guard.CategoryIllegal, LangGroup: "es", Pattern: `pasaporte falso|mercancía robada`},
	{Category: guard.CategoryIllegal, LangGroup: "de", Pattern: `gefälschte papiere|gestohlene ware`},
	{Category: guard.CategoryIllegal, LangGroup: "it", Pattern: `passaporto falso|merce rubata`},
	{Category: guard.CategoryIllegal, LangGroup: "ar", Pattern: `جواز مزور|أوراق مزورة|بضاعة مسروقة`},

	// profanity
	{Category: guard.CategoryProfanity, LangGroup: "en", Pattern: `\bfuck|\bshit\b|\bbitch\b|asshole`},
	{Category: guard.CategoryProfanity, LangGroup: "fr", Pattern: `\bmerde\b|putain|connard`},
	{Category: guard.CategoryProfanity, LangGroup: "es", Pattern: `\bputa\b|pendejo|cabrón`},
	{Category: guard.CategoryProfanity, LangGroup: "de", Pattern: `scheiße|scheisse|arschloch`},
	{Category: guard.CategoryProfanity, LangGroup: "it", Pattern: `\bcazzo\b|stronzo|vaffanculo`},
	{Category: guard.CategoryProfanity, LangGroup: "ar", Pattern: `يا حقير|يا حيوان`},
}

// contactRules is the narrower rule table used on chat messages. It
// catches contact-info leakage rather than general safety violations.
// The phone pattern opens on a whitespace boundary and closes on any
// non-digit, so sentence punctuation after a number still matches;
// decimals and version strings stay clean because they cannot satisfy
// the digit-group sizes.
var contactRules = []guard.Rule{
	{Category: guard.CategoryPhone, LangGroup: "any",
		Pattern: `(?:^|\s)(\+?\d{1,3}[-.\s]?)?\(?\d{2,4}\)?[-.\s]?\d{3,4}[-.\s]?\d{3,4}(?:\D|$)`},
	{Category: guard.CategoryEmail, LangGroup: "any",
		Pattern: `[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}`},
	{Category: guard.CategorySocialHandle, LangGroup: "any",
		Pattern: `@[a-z0-9_]{3,}|\b(whatsapp|telegram|instagram|insta\b|snapchat|signal)\b`},
	{Category: guard.CategoryURL, LangGroup: "any",
		Pattern: `https?://\S+|www\.\S+|\S+\.(com|net|org|io|co|xyz|info|biz)/\S*`},
}

// defaultWhitelist lists known-legitimate task phrases. A substring
// match against any of these bypasses rule evaluation entirely.
var defaultWhitelist = []guard.WhitelistPhrase{
	{Language: guard.LangEnglish, Phrase: "pet sitting"},
	{Language: guard.LangEnglish, Phrase: "dog walking"},
	{Language: guard.LangEnglish, Phrase: "house cleaning"},
	{Language: guard.LangEnglish, Phrase: "grocery shopping"},
	{Language: guard.LangEnglish, Phrase: "babysitting"},
	{Language: guard.LangEnglish, Phrase: "furniture assembly"},
	{Language: guard.LangFrench, Phrase: "garde d'animaux"},
	{Language: guard.LangFrench, Phrase: "garde d'enfants"},
	{Language: guard.LangFrench, Phrase: "garder mon chat"},
	{Language: guard.LangFrench, Phrase: "ménage à domicile"},
	{Language: guard.LangFrench, Phrase: "aide au déménagement"},
	{Language: guard.LangSpanish, Phrase: "cuidado de mascotas"},
	{Language: guard.LangSpanish, Phrase: "limpieza del hogar"},
	{Language: guard.LangGerman, Phrase: "haushaltshilfe"},
	{Language: guard.LangGerman, Phrase: "umzugshilfe"},
	{Language: guard.LangItalian, Phrase: "pulizie di casa"},
	{Language: guard.LangArabic, Phrase: "تنظيف المنزل"},
	{Language: guard.LangArabic, Phrase: "رعاية الحيوانات"},
}

// NewSafetyMatcher returns the stock matcher for mission and content
// submissions: the five safety categories plus the task whitelist.
func NewSafetyMatcher() *Matcher {
	return MustNew(safetyRules, defaultWhitelist)
}

// NewContactMatcher returns the stock matcher for chat messages. It
// carries no whitelist: a legitimate-looking sentence around a phone
// number is still a leak.
func NewContactMatcher() *Matcher {
	return MustNew(contactRules, nil)
}
