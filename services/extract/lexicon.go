// File: services/extract/lexicon.go
package extract

import "frontdesk/models"

// DefaultLexicon returns the shipped word lists. Tenants override any list by
// setting it on their document; MergeLexicon fills the gaps so classifiers
// always see a complete lexicon.
func DefaultLexicon() models.Lexicon {
	return models.Lexicon{
		ConsentPhrases: []string{
			"book an appointment", "schedule an appointment", "set up an appointment",
			"schedule a visit", "book a visit", "go ahead and schedule",
			"let's schedule", "let's book it", "sign me up", "set that up",
		},
		AffirmativeWords: []string{
			"yes", "yeah", "yep", "yup", "sure", "ok", "okay", "correct",
			"right", "absolutely", "definitely", "please", "sounds good",
		},
		NegationWords: []string{
			"no", "nope", "not", "don't", "dont", "never", "wrong", "incorrect",
		},
		UrgencyPhrases: []string{
			"as soon as possible", "asap", "right away", "immediately",
			"right now", "emergency", "urgent", "today if possible",
		},
		Greetings: []string{
			"hi", "hey", "hello", "good", "morning", "afternoon", "evening",
			"howdy", "thanks", "thank",
		},
		DomainNouns: []string{
			"unit", "system", "furnace", "heater", "thermostat", "conditioner",
			"ac", "hvac", "water", "leak", "pipe", "drain", "appointment",
			"service", "technician", "house", "home",
		},
		AuxiliaryVerbs: []string{
			"is", "am", "are", "was", "were", "be", "been", "calling", "need",
			"want", "have", "has", "can", "could", "would", "should",
		},
		StreetTypes: []string{
			"street", "st", "road", "rd", "avenue", "ave", "drive", "dr",
			"lane", "ln", "boulevard", "blvd", "court", "ct", "circle", "cir",
			"way", "place", "pl", "terrace", "trail", "highway", "hwy", "parkway",
		},
		ComplaintPhrases: []string{
			"years old", "year old", "not cooling", "not heating", "not working",
			"degrees", "days ago", "weeks ago", "months ago",
		},
		FillerWords: []string{
			"uh", "um", "like", "it's", "its", "the", "number", "is", "my",
			"phone", "cell", "dash",
		},
		TimeOfDayWords: []string{
			"morning", "afternoon", "evening", "noon", "tonight", "midday",
		},
		RelativeDayWords: []string{
			"today", "tomorrow", "tonight",
		},
		WeekdayNames: []string{
			"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
		},
		TimePrepositions: []string{
			"at", "around", "by", "before", "after",
		},
		Interrogatives: []string{
			"what", "when", "where", "who", "why", "how", "do", "does", "did",
			"is", "are", "can", "could", "will", "would", "should",
		},
		InterruptKeywords: []string{
			"price", "pricing", "cost", "charge", "fee", "estimate",
			"availability", "available", "soonest", "warranty", "guarantee",
			"hours", "open", "closed", "licensed", "insured",
		},
		CommonFirstNames: []string{
			"james", "john", "robert", "michael", "david", "william", "richard",
			"mary", "patricia", "jennifer", "linda", "elizabeth", "susan",
			"mark", "paul", "steven", "kevin", "brian", "sarah", "karen",
			"lisa", "nancy", "betty", "sandra", "daniel", "matthew", "anthony",
			"dana", "chris", "mike", "tom", "joe", "sam", "anna", "emma",
		},
		NewBookingKeywords: []string{
			"new booking", "another appointment", "book another", "one more appointment",
			"schedule another",
		},
	}
}

// MergeLexicon overlays tenant lists onto the defaults; empty tenant lists
// keep the default.
func MergeLexicon(tenant models.Lexicon) models.Lexicon {
	def := DefaultLexicon()
	pick := func(override, fallback []string) []string {
		if len(override) > 0 {
			return override
		}
		return fallback
	}
	return models.Lexicon{
		ConsentPhrases:     pick(tenant.ConsentPhrases, def.ConsentPhrases),
		AffirmativeWords:   pick(tenant.AffirmativeWords, def.AffirmativeWords),
		NegationWords:      pick(tenant.NegationWords, def.NegationWords),
		UrgencyPhrases:     pick(tenant.UrgencyPhrases, def.UrgencyPhrases),
		Greetings:          pick(tenant.Greetings, def.Greetings),
		DomainNouns:        pick(tenant.DomainNouns, def.DomainNouns),
		AuxiliaryVerbs:     pick(tenant.AuxiliaryVerbs, def.AuxiliaryVerbs),
		StreetTypes:        pick(tenant.StreetTypes, def.StreetTypes),
		ComplaintPhrases:   pick(tenant.ComplaintPhrases, def.ComplaintPhrases),
		FillerWords:        pick(tenant.FillerWords, def.FillerWords),
		TimeOfDayWords:     pick(tenant.TimeOfDayWords, def.TimeOfDayWords),
		RelativeDayWords:   pick(tenant.RelativeDayWords, def.RelativeDayWords),
		WeekdayNames:       pick(tenant.WeekdayNames, def.WeekdayNames),
		TimePrepositions:   pick(tenant.TimePrepositions, def.TimePrepositions),
		Interrogatives:     pick(tenant.Interrogatives, def.Interrogatives),
		InterruptKeywords:  pick(tenant.InterruptKeywords, def.InterruptKeywords),
		CommonFirstNames:   pick(tenant.CommonFirstNames, def.CommonFirstNames),
		NewBookingKeywords: pick(tenant.NewBookingKeywords, def.NewBookingKeywords),
	}
}
