// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package fakedata is the curated fake-data pool provider.

It exposes finite, non-empty, immutable string arrays — first names, last
names, cities, and so on — that the anonymization registry samples from
deterministically. Every pool is loaded once at package init and never
mutated afterward, so concurrent readers never need to synchronize.

This package has no knowledge of hashing, databases, or the column-spec
algebra; it is pure, static data, mirroring the teacher repo's convention
of keeping `pkg/` free of business logic.
*/
package fakedata

// MaleFirstNames is a curated pool of common male first names.
var MaleFirstNames = []string{
	"James", "John", "Robert", "Michael", "William", "David", "Richard",
	"Joseph", "Thomas", "Charles", "Christopher", "Daniel", "Matthew",
	"Anthony", "Mark", "Donald", "Steven", "Paul", "Andrew", "Joshua",
	"Kenneth", "Kevin", "Brian", "George", "Edward", "Ronald", "Timothy",
	"Jason", "Jeffrey", "Ryan", "Jacob", "Gary", "Nicholas", "Eric",
	"Jonathan", "Stephen", "Larry", "Justin", "Scott", "Brandon",
}

// FemaleFirstNames is a curated pool of common female first names.
var FemaleFirstNames = []string{
	"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Barbara",
	"Susan", "Jessica", "Sarah", "Karen", "Nancy", "Lisa", "Margaret",
	"Betty", "Sandra", "Ashley", "Dorothy", "Kimberly", "Emily", "Donna",
	"Michelle", "Carol", "Amanda", "Melissa", "Deborah", "Stephanie",
	"Rebecca", "Laura", "Sharon", "Cynthia", "Kathleen", "Amy", "Shirley",
	"Angela", "Helen", "Anna", "Brenda", "Pamela", "Nicole", "Emma",
}

// FirstNames is the union pool used when gender is not distinguished.
var FirstNames = append(append([]string{}, MaleFirstNames...), FemaleFirstNames...)

// LastNames is a curated pool of common surnames.
var LastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
	"Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen", "King",
	"Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
}

// StreetSuffixes is a curated pool of street-name suffixes.
var StreetSuffixes = []string{
	"Street", "Avenue", "Boulevard", "Drive", "Court", "Lane", "Way",
	"Place", "Terrace", "Circle", "Trail", "Parkway", "Square", "Loop",
	"Crossing", "Ridge", "Hollow", "Path", "Row", "Walk",
}

// Cities is a curated pool of city names.
var Cities = []string{
	"Springfield", "Franklin", "Greenville", "Bristol", "Clinton",
	"Salem", "Fairview", "Madison", "Georgetown", "Arlington",
	"Ashland", "Burlington", "Centerville", "Dayton", "Jackson",
	"Kingston", "Lexington", "Manchester", "Oxford", "Riverside",
}

// States is a curated pool of US state names.
var States = []string{
	"California", "Texas", "Florida", "New York", "Pennsylvania",
	"Illinois", "Ohio", "Georgia", "North Carolina", "Michigan",
	"New Jersey", "Virginia", "Washington", "Arizona", "Massachusetts",
	"Tennessee", "Indiana", "Missouri", "Maryland", "Wisconsin",
}

// StateAbbreviations is the abbreviation pool, listed in the same order as
// States — callers still draw from it independently, matching spec.md's
// treatment of State and StateAbbr as separately-sampled pools.
var StateAbbreviations = []string{
	"CA", "TX", "FL", "NY", "PA", "IL", "OH", "GA", "NC", "MI",
	"NJ", "VA", "WA", "AZ", "MA", "TN", "IN", "MO", "MD", "WI",
}

// Countries is a curated pool of country names.
var Countries = []string{
	"United States", "Canada", "United Kingdom", "Germany", "France",
	"Australia", "Japan", "Brazil", "India", "Mexico", "Spain", "Italy",
	"Netherlands", "Sweden", "Norway", "Ireland", "Portugal", "Poland",
	"South Korea", "Argentina",
}

// ZipCodes is a curated pool of five-digit ZIP codes.
var ZipCodes = []string{
	"10001", "20002", "30301", "40201", "50301", "60601", "70112",
	"80201", "90001", "15201", "25301", "35201", "45201", "55401",
	"65101", "75201", "85001", "95814", "02101", "98101",
}

// EmailDomains is a curated pool of example email domains.
var EmailDomains = []string{
	"example.com", "example.org", "example.net", "mailbox.test",
	"inbox.test", "fakemail.dev", "staging.internal", "anonymized.test",
}

// LoremWords is a curated pool of filler words used by LoremText.
var LoremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
	"elit", "sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore",
	"et", "dolore", "magna", "aliqua", "enim", "ad", "minim", "veniam",
	"quis", "nostrud", "exercitation", "ullamco", "laboris", "nisi",
	"aliquip", "ex", "ea", "commodo", "consequat", "duis", "aute", "irure",
}
