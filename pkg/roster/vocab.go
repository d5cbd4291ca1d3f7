package roster

// Hand-curated vocabularies tuned against a corpus of archived conference
// sites. These tables are the main accuracy lever when pointing the scraper
// at new sites, so they all live here rather than inline at their use sites.

// sectionKeywords drive the heading-bounded section scan per committee kind.
// Local sections are never located by heading; the kind exists for
// classification and storage only.
var sectionKeywords = map[Kind][]string{
	KindPC: {
		"program committee",
		"pc members",
		"programme committee",
	},
	KindOC: {
		"organizing committee",
		"organising committee",
		"local organizing committee",
		"local organising committee",
		"organization",
		"organisers",
		"organizers",
	},
	KindSC: {
		"steering committee",
		"sc members",
	},
}

// memberClasses are semantic CSS classes likely to wrap a single roster
// entry. The bare "member" and "speaker" classes are too generic outside a
// div, so those require the div tag.
var memberClasses = []string{"committee-member", "person", "team-member"}
var memberDivClasses = []string{"member", "speaker"}

// entryBlacklist rejects navigation, menu, and section-header fragments.
// Applied only to short fragments (< 50 chars) so a real entry that happens
// to mention one of these words is not dropped.
var entryBlacklist = []string{
	"committee", "members:", "chair:", "co-chair:", "organizers:",
	"accepted papers", "call for papers", "code of conduct", "charter",
	"schedule", "speakers", "poster", "pictures", "sponsors", "partners",
	"twitter", "youtube", "linkedin", "facebook", "instagram",
	"& 202", "proceedings", "registration", "venue", "travel",
	"accommodation", "contact", "about", "home", "news", "archive",
	"previous", "next", "program", "tutorials", "workshops",
	"support", "members only", "login", "logout", "search",
	"steering committee", "program committee", "organizing committee",
	"general chairs", "program chairs", "local arrangements",
}

// roleKeywords disambiguate role text from affiliations after a separator.
var roleKeywords = []string{"chair", "member", "organizer"}

// institutionKeywords mark where an affiliation starts in the "Site" entry
// format ("Anne Broadbent University of Ottawa Site PC primary chair").
var institutionKeywords = map[string]bool{
	"university": true, "institute": true, "college": true, "laboratory": true,
	"center": true, "centre": true, "school": true, "department": true,
	"lab": true, "research": true, "academy": true, "national": true,
	"ministry": true, "agency": true, "corporation": true, "company": true,
	"foundation": true, "society": true, "organization": true,
	"organisation": true, "consortium": true, "jpmorgan": true, "amazon": true,
	"google": true, "microsoft": true, "ibm": true, "aws": true, "ntt": true,
	"cesga": true, "cnrs": true, "inria": true, "eth": true, "mit": true,
	"caltech": true, "weizmann": true, "fraunhofer": true,
}

// positionRules map role keywords to positions, most specific first. The
// generic "chair" catch-all must stay last among the chair rules so titled
// chairs win.
var positionRules = []struct {
	keywords []string
	position Position
	title    string
}{
	{[]string{"general chair", "conference chair"}, PositionChair, "General Chair"},
	{[]string{"program chair", "pc chair", "pc primary chair"}, PositionChair, "Program Chair"},
	{[]string{"steering chair", "sc chair"}, PositionChair, "Steering Chair"},
	{[]string{"local chair"}, PositionChair, "Local Chair"},
	{[]string{"co-chair", "cochair", "pc co-chair"}, PositionCoChair, ""},
	{[]string{"area chair", "senior pc"}, PositionAreaChair, ""},
	{[]string{"chair"}, PositionChair, ""},
}

// SectionKeywords returns the heading keywords for a committee kind.
func SectionKeywords(kind Kind) []string {
	return sectionKeywords[kind]
}

// MemberClasses returns CSS classes that mark roster entries on any element.
func MemberClasses() []string {
	return memberClasses
}

// MemberDivClasses returns CSS classes that mark roster entries only on divs.
func MemberDivClasses() []string {
	return memberDivClasses
}
