package confidence

// Heuristic tables are data, separated from scoring logic so they can be
// tuned without touching the match pipeline. All entries are lowercase.

// testPathMarkers demote a match found under a test or fixture path.
var testPathMarkers = []string{
	"/test/",
	"/tests/",
	"/testdata/",
	"/fixtures/",
	"/fixture/",
	"/spec/",
	"/specs/",
	"/mocks/",
	"/mock/",
	"/__tests__/",
	"_test.",
	".test.",
	".spec.",
	"/test_",
	"conftest.",
}

// placeholderKeywords demote a match whose text looks like documentation or
// scaffolding rather than a live value.
var placeholderKeywords = []string{
	"example",
	"xxxx",
	"changeme",
	"change-me",
	"change_me",
	"dummy",
	"placeholder",
	"your-",
	"your_",
	"yourkey",
	"sample",
	"fake",
	"redacted",
	"not-real",
	"notreal",
	"****",
	"<key>",
	"<token>",
	"<secret>",
	"<password>",
	"todo",
}

// secretCategory names the rule family eligible for credential-shape
// promotion.
const secretCategory = "hardcoded-secret"

// Credential-shape bounds: real credentials are long mixed-class tokens.
const (
	minCredentialLen = 20
	maxCredentialLen = 128
)
