package rules

import "github.com/Shubhamprana/Shabari-sub003/internal/core"

const builtinVersion = "2025.08.1"

// Fraud pattern tags reported by the content analyzer. Kept here so the
// rule table and the fusion engine agree on spelling.
const (
	TagUrgency         = "Urgency Language"
	TagThreat          = "Threat Language"
	TagReward          = "Fake Reward/Prize Claim"
	TagHarvesting      = "Information Harvesting"
	TagSocialEng       = "Social Engineering"
	TagSuspiciousLinks = "Suspicious Links"
)

var builtinRules = []Rule{
	// Urgency and time pressure.
	{ID: "urgency/keyword", Category: CategoryUrgency, Tag: TagUrgency,
		Pattern: `(?i)\b(urgent|urgently|immediately|right now|act now|hurry|asap)\b`,
		Note:    "urgent action demanded"},
	{ID: "urgency/deadline", Category: CategoryUrgency, Tag: TagUrgency,
		Pattern: `(?i)\bwithin\s+\d+\s*(hours?|hrs?|minutes?|mins?|days?)\b`,
		Note:    "artificial deadline"},
	{ID: "urgency/expiry", Category: CategoryUrgency, Tag: TagUrgency,
		Pattern: `(?i)\b(expires?|expiring|valid)\s+(today|tonight|soon|in\s+\d+)`,
		Note:    "expiry pressure"},
	{ID: "urgency/last-chance", Category: CategoryUrgency, Tag: TagUrgency,
		Pattern: `(?i)\b(last\s+chance|final\s+(warning|notice|reminder)|dont\s+delay|don't\s+delay)\b`,
		Note:    "final warning framing"},

	// Threats and account actions.
	{ID: "threat/account-action", Category: CategoryThreat, Tag: TagThreat,
		Pattern: `(?i)\b(account|card|sim|number|service)\b.{0,48}\b(blocked|suspended|locked|frozen|deactivated|disconnected|terminated)\b`,
		Note:    "account takedown threat"},
	{ID: "threat/will-be", Category: CategoryThreat, Tag: TagThreat,
		Pattern: `(?i)\bwill\s+be\s+(blocked|suspended|closed|deactivated|cancelled|seized)\b`,
		Note:    "conditional takedown threat"},
	{ID: "threat/legal", Category: CategoryThreat, Tag: TagThreat,
		Pattern: `(?i)\b(legal\s+action|police|arrest(ed)?|court\s+notice|penalty|fir\s+filed)\b`,
		Note:    "legal intimidation"},
	{ID: "threat/kyc", Category: CategoryThreat, Tag: TagThreat,
		Pattern: `(?i)\bkyc\b.{0,32}\b(expire[ds]?|pending|suspend(ed)?|update|incomplete)\b`,
		Note:    "KYC expiry scare"},

	// Rewards, prizes and free money.
	{ID: "reward/winner", Category: CategoryReward, Tag: TagReward,
		Pattern: `(?i)\b(congratulations?|you\s+(have\s+)?won|winner|lucky\s+(draw|winner))\b`,
		Note:    "unexpected winnings"},
	{ID: "reward/prize", Category: CategoryReward, Tag: TagReward,
		Pattern: `(?i)\b(lottery|jackpot|prize|reward\s+points?\s+(expiring|waiting)|free\s+(gift|recharge|cashback))\b`,
		Note:    "prize bait"},
	{ID: "reward/claim", Category: CategoryReward, Tag: TagReward,
		Pattern: `(?i)\bclaim\s+(your|now|before|prize|reward)\b`,
		Note:    "claim-now bait"},

	// Credential, OTP and link harvesting.
	{ID: "harvesting/otp", Category: CategoryHarvesting, Tag: TagHarvesting,
		Pattern: `(?i)\b(share|send|tell|enter|provide|give)\b.{0,32}\b(otp|one.?time\s+password|verification\s+code|pin|cvv|password)\b`,
		Note:    "asks for OTP or credentials"},
	{ID: "harvesting/verify", Category: CategoryHarvesting, Tag: TagHarvesting,
		Pattern: `(?i)\b(verify|confirm|validate|re.?activate)\b.{0,24}\b(your|ur)\b.{0,24}\b(account|identity|details|card|number|kyc)\b`,
		Note:    "identity verification lure"},
	{ID: "harvesting/click", Category: CategoryHarvesting, Tag: TagHarvesting,
		Pattern: `(?i)\b(click|tap|open|follow)\b.{0,16}\b(here|link|below|this)\b`,
		Note:    "link-click lure"},
	{ID: "harvesting/update-details", Category: CategoryHarvesting, Tag: TagHarvesting,
		Pattern: `(?i)\bupdate\s+(your\s+)?(kyc|pan|aadhaar|aadhar|bank\s+details|card\s+details)\b`,
		Note:    "document update lure"},

	// Social engineering phrasing. Deliberately narrower than a bare
	// formal greeting: transactional alerts open with "Dear Customer"
	// too.
	{ID: "social/greeting-demand", Category: CategorySocialEngineering, Tag: TagSocialEng,
		Pattern: `(?i)\bdear\s+(valued\s+)?(customer|user|sir|madam|account\s+holder)\b.{0,64}\b(kindly|please|must|immediately)\b.{0,24}\b(click|verify|share|update|call|confirm|pay)\b`,
		Note:    "formal greeting with a demand"},
	{ID: "social/impersonation", Category: CategorySocialEngineering, Tag: TagSocialEng,
		Pattern: `(?i)\b(i am|this is|calling|writing)\s+(from|on behalf of)\s+(your\s+)?(bank|rbi|income\s+tax|customs|police|telecom)\b`,
		Note:    "claims to act for an authority"},
	{ID: "social/noticed-activity", Category: CategorySocialEngineering, Tag: TagSocialEng,
		Pattern: `(?i)\b(we|bank)\s+(have\s+)?(noticed|detected|observed)\s+(suspicious|unusual|unauthori[sz]ed)\b`,
		Note:    "manufactured security scare"},
	{ID: "social/needful", Category: CategorySocialEngineering, Tag: TagSocialEng,
		Pattern: `(?i)\b(kindly\s+(cooperate|do\s+the\s+needful)|your\s+cooperation\s+is\s+(required|appreciated))\b`,
		Note:    "compliance pressure phrasing"},
	{ID: "social/secrecy", Category: CategorySocialEngineering, Tag: TagSocialEng,
		Pattern: `(?i)\b(do\s+not\s+(share|tell|disclose)\s+(this|with)|keep\s+(this\s+)?confidential)\b`,
		Note:    "secrecy instruction"},

	// Suspicious links.
	{ID: "link/shortener", Category: CategorySuspiciousLink, Tag: TagSuspiciousLinks,
		Pattern: `(?i)\b(bit\.ly|tinyurl\.com|goo\.gl|t\.co|ow\.ly|is\.gd|cutt\.ly|rb\.gy|rebrand\.ly)/`,
		Note:    "URL shortener hides destination"},
	{ID: "link/throwaway-tld", Category: CategorySuspiciousLink, Tag: TagSuspiciousLinks,
		Pattern: `(?i)[a-z0-9][a-z0-9\-]*\.(tk|ml|ga|cf|gq|pw|xyz|top|buzz|club)(/|\b)`,
		Note:    "throwaway top-level domain"},
	{ID: "link/phishing-prefix", Category: CategorySuspiciousLink, Tag: TagSuspiciousLinks,
		Pattern: `(?i)\b(secure|verify|update|account|login|signin|confirm|kyc)-[a-z0-9\-]+\.`,
		Note:    "phishing-style subdomain prefix"},
	{ID: "link/raw-ip", Category: CategorySuspiciousLink, Tag: TagSuspiciousLinks,
		Pattern: `(?i)https?://\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`,
		Note:    "bare IP address URL"},

	// Sender shapes.
	{ID: "sender/dlt-header", Category: CategoryLegitimateSender,
		Pattern: `^[A-Z]{2}-[A-Z0-9]{6}$`,
		Note:    "registered DLT header shape"},
	{ID: "sender/fake-bank", Category: CategorySuspiciousSender,
		Pattern: `^(SBI|HDFC|ICICI|AXIS|PNB|KOTAK|BOB|CANARA|RBI)[A-Z]*\d{3,}$`,
		Note:    "bank name with trailing digits"},
	{ID: "sender/fake-government", Category: CategorySuspiciousSender,
		Pattern: `^(UIDAI|EPFO|GOVT?|INCOMETAX|ITDEPT|NREGA)[A-Z]*\d{2,}$`,
		Note:    "government name with trailing digits"},
	{ID: "sender/bare-code", Category: CategorySuspiciousSender,
		Pattern: `^[A-Z]{1,3}\d{5,}$`,
		Note:    "bare alphanumeric bulk code"},
}

var builtinInstitutions = []Institution{
	{Code: "SBIINB", Name: "State Bank of India", Type: core.SenderBank},
	{Code: "SBIUPI", Name: "State Bank of India UPI", Type: core.SenderBank},
	{Code: "HDFCBK", Name: "HDFC Bank", Type: core.SenderBank},
	{Code: "ICICIB", Name: "ICICI Bank", Type: core.SenderBank},
	{Code: "AXISBK", Name: "Axis Bank", Type: core.SenderBank},
	{Code: "PNBSMS", Name: "Punjab National Bank", Type: core.SenderBank},
	{Code: "KOTAKB", Name: "Kotak Mahindra Bank", Type: core.SenderBank},
	{Code: "CANBNK", Name: "Canara Bank", Type: core.SenderBank},
	{Code: "PAYTMB", Name: "Paytm Payments Bank", Type: core.SenderBank},
	{Code: "UIDAI", Name: "Unique Identification Authority of India", Type: core.SenderGovernment},
	{Code: "EPFOHO", Name: "Employees' Provident Fund Organisation", Type: core.SenderGovernment},
	{Code: "ITDEPT", Name: "Income Tax Department", Type: core.SenderGovernment},
	{Code: "NPCIBH", Name: "National Payments Corporation of India", Type: core.SenderGovernment},
	{Code: "IRCTCI", Name: "Indian Railway Catering and Tourism Corporation", Type: core.SenderBusiness},
	{Code: "AMAZON", Name: "Amazon India", Type: core.SenderBusiness},
	{Code: "FLPKRT", Name: "Flipkart", Type: core.SenderBusiness},
	{Code: "PHONPE", Name: "PhonePe", Type: core.SenderBusiness},
	{Code: "AIRTEL", Name: "Bharti Airtel", Type: core.SenderBusiness},
	{Code: "JIOINF", Name: "Reliance Jio", Type: core.SenderBusiness},
}

// Keyword stems used to tag explicit impersonation when a suspicious
// sender shape contains a bank- or government-like substring.
var (
	bankKeywords       = []string{"SBI", "HDFC", "ICICI", "AXIS", "PNB", "KOTAK", "BOB", "CANARA", "RBI", "BANK"}
	governmentKeywords = []string{"UIDAI", "EPFO", "GOVT", "GOV", "INCOMETAX", "ITDEPT", "NREGA", "AADHAAR"}
)

// BankKeywords returns the bank-name stems for impersonation tagging.
func (l *Library) BankKeywords() []string {
	return bankKeywords
}

// GovernmentKeywords returns the government-name stems for
// impersonation tagging.
func (l *Library) GovernmentKeywords() []string {
	return governmentKeywords
}

var builtinMisspellings = []string{
	"recieve", "acount", "accnt", "verifiy", "varification",
	"imediately", "urjent", "costumer", "custmer", "kindley",
	"buisness", "securty", "blokced", "suspnded",
}
