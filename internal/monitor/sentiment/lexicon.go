package sentiment

// The lexicon maps financial news vocabulary to sentiment weights. Phrases
// are matched before single words so that e.g. "beats expectations" scores as
// one strong positive hit rather than a lone "beats".

type weightedPhrase struct {
	text   string
	weight float64
}

var lexiconPhrases = []weightedPhrase{
	{"beats expectations", 2},
	{"better than expected", 2},
	{"record high", 2},
	{"all-time high", 2},
	{"rate cut", 1},
	{"stimulus package", 1},
	{"trade deal", 1},
	{"misses expectations", -2},
	{"worse than expected", -2},
	{"record low", -2},
	{"rate hike", -1},
	{"interest rates rise", -1},
	{"trade war", -2},
	{"debt ceiling", -1},
	{"credit crunch", -2},
	{"hard landing", -2},
	{"soft landing", 1},
}

var lexiconWords = map[string]float64{
	// bullish vocabulary
	"gain": 1, "gains": 1, "rally": 1, "rallies": 1, "surge": 1, "surges": 1,
	"soar": 1, "soars": 1, "soared": 1, "jump": 1, "jumps": 1, "jumped": 1,
	"rise": 1, "rises": 1, "rose": 1, "climb": 1, "climbs": 1, "climbed": 1,
	"boom": 1, "boost": 1, "boosts": 1, "boosted": 1, "growth": 1, "grows": 1,
	"recovery": 1, "recovers": 1, "rebound": 1, "rebounds": 1, "rebounded": 1,
	"optimism": 1, "optimistic": 1, "strong": 1, "strengthens": 1,
	"strengthened": 1, "upbeat": 1, "beats": 1, "exceeds": 1, "exceeded": 1,
	"expansion": 1, "expands": 1, "profit": 1, "profits": 1, "bullish": 1,
	"upgrade": 1, "upgraded": 1, "improves": 1, "improved": 1, "hiring": 1,
	"breakthrough": 1, "milestone": 1, "stabilizes": 1, "confidence": 1,
	"investment": 1, "invests": 1, "thriving": 1, "robust": 1,

	// bearish vocabulary
	"fall": -1, "falls": -1, "fell": -1, "drop": -1, "drops": -1,
	"dropped": -1, "plunge": -1, "plunges": -1, "plunged": -1,
	"plummet": -1, "plummets": -1, "plummeted": -1, "slump": -1,
	"slumps": -1, "slumped": -1, "crash": -1, "crashes": -1, "crashed": -1,
	"crisis": -1, "recession": -1, "downturn": -1, "decline": -1,
	"declines": -1, "declined": -1, "loss": -1, "losses": -1, "layoff": -1,
	"layoffs": -1, "weak": -1, "weakens": -1, "weakened": -1, "fear": -1,
	"fears": -1, "warning": -1, "warns": -1, "warned": -1, "default": -1,
	"bankruptcy": -1, "bankrupt": -1, "deficit": -1, "bearish": -1,
	"downgrade": -1, "downgraded": -1, "slowdown": -1, "slows": -1,
	"contraction": -1, "tumble": -1, "tumbles": -1, "tumbled": -1,
	"sinks": -1, "sank": -1, "turmoil": -1, "uncertainty": -1,
	"volatile": -1, "volatility": -1, "shortage": -1, "shortages": -1,
	"strike": -1, "strikes": -1, "sanctions": -1, "tariffs": -1,
	"inflation": -1, "stagflation": -1, "unemployment": -1, "collapse": -1,
	"collapses": -1, "collapsed": -1, "selloff": -1, "jitters": -1,
}
