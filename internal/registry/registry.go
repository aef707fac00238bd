// Package registry holds the built-in catalog of AI/ML companies the scanner
// knows how to reach. Entries carry the ATS kind and board token an adapter
// needs; config-file companies are merged over this set at load time.
package registry

import "sort"

// ATS identifies the applicant-tracking system a company's board lives on.
type ATS string

const (
	ATSGreenhouse ATS = "greenhouse"
	ATSLever      ATS = "lever"
	ATSAshby      ATS = "ashby"
	// ATSCareers marks companies with no public board API; their careers
	// page is scraped directly.
	ATSCareers ATS = "careers"
)

// Company is one registry entry. BoardToken is the company's slug on its ATS
// (empty for careers-page companies); CareersURL is the human-facing page and
// the scrape target for ATSCareers entries.
type Company struct {
	Key        string
	Name       string
	ATS        ATS
	BoardToken string
	CareersURL string
	Tier       int
}

// HasAPI reports whether the company can be fetched through a board API
// rather than scraped.
func (c Company) HasAPI() bool {
	return c.ATS == ATSGreenhouse || c.ATS == ATSLever || c.ATS == ATSAshby
}

// Tiers run 1 (frontier labs) through 6 (established tech with large ML
// orgs); lower tiers are scanned first.
var companies = []Company{
	// Tier 1: frontier AI labs
	{Key: "openai", Name: "OpenAI", ATS: ATSAshby, BoardToken: "openai", CareersURL: "https://openai.com/careers", Tier: 1},
	{Key: "anthropic", Name: "Anthropic", ATS: ATSGreenhouse, BoardToken: "anthropic", CareersURL: "https://www.anthropic.com/careers", Tier: 1},
	{Key: "deepmind", Name: "Google DeepMind", ATS: ATSCareers, CareersURL: "https://www.deepmind.com/careers/jobs", Tier: 1},
	{Key: "mistral", Name: "Mistral AI", ATS: ATSCareers, CareersURL: "https://mistral.ai/careers", Tier: 1},

	// Tier 2: AI-first unicorns
	{Key: "cohere", Name: "Cohere", ATS: ATSAshby, BoardToken: "cohere", CareersURL: "https://cohere.com/careers", Tier: 2},
	{Key: "inflection", Name: "Inflection AI", ATS: ATSGreenhouse, BoardToken: "inflectionai", CareersURL: "https://inflection.ai/careers", Tier: 2},
	{Key: "scale", Name: "Scale AI", ATS: ATSGreenhouse, BoardToken: "scaleai", CareersURL: "https://scale.com/careers", Tier: 2},
	{Key: "huggingface", Name: "Hugging Face", ATS: ATSCareers, CareersURL: "https://apply.workable.com/huggingface", Tier: 2},
	{Key: "perplexity", Name: "Perplexity AI", ATS: ATSCareers, CareersURL: "https://www.perplexity.ai/careers", Tier: 2},
	{Key: "anyscale", Name: "Anyscale", ATS: ATSLever, BoardToken: "anyscale", CareersURL: "https://www.anyscale.com/careers", Tier: 2},

	// Tier 3: ML infrastructure and tooling
	{Key: "wandb", Name: "Weights & Biases", ATS: ATSGreenhouse, BoardToken: "wandb", CareersURL: "https://wandb.ai/site/careers", Tier: 3},
	{Key: "pinecone", Name: "Pinecone", ATS: ATSGreenhouse, BoardToken: "pinecone", CareersURL: "https://www.pinecone.io/careers", Tier: 3},
	{Key: "snorkel", Name: "Snorkel AI", ATS: ATSGreenhouse, BoardToken: "snorkelai", CareersURL: "https://snorkel.ai/careers", Tier: 3},
	{Key: "labelbox", Name: "Labelbox", ATS: ATSGreenhouse, BoardToken: "labelbox", CareersURL: "https://labelbox.com/company/careers", Tier: 3},
	{Key: "coreweave", Name: "CoreWeave", ATS: ATSGreenhouse, BoardToken: "coreweave", CareersURL: "https://www.coreweave.com/careers", Tier: 3},
	{Key: "weaviate", Name: "Weaviate", ATS: ATSCareers, CareersURL: "https://weaviate.io/company/careers", Tier: 3},

	// Tier 4: AI-powered products
	{Key: "notion", Name: "Notion", ATS: ATSGreenhouse, BoardToken: "notion", CareersURL: "https://www.notion.so/careers", Tier: 4},
	{Key: "replit", Name: "Replit", ATS: ATSLever, BoardToken: "replit", CareersURL: "https://replit.com/site/careers", Tier: 4},
	{Key: "grammarly", Name: "Grammarly", ATS: ATSGreenhouse, BoardToken: "grammarly", CareersURL: "https://www.grammarly.com/jobs", Tier: 4},
	{Key: "runway", Name: "Runway", ATS: ATSGreenhouse, BoardToken: "runwayml", CareersURL: "https://runwayml.com/careers", Tier: 4},
	{Key: "figma", Name: "Figma", ATS: ATSGreenhouse, BoardToken: "figma", CareersURL: "https://www.figma.com/careers", Tier: 4},
	{Key: "harvey", Name: "Harvey AI", ATS: ATSGreenhouse, BoardToken: "harvey", CareersURL: "https://www.harvey.ai/careers", Tier: 4},
	{Key: "elevenlabs", Name: "ElevenLabs", ATS: ATSCareers, CareersURL: "https://elevenlabs.io/careers", Tier: 4},

	// Tier 5: autonomy and robotics
	{Key: "figure", Name: "Figure AI", ATS: ATSLever, BoardToken: "figureai", CareersURL: "https://www.figure.ai/careers", Tier: 5},
	{Key: "skydio", Name: "Skydio", ATS: ATSGreenhouse, BoardToken: "skydio", CareersURL: "https://www.skydio.com/careers", Tier: 5},
	{Key: "nuro", Name: "Nuro", ATS: ATSGreenhouse, BoardToken: "nuro", CareersURL: "https://www.nuro.ai/careers", Tier: 5},
	{Key: "aurora", Name: "Aurora", ATS: ATSGreenhouse, BoardToken: "aurorainnovation", CareersURL: "https://aurora.tech/careers", Tier: 5},
	{Key: "zipline", Name: "Zipline", ATS: ATSGreenhouse, BoardToken: "zipline", CareersURL: "https://www.flyzipline.com/careers", Tier: 5},

	// Tier 6: established tech with large ML orgs
	{Key: "datarobot", Name: "DataRobot", ATS: ATSGreenhouse, BoardToken: "datarobot", CareersURL: "https://www.datarobot.com/careers", Tier: 6},
	{Key: "dataiku", Name: "Dataiku", ATS: ATSGreenhouse, BoardToken: "dataiku", CareersURL: "https://www.dataiku.com/careers", Tier: 6},
	{Key: "palantir", Name: "Palantir", ATS: ATSGreenhouse, BoardToken: "palantir", CareersURL: "https://www.palantir.com/careers", Tier: 6},
	{Key: "samsara", Name: "Samsara", ATS: ATSGreenhouse, BoardToken: "samsara", CareersURL: "https://www.samsara.com/company/careers", Tier: 6},
}

var byKey = func() map[string]Company {
	m := make(map[string]Company, len(companies))
	for _, c := range companies {
		m[c.Key] = c
	}
	return m
}()

// Get looks up a company by key.
func Get(key string) (Company, bool) {
	c, ok := byKey[key]
	return c, ok
}

// All returns every registry entry ordered by tier, then key.
func All() []Company {
	out := append([]Company(nil), companies...)
	Sort(out)
	return out
}

// ByTier returns the entries of one tier, ordered by key.
func ByTier(tier int) []Company {
	var out []Company
	for _, c := range companies {
		if c.Tier == tier {
			out = append(out, c)
		}
	}
	Sort(out)
	return out
}

// Top returns the first n companies in tier order, all of them when n is
// zero or exceeds the registry size.
func Top(n int) []Company {
	all := All()
	if n <= 0 || n >= len(all) {
		return all
	}
	return all[:n]
}

// WithAPI returns the companies reachable through a board API, in tier order.
func WithAPI() []Company {
	var out []Company
	for _, c := range companies {
		if c.HasAPI() {
			out = append(out, c)
		}
	}
	Sort(out)
	return out
}

// Sort orders companies in place by tier, then key.
func Sort(cs []Company) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Tier != cs[j].Tier {
			return cs[i].Tier < cs[j].Tier
		}
		return cs[i].Key < cs[j].Key
	})
}
