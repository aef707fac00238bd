// Package vocab holds the keyword tables shared by profile extraction and
// job scoring. Tables are plain data injected at construction time so tests
// can substitute fixtures and multiple matchers can coexist in one process.
package vocab

import "github.com/neilv/neilsearch/internal/model"

// Tables bundles every keyword list the extractor and matcher consume.
// A Tables value is treated as immutable after construction.
type Tables struct {
	// Skills is the fixed vocabulary of known technical skill tokens,
	// all lowercase. Extraction only ever reports tokens from this list.
	Skills []string

	// ResumeLevelKeywords drive the keyword-frequency tally that decides a
	// candidate's experience level.
	ResumeLevelKeywords map[model.Level][]string

	// JobLevelKeywords detect a posting's seniority level. Checked in
	// JobLevelOrder; a posting matching none of them is mid-level.
	JobLevelKeywords map[model.Level][]string

	// ResumeRoleKeywords map role categories to evidence words in a resume.
	ResumeRoleKeywords map[string][]string

	// JobRoleKeywords map role categories to evidence words in a posting,
	// used by the role-fit sub-score.
	JobRoleKeywords map[string][]string

	// Degrees are the degree tokens probed for in resume text.
	Degrees []string

	// SizeIndicators map a company-size preference to its signal words.
	SizeIndicators map[string][]string

	// StartupPreference and EnterprisePreference are the resume-side signal
	// words for company-size preference; startup wins ties.
	StartupPreference    []string
	EnterprisePreference []string

	// Industries is the fixed industry token list for preference extraction.
	Industries []string

	// FreshGradStrong keywords each add a large fresh-grad bonus.
	FreshGradStrong []string

	// FreshGradModerate keywords each add a small fresh-grad bonus.
	FreshGradModerate []string

	// SeniorNegative keywords penalize fresh-grad friendliness, harder when
	// they appear in the title.
	SeniorNegative []string
}

// JobLevelOrder is the order job-level keyword lists are consulted; the
// first list with a hit wins. Mid has no keywords and acts as the default.
var JobLevelOrder = []model.Level{model.LevelSenior, model.LevelManagement, model.LevelEntry}

// RoleTypes are the five role categories a candidate or posting can belong to.
var RoleTypes = []string{"research", "engineering", "applied_ml", "leadership", "product"}

// Default returns the built-in AI/ML keyword tables.
func Default() Tables {
	return Tables{
		Skills: []string{
			// Programming languages
			"python", "r", "java", "c++", "julia", "scala", "javascript", "typescript",
			// ML frameworks
			"pytorch", "tensorflow", "keras", "jax", "scikit-learn", "sklearn", "xgboost",
			"lightgbm", "catboost", "hugging face", "transformers", "langchain",
			// Deep learning
			"deep learning", "neural networks", "cnn", "rnn", "lstm", "gru", "transformer",
			"attention mechanisms", "bert", "gpt", "llm", "large language models",
			// ML techniques
			"machine learning", "supervised learning", "unsupervised learning",
			"reinforcement learning", "computer vision", "nlp", "natural language processing",
			"time series", "forecasting", "recommendation systems",
			// Tools and platforms
			"aws", "gcp", "google cloud", "azure", "docker", "kubernetes", "k8s",
			"mlflow", "weights & biases", "wandb", "tensorboard", "airflow",
			// Data
			"sql", "postgresql", "mongodb", "redis", "spark", "hadoop", "pandas",
			"numpy", "dask", "ray",
			// MLOps
			"mlops", "ci/cd", "git", "github", "gitlab", "model deployment",
			"model monitoring", "a/b testing",
			// Generative AI
			"rag", "retrieval augmented generation", "vector databases", "embeddings",
			"fine-tuning", "prompt engineering", "llmops", "generative ai",
		},
		ResumeLevelKeywords: map[model.Level][]string{
			model.LevelEntry:      {"entry", "junior", "associate", "intern", "graduate", "0-2 years"},
			model.LevelMid:        {"mid", "intermediate", "engineer", "2-5 years", "3-7 years"},
			model.LevelSenior:     {"senior", "lead", "staff", "principal", "5+ years", "7+ years"},
			model.LevelManagement: {"manager", "director", "vp", "head of", "chief"},
		},
		JobLevelKeywords: map[model.Level][]string{
			model.LevelSenior:     {"senior", "sr", "staff", "principal", "lead", "5+ years", "7+ years"},
			model.LevelManagement: {"manager", "director", "head of"},
			model.LevelEntry:      {"junior", "entry", "associate", "0-2 years", "new grad"},
		},
		ResumeRoleKeywords: map[string][]string{
			"research":    {"research", "scientist", "phd", "publication", "paper"},
			"engineering": {"engineer", "developer", "software", "production", "deployment"},
			"applied_ml":  {"applied", "ml engineer", "machine learning engineer", "data scientist"},
			"leadership":  {"lead", "manager", "director", "head of", "team lead"},
			"product":     {"product", "pm", "product manager"},
		},
		JobRoleKeywords: map[string][]string{
			"research":    {"research", "scientist", "phd"},
			"engineering": {"engineer", "developer", "software"},
			"applied_ml":  {"machine learning engineer", "ml engineer", "applied"},
			"leadership":  {"lead", "senior", "staff", "principal"},
			"product":     {"product"},
		},
		Degrees: []string{
			"phd", "ph.d", "doctorate", "master", "ms", "m.s", "msc", "mba",
			"bachelor", "bs", "b.s", "bsc", "ba", "b.a",
		},
		SizeIndicators: map[string][]string{
			"startup":    {"startup", "seed", "series a", "early stage"},
			"enterprise": {"enterprise", "fortune", "established", "global"},
		},
		StartupPreference:    []string{"startup", "early stage", "seed", "series a"},
		EnterprisePreference: []string{"enterprise", "large company", "fortune"},
		Industries: []string{
			"healthcare", "finance", "fintech", "ecommerce", "robotics",
			"autonomous", "climate", "education", "edtech",
		},
		FreshGradStrong: []string{
			"new grad", "new graduate", "recent graduate", "fresh graduate",
			"entry level", "entry-level", "junior", "associate",
			"university graduate", "college graduate",
			"0-2 years", "0-1 years", "1-2 years", "0 years",
			"no experience required", "will train",
			"early career", "early-career", "starting your career",
			"rotational program", "graduate program", "new college",
			"internship", "summer intern", "fall intern", "spring intern",
			"co-op", "coop program", "apprentice", "apprenticeship",
			"graduate trainee", "trainee program", "campus hire",
		},
		FreshGradModerate: []string{
			"mentorship", "training program", "learn", "growth opportunity",
			"develop your skills", "bachelor", "master", "phd",
			"recent grads welcome", "all levels",
		},
		SeniorNegative: []string{
			"senior", "staff", "principal", "lead", "director",
			"manager", "head of", "vp ", "vice president",
			"extensive experience", "proven track record",
			"10+ years", "8+ years", "7+ years", "6+ years",
		},
	}
}
