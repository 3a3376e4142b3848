package lexicon

// Tag is a canonical technology name and the phrases that mean it.
// A broad tag is registered by its synonyms but only matches records
// through one of its Members.
type Tag struct {
	Name     string
	Synonyms []string
	Members  []string
}

// Broad reports whether the tag is a category rather than a technology.
func (t Tag) Broad() bool {
	return len(t.Members) > 0
}

// defaultTags is declaration-ordered; extraction reports tags in this order.
var defaultTags = []Tag{
	// deep learning and AI
	{Name: "cnn", Synonyms: []string{"cnn", "cnns", "dcnn", "1d-cnn", "convolutional neural network", "convolutional neural networks"}},
	{Name: "deep_learning", Synonyms: []string{"deep learning"}},
	{Name: "neural_networks", Synonyms: []string{"neural network", "neural networks"}},
	{Name: "tensorflow", Synonyms: []string{"tensorflow"}},
	{Name: "pytorch", Synonyms: []string{"pytorch"}},
	{Name: "keras", Synonyms: []string{"keras"}},
	{Name: "ai", Synonyms: []string{"ai", "artificial intelligence"}},
	{Name: "machine_learning", Synonyms: []string{"machine learning", "ml"}},
	{Name: "llm", Synonyms: []string{"llm", "llms", "large language model", "large language models", "language model", "language models"}},
	{Name: "rag", Synonyms: []string{"rag", "retrieval augmented generation", "retrieval-augmented generation"}},
	{Name: "conversational_ai", Synonyms: []string{"conversational ai", "chatbot", "chatbots"}},
	{Name: "voice_ai", Synonyms: []string{"voice ai", "speech recognition", "voice assistant"}},
	{Name: "mlops", Synonyms: []string{"mlops"}},
	{Name: "computer_vision", Synonyms: []string{"computer vision"}},
	{Name: "opencv", Synonyms: []string{"opencv"}},
	{Name: "yolo", Synonyms: []string{"yolo"}},
	{Name: "scikit-learn", Synonyms: []string{"scikit-learn", "sklearn"}},
	{Name: "xgboost", Synonyms: []string{"xgboost"}},
	{Name: "smote", Synonyms: []string{"smote"}},

	// languages
	{Name: "python", Synonyms: []string{"python"}},
	{Name: "javascript", Synonyms: []string{"javascript", "js"}},
	{Name: "typescript", Synonyms: []string{"typescript"}},
	{Name: "cpp", Synonyms: []string{"c++", "cpp"}},
	{Name: "c", Synonyms: []string{"c language", "c programming"}},
	{Name: "matlab", Synonyms: []string{"matlab"}},
	{Name: "java", Synonyms: []string{"java"}},
	{Name: "go", Synonyms: []string{"golang", "go language", "go programming"}},
	{Name: "rust", Synonyms: []string{"rust"}},
	{Name: "php", Synonyms: []string{"php"}},
	{Name: "ruby", Synonyms: []string{"ruby"}},

	// web
	{Name: "fastapi", Synonyms: []string{"fastapi"}},
	{Name: "react", Synonyms: []string{"react", "react.js", "reactjs"}},
	{Name: "nextjs", Synonyms: []string{"next.js", "nextjs"}},
	{Name: "nodejs", Synonyms: []string{"node.js", "nodejs"}},
	{Name: "vue", Synonyms: []string{"vue", "vue.js"}},
	{Name: "angular", Synonyms: []string{"angular"}},
	{Name: "svelte", Synonyms: []string{"svelte"}},
	{Name: "django", Synonyms: []string{"django"}},
	{Name: "flask", Synonyms: []string{"flask"}},
	{Name: "express", Synonyms: []string{"express.js", "expressjs"}},
	{Name: "spring", Synonyms: []string{"spring boot"}},
	{Name: "web_development", Synonyms: []string{"web development", "web dev", "full-stack", "full stack"}},
	{Name: "chrome_extension", Synonyms: []string{"chrome extension", "browser extension"}},
	{Name: "stripe", Synonyms: []string{"stripe"}},

	// data
	{
		Name:     "database",
		Synonyms: []string{"database", "databases", "db"},
		Members:  []string{"mongodb", "postgresql", "postgres", "mysql", "sqlite", "redis", "dynamodb", "cassandra", "nosql", "sql"},
	},
	{Name: "mongodb", Synonyms: []string{"mongodb", "mongo"}},
	{Name: "postgresql", Synonyms: []string{"postgresql", "postgres"}},
	{Name: "mysql", Synonyms: []string{"mysql"}},
	{Name: "sqlite", Synonyms: []string{"sqlite"}},
	{Name: "redis", Synonyms: []string{"redis"}},
	{Name: "cassandra", Synonyms: []string{"cassandra"}},
	{Name: "dynamodb", Synonyms: []string{"dynamodb"}},
	{Name: "couchdb", Synonyms: []string{"couchdb"}},
	{Name: "etl", Synonyms: []string{"etl", "data pipeline", "data pipelines", "data engineering"}},
	{Name: "big_data", Synonyms: []string{"big data"}},
	{Name: "spark", Synonyms: []string{"spark", "apache spark"}},
	{Name: "kafka", Synonyms: []string{"kafka"}},
	{Name: "airflow", Synonyms: []string{"airflow"}},
	{Name: "data_science", Synonyms: []string{"data science", "data analysis"}},

	// cloud and devops
	{Name: "aws", Synonyms: []string{"aws", "amazon web services"}},
	{Name: "lambda", Synonyms: []string{"lambda", "aws lambda"}},
	{Name: "sqs", Synonyms: []string{"sqs"}},
	{Name: "serverless", Synonyms: []string{"serverless"}},
	{Name: "gcp", Synonyms: []string{"gcp", "google cloud"}},
	{Name: "azure", Synonyms: []string{"azure"}},
	{Name: "docker", Synonyms: []string{"docker"}},
	{Name: "kubernetes", Synonyms: []string{"kubernetes", "k8s"}},
	{Name: "cicd", Synonyms: []string{"ci/cd", "continuous integration", "github actions"}},
	{Name: "jenkins", Synonyms: []string{"jenkins"}},
	{Name: "ansible", Synonyms: []string{"ansible"}},

	// biomedical
	{Name: "eeg", Synonyms: []string{"eeg", "electroencephalography"}},
	{Name: "ecg", Synonyms: []string{"ecg", "ekg", "electrocardiography"}},
	{Name: "bci", Synonyms: []string{"bci", "brain-computer interface", "brain computer interface"}},
	{Name: "signal_processing", Synonyms: []string{"signal processing", "dsp"}},
	{Name: "biomedical", Synonyms: []string{"biomedical"}},
	{Name: "p300", Synonyms: []string{"p300"}},
	{Name: "sleep_apnea", Synonyms: []string{"sleep apnea", "apnea"}},

	// robotics, hci, sensing
	{Name: "robotics", Synonyms: []string{"robotics"}},
	{Name: "hci", Synonyms: []string{"hci", "human-computer interaction"}},
	{Name: "hyperspectral_imaging", Synonyms: []string{"hyperspectral", "hyperspectral imaging"}},
	{Name: "remote_sensing", Synonyms: []string{"remote sensing"}},

	// systems
	{Name: "algorithms", Synonyms: []string{"algorithms", "data structures"}},
	{Name: "systems_programming", Synonyms: []string{"systems programming", "low-level"}},
}

// defaultGraph maps a tag to related tags used when the tag itself finds nothing.
var defaultGraph = map[string][]string{
	"cnn":             {"deep_learning", "neural_networks", "tensorflow", "machine_learning"},
	"deep_learning":   {"cnn", "neural_networks", "tensorflow", "pytorch"},
	"neural_networks": {"deep_learning", "cnn", "machine_learning"},
	"tensorflow":      {"deep_learning", "cnn", "neural_networks", "machine_learning"},
	"pytorch":         {"deep_learning", "cnn", "neural_networks", "machine_learning"},
	"keras":           {"tensorflow", "deep_learning", "neural_networks"},
	"scikit-learn":    {"machine_learning", "classification", "ensemble_learning"},
	"xgboost":         {"machine_learning", "ensemble_learning", "classification"},

	"signal_processing": {"eeg", "ecg", "biomedical", "neural_networks"},
	"biomedical":        {"ecg", "eeg", "signal_processing", "healthcare"},
	"sleep_apnea":       {"ecg", "biomedical", "healthcare", "deep_learning"},

	"cassandra":  {"mongodb", "database"},
	"redis":      {"mongodb", "database"},
	"dynamodb":   {"mongodb", "database"},
	"couchdb":    {"mongodb", "database"},
	"mysql":      {"postgresql", "database"},
	"postgresql": {"mysql", "database"},
	"sqlite":     {"database"},

	"java":       {"python", "backend"},
	"php":        {"python", "backend"},
	"ruby":       {"python", "backend"},
	"go":         {"python", "backend"},
	"rust":       {"systems", "backend"},
	"c":          {"systems", "cpp"},
	"cpp":        {"systems", "algorithms"},
	"typescript": {"javascript", "web_development"},

	"react":   {"javascript", "web_development", "nextjs"},
	"vue":     {"javascript", "web_development"},
	"angular": {"javascript", "web_development"},
	"svelte":  {"javascript", "web_development"},
	"nextjs":  {"react", "javascript", "web_development"},

	"django":  {"python", "backend", "fastapi"},
	"flask":   {"python", "backend", "fastapi"},
	"express": {"javascript", "backend"},
	"spring":  {"backend"},
	"fastapi": {"python", "backend", "api"},

	"gcp":   {"aws", "cloud"},
	"azure": {"aws", "cloud"},

	"docker":     {"kubernetes", "devops", "systems"},
	"kubernetes": {"docker", "devops", "systems"},
	"jenkins":    {"cicd", "devops"},
	"ansible":    {"devops", "systems"},

	"spark":   {"big_data", "etl", "python"},
	"kafka":   {"streaming", "big_data", "etl"},
	"airflow": {"etl", "data_science", "pipeline"},

	"yolo":   {"computer_vision", "opencv", "deep_learning"},
	"opencv": {"computer_vision", "python"},
}

// broadCategory is a last-resort mapping for tags nothing else knows about.
type broadCategory struct {
	hints   []string
	related []string
}

var defaultBroad = []broadCategory{
	{hints: []string{"database", "db", "sql"}, related: []string{"database", "mongodb"}},
	{hints: []string{"frontend", "front", "ui"}, related: []string{"javascript", "web_development"}},
	{hints: []string{"backend", "back", "server", "api"}, related: []string{"python", "backend"}},
	{hints: []string{"ml", "ai", "learning"}, related: []string{"machine_learning"}},
}

// fuzzyStoplist holds vocabulary entries too generic for fuzzy matching.
var fuzzyStoplist = map[string]bool{
	"experience":      true,
	"user experience": true,
	"work":            true,
	"project":         true,
	"projects":        true,
}
