package cfg

type Cfg struct {
	// Feed configuration
	FeedURL       string
	FetchInterval int
	FetchTimeout  int

	// Database configuration
	DBPath string

	// Application configuration
	Port          string
	BaseUrl       string
	WorkerCount   int
	JWTSecret     string
	SeedPostsFile string

	// Gemini configuration
	GeminiAPIKey string
	GeminiModel  string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
