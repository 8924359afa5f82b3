package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteCatchAll matches every path not claimed by a fixed route.
	RouteCatchAll = "/*"

	// RouteDocsJSON is the machine-readable documentation index.
	RouteDocsJSON = "/docs.json"
	// RouteSitemap is the XML sitemap.
	RouteSitemap = "/sitemap.xml"
	// RouteAISitemap is the sitemap annotated for AI crawlers.
	RouteAISitemap = "/ai-sitemap.xml"
	// RouteLLMs is the short-form llms.txt.
	RouteLLMs = "/llms.txt"
	// RouteLLMsFull is the full-text llms-full.txt.
	RouteLLMsFull = "/llms-full.txt"
	// RouteAIPlugin is the AI plugin manifest.
	RouteAIPlugin = "/.well-known/ai-plugin.json"
	// RouteOpenAPI is the OpenAPI document rendered as JSON.
	RouteOpenAPI = "/openapi.json"
	// RouteRobots is robots.txt.
	RouteRobots = "/robots.txt"

	// RouteHealth is the health check route.
	RouteHealth = "/healthz"
	// RouteMetrics is the Prometheus scrape route.
	RouteMetrics = "/metrics"
)

// MarkdownSuffix is the extension that selects the Markdown rendition of a page.
const MarkdownSuffix = ".md"

// HeaderContentType is the Content-Type HTTP header name.
const HeaderContentType = "Content-Type"

const (
	headerCacheControl = "Cache-Control"
	headerRobotsTag    = "X-Robots-Tag"
)
