package auth

// publicPaths lists URL paths that bypass authentication: the login
// endpoint itself plus infrastructure endpoints (health checks, metrics).
var publicPaths = map[string]bool{
	"/api/login": true,
	"/health":    true,
	"/health/db": true,
	"/metrics":   true,
}

// IsPublicPath reports whether the given path should bypass auth.
func IsPublicPath(path string) bool {
	return publicPaths[path]
}
