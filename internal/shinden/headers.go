package shinden

const (
	// DefaultBaseURL is the canonical site origin
	DefaultBaseURL = "https://shinden.pl"
	// DefaultAPIBaseURL hosts the player_load / player_show endpoints
	DefaultAPIBaseURL = "https://api4.shinden.pl"
	// PlaceholderImageURL replaces covers hidden from logged-out visitors
	PlaceholderImageURL = "https://shinden.pl/res/other/placeholders/title/100x100.jpg"

	// guest token accepted by the player API
	apiAuthToken = "X2d1ZXN0XzowLDUsMjEwMDAwMDAsMjU1LDQxNzQyOTM2NDQ%3D"

	userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"
)

// frontendHeaders is the browser-like profile used for HTML pages
func frontendHeaders(baseURL, cookie string) map[string]string {
	headers := map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
		"Accept-Language":           "pl,en-US;q=0.7,en;q=0.3",
		"Cache-Control":             "no-cache",
		"Referer":                   baseURL + "/",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "same-origin",
		"Sec-Fetch-User":            "?1",
		"Sec-Gpc":                   "1",
		"Upgrade-Insecure-Requests": "1",
		"User-Agent":                userAgent,
	}
	if cookie != "" {
		headers["Cookie"] = cookie
	}
	return headers
}

// apiHeaders is the profile used against the player API host
func apiHeaders(baseURL, cookie string) map[string]string {
	headers := map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "*/*",
		"Accept-Language": "pl,en-US;q=0.7,en;q=0.3",
		"Origin":          baseURL,
		"Connection":      "keep-alive",
	}
	if cookie != "" {
		headers["Cookie"] = cookie
	}
	return headers
}
