// Package log provides secure logging for spdrs, built on top of the
// standard slog package.
//
// The site-configuration file can carry cookies and authorization headers
// for crawling authenticated sites, and verbose crawls log request
// details. The SecureHandler masks those values before they reach the log
// output, so sharing a debug log never shares a credential:
//
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//	logger.Debug("request sent",
//	    "cookie", "session=abc123", // masked
//	    "url", "http://example.com/",
//	)
package log
