package transport

import "net/url"

var secretParams = []string{"access_token", "client_secret", "code"}

// redact masks credentials in uri before it reaches a log line.
func redact(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}
	q := u.Query()
	changed := false
	for _, k := range secretParams {
		if q.Has(k) {
			q.Set(k, "xxx")
			changed = true
		}
	}
	if !changed {
		return uri
	}
	u.RawQuery = q.Encode()
	return u.String()
}
