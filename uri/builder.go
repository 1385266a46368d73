// Package uri assembles request URIs for the VK endpoints, optionally signing
// the query with the application secret.
package uri

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strings"
)

const (
	ClientIDParam  = "client_id"
	SignatureParam = "sig"
)

// Build returns baseURL with params appended as a query string.
//
// A trailing slash is trimmed from baseURL and client_id is put first unless
// params already carries one. Parameters with an empty value are never written.
// When signed is false the parameters keep their given order. When signed is
// true they are sorted by key and sig=Signature(params, secret) is appended last.
func Build(baseURL string, params Params, clientID, secret string, signed bool) string {
	baseURL = strings.TrimRight(baseURL, "/")

	params = params.Clone().PrependDefault(ClientIDParam, clientID)
	if signed {
		params = params.Delete(SignatureParam).Sorted()
		params = append(params, Param{Key: SignatureParam, Value: Signature(params, secret)})
	}

	var sb strings.Builder
	for _, kv := range params {
		if kv.Value == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(kv.Key)
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(kv.Value))
	}
	return baseURL + "?" + sb.String()
}

// Signature is the hex MD5 of the sorted, non-empty key=value pairs joined
// without separators, followed by secret. Values are used unescaped and any sig
// parameter is excluded.
func Signature(params Params, secret string) string {
	var sb strings.Builder
	for _, kv := range params.Sorted() {
		if kv.Value == "" || kv.Key == SignatureParam {
			continue
		}
		sb.WriteString(kv.Key)
		sb.WriteByte('=')
		sb.WriteString(kv.Value)
	}
	sb.WriteString(secret)
	sum := md5.Sum([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

// ForwardURL wraps redirectURI into forwardBase as its forward query parameter.
// An empty forwardBase leaves redirectURI unchanged.
func ForwardURL(forwardBase, redirectURI string) string {
	if forwardBase == "" {
		return redirectURI
	}
	sep := "?"
	if strings.Contains(forwardBase, "?") {
		sep = "&"
	}
	return forwardBase + sep + "forward=" + url.QueryEscape(redirectURI)
}

// MethodURL resolves the endpoint for method. A base containing %s is treated
// as a template; otherwise the method is appended as a path segment.
func MethodURL(base, method string) string {
	if strings.Contains(base, "%s") {
		return strings.Replace(base, "%s", method, 1)
	}
	return strings.TrimRight(base, "/") + "/" + method
}
