package vkapi

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	vkerrors "github.com/jrsteele09/go-vk-client/internal/errors"
	"github.com/jrsteele09/go-vk-client/response"
	"github.com/jrsteele09/go-vk-client/uri"
)

//go:generate go run ../cmd/vkgen -o methods_gen.go

// MethodName maps a capability name to a remote method identifier.
//
// The name is split before its second uppercase-starting fragment. The first
// fragment, lower-cased, is the API namespace; the remainder with only its
// first letter lower-cased is the method, so "WallGetPosts" becomes
// "wall.getPosts" and "UtilsResolveScreenName" becomes
// "utils.resolveScreenName". Names that already contain a dot are returned
// unchanged. A name with a single fragment is rejected.
func MethodName(name string) (string, error) {
	if strings.Contains(name, ".") {
		return name, nil
	}

	split := -1
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			split = i
			break
		}
	}
	if split < 0 {
		return "", vkerrors.Wrapf(ErrInvalidMethodName, "%q has no method fragment", name)
	}
	return strings.ToLower(name[:split]) + "." + lowerFirst(name[split:]), nil
}

// Pascal is the inverse of MethodName for dotted identifiers:
// "wall.getPosts" becomes "WallGetPosts".
func Pascal(method string) string {
	namespace, leaf, ok := strings.Cut(method, ".")
	if !ok {
		return upperFirst(method)
	}
	return upperFirst(namespace) + upperFirst(leaf)
}

// Invoke resolves name with MethodName and calls it.
func (c *Client) Invoke(ctx context.Context, name string, params uri.Params) (response.Payload, error) {
	method, err := MethodName(name)
	if err != nil {
		return response.Payload{}, err
	}
	return c.Call(ctx, method, params)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
