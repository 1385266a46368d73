// Package gen renders the typed method wrappers of package vkapi.
package gen

import (
	"bytes"
	"go/format"
	"text/template"

	"github.com/jrsteele09/go-vk-client/vkapi"
	"github.com/pkg/errors"
)

var wrappersTemplate = template.Must(template.New("wrappers").Parse(`// Code generated by vkgen. DO NOT EDIT.

package vkapi

import (
	"context"

	"github.com/jrsteele09/go-vk-client/response"
	"github.com/jrsteele09/go-vk-client/uri"
)
{{range .}}
// {{.Func}} calls {{.Name}}. {{.Doc}}
func (c *Client) {{.Func}}(ctx context.Context, params uri.Params) (response.Payload, error) {
	return c.Invoke(ctx, "{{.Func}}", params)
}
{{end}}`))

type wrapper struct {
	Method
	Func string
}

// Render returns the formatted Go source of the wrappers for methods.
func Render(methods []Method) ([]byte, error) {
	wrappers := make([]wrapper, 0, len(methods))
	for _, m := range methods {
		fn := vkapi.Pascal(m.Name)
		resolved, err := vkapi.MethodName(fn)
		if err != nil {
			return nil, errors.Wrapf(err, "[gen.Render] %s", m.Name)
		}
		if resolved != m.Name {
			return nil, errors.Errorf("[gen.Render] %s dispatches to %s", fn, resolved)
		}
		wrappers = append(wrappers, wrapper{Method: m, Func: fn})
	}

	var buf bytes.Buffer
	if err := wrappersTemplate.Execute(&buf, wrappers); err != nil {
		return nil, errors.Wrap(err, "[gen.Render] template")
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "[gen.Render] gofmt")
	}
	return src, nil
}
