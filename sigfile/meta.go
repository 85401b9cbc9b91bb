// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package sigfile

import "encoding/json"

// metadataFormatJSON is the single recognized metadata format tag: a raw
// UTF-8 JSON payload occupying the remainder of the section.
const metadataFormatJSON = 'j'

// Meta is the free-form SignaturesMeta value object carried alongside a
// reference SignatureArray: optional id/version/name/id_attr/description,
// plus an open "extra" map for anything else. It is read and written
// whole — the core never mutates metadata mid-query.
type Meta struct {
	ID          string                 `json:"id,omitempty"`
	Version     string                 `json:"version,omitempty"`
	Name        string                 `json:"name,omitempty"`
	IDAttr      string                 `json:"id_attr,omitempty"`
	Description string                 `json:"description,omitempty"`
	Extra       map[string]interface{} `json:"extra,omitempty"`
}

func encodeMeta(m Meta) ([]byte, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(body)+1)
	out = append(out, metadataFormatJSON)
	out = append(out, body...)
	return out, nil
}

func decodeMeta(raw []byte) (Meta, error) {
	if len(raw) == 0 || raw[0] != metadataFormatJSON {
		return Meta{}, ErrUnknownFormatTag
	}
	var m Meta
	if err := json.Unmarshal(raw[1:], &m); err != nil {
		return Meta{}, err
	}
	return m, nil
}
