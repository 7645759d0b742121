// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

package sliceedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindAll(t *testing.T) {
	assert.Equal(t, []int{0, 4}, FindAll([]byte("abc abc"), "abc"))
	assert.Equal(t, []int{}, FindAll([]byte("abc"), ""))
	assert.Equal(t, []int{0, 2}, FindAll([]byte("aaaa"), "aa"))
}

func TestReplace(t *testing.T) {
	b := NewBuffer([]byte("<p>one</p><b>two</b>"))
	b.Replace(10, 13, `<b class="x">`)
	b.Replace(0, 3, `<p style="a:b;">`)
	assert.Equal(t, `<p style="a:b;">one</p><b class="x">two</b>`, b.String())
}

func TestMergeConditionals(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"none", "<div></div>", "<div></div>"},
		{
			"adjacent",
			"<!--[if mso | IE]></td><![endif]--><!--[if mso | IE]><td><![endif]-->",
			"<!--[if mso | IE]></td><td><![endif]-->",
		},
		{
			"separated",
			"<!--[if mso | IE]><tr><![endif]--><div></div><!--[if mso | IE]></tr><![endif]-->",
			"<!--[if mso | IE]><tr><![endif]--><div></div><!--[if mso | IE]></tr><![endif]-->",
		},
		{
			"chain",
			"<!--[if mso | IE]>a<![endif]--><!--[if mso | IE]>b<![endif]--><!--[if mso | IE]>c<![endif]-->",
			"<!--[if mso | IE]>abc<![endif]-->",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeConditionals(tt.in))
		})
	}
}
