package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalIdentName(t *testing.T) {
	cases := []struct {
		path string
		want string
		ok   bool
	}{
		{"src/components/GlobalHeader/index.less", "ygd-pro-components-global-header-index-", true},
		{"src/layouts/BasicLayout.less", "ygd-pro-layouts-basic-layout-", true},
		{"packages/app/src/pages/user/Login/style.less", "ygd-pro-pages-user-login-style-", true},
		{"src/global.less", "ygd-pro-global-", true},
		// Only the first ".less" is dropped, here the directory's.
		{"src/theme.less/Button.less", "ygd-pro-theme-button.less-", true},
		{"styles/theme.less", "", false},
		{"resources/a.less", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			got, ok := LocalIdentName(tc.path)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
