package session

import (
	"fmt"
	"net/url"
	"strings"
)

// Navigation is the launch context: an optional link (such as an OAuth
// callback URL) plus the token and share parameters extracted from it.
type Navigation struct {
	link  *url.URL
	Token string
	Share string
}

// ParseNavigation builds the navigation context once at startup. Explicit
// token and share values take precedence over the link's query parameters.
func ParseNavigation(link, token, share string) (Navigation, error) {
	var nav Navigation
	if link = strings.TrimSpace(link); link != "" {
		u, err := url.Parse(link)
		if err != nil {
			return Navigation{}, fmt.Errorf("parsing link: %w", err)
		}
		q := u.Query()
		nav.Token = q.Get("token")
		nav.Share = q.Get("share")
		nav.link = u
	}
	if token != "" {
		nav.Token = token
	}
	if share != "" {
		nav.Share = share
	}
	return nav, nil
}

// WithoutToken returns a copy of nav with the one-time token removed from
// both the field and the link.
func (n Navigation) WithoutToken() Navigation {
	out := Navigation{Share: n.Share}
	if n.link != nil {
		u := *n.link
		q := u.Query()
		q.Del("token")
		u.RawQuery = q.Encode()
		out.link = &u
	}
	return out
}

// String returns the link, or "" when none was given.
func (n Navigation) String() string {
	if n.link == nil {
		return ""
	}
	return n.link.String()
}
