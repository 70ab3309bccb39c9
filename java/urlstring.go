package java

import (
	"net/url"
	"path/filepath"
)

// URLString is a url.URL that encodes as text, so it serializes as a plain
// string in both JSON and YAML. The zero value encodes as "".
type URLString struct {
	url.URL
}

// FileURL returns the file:// URL of path, made absolute when possible.
func FileURL(path string) URLString {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return URLString{
		URL: url.URL{
			Scheme: "file",
			Path:   filepath.ToSlash(path),
		},
	}
}

func (u URLString) IsZero() bool {
	return u.URL.Scheme == "" && u.URL.Host == "" && u.URL.Path == ""
}

func (u URLString) String() string {
	if u.IsZero() {
		return ""
	}
	return u.URL.String()
}

func (u URLString) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *URLString) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*u = URLString{}
		return nil
	}
	parsed, err := url.Parse(string(data))
	if err != nil {
		return err
	}
	u.URL = *parsed
	return nil
}
