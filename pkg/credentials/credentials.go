// Package credentials holds the access credential triple handed to the
// transport. The runtime never inspects or refreshes credentials itself;
// resolution beyond explicitly supplied values is the transport collaborator's
// concern.
package credentials

// Credentials is an access key / secret key / session token triple.
type Credentials struct {
	AccessKey string
	SecretKey string
	Token     string
}

// NewStatic builds credentials from explicitly supplied values.
func NewStatic(accessKey, secretKey, token string) *Credentials {
	return &Credentials{
		AccessKey: accessKey,
		SecretKey: secretKey,
		Token:     token,
	}
}

// String redacts the secret material so credentials are safe to pass to
// loggers and error messages.
func (c *Credentials) String() string {
	if c == nil {
		return "<anonymous>"
	}
	return "<credentials " + redact(c.AccessKey) + ">"
}

func redact(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}
