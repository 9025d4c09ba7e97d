package address

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"adds https scheme", "example.com", "https://example.com"},
		{"keeps http scheme", "http://example.com/page", "http://example.com/page"},
		{"lowercases scheme and host", "HTTPS://WWW.Example.COM/Path", "https://www.example.com/Path"},
		{"trims whitespace", "  example.com  ", "https://example.com"},
		{"drops fragment", "example.com/page#section", "https://example.com/page"},
		{"keeps query", "example.com/search?q=bombas", "https://example.com/search?q=bombas"},
		{"drops default https port", "https://example.com:443/a", "https://example.com/a"},
		{"drops default http port", "http://example.com:80/a", "http://example.com/a"},
		{"keeps custom port", "example.com:8080/a", "https://example.com:8080/a"},
		{"accepts multi-label suffix", "loja.com.br", "https://loja.com.br"},
		{"accepts hyphenated labels", "minha-loja.example.com.br", "https://minha-loja.example.com.br"},
		{"shortest accepted host", "a.co", "https://a.co"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := Normalize(tc.input)
			if !res.Valid {
				t.Fatalf("Normalize(%q) unexpectedly invalid: %s", tc.input, res.Error)
			}
			if res.Normalized != tc.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, res.Normalized, tc.expected)
			}
			if res.Err() != nil {
				t.Errorf("expected nil Err() for valid result, got %v", res.Err())
			}
		})
	}
}

func TestNormalizeRejects(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected error
	}{
		{"empty", "", ErrEmptyURL},
		{"blank", "   ", ErrEmptyURL},
		{"ftp scheme", "ftp://example.com", ErrUnsupportedScheme},
		{"too short", "a.b", ErrHostTooShort},
		{"no tld", "localhost", ErrInvalidHost},
		{"numeric tld", "example.123", ErrInvalidHost},
		{"single letter tld", "example.c", ErrInvalidHost},
		{"ip literal", "http://192.168.0.1", ErrIPHost},
		{"leading hyphen label", "-bad.example.com", ErrInvalidHost},
		{"underscore", "bad_host.com", ErrInvalidHost},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			res := Normalize(tc.input)
			if res.Valid {
				t.Fatalf("Normalize(%q) unexpectedly valid: %s", tc.input, res.Normalized)
			}
			if res.Normalized != "" {
				t.Errorf("expected empty normalized value, got %q", res.Normalized)
			}
			if res.Error != tc.expected.Error() {
				t.Errorf("Normalize(%q) error = %q, want %q", tc.input, res.Error, tc.expected.Error())
			}
			if res.Err() == nil {
				t.Error("expected non-nil Err() for invalid result")
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"example.com",
		"HTTP://Example.com:80/Path/To?x=1&y=2#frag",
		"https://loja.com.br/produtos/",
		"www.site.org:8443",
		"https://example.com/?",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()
			first := Normalize(input)
			if !first.Valid {
				t.Fatalf("Normalize(%q) invalid: %s", input, first.Error)
			}
			second := Normalize(first.Normalized)
			if second != first {
				t.Errorf("not idempotent: %+v then %+v", first, second)
			}
		})
	}
}

func TestResultErr(t *testing.T) {
	t.Parallel()

	res := Normalize("")
	if err := res.Err(); err == nil || err.Error() != ErrEmptyURL.Error() {
		t.Errorf("unexpected error %v", err)
	}
}

func TestHostname(t *testing.T) {
	t.Parallel()

	if got := Hostname("https://WWW.Example.com/a"); got != "www.example.com" {
		t.Errorf("unexpected hostname %q", got)
	}
	if got := Hostname("://bad"); got != "" {
		t.Errorf("expected empty hostname, got %q", got)
	}
}
