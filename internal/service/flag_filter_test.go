package service

import "testing"

func TestFlagFilterDetect(t *testing.T) {
	t.Parallel()

	f := NewFlagFilter()

	tcases := map[string]struct {
		text string
		want bool
	}{
		"bracket_flag":        {"here is flag{abc123}", true},
		"uppercase_flag":      {"FLAG{X}", true},
		"ctf_token":           {"grab ctf{pwned} now", true},
		"eco_token":           {"ECO{GREEN}", true},
		"md5_digest":          {"hash is d41d8cd98f00b204e9800998ecf8427e", true},
		"sha1_digest":         {"da39a3ee5e6b4b0d3255bfef95601890afd80709", true},
		"plain_text":          {"hello world", false},
		"empty":               {"", false},
		"empty_braces":        {"flag{}", false},
		"short_hex":           {"deadbeef", false},
		"flag_word_no_braces": {"I captured the flag today", false},
	}

	for name, tc := range tcases {
		t.Run(name, func(t *testing.T) {
			if got := f.Detect(tc.text); got != tc.want {
				t.Errorf("Detect(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestFlagFilterSanitize(t *testing.T) {
	t.Parallel()

	f := NewFlagFilter()

	tcases := map[string]struct {
		text string
		want string
	}{
		"single_match": {
			text: "before flag{secret} after",
			want: "before [FLAG_BLOCKED] after",
		},
		"multiple_patterns": {
			text: "flag{a} and ctf{b}",
			want: "[FLAG_BLOCKED] and [FLAG_BLOCKED]",
		},
		"case_insensitive": {
			text: "FLAG{LOUD}",
			want: "[FLAG_BLOCKED]",
		},
		"digest": {
			text: "md5=d41d8cd98f00b204e9800998ecf8427e done",
			want: "md5=[FLAG_BLOCKED] done",
		},
		"no_match_unchanged": {
			text: "nothing to see here",
			want: "nothing to see here",
		},
		"empty": {
			text: "",
			want: "",
		},
	}

	for name, tc := range tcases {
		t.Run(name, func(t *testing.T) {
			if got := f.Sanitize(tc.text); got != tc.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}
