package security

import (
	"net"
	"strings"
	"testing"
)

func TestValidateURL_DefaultConfigBlocksInternalTargets(t *testing.T) {
	p := NewSSRFProtection()

	blocked := []struct {
		name string
		url  string
		want string
	}{
		{"localhost name", "http://localhost/admin", "localhost"},
		{"loopback v4", "http://127.0.0.1:8080/", "localhost"},
		{"loopback v6", "http://[::1]/", "localhost"},
		{"all interfaces", "http://0.0.0.0/", "localhost"},
		{"private 10/8", "http://10.1.2.3/", "private"},
		{"private 172.16/12", "http://172.16.0.1/", "private"},
		{"private 172.31", "http://172.31.255.254/", "private"},
		{"private 192.168/16", "http://192.168.1.1/router", "private"},
		{"unique-local v6", "http://[fc00::1]/", "private"},
		{"link-local v4", "http://169.254.0.10/", "link-local"},
		{"link-local v6", "http://[fe80::1]/", "link-local"},
		{"aws metadata", "http://169.254.169.254/latest/meta-data/", "blocked"},
		{"gcp metadata host", "http://metadata.google.internal/", "metadata"},
	}

	for _, tt := range blocked {
		t.Run(tt.name, func(t *testing.T) {
			err := p.ValidateURL(tt.url)
			if err == nil {
				t.Fatalf("ValidateURL(%q) = nil, want error", tt.url)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ValidateURL(%q) error = %q, want mention of %q", tt.url, err, tt.want)
			}
		})
	}
}

func TestValidateURL_SchemeRestrictions(t *testing.T) {
	p := NewSSRFProtection()

	for _, bad := range []string{"file:///etc/passwd", "ftp://example.com/x", "gopher://example.com/"} {
		if err := p.ValidateURL(bad); err == nil {
			t.Errorf("ValidateURL(%q) = nil, want scheme rejection", bad)
		}
	}
}

func TestValidateURL_MissingHostname(t *testing.T) {
	p := NewSSRFProtection()
	if err := p.ValidateURL("http:///path-only"); err == nil {
		t.Error("ValidateURL() accepted a URL with no hostname")
	}
}

func TestValidateURL_PublicIPAllowed(t *testing.T) {
	p := NewSSRFProtection()
	// A literal public IP needs no DNS resolution, so this stays hermetic.
	if err := p.ValidateURL("https://93.184.216.34/"); err != nil {
		t.Errorf("ValidateURL(public IP) = %v, want nil", err)
	}
}

func TestValidateURL_RelaxedConfigAllowsPrivateTargets(t *testing.T) {
	p := NewSSRFProtectionWithConfig(SSRFConfig{
		AllowedSchemes:     []string{"http", "https"},
		BlockPrivateIPs:    false,
		BlockLocalhost:     false,
		BlockLinkLocal:     false,
		BlockCloudMetadata: true,
	})

	for _, ok := range []string{"http://127.0.0.1:9999/", "http://192.168.0.5/", "http://10.0.0.1/"} {
		if err := p.ValidateURL(ok); err != nil {
			t.Errorf("ValidateURL(%q) = %v, want nil under relaxed config", ok, err)
		}
	}

	// Metadata stays blocked even when everything else is open.
	if err := p.ValidateURL("http://169.254.169.254/"); err == nil {
		t.Error("relaxed config still must block the metadata endpoint")
	}
}

func TestValidateURL_DomainAllowlistAndBlocklist(t *testing.T) {
	p := NewSSRFProtectionWithConfig(SSRFConfig{
		AllowedSchemes:  []string{"https"},
		AllowedDomains:  []string{"api.example.com"},
		BlockedDomains:  []string{"evil.example.com"},
		BlockPrivateIPs: true,
	})

	if err := p.ValidateURL("https://evil.example.com/"); err == nil {
		t.Error("blocklisted domain accepted")
	}
	if err := p.ValidateURL("https://other.example.com/"); err == nil {
		t.Error("domain outside the allowlist accepted")
	}
}

func TestIPClassifiers(t *testing.T) {
	tests := []struct {
		ip        string
		localhost bool
		private   bool
		linkLocal bool
		metadata  bool
	}{
		{"127.0.0.1", true, false, false, false},
		{"0.0.0.0", true, false, false, false},
		{"::1", true, false, false, false},
		{"10.255.255.255", false, true, false, false},
		{"172.15.0.1", false, false, false, false}, // one short of 172.16/12
		{"172.16.0.1", false, true, false, false},
		{"192.168.100.200", false, true, false, false},
		{"fc00::1", false, true, false, false},
		{"fd12::1", false, true, false, false},
		{"169.254.1.1", false, false, true, false},
		{"fe80::abcd", false, false, true, false},
		{"169.254.169.254", false, false, true, true},
		{"fd00:ec2::254", false, true, false, true},
		{"8.8.8.8", false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			if ip == nil {
				t.Fatalf("bad test IP %q", tt.ip)
			}
			if got := isLocalhost(ip); got != tt.localhost {
				t.Errorf("isLocalhost(%s) = %v, want %v", tt.ip, got, tt.localhost)
			}
			if got := isPrivateIP(ip); got != tt.private {
				t.Errorf("isPrivateIP(%s) = %v, want %v", tt.ip, got, tt.private)
			}
			if got := isLinkLocal(ip); got != tt.linkLocal {
				t.Errorf("isLinkLocal(%s) = %v, want %v", tt.ip, got, tt.linkLocal)
			}
			if got := isCloudMetadata(ip); got != tt.metadata {
				t.Errorf("isCloudMetadata(%s) = %v, want %v", tt.ip, got, tt.metadata)
			}
		})
	}
}
