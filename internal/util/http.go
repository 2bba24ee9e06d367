package util

import (
	"bufio"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
)

const (
	VerifySystem = "system"
	VerifyNone   = "none"
	// VerifyCertifi is accepted for compatibility and uses the system pool.
	VerifyCertifi = "certifi"
)

type HTTPClientOptions struct {
	Timeout    time.Duration
	UserAgent  string
	Cookie     string
	CookieFile string
	// Verify is VerifySystem or VerifyNone. CAFile, when set, replaces the
	// system roots with the certificates of that PEM bundle.
	Verify           string
	CAFile           string
	CloudflareBypass bool
	Transport        http.RoundTripper
	DebugLogger      interface {
		Debugf(string, ...any)
	}
}

func NewHTTPClient(opts HTTPClientOptions) (*http.Client, error) {
	jar, _ := cookiejar.New(nil)

	tlsCfg, err := tlsConfig(opts.Verify, opts.CAFile)
	if err != nil {
		return nil, err
	}

	var baseTransport http.RoundTripper
	if opts.Transport != nil {
		baseTransport = opts.Transport
	} else {
		tr := &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			ForceAttemptHTTP2:   true,
		}

		if opts.CloudflareBypass {
			baseTransport = cloudflarebp.AddCloudFlareByPass(tr)
		} else {
			baseTransport = tr
		}

		// the bypass replaces the transport's TLS config, so verification
		// settings are applied afterwards
		applyTLS(tr, tlsCfg)
	}

	client := &http.Client{
		Timeout: opts.Timeout,
		Transport: roundTripper{
			base:         baseTransport,
			ua:           opts.UserAgent,
			cookieHeader: joinCookies(opts.Cookie, opts.CookieFile),
			log:          opts.DebugLogger,
		},
		Jar: jar,
	}

	if opts.DebugLogger != nil {
		opts.DebugLogger.Debugf("HTTP client initialized (timeout=%s, ua=%q, verify=%s, ca=%q, cloudflare=%t)",
			opts.Timeout, opts.UserAgent, VerifyLabel(opts.Verify, opts.CAFile), opts.CAFile, opts.CloudflareBypass)
	}

	return client, nil
}

func tlsConfig(verify, caFile string) (*tls.Config, error) {
	if caFile != "" {
		pem, err := os.ReadFile(caFile)
		if err != nil {
			return nil, fmt.Errorf("reading CA bundle: %w", err)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", caFile)
		}

		return &tls.Config{RootCAs: pool}, nil
	}

	switch strings.ToLower(verify) {
	case "", VerifySystem, VerifyCertifi:
		return nil, nil
	case VerifyNone:
		return &tls.Config{InsecureSkipVerify: true}, nil
	default:
		return nil, fmt.Errorf("unknown TLS verify mode %q (use %s or %s)", verify, VerifySystem, VerifyNone)
	}
}

func applyTLS(tr *http.Transport, cfg *tls.Config) {
	if cfg == nil {
		return
	}
	if tr.TLSClientConfig == nil {
		tr.TLSClientConfig = &tls.Config{}
	}

	tr.TLSClientConfig.RootCAs = cfg.RootCAs
	tr.TLSClientConfig.InsecureSkipVerify = cfg.InsecureSkipVerify
}

// VerifyLabel describes the effective TLS verification for log output.
func VerifyLabel(verify, caFile string) string {
	if caFile != "" {
		return caFile
	}
	if strings.EqualFold(verify, VerifyNone) {
		return "off"
	}

	return VerifySystem
}

type roundTripper struct {
	base         http.RoundTripper
	ua           string
	cookieHeader string
	log          interface{ Debugf(string, ...any) }
}

func (rt roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.ua != "" {
		req.Header.Set("User-Agent", rt.ua)
	}

	if rt.cookieHeader != "" {
		if req.Header.Get("Cookie") == "" {
			req.Header.Set("Cookie", rt.cookieHeader)
		}
	}

	if rt.log != nil {
		rt.log.Debugf("HTTP %s %s", req.Method, req.URL.String())
	}

	return rt.base.RoundTrip(req)
}

func joinCookies(inline, file string) string {
	s := strings.TrimSpace(inline)
	if file != "" {
		if b, err := os.ReadFile(file); err == nil {
			// first non-empty line
			sc := bufio.NewScanner(strings.NewReader(string(b)))
			for sc.Scan() {
				line := strings.TrimSpace(sc.Text())
				if line != "" {
					if s == "" {
						s = line
					} else {
						s = s + "; " + line
					}
					break
				}
			}
		}
	}

	return s
}

func PickUserAgent(override string) string {
	if override != "" {
		return override
	}

	return "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
}
