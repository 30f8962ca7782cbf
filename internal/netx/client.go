package netx

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	xproxy "golang.org/x/net/proxy"

	"youtubeBot/internal/config"
)

func hostInNoProxy(host string, noProxy []string) bool {
	host = strings.ToLower(host)
	ip := net.ParseIP(host)
	for _, token := range noProxy {
		token = strings.TrimSpace(strings.ToLower(token))
		if token == "" {
			continue
		}
		// точные хосты/домены
		if host == token || strings.HasSuffix(host, "."+token) {
			return true
		}
		// простые маски по подсетям
		if ip != nil {
			_, cidr, err := net.ParseCIDR(token)
			if err == nil && cidr.Contains(ip) {
				return true
			}
		}
	}
	// дефолтные локальные
	if ip != nil && (ip.IsLoopback() || ip.IsPrivate()) {
		return true
	}
	return host == "localhost"
}

// NewHTTPClient создает клиент: локальные адреса идут напрямую, остальное через SOCKS5.
// Без включенного прокси это обычный клиент с таймаутом.
func NewHTTPClient(p *config.ProxyConfig, timeout time.Duration) (*http.Client, error) {
	baseDialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	tr := &http.Transport{
		// Proxy не используем, чтобы не путать SOCKS с HTTP-прокси
		Proxy:             nil,
		ForceAttemptHTTP2: true,
		TLSClientConfig:   &tls.Config{MinVersion: tls.VersionTLS12},
		DialContext:       baseDialer.DialContext,
	}

	if p.Enabled() {
		u, err := url.Parse(p.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("parse proxy url: %w", err)
		}
		if u.Scheme != "socks5" && u.Scheme != "socks5h" {
			return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
		}

		var auth *xproxy.Auth
		if u.User != nil {
			pass, _ := u.User.Password()
			auth = &xproxy.Auth{User: u.User.Username(), Password: pass}
		}

		// socks5h: hostname резолвит прокси, здесь не резолвим
		socks, err := xproxy.SOCKS5("tcp", u.Host, auth, baseDialer)
		if err != nil {
			return nil, fmt.Errorf("socks5 dialer: %w", err)
		}
		ctxDialer, ok := socks.(xproxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("socks5 dialer does not support contexts")
		}

		noProxy := p.NoProxy
		tr.DialContext = func(ctx context.Context, network, address string) (net.Conn, error) {
			host, _, _ := net.SplitHostPort(address)
			if hostInNoProxy(host, noProxy) {
				return baseDialer.DialContext(ctx, network, address)
			}
			return ctxDialer.DialContext(ctx, network, address)
		}
	}

	return &http.Client{
		Transport: tr,
		Timeout:   timeout,
	}, nil
}
