package config

import (
	"os"
	"strings"
)

const defaultNoProxy = "localhost,127.0.0.1,172.16.0.0/12,192.168.0.0/16"

// ProxyConfig содержит настройки прокси
type ProxyConfig struct {
	UseProxy bool
	ProxyURL string
	NoProxy  []string
}

// LoadProxyConfig загружает конфигурацию прокси из переменных окружения.
// Прокси выключен, пока USE_PROXY не равен true.
func LoadProxyConfig() *ProxyConfig {
	proxyURL := strings.TrimSpace(os.Getenv("PROXY_URL"))
	if proxyURL == "" {
		proxyURL = "socks5h://127.0.0.1:1080"
	}

	noProxy := os.Getenv("NO_PROXY")
	if noProxy == "" {
		noProxy = defaultNoProxy
	}

	var hosts []string
	for _, h := range strings.Split(noProxy, ",") {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}

	return &ProxyConfig{
		UseProxy: envBool("USE_PROXY", false),
		ProxyURL: proxyURL,
		NoProxy:  hosts,
	}
}

// Enabled сообщает, нужно ли вообще ходить через прокси
func (p *ProxyConfig) Enabled() bool {
	return p != nil && p.UseProxy && p.ProxyURL != ""
}

// YtDlpProxy возвращает значение для --proxy у yt-dlp или пустую строку
func (p *ProxyConfig) YtDlpProxy() string {
	if !p.Enabled() {
		return ""
	}
	return p.ProxyURL
}
