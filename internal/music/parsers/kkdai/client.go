package kkdai

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"

	_ "github.com/bdandy/go-socks4"
	youtube "github.com/kkdai/youtube/v2"
	"golang.org/x/net/proxy"
)

// NewClient builds a YouTube client, optionally behind an http, socks4 or
// socks5 proxy. An unusable proxy falls back to a direct client.
func NewClient(proxyStr string) *youtube.Client {
	transport, err := proxyTransport(proxyStr)
	if err != nil {
		log.Printf("[kkdai] %v, going direct", err)
	}

	httpClient := &http.Client{Timeout: 15 * time.Second}
	if transport != nil {
		httpClient.Transport = transport
	}
	return &youtube.Client{HTTPClient: httpClient}
}

func proxyTransport(proxyStr string) (*http.Transport, error) {
	if proxyStr == "" {
		return nil, nil
	}

	proxyURL, err := url.Parse(proxyStr)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy format: %w", err)
	}

	switch proxyURL.Scheme {
	case "http", "https":
		log.Printf("[kkdai] using HTTP proxy: %s", proxyURL.Redacted())
		return &http.Transport{Proxy: http.ProxyURL(proxyURL)}, nil

	case "socks5":
		log.Printf("[kkdai] using SOCKS5 proxy: %s", proxyURL.Host)
		var auth *proxy.Auth
		if proxyURL.User != nil {
			auth = &proxy.Auth{User: proxyURL.User.Username()}
			auth.Password, _ = proxyURL.User.Password()
		}
		dialer, err := proxy.SOCKS5("tcp", proxyURL.Host, auth, &net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 10 * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("SOCKS5 dialer error: %w", err)
		}
		return dialerTransport(dialer), nil

	case "socks4", "socks4a":
		// registered with x/net/proxy by go-socks4
		log.Printf("[kkdai] using SOCKS4 proxy: %s", proxyURL.Host)
		dialer, err := proxy.FromURL(proxyURL, &net.Dialer{Timeout: 10 * time.Second})
		if err != nil {
			return nil, fmt.Errorf("SOCKS4 dialer error: %w", err)
		}
		return dialerTransport(dialer), nil
	}

	return nil, fmt.Errorf("unsupported proxy scheme: %s", proxyURL.Scheme)
}

func dialerTransport(dialer proxy.Dialer) *http.Transport {
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		return &http.Transport{DialContext: cd.DialContext}
	}
	return &http.Transport{
		DialContext: func(_ context.Context, network, addr string) (net.Conn, error) {
			return dialer.Dial(network, addr)
		},
	}
}
