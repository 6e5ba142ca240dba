// Package http は外部API（Gemini・検索）呼び出し用のHTTPクライアントを提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// DefaultTimeout はLLMの長い生成を待てるリクエスト全体のタイムアウトです。
const DefaultTimeout = 120 * time.Second

// NewHTTPClient はタイムアウトとコネクションプールを明示したHTTPクライアントを作成します。
// timeout が0以下の場合は DefaultTimeout を使います。
//
// http.DefaultClientにはタイムアウトがないため、外部APIには常にこのクライアントを使うこと。
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
