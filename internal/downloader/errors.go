package downloader

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoOutput инструмент отработал, но файла в папке нет
var ErrNoOutput = errors.New("no output file produced")

// Kind категория ошибки скачивания
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindRestricted
	KindUnsupported
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRestricted:
		return "restricted"
	case KindUnsupported:
		return "unsupported"
	case KindTimeout:
		return "timeout"
	}
	return "unknown"
}

// Error ошибка скачивания с категорией
type Error struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("download %s failed (%s): %v", e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf достает категорию из цепочки ошибок
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

var kindMarkers = []struct {
	kind    Kind
	markers []string
}{
	{KindRestricted, []string{
		"private video",
		"sign in to confirm your age",
		"age-restricted",
		"not available in your country",
		"geo restricted",
		"geo-restricted",
		"members-only",
		"this video is private",
		"login required",
	}},
	{KindUnsupported, []string{
		"unsupported url",
		"video unavailable",
		"is not a valid url",
		"requested format is not available",
		"this live event will begin",
		"no video formats found",
	}},
	{KindNetwork, []string{
		"unable to download webpage",
		"connection refused",
		"connection reset",
		"network is unreachable",
		"temporary failure in name resolution",
		"getaddrinfo failed",
		"no such host",
		"timed out",
		"http error 5",
		"http error 429",
		"tls handshake",
	}},
}

// classify определяет категорию по тексту ошибки инструмента
func classify(msg string) Kind {
	msg = strings.ToLower(msg)
	for _, km := range kindMarkers {
		for _, m := range km.markers {
			if strings.Contains(msg, m) {
				return km.kind
			}
		}
	}
	return KindUnknown
}
