// Package link находит ссылки на YouTube в тексте сообщений.
package link

import (
	"regexp"
	"strings"
)

// youtubeMarkers подстроки, по которым ссылка считается ссылкой на YouTube.
// Сеть не проверяем: мертвая ссылка обнаружится уже при скачивании.
var youtubeMarkers = []string{
	"youtube.com/watch",
	"youtube.com/shorts/",
	"youtube.com/embed/",
	"youtu.be/",
}

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?(?:.*&)?v=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`youtube\.com/shorts/([a-zA-Z0-9_-]+)`),
}

// Classify возвращает первую ссылку на видео или Shorts из текста
func Classify(text string) (string, bool) {
	for _, token := range strings.Fields(text) {
		token = strings.Trim(token, "<>()[]\"'.,;!")
		if IsYouTube(token) {
			return token, true
		}
	}
	return "", false
}

// IsYouTube проверяет одну ссылку на известные подстроки
func IsYouTube(url string) bool {
	lower := strings.ToLower(url)
	for _, m := range youtubeMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// IsShorts сообщает, что ссылка ведет на YouTube Shorts
func IsShorts(url string) bool {
	return strings.Contains(strings.ToLower(url), "youtube.com/shorts/")
}

// VideoID извлекает ID видео из YouTube URL или возвращает пустую строку
func VideoID(url string) string {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(url); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}
