package delivery

import "youtubeBot/internal/downloader"

// DefaultLimit потолок загрузки файлов через официальный Bot API
const DefaultLimit int64 = 50 << 20

// Verdict решение Size Gate
type Verdict int

const (
	Accept Verdict = iota
	Reject
)

func (v Verdict) String() string {
	if v == Accept {
		return "accept"
	}
	return "reject"
}

// Gate пропускает файлы не больше Limit байт
type Gate struct {
	Limit int64
}

// Check сравнивает размер результата с лимитом; граница включительно
func (g Gate) Check(r *downloader.Result) Verdict {
	limit := g.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if r == nil || r.Size > limit {
		return Reject
	}
	return Accept
}

// SizeMB размер в мегабайтах для сообщений пользователю
func SizeMB(n int64) float64 {
	return float64(n) / (1 << 20)
}
